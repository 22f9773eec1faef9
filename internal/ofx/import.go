package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// Adder is the write side of an account.
type Adder interface {
	Add(tx *model.Transaction) error
}

// Result counts what happened to each statement row.
type Result struct {
	Added   int
	Skipped int
}

// Import parses a statement and submits every row to acc. Rows the account
// rejects are counted as skipped; they do not stop the import.
func Import(ctx context.Context, parser *Parser, acc Adder, reader io.Reader) (Result, error) {
	var result Result

	transactions, err := parser.ParseFile(ctx, reader)
	if err != nil {
		return result, err
	}

	for _, tx := range transactions {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := acc.Add(tx); err != nil {
			slog.Warn("Skipped statement row",
				"date", tx.Date(),
				"amount", tx.Amount().String(),
				"description", tx.Description(),
				"error", err)
			result.Skipped++
			continue
		}
		result.Added++
	}

	return result, nil
}

// String formats the result for the import summary line.
func (r Result) String() string {
	return fmt.Sprintf("%d added, %d skipped", r.Added, r.Skipped)
}
