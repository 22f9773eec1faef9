// Package ledger holds the single in-memory account and the rules for
// admitting transactions into its history.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/shopspring/decimal"
)

// Rejection reasons returned by Account.Add.
var (
	ErrNilTransaction = errors.New("transaction cannot be nil")
	ErrInvalidAmount  = fmt.Errorf("%w: amount must be positive", model.ErrInvalidAmount)
	ErrInvalidDate    = errors.New("invalid date format")
)

// Account owns a balance and the append-only history that produced it.
// The zero value is an empty account with a zero balance.
//
// Account is not safe for concurrent use.
type Account struct {
	balance      decimal.Decimal
	transactions []model.Transaction
}

// New returns an empty account.
func New() *Account {
	return &Account{balance: decimal.Zero}
}

// Add validates tx and, if it is acceptable, applies it to the balance and
// appends it to the history. A non-nil error means nothing was changed.
//
// Checks run in order: nil, non-positive amount, malformed date.
func (a *Account) Add(tx *model.Transaction) error {
	if tx == nil {
		return ErrNilTransaction
	}
	if !tx.Amount().IsPositive() {
		slog.Debug("Rejected transaction", "reason", "amount", "amount", tx.Amount().String())
		return ErrInvalidAmount
	}
	if !model.ValidateFormat(tx.Date()) {
		slog.Debug("Rejected transaction", "reason", "date", "date", tx.Date())
		return fmt.Errorf("%w: %q (want %s)", ErrInvalidDate, tx.Date(), model.DateLayout)
	}

	a.balance = tx.EffectOn(a.balance)
	a.transactions = append(a.transactions, *tx)

	slog.Debug("Added transaction",
		"id", tx.ID(),
		"kind", tx.Kind(),
		"amount", tx.Amount().String(),
		"balance", a.balance.String())

	return nil
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Len returns the number of admitted transactions.
func (a *Account) Len() int {
	return len(a.transactions)
}

// Transactions returns a copy of the history in insertion order.
func (a *Account) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// TransactionsForMonth returns the transactions whose month key equals
// monthYear (MM-YYYY), in insertion order.
func (a *Account) TransactionsForMonth(monthYear string) []model.Transaction {
	var out []model.Transaction
	for _, tx := range a.transactions {
		if tx.MonthKey() == monthYear {
			out = append(out, tx)
		}
	}
	return out
}
