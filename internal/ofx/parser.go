// Package ofx reads OFX/QFX bank and credit card statements into ledger transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"regexp"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// Uncategorized is used for rows whose transaction type carries no category hint.
const Uncategorized = "Uncategorized"

// amountPrecision is the number of decimal places kept from TRNAMT.
const amountPrecision = 16

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in bank exports.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket on bare tags.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses a statement and returns one transaction per row, in file order.
// Rows are not validated here; that happens when they are added to an account.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]*model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []*model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			transactions = append(transactions, p.convertList(stmt.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			transactions = append(transactions, p.convertList(stmt.BankTranList)...)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList) []*model.Transaction {
	if list == nil {
		return nil
	}
	out := make([]*model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		out = append(out, p.convertTransaction(ofxTx))
	}
	return out
}

// convertTransaction maps a statement row onto an income or expense.
// OFX uses negative amounts for debits.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) *model.Transaction {
	kind := model.KindIncome
	if ofxTx.TrnAmt.Sign() < 0 {
		kind = model.KindExpense
	}
	amount := decimal.NewFromBigRat(new(big.Rat).Abs(&ofxTx.TrnAmt.Rat), amountPrecision)

	return model.NewTransaction(
		kind,
		amount,
		categoryFor(ofxTx.TrnType.String()),
		model.FormatDate(ofxTx.DtPosted.Time),
		p.extractMerchantName(ofxTx),
	)
}

// categoryFor derives a category from the OFX transaction type.
func categoryFor(trnType string) string {
	switch trnType {
	case "INT":
		return "Interest"
	case "DIV":
		return "Dividends"
	case "FEE", "SRVCHG":
		return "Bank Fees"
	case "ATM":
		return "Cash & ATM"
	case "DIRECTDEP":
		return "Salary"
	default:
		return Uncategorized
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// "MM/DD " card-posting prefix.
	if len(name) > 5 && isDigit(name[0]) && isDigit(name[1]) && name[2] == '/' &&
		isDigit(name[3]) && isDigit(name[4]) && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
