// Package model defines the ledger's value types: transactions, their kinds,
// and the date and month keys used to group them.
package model

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount indicates an amount that is missing, malformed, or not positive.
var ErrInvalidAmount = errors.New("invalid amount")

// Kind tells whether a transaction adds to or takes from the balance.
type Kind string

const (
	// KindIncome increases the balance by the transaction amount.
	KindIncome Kind = "Income"
	// KindExpense decreases the balance by the transaction amount.
	KindExpense Kind = "Expense"
)

func (k Kind) String() string {
	return string(k)
}

// EffectOn returns the balance after applying amount according to the kind.
// Unknown kinds leave the balance untouched.
func (k Kind) EffectOn(balance, amount decimal.Decimal) decimal.Decimal {
	switch k {
	case KindIncome:
		return balance.Add(amount)
	case KindExpense:
		return balance.Sub(amount)
	default:
		return balance
	}
}

// Transaction is a single income or expense entry. It is immutable once built;
// validation happens when it is submitted to an account, not here.
type Transaction struct {
	amount      decimal.Decimal
	id          string
	category    string
	date        string
	description string
	kind        Kind
}

// NewTransaction builds a transaction of the given kind.
func NewTransaction(kind Kind, amount decimal.Decimal, category, date, description string) *Transaction {
	return &Transaction{
		id:          uuid.NewString(),
		kind:        kind,
		amount:      amount,
		category:    category,
		date:        date,
		description: description,
	}
}

// NewIncome builds an income transaction.
func NewIncome(amount decimal.Decimal, category, date, description string) *Transaction {
	return NewTransaction(KindIncome, amount, category, date, description)
}

// NewExpense builds an expense transaction.
func NewExpense(amount decimal.Decimal, category, date, description string) *Transaction {
	return NewTransaction(KindExpense, amount, category, date, description)
}

// EffectOn returns balance with this transaction applied.
func (t Transaction) EffectOn(balance decimal.Decimal) decimal.Decimal {
	return t.kind.EffectOn(balance, t.amount)
}

// ID returns the identifier assigned at construction.
func (t Transaction) ID() string { return t.id }

// Amount returns the transaction amount.
func (t Transaction) Amount() decimal.Decimal { return t.amount }

// Category returns the free-text category exactly as entered.
func (t Transaction) Category() string { return t.category }

// Date returns the DD-MM-YYYY date string.
func (t Transaction) Date() string { return t.date }

// Description returns the optional description.
func (t Transaction) Description() string { return t.description }

// Kind returns whether this is income or expense.
func (t Transaction) Kind() Kind { return t.kind }

// MonthKey returns the MM-YYYY grouping key for the transaction date.
func (t Transaction) MonthKey() string { return MonthKey(t.date) }

// ParseAmount converts user input such as "12.50" or "12,50" into a positive amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if !isPlainDecimal(s) {
		return decimal.Zero, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// isPlainDecimal reports whether s is digits with at most one decimal point.
// Exponent notation such as "1e3" is refused.
func isPlainDecimal(s string) bool {
	digits := 0
	point := false
	for i := 0; i < len(s); i++ {
		switch {
		case isDigit(s[i]):
			digits++
		case s[i] == '.' && !point:
			point = true
		default:
			return false
		}
	}
	return digits > 0
}
