// Package report aggregates an account's history into monthly and all-time summaries.
package report

import (
	"sort"

	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/shopspring/decimal"
)

// TransactionSource is the read side of an account.
type TransactionSource interface {
	Transactions() []model.Transaction
	TransactionsForMonth(monthYear string) []model.Transaction
}

// Summary is the monthly view: totals, net, and per-category sums kept
// separately for income and expense.
type Summary struct {
	ByCategoryIncome  map[string]decimal.Decimal
	ByCategoryExpense map[string]decimal.Decimal
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Net               decimal.Decimal
}

// Totals is the all-time view. It has no category breakdown.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// CategoryAmount is one line of a category breakdown.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Generator builds summaries. It keeps no state; every call rescans the source.
type Generator struct{}

// NewGenerator returns a report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Monthly summarizes the transactions whose month key equals monthYear.
func (g *Generator) Monthly(src TransactionSource, monthYear string) Summary {
	s := Summary{
		ByCategoryIncome:  make(map[string]decimal.Decimal),
		ByCategoryExpense: make(map[string]decimal.Decimal),
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
	}

	for _, tx := range src.TransactionsForMonth(monthYear) {
		switch tx.Kind() {
		case model.KindIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount())
			s.ByCategoryIncome[tx.Category()] = s.ByCategoryIncome[tx.Category()].Add(tx.Amount())
		case model.KindExpense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount())
			s.ByCategoryExpense[tx.Category()] = s.ByCategoryExpense[tx.Category()].Add(tx.Amount())
		}
	}

	s.Net = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// AllTime totals every transaction in the source.
func (g *Generator) AllTime(src TransactionSource) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}

	for _, tx := range src.Transactions() {
		switch tx.Kind() {
		case model.KindIncome:
			t.Income = t.Income.Add(tx.Amount())
		case model.KindExpense:
			t.Expense = t.Expense.Add(tx.Amount())
		}
	}

	t.Net = t.Income.Sub(t.Expense)
	return t
}

// SortCategories flattens a category map, largest amount first and ties by name.
func SortCategories(byCategory map[string]decimal.Decimal) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(byCategory))
	for name, amount := range byCategory {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}
