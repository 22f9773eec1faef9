package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/report"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimals after the currency symbol.
func FormatMoney(currency string, amount decimal.Decimal) string {
	return currency + amount.StringFixed(2)
}

// FormatMonthlyReport renders a monthly summary followed by the current balance.
func FormatMonthlyReport(monthYear string, s report.Summary, balance decimal.Decimal, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total Income : %s\n", IncomeStyle.Render(s.TotalIncome.StringFixed(2)))
	fmt.Fprintf(&b, "Total Expense: %s\n", ExpenseStyle.Render(s.TotalExpense.StringFixed(2)))
	fmt.Fprintf(&b, "Net Savings  : %s\n", BoldStyle.Render(s.Net.StringFixed(2)))

	b.WriteString("\n" + BoldStyle.Render("Income by Category") + "\n")
	writeCategories(&b, report.SortCategories(s.ByCategoryIncome))

	b.WriteString("\n" + BoldStyle.Render("Expense by Category") + "\n")
	writeCategories(&b, report.SortCategories(s.ByCategoryExpense))

	box := RenderBox(fmt.Sprintf("Monthly Report (%s)", monthYear), strings.TrimRight(b.String(), "\n"))
	return box + "\n" + "Current Balance: " + FormatMoney(currency, balance)
}

// FormatAllTimeReport renders the all-time totals.
func FormatAllTimeReport(t report.Totals) string {
	content := strings.Join([]string{
		"Total Income : " + IncomeStyle.Render(t.Income.StringFixed(2)),
		"Total Expense: " + ExpenseStyle.Render(t.Expense.StringFixed(2)),
		"Net Savings  : " + BoldStyle.Render(t.Net.StringFixed(2)),
	}, "\n")
	return RenderBox("All-Time Summary", content)
}

func writeCategories(b *strings.Builder, categories []report.CategoryAmount) {
	if len(categories) == 0 {
		b.WriteString(SubtleStyle.Render("  None") + "\n")
		return
	}
	for _, c := range categories {
		fmt.Fprintf(b, "  %s: %s\n", c.Name, c.Amount.StringFixed(2))
	}
}
