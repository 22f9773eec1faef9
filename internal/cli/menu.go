package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/report"
	"github.com/shopspring/decimal"
)

// Menu choices.
const (
	ChoiceAddIncome     = "1"
	ChoiceAddExpense    = "2"
	ChoiceMonthlyReport = "3"
	ChoiceAllTime       = "4"
	ChoiceExit          = "5"
)

// DefaultCurrency is shown before amounts unless WithCurrency overrides it.
const DefaultCurrency = "Rs."

// Menu runs the interactive session against one account.
type Menu struct {
	writer    io.Writer
	account   *ledger.Account
	generator *report.Generator
	input     *InputReader
	currency  string
}

// MenuOption configures a Menu.
type MenuOption func(*Menu)

// WithCurrency sets the symbol printed before amounts.
func WithCurrency(symbol string) MenuOption {
	return func(m *Menu) {
		m.currency = symbol
	}
}

// NewMenu creates a menu reading from reader and writing to writer,
// defaulting to stdin and stdout.
func NewMenu(account *ledger.Account, generator *report.Generator, reader io.Reader, writer io.Writer, opts ...MenuOption) *Menu {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	m := &Menu{
		account:   account,
		generator: generator,
		input:     NewInputReader(reader),
		writer:    writer,
		currency:  DefaultCurrency,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the menu until the user exits or input ends. It returns
// ErrInputCancelled when ctx is canceled mid-session.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := m.showMenu(); err != nil {
			return err
		}

		choice, err := m.input.ReadLine(ctx)
		if err != nil {
			return m.finish(err)
		}

		switch choice {
		case ChoiceAddIncome:
			err = m.addTransaction(ctx, model.KindIncome)
		case ChoiceAddExpense:
			err = m.addTransaction(ctx, model.KindExpense)
		case ChoiceMonthlyReport:
			err = m.monthlyReport(ctx)
		case ChoiceAllTime:
			err = m.println(FormatAllTimeReport(m.generator.AllTime(m.account)))
		case ChoiceExit:
			return m.goodbye()
		default:
			err = m.println(FormatError("Invalid option. Try again."))
		}

		if err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) showMenu() error {
	content := strings.Join([]string{
		"Current Balance: " + FormatMoney(m.currency, m.account.Balance()),
		"",
		ChoiceAddIncome + ". Add Income",
		ChoiceAddExpense + ". Add Expense",
		ChoiceMonthlyReport + ". View Monthly Report",
		ChoiceAllTime + ". View All-time Summary",
		ChoiceExit + ". Exit",
	}, "\n")

	if err := m.println("\n" + RenderBox("Personal Finance Tracker", content)); err != nil {
		return err
	}
	return m.prompt("Choose an option")
}

func (m *Menu) addTransaction(ctx context.Context, kind model.Kind) error {
	if err := m.println(SubtleStyle.Render(fmt.Sprintf("Adding %s...", kind))); err != nil {
		return err
	}

	amount, err := m.readAmount(ctx)
	if err != nil {
		return err
	}

	category, err := m.ask(ctx, "Category")
	if err != nil {
		return err
	}

	date, err := m.ask(ctx, "Date ("+model.DateLayout+")")
	if err != nil {
		return err
	}
	if !model.ValidateFormat(date) {
		return m.println(FormatError("Invalid date format! Use " + model.DateLayout + "."))
	}

	description, err := m.ask(ctx, "Description (optional)")
	if err != nil {
		return err
	}

	if err := m.account.Add(model.NewTransaction(kind, amount, category, date, description)); err != nil {
		return m.println(FormatError(rejectionMessage(err)))
	}

	return m.println(FormatSuccess("Transaction added successfully!") + "\n" +
		"Current Balance: " + FormatMoney(m.currency, m.account.Balance()))
}

// readAmount prompts until the input parses as a positive amount.
func (m *Menu) readAmount(ctx context.Context) (decimal.Decimal, error) {
	line, err := m.ask(ctx, "Amount")
	for err == nil {
		amount, parseErr := model.ParseAmount(line)
		if parseErr == nil {
			return amount, nil
		}
		line, err = m.ask(ctx, "Enter a valid positive amount")
	}
	return decimal.Zero, err
}

func (m *Menu) monthlyReport(ctx context.Context) error {
	monthYear, err := m.ask(ctx, "Enter month and year ("+model.MonthKeyLayout+")")
	if err != nil {
		return err
	}
	if !model.ValidateMonthKey(monthYear) {
		if err := m.println(FormatWarning("Months are written " + model.MonthKeyLayout + ", e.g. 03-2024.")); err != nil {
			return err
		}
	}

	summary := m.generator.Monthly(m.account, monthYear)
	return m.println(FormatMonthlyReport(monthYear, summary, m.account.Balance(), m.currency))
}

func (m *Menu) ask(ctx context.Context, label string) (string, error) {
	if err := m.prompt(label); err != nil {
		return "", err
	}
	return m.input.ReadLine(ctx)
}

func (m *Menu) prompt(label string) error {
	if _, err := fmt.Fprint(m.writer, FormatPrompt(label)); err != nil {
		return fmt.Errorf("failed to write prompt: %w", err)
	}
	return nil
}

func (m *Menu) println(s string) error {
	if _, err := fmt.Fprintln(m.writer, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// finish turns end of input into a normal exit.
func (m *Menu) finish(err error) error {
	if errors.Is(err, io.EOF) {
		return m.goodbye()
	}
	return err
}

func (m *Menu) goodbye() error {
	return m.println("\n" + SuccessStyle.Render("Goodbye!"))
}

// rejectionMessage words an Account.Add error for the user.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "Error: amount must be positive."
	case errors.Is(err, ledger.ErrInvalidDate):
		return "Error: invalid date format."
	case errors.Is(err, ledger.ErrNilTransaction):
		return "Error: no transaction to add."
	default:
		return "Error: " + err.Error()
	}
}
