package main

import (
	"fmt"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/report"
	"github.com/spf13/cobra"
)

func (a *app) reportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "report <files...>",
		Short: "Summarize OFX/QFX statements without starting a session",
		Long: `Load statements into a fresh, throwaway ledger and print a summary.

Examples:
  # All-time totals across a year of statements
  ledger report ~/Downloads/checking_2024_*.qfx

  # January only, with the category breakdown
  ledger report ~/Downloads/checking_2024_*.qfx --month 01-2024`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != "" && !model.ValidateMonthKey(month) {
				return common.NewUserError(
					fmt.Sprintf("--month must look like %s, got %q", model.MonthKeyLayout, month), nil)
			}

			acc := ledger.New()
			if _, err := importFiles(cmd.Context(), acc, args, cmd.ErrOrStderr()); err != nil {
				return err
			}

			gen := report.NewGenerator()
			var out string
			if month != "" {
				out = cli.FormatMonthlyReport(month, gen.Monthly(acc, month), acc.Balance(), a.cfg.Currency)
			} else {
				out = cli.FormatAllTimeReport(gen.AllTime(acc))
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to report on (MM-YYYY); all-time when empty")

	return cmd
}
