package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/report"
	"github.com/spf13/cobra"
)

func (a *app) runSession(cmd *cobra.Command, _ []string) error {
	patterns, _ := cmd.Flags().GetStringArray("import")

	acc := ledger.New()
	if len(patterns) > 0 {
		result, err := importFiles(cmd.Context(), acc, patterns, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Imported statements: "+result.String())); err != nil {
			return fmt.Errorf("failed to write import summary: %w", err)
		}
	}

	handler := cli.NewInterruptHandler(cmd.OutOrStdout())
	ctx := handler.HandleInterrupts(cmd.Context())
	defer handler.Stop()

	menu := cli.NewMenu(acc, report.NewGenerator(), cmd.InOrStdin(), cmd.OutOrStdout(),
		cli.WithCurrency(a.cfg.Currency))

	err := menu.Run(ctx)
	if errors.Is(err, cli.ErrInputCancelled) && handler.WasInterrupted() {
		return nil
	}
	return err
}
