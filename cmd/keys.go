package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/prospector/internal/search"
)

var errNoSearchKeys = errors.New("no search API keys configured (set SERPER_API_KEYS)")

func newKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show remaining credit for each search API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showKeys(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func showKeys(ctx context.Context, out io.Writer) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.close(context.WithoutCancel(ctx)) }()

	a.withSearch()
	if !a.search.Available() {
		return errNoSearchKeys
	}

	renderBalances(out, a.search.Balances(ctx))
	return nil
}

// renderBalances prints one row per key and the summed credit.
func renderBalances(out io.Writer, balances []search.Balance) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Key", "Credit", "Exhausted", "Error"})
	for _, b := range balances {
		t.AppendRow(table.Row{b.KeyIndex, fmt.Sprintf("%.0f", b.Credit), b.Exhausted, b.Error})
	}
	t.AppendFooter(table.Row{"Total", fmt.Sprintf("%.0f", search.TotalCredit(balances)), "", ""})
	t.Render()
}
