package main

import (
	"fmt"

	"OptScreen/internal/domain/models"
	"OptScreen/internal/render"
	"OptScreen/pkg/util"

	"github.com/spf13/cobra"
)

var (
	greeksChain  string
	greeksTicker string
	greeksExpiry string
	greeksStrike float64
	greeksPut    bool
)

// greeksCmd prints the historical greeks of one contract
var greeksCmd = &cobra.Command{
	Use:   "greeks",
	Short: "Show historical greeks for an option contract",
	Long: `Fetch the historical greeks of a single option contract, selected either by
its chain id or by ticker, expiry and strike.

Examples:
  optscreen greeks --chain AAPL250117C00150000
  optscreen greeks --ticker AAPL --expiry 2025-01-17 --strike 150 --put`,
	Args: cobra.NoArgs,
	RunE: runGreeks,
}

func init() {
	rootCmd.AddCommand(greeksCmd)

	greeksCmd.Flags().StringVar(&greeksChain, "chain", "", "Contract symbol, e.g. AAPL250117C00150000")
	greeksCmd.Flags().StringVar(&greeksTicker, "ticker", "", "Underlying ticker")
	greeksCmd.Flags().StringVar(&greeksExpiry, "expiry", "", "Expiration date (YYYY-MM-DD)")
	greeksCmd.Flags().Float64Var(&greeksStrike, "strike", 0, "Strike price")
	greeksCmd.Flags().BoolVar(&greeksPut, "put", false, "Put contract instead of call")

	greeksCmd.MarkFlagsMutuallyExclusive("chain", "ticker")
	greeksCmd.MarkFlagsRequiredTogether("ticker", "expiry", "strike")
}

func runGreeks(cmd *cobra.Command, _ []string) error {
	format, err := render.ParseFormat(outFormat)
	if err != nil {
		return err
	}

	q := models.GreeksQuery{ChainID: greeksChain, Ticker: greeksTicker, Strike: greeksStrike, Put: greeksPut}
	if greeksChain == "" {
		expiry, ok := util.ParseDate(greeksExpiry)
		if !ok {
			return fmt.Errorf("invalid --expiry %q (want YYYY-MM-DD)", greeksExpiry)
		}
		q.Expiry = expiry
	}

	app, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	contract, points, err := app.Greeks().History(cmd.Context(), q)
	if err != nil {
		return err
	}
	return render.Greeks(cmd.OutOrStdout(), format, contract, points)
}
