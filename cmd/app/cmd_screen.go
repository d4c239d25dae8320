package main

import (
	"OptScreen/internal/render"

	"github.com/spf13/cobra"
)

// screenCmd runs one preset against the remote screener
var screenCmd = &cobra.Command{
	Use:   "screen <preset>",
	Short: "Validate a preset and run it against the screener",
	Long: `Load presets/<preset>.ini, validate every field and, when the preset is
valid, query the screener and print the reshaped report. Invalid presets print
one line per rejected field and never reach the network.`,
	Args: cobra.ExactArgs(1),
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(outFormat)
	if err != nil {
		return err
	}

	app, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := app.Screener().Screen(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return render.ScreenResult(cmd.OutOrStdout(), format, res)
}
