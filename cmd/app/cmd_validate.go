package main

import (
	"fmt"

	"OptScreen/internal/render"

	"github.com/spf13/cobra"
)

var validateOffline bool

// validateCmd checks a preset without running it
var validateCmd = &cobra.Command{
	Use:   "validate <preset>",
	Short: "Check a preset without querying the screener",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

// presetsCmd lists the presets available in the presets directory
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(presetsCmd)

	validateCmd.Flags().BoolVar(&validateOffline, "offline", false, "Skip ticker existence lookups")
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(outFormat)
	if err != nil {
		return err
	}

	app, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	p, err := app.Screener().Preset(ctx, args[0])
	if err != nil {
		return err
	}
	validate := app.Screener().Validate
	if validateOffline {
		validate = app.Screener().ValidateSyntax
	}
	errs := validate(ctx, p)

	if err := render.ValidationErrors(cmd.OutOrStdout(), format, args[0], errs); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("preset %s has %d invalid field(s)", args[0], len(errs))
	}
	return nil
}

func runPresets(cmd *cobra.Command, _ []string) error {
	format, err := render.ParseFormat(outFormat)
	if err != nil {
		return err
	}

	app, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	names, err := app.Screener().Presets(cmd.Context())
	if err != nil {
		return err
	}
	return render.Presets(cmd.OutOrStdout(), format, names)
}
