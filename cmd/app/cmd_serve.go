package main

import (
	"github.com/spf13/cobra"
)

// serveCmd exposes the screener over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve presets, validation, screening and historical greeks over HTTP along
with /metrics and /healthz. Blocks until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	return app.Serve(cmd.Context())
}
