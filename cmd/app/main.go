package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"OptScreen/internal/di"
	"OptScreen/internal/render"
	"OptScreen/pkg/config"
	"OptScreen/pkg/server"

	"github.com/spf13/cobra"
)

var (
	configPath string
	presetsDir string
	outFormat  string
)

// rootCmd is the base command for the OptScreen CLI
var rootCmd = &cobra.Command{
	Use:   "optscreen",
	Short: "Options screener driven by preset files",
	Long: `OptScreen validates INI presets and runs them against the remote options
screener, printing a fixed 17-column report.

Examples:
  optscreen presets
  optscreen validate high_iv
  optscreen screen high_iv --format csv
  optscreen greeks --ticker AAPL --expiry 2025-01-17 --strike 150
  optscreen serve`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&presetsDir, "presets-dir", "", "Directory holding preset .ini files")
	rootCmd.PersistentFlags().StringVar(&outFormat, "format", render.FormatTable, "Output format: table, csv, json")
}

// newApp loads config with the CLI overrides applied and wires the
// application. The caller must run the returned cleanup.
func newApp() (*server.App, func(), error) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config load failed: %w", err)
	}
	if presetsDir != "" {
		cfg.Screener.PresetsDir = presetsDir
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("app initialization failed: %w", err)
	}
	return app, cleanup, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
