package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"OptScreen/internal/usecase"
	"OptScreen/pkg/config"
	xhttp "OptScreen/pkg/http"
	applogger "OptScreen/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// App holds the wired services. The resources behind them are released by
// the cleanup function returned alongside it.
type App struct {
	cfg         *config.Config
	log         *applogger.Logger
	screener    *usecase.ScreenerService
	greeks      *usecase.GreeksService
	httpHandler xhttp.Handler
	registry    *prometheus.Registry
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	screener *usecase.ScreenerService,
	greeks *usecase.GreeksService,
	httpHandler xhttp.Handler,
	registry *prometheus.Registry,
) *App {
	return &App{
		cfg:         cfg,
		log:         l,
		screener:    screener,
		greeks:      greeks,
		httpHandler: httpHandler,
		registry:    registry,
	}
}

func (a *App) Screener() *usecase.ScreenerService { return a.screener }
func (a *App) Greeks() *usecase.GreeksService     { return a.greeks }
func (a *App) Logger() *applogger.Logger          { return a.log }

// Serve starts the HTTP API and blocks until ctx is done or the process
// receives SIGINT/SIGTERM.
func (a *App) Serve(ctx context.Context) error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}

	a.httpServer = xhttp.NewServer(a.httpHandler, a.log,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS),
		xhttp.WithMetrics(metricsPath, a.registry),
	)

	a.log.Info("starting optscreen api",
		applogger.String("env", a.cfg.Environment),
		applogger.String("presets_dir", a.cfg.Screener.PresetsDir),
		applogger.String("lookup", a.cfg.Lookup.Provider),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	a.log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	return nil
}
