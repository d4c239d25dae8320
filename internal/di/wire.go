//go:build wireinject
// +build wireinject

package di

import (
	dservice "OptScreen/internal/domain/service"
	"OptScreen/internal/services/syncretism"
	"OptScreen/internal/usecase"
	"OptScreen/pkg/config"
	"OptScreen/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application with
// a cleanup that releases them in reverse order.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideRedisClient,
		ProvideCache,
		ProvideQueue,
		ProvideScreenerClient,
		wire.Bind(new(dservice.ScreenerAPI), new(*syncretism.Client)),
		wire.Bind(new(dservice.GreeksAPI), new(*syncretism.Client)),

		// Repositories
		ProvidePresetStore,
		ProvideResultPublisher,
		ProvideQuoteLookup,

		// Use cases
		ProvidePresetValidator,
		usecase.NewScreenerService,
		usecase.NewGreeksService,

		// Application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil, nil
}
