package di

import (
	"fmt"
	"time"

	"OptScreen/internal/domain/repository"
	dservice "OptScreen/internal/domain/service"
	"OptScreen/internal/handler/api"
	internalrepo "OptScreen/internal/repository"
	"OptScreen/internal/service/alpaca"
	"OptScreen/internal/service/finnhub"
	"OptScreen/internal/service/lookup"
	"OptScreen/internal/service/ratelimit"
	"OptScreen/internal/services/syncretism"
	"OptScreen/internal/usecase"
	"OptScreen/pkg/cache"
	"OptScreen/pkg/config"
	xhttp "OptScreen/pkg/http"
	pkgkafka "OptScreen/pkg/kafka"
	"OptScreen/pkg/logger"
	"OptScreen/pkg/metrics"
	"OptScreen/pkg/queue"
	"OptScreen/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry creates the registry every collector registers into.
func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.WriteTimeout),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, func() { _ = producer.Close() }, nil
}

// ProvideRedisClient dials Redis, or returns nil when Redis is disabled.
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := cache.NewRedisClient(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideCache returns a Redis-backed layered cache when a client exists and
// an in-process cache otherwise.
func ProvideCache(cfg *config.Config, client *redis.Client) (cache.Service, func()) {
	var c cache.Service
	if client == nil {
		c = cache.NewMemoryCache()
	} else {
		c = cache.NewLayeredCache(cache.NewRedisCacheWithClient(client, cfg.Redis.Prefix), cache.WithMemoryCleanup(time.Minute))
	}
	return c, func() { _ = c.Close() }
}

// ProvideQueue creates the Redis result queue when enabled.
func ProvideQueue(cfg *config.Config, client *redis.Client, l *logger.Logger) *queue.RedisQueue {
	if client == nil || !cfg.Redis.PublishResults {
		return nil
	}
	return queue.NewRedisPublisher(l, client,
		queue.WithKeyPrefix(cfg.Redis.QueuePrefix),
		queue.WithMaxLen(cfg.Redis.QueueMaxLen),
	)
}

// ProvideResultPublisher publishes finished runs to Kafka when a producer
// exists, falling back to the Redis queue.
func ProvideResultPublisher(cfg *config.Config, producer *pkgkafka.Producer, q *queue.RedisQueue) repository.ResultPublisher {
	switch {
	case producer != nil:
		return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
	case q != nil:
		return internalrepo.NewQueuePublisher(q)
	default:
		return internalrepo.NoopPublisher{}
	}
}

// ProvideQuoteLookup selects the market-data provider and wraps it with the
// rate limiter and cache. Provider "none" yields a nil lookup, which limits
// ticker validation to the syntax check.
func ProvideQuoteLookup(cfg *config.Config, c cache.Service, m repository.Metrics, l *logger.Logger) dservice.QuoteLookup {
	var (
		next   dservice.QuoteLookup
		source string
	)
	switch cfg.Lookup.Provider {
	case "finnhub":
		next, source = finnhub.New(cfg.Finnhub.APIKey, cfg.Finnhub.BaseURL, cfg.Finnhub.Timeout), finnhub.Source
	case "alpaca":
		next, source = alpaca.New(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL, cfg.Alpaca.Feed), alpaca.Source
	default:
		l.Info("ticker lookup disabled")
		return nil
	}

	return lookup.NewCached(next, lookup.Options{
		Source:      source,
		Cache:       c,
		Limiter:     ratelimit.New(cfg.Lookup.RatePerSecond, cfg.Lookup.Burst),
		TTL:         cfg.Lookup.CacheTTL,
		NegativeTTL: cfg.Lookup.NegativeTTL,
		Metrics:     m,
		Logger:      l,
	})
}

// ProvideScreenerClient creates the remote screener client.
func ProvideScreenerClient(cfg *config.Config) *syncretism.Client {
	return syncretism.New(cfg.Screener.BaseURL, cfg.Screener.Timeout)
}

// ProvidePresetStore reads presets from the configured directory.
func ProvidePresetStore(cfg *config.Config) repository.PresetStore {
	return internalrepo.NewINIPresetStore(cfg.Screener.PresetsDir)
}

// ProvidePresetValidator creates the preset validator.
func ProvidePresetValidator(q dservice.QuoteLookup, l *logger.Logger) *usecase.PresetValidator {
	return usecase.NewPresetValidator(q, l)
}

// ProvideHTTPHandler exposes the use cases over HTTP.
func ProvideHTTPHandler(l *logger.Logger, screener *usecase.ScreenerService, greeks *usecase.GreeksService) xhttp.Handler {
	return api.NewScreenerEchoHandler(l, screener, greeks)
}

// ProvideApp creates the application and routes aggregated error logs to
// Kafka or the Redis queue when either is available. Its cleanup flushes the
// aggregator, so it runs before the producer and Redis cleanups.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	screener *usecase.ScreenerService,
	greeks *usecase.GreeksService,
	handler xhttp.Handler,
	reg *prometheus.Registry,
	producer *pkgkafka.Producer,
	q *queue.RedisQueue,
) (*server.App, func()) {
	var sink logger.Publisher
	switch {
	case producer != nil:
		sink = producer
	case q != nil:
		sink = q
	}
	if sink != nil && cfg.Kafka.LogTopic != "" {
		l.AttachAggregator(logger.NewAggregator(logger.AggregatorConfig{
			Topic:     cfg.Kafka.LogTopic,
			Publisher: sink,
		}))
	}
	return server.New(cfg, l, screener, greeks, handler, reg), l.Close
}
