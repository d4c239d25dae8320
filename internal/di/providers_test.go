package di

import (
	"context"
	"testing"
	"time"

	"OptScreen/pkg/config"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Log.Level = "error"
	cfg.Screener.PresetsDir = t.TempDir()
	return cfg
}

func TestInitializeApp_Defaults(t *testing.T) {
	app, cleanup, err := InitializeApp(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	defer cleanup()

	require.NotNil(t, app.Screener())
	require.NotNil(t, app.Greeks())

	names, err := app.Screener().Presets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestInitializeApp_FailureReturnsNoCleanup(t *testing.T) {
	cfg := testConfig(t)
	cfg.Kafka.Enabled = true
	cfg.Kafka.Brokers = nil

	app, cleanup, err := InitializeApp(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka producer")
	assert.Nil(t, app)
	assert.Nil(t, cleanup)
}

func TestProvideKafkaProducer_DisabledHasNoopCleanup(t *testing.T) {
	producer, cleanup, err := ProvideKafkaProducer(testConfig(t), ProvideRegistry())
	require.NoError(t, err)
	assert.Nil(t, producer)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestProvideCache_CleanupLeavesRedisClientOpen(t *testing.T) {
	cfg := testConfig(t)
	db, mock := redismock.NewClientMock()

	c, cleanup := ProvideCache(cfg, db)
	mock.ExpectSet("optscreen:k", []byte("v"), time.Minute).SetVal("OK")
	require.NoError(t, c.Set(context.Background(), "k", "v", time.Minute))

	cleanup()

	// The Redis client is released by its own provider cleanup, which runs
	// after the cache's.
	mock.ExpectPing().SetVal("PONG")
	require.NoError(t, db.Ping(context.Background()).Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvideCache_MemoryWithoutRedis(t *testing.T) {
	c, cleanup := ProvideCache(testConfig(t), nil)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	var got string
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)
}
