package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"OptScreen/internal/domain/models"
	"OptScreen/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLookup struct {
	calls  map[string]int
	quotes map[string]*models.Quote
	err    error
}

func (f *countingLookup) Quote(_ context.Context, symbol string) (*models.Quote, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[symbol]++
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes[symbol], nil
}

type lookupMetrics struct {
	mu      sync.Mutex
	results map[string]int
}

func (m *lookupMetrics) RecordScreen(string)                {}
func (m *lookupMetrics) RecordValidationErrors(string, int) {}
func (m *lookupMetrics) RecordError(string)                 {}
func (m *lookupMetrics) RecordLatency(string, float64)      {}
func (m *lookupMetrics) RecordLookup(_ string, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.results == nil {
		m.results = map[string]int{}
	}
	m.results[result]++
}

func TestCached_CachesFoundAndMissing(t *testing.T) {
	next := &countingLookup{quotes: map[string]*models.Quote{
		"AAPL": {Symbol: "AAPL", RegularMarketPrice: 190, Source: "fake"},
	}}
	mc := cache.NewMemoryCache()
	defer mc.Close()
	m := &lookupMetrics{}

	c := NewCached(next, Options{
		Source:      "fake",
		Cache:       mc,
		TTL:         time.Minute,
		NegativeTTL: time.Minute,
		Metrics:     m,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		q, err := c.Quote(ctx, "AAPL")
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, 190.0, q.RegularMarketPrice)

		q, err = c.Quote(ctx, "ZZZZ")
		require.NoError(t, err)
		assert.Nil(t, q)
	}

	assert.Equal(t, 1, next.calls["AAPL"])
	assert.Equal(t, 1, next.calls["ZZZZ"])
	assert.Equal(t, 1, m.results[ResultFound])
	assert.Equal(t, 1, m.results[ResultNotFound])
	assert.Equal(t, 4, m.results[ResultCacheHit])
}

func TestCached_NoNegativeCaching(t *testing.T) {
	next := &countingLookup{}
	mc := cache.NewMemoryCache()
	defer mc.Close()

	c := NewCached(next, Options{Source: "fake", Cache: mc, TTL: time.Minute})
	for i := 0; i < 2; i++ {
		q, err := c.Quote(context.Background(), "ZZZZ")
		require.NoError(t, err)
		assert.Nil(t, q)
	}
	assert.Equal(t, 2, next.calls["ZZZZ"])
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	next := &countingLookup{err: errors.New("upstream down")}
	mc := cache.NewMemoryCache()
	defer mc.Close()
	m := &lookupMetrics{}

	c := NewCached(next, Options{Source: "fake", Cache: mc, TTL: time.Minute, NegativeTTL: time.Minute, Metrics: m})
	for i := 0; i < 2; i++ {
		_, err := c.Quote(context.Background(), "AAPL")
		assert.ErrorContains(t, err, "upstream down")
	}
	assert.Equal(t, 2, next.calls["AAPL"])
	assert.Equal(t, 2, m.results[ResultError])
}

func TestCached_WithoutCache(t *testing.T) {
	next := &countingLookup{quotes: map[string]*models.Quote{"SPY": {Symbol: "SPY", RegularMarketPrice: 470}}}
	c := NewCached(next, Options{})

	q, err := c.Quote(context.Background(), "SPY")
	require.NoError(t, err)
	assert.Equal(t, "SPY", q.Symbol)
}
