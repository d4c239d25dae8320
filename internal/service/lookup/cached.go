package lookup

import (
	"context"
	"errors"
	"strings"
	"time"

	"OptScreen/internal/domain/models"
	"OptScreen/internal/domain/repository"
	"OptScreen/internal/domain/service"
	"OptScreen/internal/service/ratelimit"
	"OptScreen/pkg/cache"
	"OptScreen/pkg/logger"
)

// Lookup result labels.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultError    = "error"
	ResultCacheHit = "cache_hit"
)

// entry is what gets cached. Found=false records a confirmed miss.
type entry struct {
	Found bool          `json:"found"`
	Quote *models.Quote `json:"quote,omitempty"`
}

// Options configures a Cached lookup. Zero values disable the feature.
type Options struct {
	Source      string
	Cache       cache.Service
	Limiter     *ratelimit.Limiter
	TTL         time.Duration
	NegativeTTL time.Duration
	Metrics     repository.Metrics
	Logger      *logger.Logger
}

// Cached decorates a QuoteLookup with a rate limit and a result cache.
type Cached struct {
	next service.QuoteLookup
	opts Options
}

var _ service.QuoteLookup = (*Cached)(nil)

// NewCached wraps next.
func NewCached(next service.QuoteLookup, opts Options) *Cached {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Source == "" {
		opts.Source = "quote"
	}
	return &Cached{next: next, opts: opts}
}

func (c *Cached) key(symbol string) string {
	return cache.GenerateKey("quote:"+c.opts.Source, strings.ToUpper(symbol))
}

// Quote serves from cache when possible and otherwise waits for a rate
// limit token before asking the wrapped lookup. Errors are never cached.
func (c *Cached) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	if c.opts.Cache != nil {
		var e entry
		err := c.opts.Cache.Get(ctx, c.key(symbol), &e)
		switch {
		case err == nil:
			c.record(ResultCacheHit)
			if !e.Found {
				return nil, nil
			}
			return e.Quote, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			c.opts.Logger.Warn("quote cache read failed", logger.String("symbol", symbol), logger.Error(err))
		}
	}

	if c.opts.Limiter != nil {
		if err := c.opts.Limiter.Wait(ctx, c.opts.Source); err != nil {
			c.record(ResultError)
			return nil, err
		}
	}

	start := time.Now()
	q, err := c.next.Quote(ctx, symbol)
	if c.opts.Metrics != nil {
		c.opts.Metrics.RecordLatency("quote_lookup", time.Since(start).Seconds())
	}
	if err != nil {
		c.record(ResultError)
		return nil, err
	}

	if q == nil {
		c.record(ResultNotFound)
		c.store(ctx, symbol, entry{}, c.opts.NegativeTTL)
		return nil, nil
	}

	c.record(ResultFound)
	c.store(ctx, symbol, entry{Found: true, Quote: q}, c.opts.TTL)
	return q, nil
}

func (c *Cached) store(ctx context.Context, symbol string, e entry, ttl time.Duration) {
	if c.opts.Cache == nil || ttl <= 0 {
		return
	}
	if err := c.opts.Cache.Set(ctx, c.key(symbol), e, ttl); err != nil {
		c.opts.Logger.Warn("quote cache write failed", logger.String("symbol", symbol), logger.Error(err))
	}
}

func (c *Cached) record(result string) {
	if c.opts.Metrics != nil {
		c.opts.Metrics.RecordLookup(c.opts.Source, result)
	}
}
