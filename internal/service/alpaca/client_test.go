package alpaca

import (
	"context"
	"errors"
	"testing"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrades struct {
	trades map[string]*marketdata.Trade
	err    error
}

func (f *fakeTrades) GetLatestTrade(symbol string, _ marketdata.GetLatestTradeRequest) (*marketdata.Trade, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trades[symbol], nil
}

func TestClient_Quote(t *testing.T) {
	c := &Client{md: &fakeTrades{trades: map[string]*marketdata.Trade{
		"SPY": {Price: 472.65},
	}}}

	q, err := c.Quote(context.Background(), "SPY")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "SPY", q.Symbol)
	assert.InDelta(t, 472.65, q.RegularMarketPrice, 1e-9)
	assert.Equal(t, Source, q.Source)

	q, err = c.Quote(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestClient_QuoteError(t *testing.T) {
	c := &Client{md: &fakeTrades{err: errors.New("forbidden")}}

	_, err := c.Quote(context.Background(), "SPY")
	assert.ErrorContains(t, err, "forbidden")
}

func TestClient_QuoteCancelled(t *testing.T) {
	c := &Client{md: &fakeTrades{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Quote(ctx, "SPY")
	assert.ErrorIs(t, err, context.Canceled)
}
