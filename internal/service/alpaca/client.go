package alpaca

import (
	"context"
	"fmt"

	"OptScreen/internal/domain/models"
	"OptScreen/internal/domain/service"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

const Source = "alpaca"

// tradeSource is the part of the market data client the lookup needs.
type tradeSource interface {
	GetLatestTrade(symbol string, req marketdata.GetLatestTradeRequest) (*marketdata.Trade, error)
}

// Client resolves tickers from the latest trade on the Alpaca data API.
type Client struct {
	md   tradeSource
	feed marketdata.Feed
}

var _ service.QuoteLookup = (*Client)(nil)

// New creates an Alpaca quote lookup.
func New(apiKey, apiSecret, baseURL, feed string) *Client {
	md := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   baseURL,
		Feed:      marketdata.Feed(feed),
	})
	return &Client{md: md, feed: marketdata.Feed(feed)}
}

// Quote returns nil when Alpaca reports no trade for symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trade, err := c.md.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{Feed: c.feed})
	if err != nil {
		return nil, fmt.Errorf("alpaca latest trade %s: %w", symbol, err)
	}
	if trade == nil || trade.Price <= 0 {
		return nil, nil
	}

	return &models.Quote{
		Symbol:             symbol,
		RegularMarketPrice: trade.Price,
		Source:             Source,
	}, nil
}
