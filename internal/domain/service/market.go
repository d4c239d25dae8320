package service

import (
	"context"

	"OptScreen/internal/domain/models"
)

// QuoteLookup resolves a ticker to a market quote. A nil quote with a nil
// error means the symbol has no regular-market price.
type QuoteLookup interface {
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
}

// ScreenerAPI runs a serialized preset against the remote options screener.
type ScreenerAPI interface {
	Screen(ctx context.Context, body []byte) ([]models.OptionRecord, error)
}

// GreeksAPI fetches the historical greeks of a single contract.
type GreeksAPI interface {
	HistoricalGreeks(ctx context.Context, contract string) ([]models.GreeksPoint, error)
}
