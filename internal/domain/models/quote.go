package models

// Quote is the subset of market data needed to confirm a ticker exists.
type Quote struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regular_market_price"`
	Source             string  `json:"source"`
}
