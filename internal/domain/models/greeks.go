package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// GreeksPoint is one sample of an option contract's historical greeks.
type GreeksPoint struct {
	Time    time.Time `json:"time"`
	IV      float64   `json:"iv"`
	Delta   float64   `json:"delta"`
	Gamma   float64   `json:"gamma"`
	Theta   float64   `json:"theta"`
	Rho     float64   `json:"rho"`
	Vega    float64   `json:"vega"`
	Premium float64   `json:"premium"`
	Price   float64   `json:"price"`
}

// GreeksQuery selects a contract either by ChainID or by its terms.
// ChainID takes precedence when set.
type GreeksQuery struct {
	ChainID string
	Ticker  string
	Expiry  time.Time
	Strike  float64
	Put     bool
}

// Contract returns the OCC symbol the query refers to.
func (q GreeksQuery) Contract() (string, error) {
	if q.ChainID != "" {
		return q.ChainID, nil
	}
	if q.Ticker == "" || q.Expiry.IsZero() || q.Strike <= 0 {
		return "", fmt.Errorf("chain id or ticker, expiry and strike are required")
	}
	return ContractSymbol(q.Ticker, q.Expiry, q.Strike, q.Put), nil
}

// ContractSymbol builds an OCC option symbol, e.g. AAPL220121C00150000.
func ContractSymbol(ticker string, expiry time.Time, strike float64, put bool) string {
	side := "C"
	if put {
		side = "P"
	}
	return fmt.Sprintf("%s%s%s%08d",
		strings.ToUpper(strings.TrimSpace(ticker)),
		expiry.Format("060102"),
		side,
		int64(math.Round(strike*1000)),
	)
}
