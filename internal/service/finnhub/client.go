package finnhub

import (
	"context"
	"fmt"
	"strings"
	"time"

	"OptScreen/internal/domain/models"
	"OptScreen/internal/domain/service"
	xhttp "OptScreen/pkg/http"
)

const Source = "finnhub"

// Client resolves tickers through the Finnhub REST quote endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
}

var _ service.QuoteLookup = (*Client)(nil)

// New creates a Finnhub quote lookup.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// fhQuote mirrors /quote. Finnhub answers unknown symbols with an all-zero body.
type fhQuote struct {
	C  float64 `json:"c"`
	H  float64 `json:"h"`
	L  float64 `json:"l"`
	O  float64 `json:"o"`
	PC float64 `json:"pc"`
	T  int64   `json:"t"`
}

// Quote returns nil when Finnhub has no price for symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	var q fhQuote
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/quote",
		QueryParams: map[string][]string{
			"symbol": {symbol},
			"token":  {c.apiKey},
		},
	}, &q)
	if err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}

	if q.C == 0 && q.T == 0 {
		return nil, nil
	}

	return &models.Quote{
		Symbol:             symbol,
		RegularMarketPrice: q.C,
		Source:             Source,
	}, nil
}
