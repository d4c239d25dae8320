package syncretism

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"OptScreen/internal/domain/models"
	"OptScreen/internal/domain/service"
	xhttp "OptScreen/pkg/http"
)

const (
	opsPath        = "/ops"
	historicalPath = "/ops/historical/"
)

// Client talks to the ops.syncretism.io screening API.
type Client struct {
	baseURL string
	client  *xhttp.Client
}

var (
	_ service.ScreenerAPI = (*Client)(nil)
	_ service.GreeksAPI   = (*Client)(nil)
)

// New builds a client rooted at baseURL, e.g. https://api.syncretism.io.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// Screen sends body as the JSON payload of a GET to /ops. The service
// expects the filter object in the body of a GET, not a POST.
func (c *Client) Screen(ctx context.Context, body []byte) ([]models.OptionRecord, error) {
	var rows []models.OptionRecord
	err := c.getJSON(ctx, opsPath, body, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type historicalEntry struct {
	Timestamp          int64   `json:"timestamp"`
	ImpliedVolatility  float64 `json:"impliedVolatility"`
	Delta              float64 `json:"delta"`
	Gamma              float64 `json:"gamma"`
	Theta              float64 `json:"theta"`
	Rho                float64 `json:"rho"`
	Vega               float64 `json:"vega"`
	Premium            float64 `json:"premium"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

// HistoricalGreeks returns the recorded greeks of an OCC contract, oldest first
// as the service orders them.
func (c *Client) HistoricalGreeks(ctx context.Context, contract string) ([]models.GreeksPoint, error) {
	if contract == "" {
		return nil, fmt.Errorf("empty contract symbol")
	}

	var history []historicalEntry
	if err := c.getJSON(ctx, historicalPath+url.PathEscape(contract), nil, &history); err != nil {
		return nil, err
	}

	points := make([]models.GreeksPoint, 0, len(history))
	for _, h := range history {
		points = append(points, models.GreeksPoint{
			Time:    time.Unix(h.Timestamp, 0).UTC(),
			IV:      h.ImpliedVolatility,
			Delta:   h.Delta,
			Gamma:   h.Gamma,
			Theta:   h.Theta,
			Rho:     h.Rho,
			Vega:    h.Vega,
			Premium: h.Premium,
			Price:   h.RegularMarketPrice,
		})
	}
	return points, nil
}

func (c *Client) getJSON(ctx context.Context, path string, body []byte, dest interface{}) error {
	opts := &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + path,
	}
	if body != nil {
		opts.Headers = map[string]string{"Content-Type": "application/json"}
		opts.Body = body
	}
	if err := c.client.SendAndParse(ctx, opts, dest); err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}
