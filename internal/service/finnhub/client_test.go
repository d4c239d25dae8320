package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xhttp "OptScreen/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("symbol") {
		case "AAPL":
			_, _ = w.Write([]byte(`{"c":187.44,"h":188,"l":185.1,"o":186,"pc":186.9,"t":1704229200}`))
		case "BOOM":
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"API limit reached"}`))
		default:
			_, _ = w.Write([]byte(`{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0,"t":0}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Quote(t *testing.T) {
	srv := newServer(t)
	c := New("secret", srv.URL+"/", time.Second)

	q, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.InDelta(t, 187.44, q.RegularMarketPrice, 1e-9)
	assert.Equal(t, Source, q.Source)
}

func TestClient_QuoteUnknownSymbol(t *testing.T) {
	srv := newServer(t)
	c := New("secret", srv.URL, time.Second)

	q, err := c.Quote(context.Background(), "ZZZZ")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestClient_QuoteStatusError(t *testing.T) {
	srv := newServer(t)
	c := New("secret", srv.URL, time.Second)

	_, err := c.Quote(context.Background(), "BOOM")
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, xhttp.StatusCode(err))
}
