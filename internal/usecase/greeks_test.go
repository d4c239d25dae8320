package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"OptScreen/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGreeksAPI struct {
	contracts []string
	points    []models.GreeksPoint
	err       error
}

func (f *fakeGreeksAPI) HistoricalGreeks(_ context.Context, contract string) ([]models.GreeksPoint, error) {
	f.contracts = append(f.contracts, contract)
	return f.points, f.err
}

func TestGreeksService_BuildsContract(t *testing.T) {
	api := &fakeGreeksAPI{points: []models.GreeksPoint{{IV: 0.3}}}
	svc := NewGreeksService(api, nil, nil)

	contract, points, err := svc.History(context.Background(), models.GreeksQuery{
		Ticker: "aapl",
		Expiry: time.Date(2022, 1, 21, 0, 0, 0, 0, time.UTC),
		Strike: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, "AAPL220121C00150000", contract)
	assert.Len(t, points, 1)
	assert.Equal(t, []string{"AAPL220121C00150000"}, api.contracts)
}

func TestGreeksService_ChainIDWins(t *testing.T) {
	api := &fakeGreeksAPI{}
	svc := NewGreeksService(api, nil, nil)

	contract, _, err := svc.History(context.Background(), models.GreeksQuery{ChainID: "SPY240119P00470500", Ticker: "AAPL", Put: true})
	require.NoError(t, err)
	assert.Equal(t, "SPY240119P00470500", contract)
}

func TestGreeksService_Errors(t *testing.T) {
	svc := NewGreeksService(&fakeGreeksAPI{}, nil, nil)
	_, _, err := svc.History(context.Background(), models.GreeksQuery{Ticker: "AAPL"})
	assert.Error(t, err)

	m := newFakeMetrics()
	svc = NewGreeksService(&fakeGreeksAPI{err: errors.New("404")}, m, nil)
	_, _, err = svc.History(context.Background(), models.GreeksQuery{ChainID: "X"})
	assert.ErrorContains(t, err, "404")
	assert.Equal(t, 1, m.errs["greeks_request"])
}
