package usecase

import (
	"context"
	"fmt"
	"time"

	"OptScreen/internal/domain/models"
	drepo "OptScreen/internal/domain/repository"
	dservice "OptScreen/internal/domain/service"
	"OptScreen/pkg/logger"
)

// GreeksService fetches the historical greeks of one option contract.
type GreeksService struct {
	api     dservice.GreeksAPI
	metrics drepo.Metrics
	log     *logger.Logger
}

func NewGreeksService(api dservice.GreeksAPI, metrics drepo.Metrics, l *logger.Logger) *GreeksService {
	if l == nil {
		l = logger.Nop()
	}
	if metrics == nil {
		metrics = metricsNop
	}
	return &GreeksService{api: api, metrics: metrics, log: l}
}

// History resolves the query to a contract symbol and returns its greeks.
func (s *GreeksService) History(ctx context.Context, q models.GreeksQuery) (string, []models.GreeksPoint, error) {
	contract, err := q.Contract()
	if err != nil {
		return "", nil, err
	}

	start := time.Now()
	points, err := s.api.HistoricalGreeks(ctx, contract)
	s.metrics.RecordLatency("greeks", time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordError("greeks_request")
		return contract, nil, fmt.Errorf("historical greeks %s: %w", contract, err)
	}

	s.log.Debug("greeks fetched", logger.String("contract", contract), logger.Int("points", len(points)), logger.Bool("put", q.Put))
	return contract, points, nil
}
