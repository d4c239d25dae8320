package usecase

import (
	"context"
	"fmt"
	"time"

	"OptScreen/internal/domain/models"
	drepo "OptScreen/internal/domain/repository"
	dservice "OptScreen/internal/domain/service"
	xhttp "OptScreen/pkg/http"
	"OptScreen/pkg/logger"
	"OptScreen/pkg/metrics"

	"github.com/google/uuid"
)

// ErrPresetNotFound is returned by Screen when the preset file or its
// FILTER section does not exist.
var ErrPresetNotFound = drepo.ErrPresetNotFound

var metricsNop drepo.Metrics = metrics.Nop{}

// ScreenerService runs presets against the remote options screener.
type ScreenerService struct {
	presets   drepo.PresetStore
	validator *PresetValidator
	api       dservice.ScreenerAPI
	pub       drepo.ResultPublisher
	metrics   drepo.Metrics
	log       *logger.Logger
	newID     func() string
}

// NewScreenerService creates a new ScreenerService instance.
func NewScreenerService(
	presets drepo.PresetStore,
	validator *PresetValidator,
	api dservice.ScreenerAPI,
	pub drepo.ResultPublisher,
	metrics drepo.Metrics,
	l *logger.Logger,
) *ScreenerService {
	if l == nil {
		l = logger.Nop()
	}
	if metrics == nil {
		metrics = metricsNop
	}
	return &ScreenerService{
		presets:   presets,
		validator: validator,
		api:       api,
		pub:       pub,
		metrics:   metrics,
		log:       l,
		newID:     uuid.NewString,
	}
}

// Presets lists the available preset names.
func (s *ScreenerService) Presets(ctx context.Context) ([]string, error) {
	return s.presets.List(ctx)
}

// Preset loads a preset by name.
func (s *ScreenerService) Preset(ctx context.Context, name string) (*models.Preset, error) {
	p, err := s.presets.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load preset %s: %w", name, err)
	}
	return p, nil
}

// Check loads a preset and validates it without querying the screener.
func (s *ScreenerService) Check(ctx context.Context, name string) (*models.Preset, models.ValidationErrors, error) {
	p, err := s.Preset(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return p, s.Validate(ctx, p), nil
}

// Validate checks an already loaded preset and records rejections.
func (s *ScreenerService) Validate(ctx context.Context, p *models.Preset) models.ValidationErrors {
	return s.record(s.validator.Validate(ctx, p))
}

// ValidateSyntax is Validate without ticker existence lookups.
func (s *ScreenerService) ValidateSyntax(ctx context.Context, p *models.Preset) models.ValidationErrors {
	return s.record(s.validator.SyntaxOnly().Validate(ctx, p))
}

func (s *ScreenerService) record(errs models.ValidationErrors) models.ValidationErrors {
	for _, e := range errs {
		s.metrics.RecordValidationErrors(string(e.Reason), 1)
	}
	return errs
}

// Screen loads, validates and runs a preset. Rejected presets never reach
// the network. The returned error is non-nil only when the preset cannot be
// loaded; every other failure is reported through the result's Outcome.
func (s *ScreenerService) Screen(ctx context.Context, name string) (*models.ScreenResult, error) {
	start := time.Now()
	res := &models.ScreenResult{RunID: s.newID(), Preset: name, Table: models.NewTable()}
	log := s.log.With(logger.String("run_id", res.RunID), logger.String("preset", name))

	p, errs, err := s.Check(ctx, name)
	if err != nil {
		s.metrics.RecordError("preset_load")
		return nil, err
	}

	if len(errs) > 0 {
		res.Outcome = models.OutcomeRejected
		res.Errors = errs
		res.Message = errs.String()
		log.Info("preset rejected", logger.Strings("fields", errs.Fields()))
		return s.finish(ctx, log, res, start), nil
	}

	body, err := BuildRequestBody(p)
	if err != nil {
		s.metrics.RecordError("encode")
		return nil, fmt.Errorf("encode preset %s: %w", name, err)
	}

	log.Debug("querying screener", logger.Int("fields", p.Len()))
	records, err := s.api.Screen(ctx, body)
	switch {
	case err != nil:
		s.metrics.RecordError("screen_request")
		res.Outcome = models.OutcomeRequestFailed
		res.Message = requestErrorMessage(err)
		log.Warn("screener request failed", logger.Error(err))
	case len(records) == 0:
		res.Outcome = models.OutcomeEmptyResult
		res.Message = fmt.Sprintf("No options data found for preset: %s", name)
	default:
		res.Outcome = models.OutcomeSuccess
		res.Table = Reshape(records)
	}

	return s.finish(ctx, log, res, start), nil
}

func (s *ScreenerService) finish(ctx context.Context, log *logger.Logger, res *models.ScreenResult, start time.Time) *models.ScreenResult {
	s.metrics.RecordScreen(string(res.Outcome))
	s.metrics.RecordLatency("screen", time.Since(start).Seconds())

	if s.pub != nil {
		if err := s.pub.PublishResult(ctx, res); err != nil {
			s.metrics.RecordError("publish")
			log.Error("publish screen result", logger.Error(err))
		}
	}

	log.Info("screen finished",
		logger.String("outcome", string(res.Outcome)),
		logger.Int("rows", len(res.Table.Rows)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return res
}

// requestErrorMessage reports the HTTP status when there is one and the
// transport error otherwise.
func requestErrorMessage(err error) string {
	if code := xhttp.StatusCode(err); code != 0 {
		return fmt.Sprintf("Request Error: %d", code)
	}
	return fmt.Sprintf("Request Error: %v", err)
}
