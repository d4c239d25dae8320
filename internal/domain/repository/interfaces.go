package repository

import (
	"context"

	"OptScreen/internal/domain/models"
)

// PresetStore loads presets by name.
type PresetStore interface {
	Load(ctx context.Context, name string) (*models.Preset, error)
	List(ctx context.Context) ([]string, error)
}

// ResultPublisher emits finished screen runs to downstream consumers.
type ResultPublisher interface {
	PublishResult(ctx context.Context, res *models.ScreenResult) error
}

type Metrics interface {
	RecordScreen(outcome string)
	RecordValidationErrors(reason string, n int)
	RecordLookup(source, result string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
