package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"OptScreen/internal/domain/models"
	drepo "OptScreen/internal/domain/repository"
)

type fakeLookup struct {
	prices map[string]float64
	fail   map[string]bool
	calls  []string
}

func (f *fakeLookup) Quote(_ context.Context, symbol string) (*models.Quote, error) {
	f.calls = append(f.calls, symbol)
	if f.fail[symbol] {
		return nil, errors.New("upstream unavailable")
	}
	p, ok := f.prices[symbol]
	if !ok {
		return nil, nil
	}
	return &models.Quote{Symbol: symbol, RegularMarketPrice: p, Source: "fake"}, nil
}

type fakeScreenerAPI struct {
	records []models.OptionRecord
	err     error
	calls   int
	bodies  []string
}

func (f *fakeScreenerAPI) Screen(_ context.Context, body []byte) ([]models.OptionRecord, error) {
	f.calls++
	f.bodies = append(f.bodies, string(body))
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type memPresetStore map[string]*models.Preset

func (m memPresetStore) Load(_ context.Context, name string) (*models.Preset, error) {
	p, ok := m[name]
	if !ok {
		return nil, drepo.ErrPresetNotFound
	}
	return p, nil
}

func (m memPresetStore) List(context.Context) ([]string, error) {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

type recordingPublisher struct {
	results []*models.ScreenResult
	err     error
}

func (p *recordingPublisher) PublishResult(_ context.Context, res *models.ScreenResult) error {
	p.results = append(p.results, res)
	return p.err
}

type fakeMetrics struct {
	mu         sync.Mutex
	screens    map[string]int
	validation map[string]int
	errs       map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{screens: map[string]int{}, validation: map[string]int{}, errs: map[string]int{}}
}

func (m *fakeMetrics) RecordScreen(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screens[outcome]++
}

func (m *fakeMetrics) RecordValidationErrors(reason string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validation[reason] += n
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[kind]++
}

func (m *fakeMetrics) RecordLookup(string, string)   {}
func (m *fakeMetrics) RecordLatency(string, float64) {}

func preset(name string, kv ...string) *models.Preset {
	p := &models.Preset{Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Fields = append(p.Fields, models.PresetField{Key: kv[i], Value: kv[i+1]})
	}
	return p
}
