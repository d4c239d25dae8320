package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]AggregatedEntry
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]AggregatedEntry))
	return nil
}

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.InfoLevel)

	l.Info("screen finished", String("preset", "calls"), Int("rows", 3), Bool("ok", true))
	l.Debug("dropped")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "screen finished", line["message"])
	assert.Equal(t, "calls", line["preset"])
	assert.Equal(t, float64(3), line["rows"])
	assert.Equal(t, true, line["ok"])
}

func TestAggregatorCollapsesRepeats(t *testing.T) {
	pub := &capturePublisher{}
	agg := NewAggregator(AggregatorConfig{Interval: time.Hour, Threshold: 10, Topic: "logs", Publisher: pub})

	l := NewWriter(&bytes.Buffer{}, zerolog.InfoLevel)
	l.AttachAggregator(agg)
	for i := 0; i < 3; i++ {
		l.Error("lookup failed", Error(errors.New("timeout")))
	}
	l.Close()

	require.Len(t, pub.batches, 1)
	assert.Equal(t, "logs", pub.topic)
	require.Len(t, pub.batches[0], 1)
	assert.Equal(t, 3, pub.batches[0][0].Count)
	assert.Equal(t, "timeout", pub.batches[0][0].Fields["error"])
}

func TestAggregatorThresholdFlush(t *testing.T) {
	pub := &capturePublisher{}
	agg := NewAggregator(AggregatorConfig{Interval: time.Hour, Threshold: 2, Publisher: pub})
	defer agg.Close()

	agg.Add("error", "a", nil, "x.go:1")
	agg.Add("error", "b", nil, "x.go:2")

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.batches, 1)
	assert.Len(t, pub.batches[0], 2)
}
