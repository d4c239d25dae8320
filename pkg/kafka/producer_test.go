package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishEncodes(t *testing.T) {
	w := &memWriter{}
	reg := prometheus.NewRegistry()
	p := newProducer(w, &ProducerConfig{Compression: "gzip", Registerer: reg})

	require.NoError(t, p.Publish(context.Background(), "results", []byte("k"), map[string]int{"rows": 3}))
	require.NoError(t, p.PublishMessage(context.Background(), "logs", "raw"))

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "results", w.msgs[0].Topic)
	assert.Equal(t, []byte("k"), w.msgs[0].Key)
	assert.JSONEq(t, `{"rows":3}`, string(w.msgs[0].Value))
	assert.Equal(t, "raw", string(w.msgs[1].Value))

	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.msgs.WithLabelValues("results", "gzip", "ok")))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishError(t *testing.T) {
	w := &memWriter{err: errors.New("leader not available")}
	reg := prometheus.NewRegistry()
	p := newProducer(w, &ProducerConfig{Compression: "gzip", Registerer: reg})

	err := p.Publish(context.Background(), "results", nil, "x")
	assert.ErrorContains(t, err, "leader not available")
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.errs.WithLabelValues("results")))
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}
