package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"OptScreen/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMessage struct {
	topic string
	key   []byte
	value interface{}
}

type fakeProducer struct {
	sent []recordedMessage
}

func (f *fakeProducer) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	f.sent = append(f.sent, recordedMessage{topic: topic, key: key, value: value})
	return nil
}

func TestKafkaPublisher_PublishResult(t *testing.T) {
	fp := &fakeProducer{}
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	p := &KafkaPublisher{producer: fp, topic: "optscreen.results", now: func() time.Time { return at }}

	table := models.NewTable()
	table.Rows = []models.ScreenerRow{{ContractSymbol: "AAPL240119C00190000", Symbol: "AAPL"}}
	res := &models.ScreenResult{RunID: "r-1", Preset: "high_iv", Outcome: models.OutcomeSuccess, Table: table}

	require.NoError(t, p.PublishResult(context.Background(), res))
	require.Len(t, fp.sent, 1)
	msg := fp.sent[0]
	assert.Equal(t, "optscreen.results", msg.topic)
	assert.Equal(t, []byte("high_iv"), msg.key)

	ev, ok := msg.value.(ResultEvent)
	require.True(t, ok)
	assert.Equal(t, 1, ev.Rows)
	assert.Equal(t, at, ev.OccurredAt)
	require.NotNil(t, ev.Table)
}

func TestNewResultEvent_Rejected(t *testing.T) {
	res := &models.ScreenResult{
		RunID:   "r-2",
		Preset:  "bad",
		Outcome: models.OutcomeRejected,
		Table:   models.NewTable(),
		Message: "min-iv : .5, needs to be formatted with leading 0\n",
		Errors: models.ValidationErrors{
			{Field: "min-iv", Value: ".5", Reason: models.ReasonLeadingZero},
			{Field: "tickers", Value: "$$", Reason: models.ReasonMalformedTicker},
		},
	}

	ev := NewResultEvent(res, time.Unix(0, 0))
	assert.Nil(t, ev.Table)
	assert.Equal(t, []string{"min-iv", "tickers"}, ev.Rejected)

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"table"`)
	assert.Contains(t, string(b), `"outcome":"rejected"`)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishResult(context.Background(), &models.ScreenResult{}))
}

type fakeQueue struct {
	types    []string
	payloads []interface{}
}

func (f *fakeQueue) PublishMessage(_ context.Context, msgType string, payload interface{}) error {
	f.types = append(f.types, msgType)
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestQueuePublisher_PublishResult(t *testing.T) {
	fq := &fakeQueue{}
	p := NewQueuePublisher(fq)
	p.now = func() time.Time { return time.Unix(100, 0).UTC() }

	res := &models.ScreenResult{RunID: "r-3", Preset: "calls", Outcome: models.OutcomeEmptyResult, Table: models.NewTable()}
	require.NoError(t, p.PublishResult(context.Background(), res))

	require.Equal(t, []string{ResultMessageType}, fq.types)
	ev, ok := fq.payloads[0].(ResultEvent)
	require.True(t, ok)
	assert.Equal(t, "calls", ev.Preset)
	assert.Equal(t, models.OutcomeEmptyResult, ev.Outcome)
}
