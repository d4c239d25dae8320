package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	Preset  string `json:"preset"`
	Outcome string `json:"outcome"`
}

func newTestQueue(t *testing.T, opts ...RedisQueueOption) (*RedisQueue, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	q := NewRedisPublisher(nil, db, opts...)
	q.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	q.newID = func() string { return "run-1" }
	return q, mock
}

func envelope(t *testing.T, q *RedisQueue, msgType string, payload interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	b, err := json.Marshal(Message{ID: "run-1", Type: msgType, Payload: raw, Timestamp: q.now().UTC()})
	require.NoError(t, err)
	return b
}

func TestRedisQueue_PublishMessage(t *testing.T) {
	q, mock := newTestQueue(t, WithKeyPrefix("test:queue"), WithMaxLen(50))
	payload := result{Preset: "high_iv", Outcome: "success"}

	data := envelope(t, q, "screen_result", payload)
	mock.ExpectLPush("test:queue:screen_result", data).SetVal(1)
	mock.ExpectLTrim("test:queue:screen_result", 0, 49).SetVal("OK")

	require.NoError(t, q.PublishMessage(context.Background(), "screen_result", payload))
	require.NoError(t, mock.ExpectationsWereMet())

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	got, err := ParsePayload[result](msg)
	require.NoError(t, err)
	assert.Equal(t, payload, *got)
}

func TestRedisQueue_Unbounded(t *testing.T) {
	q, mock := newTestQueue(t, WithMaxLen(0))

	mock.ExpectLPush("optscreen:queue:logs", envelope(t, q, "logs", "x")).SetVal(3)

	require.NoError(t, q.Enqueue(context.Background(), "logs", "x"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisQueue_PushError(t *testing.T) {
	q, mock := newTestQueue(t)

	mock.ExpectLPush("optscreen:queue:logs", envelope(t, q, "logs", 1)).SetErr(errors.New("READONLY"))

	err := q.Enqueue(context.Background(), "logs", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lpush")
}

func TestParsePayload_Empty(t *testing.T) {
	_, err := ParsePayload[result](Message{Type: "screen_result"})
	assert.Error(t, err)
}
