package repository

import (
	"context"
	"time"

	"OptScreen/internal/domain/models"
	"OptScreen/internal/domain/repository"
	pkgkafka "OptScreen/pkg/kafka"
	"OptScreen/pkg/queue"
)

// ResultEvent is the payload emitted for every finished screen run.
type ResultEvent struct {
	RunID      string         `json:"run_id"`
	Preset     string         `json:"preset"`
	Outcome    models.Outcome `json:"outcome"`
	Rows       int            `json:"rows"`
	Message    string         `json:"message,omitempty"`
	Rejected   []string       `json:"rejected_fields,omitempty"`
	Table      *models.Table  `json:"table,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewResultEvent summarises res. The table is only attached on success.
func NewResultEvent(res *models.ScreenResult, at time.Time) ResultEvent {
	ev := ResultEvent{
		RunID:      res.RunID,
		Preset:     res.Preset,
		Outcome:    res.Outcome,
		Rows:       len(res.Table.Rows),
		Message:    res.Message,
		Rejected:   res.Errors.Fields(),
		OccurredAt: at.UTC(),
	}
	if res.Outcome == models.OutcomeSuccess {
		t := res.Table
		ev.Table = &t
	}
	return ev
}

type producer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

// KafkaPublisher implements ResultPublisher for Kafka.
type KafkaPublisher struct {
	producer producer
	topic    string
	now      func() time.Time
}

var _ repository.ResultPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, now: time.Now}
}

// PublishResult keys messages by preset so runs of one preset stay ordered.
func (p *KafkaPublisher) PublishResult(ctx context.Context, res *models.ScreenResult) error {
	return p.producer.Publish(ctx, p.topic, []byte(res.Preset), NewResultEvent(res, p.now()))
}

// ResultMessageType is the queue message type of screen results.
const ResultMessageType = "screen_result"

// QueuePublisher implements ResultPublisher on a message queue.
type QueuePublisher struct {
	queue queue.QueueService
	now   func() time.Time
}

var _ repository.ResultPublisher = (*QueuePublisher)(nil)

func NewQueuePublisher(q queue.QueueService) *QueuePublisher {
	return &QueuePublisher{queue: q, now: time.Now}
}

func (p *QueuePublisher) PublishResult(ctx context.Context, res *models.ScreenResult) error {
	return p.queue.PublishMessage(ctx, ResultMessageType, NewResultEvent(res, p.now()))
}

// NoopPublisher drops results. Used when Kafka is disabled.
type NoopPublisher struct{}

var _ repository.ResultPublisher = NoopPublisher{}

func (NoopPublisher) PublishResult(context.Context, *models.ScreenResult) error { return nil }
