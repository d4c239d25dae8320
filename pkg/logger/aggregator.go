package logger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// Publisher ships aggregated log batches somewhere (Kafka in production).
type Publisher interface {
	PublishMessage(ctx context.Context, topic string, payload interface{}) error
}

type AggregatorConfig struct {
	Interval  time.Duration // flush period
	Threshold int           // distinct entries that force an early flush
	Topic     string
	Publisher Publisher
}

// AggregatedEntry counts repeats of one distinct log line.
type AggregatedEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// Aggregator collapses repeated error lines and publishes them in batches.
type Aggregator struct {
	cfg     AggregatorConfig
	mu      sync.Mutex
	entries map[string]*AggregatedEntry
	stop    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

func NewAggregator(cfg AggregatorConfig) *Aggregator {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = 100
	}
	a := &Aggregator{
		cfg:     cfg,
		entries: make(map[string]*AggregatedEntry),
		stop:    make(chan struct{}),
	}
	a.wg.Add(1)
	go a.loop()
	return a
}

func (a *Aggregator) Add(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now()
	key := entryKey(level, message, fields, caller)

	a.mu.Lock()
	if e, ok := a.entries[key]; ok {
		e.Count++
		e.LastSeen = now
	} else {
		a.entries[key] = &AggregatedEntry{
			Level:     level,
			Message:   message,
			Fields:    fields,
			Caller:    caller,
			Count:     1,
			FirstSeen: now,
			LastSeen:  now,
		}
	}
	var batch []AggregatedEntry
	if len(a.entries) >= a.cfg.Threshold {
		batch = a.drainLocked()
	}
	a.mu.Unlock()

	a.publish(batch)
}

// Close stops the flush loop after a final flush.
func (a *Aggregator) Close() {
	a.once.Do(func() {
		close(a.stop)
		a.wg.Wait()
	})
}

func (a *Aggregator) loop() {
	defer a.wg.Done()
	ticker := time.NewTicker(a.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.flush()
		case <-a.stop:
			a.flush()
			return
		}
	}
}

func (a *Aggregator) flush() {
	a.mu.Lock()
	batch := a.drainLocked()
	a.mu.Unlock()
	a.publish(batch)
}

func (a *Aggregator) drainLocked() []AggregatedEntry {
	if len(a.entries) == 0 {
		return nil
	}
	out := make([]AggregatedEntry, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, *e)
	}
	a.entries = make(map[string]*AggregatedEntry)
	return out
}

func (a *Aggregator) publish(batch []AggregatedEntry) {
	if len(batch) == 0 || a.cfg.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Nothing sensible to do with a failure here: logging it would recurse.
	_ = a.cfg.Publisher.PublishMessage(ctx, a.cfg.Topic, batch)
}

func entryKey(level, message string, fields map[string]interface{}, caller string) string {
	b, _ := json.Marshal(struct {
		L string                 `json:"l"`
		M string                 `json:"m"`
		F map[string]interface{} `json:"f"`
		C string                 `json:"c"`
	}{level, message, fields, caller})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
