// Package notify announces published indexes on Kafka so downstream caches
// and dashboards can react to a rebuild.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/resilience"
)

// IndexCompleteEvent is the payload written to the index-complete topic.
type IndexCompleteEvent struct {
	Generation uint64    `json:"generation"`
	Documents  int       `json:"documents"`
	Keywords   int       `json:"keywords"`
	NoiseWords int       `json:"noise_words"`
	DurationMs int64     `json:"duration_ms"`
	BuiltAt    time.Time `json:"built_at"`
}

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// KafkaNotifier publishes one IndexCompleteEvent per published index.
type KafkaNotifier struct {
	publisher Publisher
	retry     resilience.RetryConfig
}

func NewKafkaNotifier(p Publisher, retry resilience.RetryConfig) *KafkaNotifier {
	return &KafkaNotifier{publisher: p, retry: retry}
}

func (n *KafkaNotifier) IndexPublished(ctx context.Context, stats indexer.BuildStats) error {
	event := kafka.Event{
		Key: stats.BuiltAt.Format(time.RFC3339Nano),
		Value: IndexCompleteEvent{
			Generation: stats.Generation,
			Documents:  stats.Documents,
			Keywords:   stats.Keywords,
			NoiseWords: stats.NoiseWords,
			DurationMs: stats.Duration.Milliseconds(),
			BuiltAt:    stats.BuiltAt,
		},
	}
	err := resilience.Retry(ctx, "publish-index-complete", n.retry, func() error {
		return n.publisher.Publish(ctx, event)
	})
	if err != nil {
		return fmt.Errorf("announcing index: %w", err)
	}
	return nil
}

// Func adapts a plain function to indexer.Notifier.
type Func func(ctx context.Context, stats indexer.BuildStats) error

func (f Func) IndexPublished(ctx context.Context, stats indexer.BuildStats) error {
	return f(ctx, stats)
}
