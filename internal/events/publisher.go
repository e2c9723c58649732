// Package events publishes summary lifecycle notifications to Kafka.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tidefield/wrapped/internal/domain"
)

// SummaryTopic carries summary lifecycle events.
const SummaryTopic = "wrapped_summary_events"

// EventTypeSummaryComputed labels the computed notification.
const EventTypeSummaryComputed = "summary.computed"

// SummaryComputed is the payload published after a summary is persisted.
type SummaryComputed struct {
	SummaryID  string    `json:"summary_id"`
	TenantID   string    `json:"tenant_id"`
	UserID     string    `json:"user_id"`
	Kind       string    `json:"kind"`
	Year       int       `json:"year"`
	ComputedAt time.Time `json:"computed_at"`
}

// Publisher writes summary events to Kafka, creating the writer lazily.
// A Publisher with no brokers is a no-op so the service runs without a
// broker in local development and tests.
type Publisher struct {
	brokers []string
	mu      sync.Mutex
	writer  *kafka.Writer
}

// NewPublisher creates a Publisher.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{brokers: brokers}
}

// SummaryComputed implements domain.SummaryPublisher.
func (p *Publisher) SummaryComputed(ctx context.Context, summary domain.Summary) error {
	if len(p.brokers) == 0 {
		return nil
	}
	msg, err := buildSummaryMessage(summary)
	if err != nil {
		return err
	}
	return p.summaryWriter().WriteMessages(ctx, msg)
}

func buildSummaryMessage(summary domain.Summary) (kafka.Message, error) {
	body, err := json.Marshal(SummaryComputed{
		SummaryID:  summary.ID,
		TenantID:   summary.TenantID,
		UserID:     summary.UserID,
		Kind:       string(summary.Kind),
		Year:       summary.Year,
		ComputedAt: summary.CreatedAt,
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(summary.TenantID + ":" + summary.UserID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeSummaryComputed)},
			{Key: "tenant_id", Value: []byte(summary.TenantID)},
		},
	}, nil
}

func (p *Publisher) summaryWriter() *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		p.writer = &kafka.Writer{
			Addr:         kafka.TCP(p.brokers...),
			Topic:        SummaryTopic,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		}
	}
	return p.writer
}

// Close releases the writer if one was created.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}
	writer := p.writer
	p.writer = nil
	return writer.Close()
}
