// Package events publishes domain events after their transaction commits.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yukikurage/expense-tracking-api/internal/config"
	"github.com/yukikurage/expense-tracking-api/internal/logging"
)

// Event names
const (
	UserRegistered       = "user.registered"
	ProjectCreated       = "project.created"
	ProjectMemberAdded   = "project.member_added"
	ProjectMemberRemoved = "project.member_removed"
)

// Event is the JSON envelope written to every backend.
type Event struct {
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher delivers events to a backend.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// New returns the publisher selected by cfg.Backend.
func New(cfg config.EventsConfig, logger *slog.Logger) (Publisher, error) {
	switch cfg.Backend {
	case "", "log":
		return NewLogPublisher(logger), nil
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case "amqp":
		return NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

// Emit publishes name with payload. Failures are logged and swallowed so a
// committed write is never reported as failed.
func Emit(ctx context.Context, p Publisher, name string, payload any) {
	event := Event{Name: name, OccurredAt: time.Now().UTC(), Payload: payload}
	if err := p.Publish(ctx, event); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "failed to publish event",
			slog.String(logging.FieldEvent, name),
			slog.Any(logging.FieldError, err),
		)
	}
}

// LogPublisher writes events to the structured log.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With(slog.String(logging.FieldComponent, "events"))}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "domain event",
		slog.String(logging.FieldEvent, event.Name),
		slog.Any("payload", event.Payload),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
