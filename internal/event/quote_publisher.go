package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// QuoteEventsQueue receives one event per saved quote so downstream systems
// (agency management, document generation) can react without polling.
const QuoteEventsQueue = "quote_events"

// QuoteCreatedEvent is the wire shape of a quote lifecycle event.
type QuoteCreatedEvent struct {
	EventType     string `json:"event_type"`
	QuoteID       string `json:"quote_id"`
	PropertyName  string `json:"property_name,omitempty"`
	State         string `json:"state,omitempty"`
	TotalPremium  int64  `json:"total_premium"`
	RiskGrade     string `json:"risk_grade"`
	ConfigVersion string `json:"config_version"`
	CreatedAt     string `json:"created_at"`
}

// QuotePublisher publishes quote lifecycle events to RabbitMQ
type QuotePublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

// NewQuotePublisher creates a new quote event publisher
func NewQuotePublisher(conn *RabbitMQConnection) *QuotePublisher {
	return &QuotePublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

// PublishQuoteCreated publishes one event to the quote_events queue. The
// queue itself is declared at connect time.
func (p *QuotePublisher) PublishQuoteCreated(ctx context.Context, event QuoteCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal quote event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",               // exchange
		QuoteEventsQueue, // routing key (queue name)
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish quote event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Quote event published",
		"queue", QuoteEventsQueue,
		"quote_id", event.QuoteID,
		"total_premium", event.TotalPremium,
	)

	return nil
}
