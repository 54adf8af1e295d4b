package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
)

var ErrNotConfirmed = errors.New("message was not confirmed by the broker")

type Message struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type BreakerSettings struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

type RabbitMQPublisher struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	exchange   string
	routingKey string
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	mu         sync.Mutex
}

func NewMQPublisher(
	amqpConnection *amqp.Connection,
	amqpChannel *amqp.Channel,
	exchange string,
	routingKey string,
	breakerSettings BreakerSettings,
	logger *slog.Logger,
) (*RabbitMQPublisher, error) {
	if err := amqpChannel.Confirm(false); err != nil {
		_ = amqpChannel.Close()
		_ = amqpConnection.Close()
		return nil, fmt.Errorf("failed to enable publish confirms: %w", err)
	}

	if exchange != "" {
		if err := amqpChannel.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			_ = amqpChannel.Close()
			_ = amqpConnection.Close()
			return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
		}
	}

	return &RabbitMQPublisher{
		conn:       amqpConnection,
		ch:         amqpChannel,
		exchange:   exchange,
		routingKey: routingKey,
		breaker:    newBreaker("rabbitmq-publisher", breakerSettings, logger),
		logger:     logger,
	}, nil
}

func newBreaker(name string, settings BreakerSettings, logger *slog.Logger) *gobreaker.CircuitBreaker {
	failures := settings.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// Publish sends one persistent message and waits for the broker confirm.
// While the breaker is open it fails fast with gobreaker.ErrOpenState.
func (p *RabbitMQPublisher) Publish(ctx context.Context, message Message) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message %s: %w", message.ID, err)
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.publish(ctx, message.ID, body)
	})
	return err
}

func (p *RabbitMQPublisher) publish(ctx context.Context, messageID string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pub := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now(),
	}

	confirmation, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, p.routingKey, false, false, pub)
	if err != nil {
		return fmt.Errorf("failed to publish message %s: %w", messageID, err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for confirm of message %s: %w", messageID, err)
	}
	if !acked {
		return fmt.Errorf("%w: %s", ErrNotConfirmed, messageID)
	}
	return nil
}

func (p *RabbitMQPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
