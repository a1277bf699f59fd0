package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Type is the routing key of an event.
type Type string

const QuizSubmitted Type = "quiz.submitted"

// QuizSubmittedEvent is emitted once a submission has been committed.
type QuizSubmittedEvent struct {
	EventType    Type      `json:"event_type"`
	SubmissionID uint      `json:"submission_id"`
	UserID       uint      `json:"user_id"`
	QuizID       uint      `json:"quiz_id"`
	Score        float64   `json:"score"`
	CorrectCount int       `json:"correct_count"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Publisher defines the interface for emitting domain events.
type Publisher interface {
	PublishQuizSubmitted(ctx context.Context, evt *QuizSubmittedEvent) error
	Close() error
}

// EventPublisher publishes JSON events to a RabbitMQ topic exchange.
type EventPublisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	enabled  bool
}

// NewEventPublisher connects to RabbitMQ and declares a durable topic exchange. An empty URI
// returns a disabled publisher that drops every event.
func NewEventPublisher(uri, exchange string) (*EventPublisher, error) {
	if uri == "" {
		log.Warn().Msg("RABBITMQ_URI is empty, event publishing is disabled")
		return &EventPublisher{exchange: exchange}, nil
	}

	conn, err := amqp091.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info().Str("exchange", exchange).Msg("Event publisher initialized")
	return &EventPublisher{conn: conn, channel: channel, exchange: exchange, enabled: true}, nil
}

func (p *EventPublisher) PublishQuizSubmitted(ctx context.Context, evt *QuizSubmittedEvent) error {
	evt.EventType = QuizSubmitted
	if !p.enabled {
		log.Debug().Uint("submissionID", evt.SubmissionID).Msg("Event publishing disabled, skipping quiz.submitted")
		return nil
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		string(evt.EventType), // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			Headers: amqp091.Table{
				"event_type": string(evt.EventType),
				"user_id":    strconv.FormatUint(uint64(evt.UserID), 10),
				"quiz_id":    strconv.FormatUint(uint64(evt.QuizID), 10),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	log.Debug().Uint("submissionID", evt.SubmissionID).Msg("Published quiz.submitted")
	return nil
}

func (p *EventPublisher) Close() error {
	if !p.enabled {
		return nil
	}
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing RabbitMQ channel")
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}
	return nil
}
