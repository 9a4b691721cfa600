package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
	"github.com/rabbitmq/amqp091-go"
)

const (
	UserEventsExchange = "user_events"
	UserEventsQueue    = "user_events_audit"
	userEventsBinding  = "user.*"
)

// UserEventMessage is published after every successful user mutation.
type UserEventMessage struct {
	EventID    string             `json:"event_id"`
	Event      constant.UserEvent `json:"event"`
	UserID     uint64             `json:"user_id"`
	OccurredAt time.Time          `json:"occurred_at"`
	User       *model.User        `json:"user,omitempty"`
}

type EventPublisher interface {
	PublishUserEvent(ctx context.Context, msg UserEventMessage) error
}

type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

var _ EventPublisher = (*Publisher)(nil)

func NewPublisher(amqpURL string) (*Publisher, error) {
	conn, err := amqp091.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: channel}, nil
}

// declareTopology declares the durable topic exchange and the audit queue bound to it.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		UserEventsExchange, // name
		"topic",            // type
		true,               // durable
		false,              // auto-delete
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		UserEventsQueue, // name
		true,            // durable
		false,           // auto-delete
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return err
	}

	return channel.QueueBind(
		UserEventsQueue,    // queue name
		userEventsBinding,  // routing key
		UserEventsExchange, // exchange
		false,              // no-wait
		nil,                // arguments
	)
}

func (p *Publisher) PublishUserEvent(ctx context.Context, msg UserEventMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(
		ctx,
		UserEventsExchange, // exchange
		string(msg.Event),  // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.EventID,
			Timestamp:    msg.OccurredAt,
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
