package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/muhammadheryan/contacts/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventHandler processes one decoded user event. Returning an error requeues the delivery.
type EventHandler func(ctx context.Context, msg UserEventMessage) error

// ErrChannelClosed is returned by Start when the broker closes the delivery channel.
var ErrChannelClosed = errors.New("rabbitmq delivery channel closed")

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	handler EventHandler
}

func NewConsumer(amqpURL string, handler EventHandler) (*Consumer, error) {
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

	return &Consumer{
		conn:    conn,
		channel: channel,
		handler: handler,
	}, nil
}

// Start consumes until ctx is cancelled or the broker closes the channel.
func (c *Consumer) Start(ctx context.Context) error {
	// process one message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		UserEventsQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return ErrChannelClosed
			}
			c.dispatch(ctx, msg)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg amqp091.Delivery) {
	ack, requeue := HandleDelivery(ctx, msg.Body, c.handler)
	if ack {
		_ = msg.Ack(false)
		return
	}
	_ = msg.Nack(false, requeue)
}

// HandleDelivery decodes body and runs handler. Undecodable bodies are acked and dropped;
// handler failures are nacked with requeue.
func HandleDelivery(ctx context.Context, body []byte, handler EventHandler) (ack bool, requeue bool) {
	var event UserEventMessage
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Error("[Consumer] err unmarshal user event", zap.String("error", err.Error()))
		return true, false
	}

	if err := handler(ctx, event); err != nil {
		logger.Error("[Consumer] err handle user event",
			zap.String("event_id", event.EventID),
			zap.String("event", string(event.Event)),
			zap.String("error", err.Error()))
		return false, true
	}

	return true, false
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
