package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"catalogo/internal/models"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Client publishes product events to a fanout exchange and consumes them
// from its own queue bound to that exchange. Other services bind their own
// queues, so each of them sees every event.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	log      *zap.Logger
	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details. Queue is the one this service
// consumes from; it is bound to Exchange.
type Config struct {
	URL      string
	Exchange string
	Queue    string
}

// MessageHandler processes one delivery. A nil return acks it.
type MessageHandler func(msg amqp.Delivery) error

// NewClient connects to RabbitMQ and declares the exchange, the queue and their binding.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	c := &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		queue:    cfg.Queue,
		log:      log,
	}
	if err := c.declareTopology(); err != nil {
		c.Close()
		return nil, err
	}

	log.Info("RabbitMQ client connected",
		zap.String("exchange", cfg.Exchange),
		zap.String("queue", cfg.Queue),
	)
	return c, nil
}

func (c *Client) declareTopology() error {
	err := c.channel.ExchangeDeclare(
		c.exchange,          // name
		amqp.ExchangeFanout, // kind
		true,                // durable
		false,               // auto-delete
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", c.exchange, err)
	}

	_, err = c.channel.QueueDeclare(
		c.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", c.queue, err)
	}

	// Fanout exchanges ignore the routing key.
	if err := c.channel.QueueBind(c.queue, "", c.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind %s to %s: %w", c.queue, c.exchange, err)
	}
	return nil
}

// Close shuts the channel and then the connection, reporting both failures.
func (c *Client) Close() error {
	var channelErr, connErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			channelErr = fmt.Errorf("close channel: %w", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			connErr = fmt.Errorf("close connection: %w", err)
		}
	}
	return errors.Join(channelErr, connErr)
}

// NewPublishing encodes event as a persistent JSON message.
func NewPublishing(event models.ProductCreatedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal product event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event.Type,
		MessageId:    event.EventID,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
	}, nil
}

// PublishProductCreated publishes a product.created event to the exchange.
func (c *Client) PublishProductCreated(_ context.Context, event models.ProductCreatedEvent) error {
	msg, err := NewPublishing(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	if err := c.channel.Publish(c.exchange, "", false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// ConsumeProductEvents starts a goroutine that feeds queue deliveries to handler.
// Failed deliveries are nacked without requeue so a bad message cannot loop.
func (c *Client) ConsumeProductEvents(handler MessageHandler) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info("Waiting for product events", zap.String("queue", c.queue))

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				c.log.Warn("Error processing message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(err))
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.log.Warn("Error nacking message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(nackErr))
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.log.Warn("Error acking message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(ackErr))
			}
		}
		c.log.Info("Product event consumer stopped", zap.String("queue", c.queue))
	}()

	return nil
}

// NewProductEventLogger returns a handler that decodes product events and logs them.
func NewProductEventLogger(log *zap.Logger) MessageHandler {
	return func(msg amqp.Delivery) error {
		event, err := DecodeProductEvent(msg.Body)
		if err != nil {
			return err
		}
		log.Info("Received product event",
			zap.String("event_id", event.EventID),
			zap.String("type", event.Type),
			zap.Uint("product_id", event.Product.ID),
			zap.String("nombre", event.Product.Nombre),
			zap.Time("occurred_at", event.OccurredAt),
		)
		return nil
	}
}

// DecodeProductEvent parses a product event body.
func DecodeProductEvent(body []byte) (models.ProductCreatedEvent, error) {
	var event models.ProductCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return models.ProductCreatedEvent{}, fmt.Errorf("failed to decode product event: %w", err)
	}
	if event.Type != models.ProductCreatedEventType {
		return models.ProductCreatedEvent{}, fmt.Errorf("unexpected product event type %q", event.Type)
	}
	return event, nil
}
