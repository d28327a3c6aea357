package helpers

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// rabbitQueue is a connection plus channel bound to one durable queue.
type rabbitQueue struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func dialQueue(url, queue string) (*rabbitQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &rabbitQueue{conn: conn, ch: ch, Queue: queue}, nil
}

func (q *rabbitQueue) Close() {
	if q == nil {
		return
	}
	if q.ch != nil {
		_ = q.ch.Close()
	}
	if q.conn != nil {
		_ = q.conn.Close()
	}
}

// RabbitPublisher publishes persistent JSON messages to one queue.
type RabbitPublisher struct {
	*rabbitQueue
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	q, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &RabbitPublisher{q}, nil
}

// PublishJSON publishes a JSON-encoded message through the default exchange.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, "", p.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

// RabbitConsumer reads one queue with manual acknowledgements.
type RabbitConsumer struct {
	*rabbitQueue
}

func NewRabbitConsumer(url, queue string) (*RabbitConsumer, error) {
	q, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &RabbitConsumer{q}, nil
}

// Consume starts delivery with at most prefetch unacknowledged messages in flight.
func (c *RabbitConsumer) Consume(prefetch int) (<-chan amqp.Delivery, error) {
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(c.Queue, "", false, false, false, false, nil)
}
