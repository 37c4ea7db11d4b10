package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher keeps one connection and channel open for a batch of
// publications (the seed command announces every review it inserts).
type Publisher struct {
    conn  *amqp.Connection
    ch    *amqp.Channel
    queue string
}

// DialPublisher connects to the broker and declares the queue.  The queue is
// durable so messages survive broker restarts.
func DialPublisher(url, queue string) (*Publisher, error) {
    if queue == "" {
        queue = DefaultReviewQueue
    }
    conn, err := amqp.Dial(url)
    if err != nil {
        return nil, fmt.Errorf("rabbitmq dial: %w", err)
    }
    ch, err := conn.Channel()
    if err != nil {
        _ = conn.Close()
        return nil, fmt.Errorf("rabbitmq channel: %w", err)
    }
    if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
        _ = ch.Close()
        _ = conn.Close()
        return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
    }
    return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// PublishReviewPosted publishes ev to the review queue as a persistent JSON
// message.  A zero PostedAt is stamped with the current time.
func (p *Publisher) PublishReviewPosted(ctx context.Context, ev ReviewPostedEvent) error {
    if ev.PostedAt.IsZero() {
        ev.PostedAt = time.Now().UTC()
    }
    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    ev.PostedAt,
        Body:         body,
    }
    // default exchange, routing key = queue name
    if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
        return fmt.Errorf("rabbitmq publish: %w", err)
    }
    return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
    _ = p.ch.Close()
    return p.conn.Close()
}
