package queue

import (
    "context"
    "errors"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/course-reviews/internal/logger"
)

// ReviewHandler reacts to one review event.  A returned error rejects the
// message without requeueing it.
type ReviewHandler func(ctx context.Context, ev ReviewPostedEvent) error

// ReviewConsumer consumes the review queue until its context is cancelled.
type ReviewConsumer struct {
    URL    string
    Queue  string
    Handle ReviewHandler
    Log    *logger.Logger
}

// Run dials the broker, declares the queue (durable) and processes
// deliveries.  Dropped connections are re-dialled with exponential backoff
// capped at 30s.  Run returns ctx.Err() once ctx is done.
func (rc *ReviewConsumer) Run(ctx context.Context) error {
    if rc.Queue == "" {
        rc.Queue = DefaultReviewQueue
    }
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        conn, err := amqp.Dial(rc.URL)
        if err != nil {
            rc.Log.Warn("review consumer dial failed", "error", err, "retry_in", backoff)
            if !sleepCtx(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = rc.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        rc.Log.Warn("review consumer loop ended, reconnecting", "error", err)
        if !sleepCtx(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (rc *ReviewConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        rc.Log.Warn("review consumer set QoS failed", "error", err)
    }
    if _, err := ch.QueueDeclare(rc.Queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(rc.Queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }
    rc.Log.Info("review consumer started", "queue", rc.Queue)

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := rc.process(ctx, d.Body); err != nil {
                rc.Log.Warn("review event rejected", "error", err)
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// process decodes one message body and hands it to the handler.
func (rc *ReviewConsumer) process(ctx context.Context, body []byte) error {
    ev, err := decodeReviewPosted(body)
    if err != nil {
        return err
    }
    if err := rc.Handle(ctx, ev); err != nil {
        return fmt.Errorf("handle review %s: %w", ev.ReviewID, err)
    }
    rc.Log.Debug("review event handled", "course_number", ev.CourseNumber, "review_id", ev.ReviewID)
    return nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
