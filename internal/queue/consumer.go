package queue

import (
    "context"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    jsoniter "github.com/json-iterator/go"
    "github.com/labstack/gommon/log"
    amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ, declares the booking queue
// and appends one line per event to logPath.  It reconnects with
// exponential backoff until ctx is cancelled, then returns ctx.Err().
// Messages that cannot be handled are rejected without requeue so a bad
// payload cannot spin the loop.
func StartBookingConsumer(ctx context.Context, url, logPath string, logger *log.Logger) error {
    if logger == nil {
        logger = log.New("booking-consumer")
    }
    backoff := time.Second
    for {
        if err := ctx.Err(); err != nil {
            return err
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            logger.Warnf("failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consumeLoop(ctx, conn, logPath, logger)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        logger.Warnf("consume loop ended: %v; reconnecting", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logPath string, logger *log.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        logger.Warnf("set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(BookingQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(BookingQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := handleMessage(d.Body, logPath); err != nil {
                logger.Errorf("handle message failed: %v", err)
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func handleMessage(body []byte, logPath string) error {
    var ev BookingEvent
    if err := jsoniter.ConfigFastest.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" {
        return errors.New("event type missing")
    }
    if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(formatEvent(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func formatEvent(ev BookingEvent) string {
    switch ev.Type {
    case BookingCreated:
        return fmt.Sprintf("[%s] Reservation created | event_id=%s | reservation_number=%d | owner_id=%d | user=%q | date=%s | beds=%d\n",
            ev.OccurredAt, ev.ID, ev.ReservationNumber, ev.OwnerID, ev.UserName, ev.Date, ev.Beds)
    case BookingCancelled:
        return fmt.Sprintf("[%s] Reservations cancelled | event_id=%s | owner_id=%d\n",
            ev.OccurredAt, ev.ID, ev.OwnerID)
    }
    return fmt.Sprintf("[%s] %s | event_id=%s | owner_id=%d\n", ev.OccurredAt, ev.Type, ev.ID, ev.OwnerID)
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
