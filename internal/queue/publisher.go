package queue

import (
    "context"
    "fmt"
    "time"

    jsoniter "github.com/json-iterator/go"
    "github.com/labstack/gommon/log"
    amqp "github.com/rabbitmq/amqp091-go"
)

// BookingQueue is the durable queue booking events are routed to.
const BookingQueue = "booking.events"

// DefaultDialTimeout bounds connection setup when the caller's context
// carries no deadline.
const DefaultDialTimeout = 5 * time.Second

// AMQPPublisher sends booking events to RabbitMQ.  Each Publish dials,
// declares the queue and closes again.  Failures are returned wrapped
// and left to the caller to log.
type AMQPPublisher struct {
    URL    string
    Logger *log.Logger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, logger *log.Logger) *AMQPPublisher {
    if logger == nil {
        logger = log.New("queue")
    }
    return &AMQPPublisher{URL: url, Logger: logger}
}

// Publish sends ev as a persistent JSON message.  The event id doubles
// as the AMQP message id and the event type as the message type.  The
// dial and handshake are bounded by ctx's deadline.
func (p *AMQPPublisher) Publish(ctx context.Context, ev BookingEvent) error {
    timeout, err := dialTimeout(ctx)
    if err != nil {
        return err
    }
    conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(timeout)})
    if err != nil {
        return fmt.Errorf("rabbitmq: dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq: open channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(BookingQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("rabbitmq: declare %s: %w", BookingQueue, err)
    }

    body, err := jsoniter.ConfigFastest.Marshal(ev)
    if err != nil {
        return fmt.Errorf("rabbitmq: marshal event: %w", err)
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.ID,
        Type:         ev.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", BookingQueue, false, false, pub); err != nil {
        return fmt.Errorf("rabbitmq: publish: %w", err)
    }
    p.Logger.Debugf("rabbitmq: published %s %s", ev.Type, ev.ID)
    return nil
}

// dialTimeout returns the time left until ctx's deadline, or
// DefaultDialTimeout when there is none.
func dialTimeout(ctx context.Context) (time.Duration, error) {
    if err := ctx.Err(); err != nil {
        return 0, err
    }
    deadline, ok := ctx.Deadline()
    if !ok {
        return DefaultDialTimeout, nil
    }
    left := time.Until(deadline)
    if left <= 0 {
        return 0, context.DeadlineExceeded
    }
    return left, nil
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
