package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers events to the notification queue.
type Publisher interface {
	Publish(ctx context.Context, ev BookingEvent) error
}

const (
	dialTimeout   = 2 * time.Second
	redialPause   = 10 * time.Second
	amqpHeartbeat = 10 * time.Second
)

// ErrBrokerDown is returned without dialing while the publisher waits out
// the pause after a failed dial.
var ErrBrokerDown = errors.New("notification broker unreachable, retry pending")

// AMQPPublisher keeps one connection and channel open and redials lazily
// after the broker drops them. Publish is called on the request path, so a
// dial is bounded by dialTimeout and a failed dial is not retried for
// redialPause.
type AMQPPublisher struct {
	url   string
	queue string
	dial  func(url string) (*amqp.Connection, error)
	now   func() time.Time

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue, dial: dialBroker, now: time.Now}
}

func dialBroker(url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Dial:      amqp.DefaultDial(dialTimeout),
		Heartbeat: amqpHeartbeat,
		Locale:    "en_US",
	})
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev BookingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.EventID,
			Type:         string(ev.Type),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.reset()
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// channel returns the open channel, dialing when needed. Caller holds mu.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	if now := p.now(); now.Before(p.retryAt) {
		return nil, ErrBrokerDown
	}
	conn, err := p.dial(p.url)
	if err != nil {
		p.retryAt = p.now().Add(redialPause)
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	p.retryAt = time.Time{}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := declareQueue(ch, p.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// declareQueue is shared by publisher and consumer so both agree on the
// queue arguments. Durable so messages survive broker restarts.
func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("declare queue %s: %w", name, err)
	}
	return q, nil
}

// ErrNoBroker is returned by the publisher used when RABBITMQ_URL is unset.
var ErrNoBroker = errors.New("notification broker not configured")

type noBroker struct{}

// NoBroker returns a publisher that always fails with ErrNoBroker, which the
// dispatcher logs at debug level only.
func NoBroker() Publisher { return noBroker{} }

func (noBroker) Publish(context.Context, BookingEvent) error { return ErrNoBroker }
