package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher dials the broker per publish. A nil Publisher, or one constructed
// with an empty URL, silently drops events so the portal runs without a broker.
type Publisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url, log: log.With(zap.String("component", "queue"))}
}

func (p *Publisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) {
	p.publish(ctx, QueueBookingConfirmed, ev)
}

func (p *Publisher) PublishUserApproved(ctx context.Context, ev UserApprovedEvent) {
	p.publish(ctx, QueueUserApproved, ev)
}

func (p *Publisher) PublishDependentApproved(ctx context.Context, ev DependentApprovedEvent) {
	p.publish(ctx, QueueDependentApproved, ev)
}

func (p *Publisher) publish(ctx context.Context, queueName string, event any) {
	if p == nil {
		return
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("Broker dial failed", zap.String("queue", queueName), zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("Broker channel open failed", zap.String("queue", queueName), zap.Error(err))
		return
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Warn("Queue declare failed", zap.String("queue", queueName), zap.Error(err))
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Warn("Event marshal failed", zap.String("queue", queueName), zap.Error(err))
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Warn("Event publish failed", zap.String("queue", queueName), zap.Error(err))
	}
}
