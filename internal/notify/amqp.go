package notify

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Broker is the slice of the RabbitMQ client the notifier needs.
type Broker interface {
	Publish(ctx context.Context, message []byte) error
	Consume(ctx context.Context, handler func([]byte) error) error
}

// Publisher dispatches jobs through the broker so any instance running a
// Consumer can deliver them.
type Publisher struct {
	broker Broker
	log    *zerolog.Logger
}

func NewPublisher(b Broker, log *zerolog.Logger) *Publisher {
	return &Publisher{broker: b, log: log}
}

func (p *Publisher) Dispatch(ctx context.Context, job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := p.broker.Publish(ctx, body); err != nil {
		p.log.Error().Err(err).Str("kind", job.Kind).Msg("failed to publish notification")
		return err
	}
	return nil
}

// Consumer feeds brokered jobs into a local pool.
type Consumer struct {
	broker Broker
	pool   Dispatcher
	log    *zerolog.Logger
}

func NewConsumer(b Broker, pool Dispatcher, log *zerolog.Logger) *Consumer {
	return &Consumer{broker: b, pool: pool, log: log}
}

func (c *Consumer) Start(ctx context.Context) error {
	return c.broker.Consume(ctx, c.handle)
}

func (c *Consumer) handle(body []byte) error {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		// malformed messages are acked, never requeued
		c.log.Error().Err(err).Str("body", string(body)).Msg("discarding malformed notification")
		return nil
	}
	return c.pool.Dispatch(context.Background(), job)
}
