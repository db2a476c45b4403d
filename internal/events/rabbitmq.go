package events

import (
	"context"
	"fmt"

	"catalog/pkg/rabbitmq"
)

// RabbitMQPublisher sends events to a RabbitMQ queue.
type RabbitMQPublisher struct {
	client *rabbitmq.Client
}

// NewRabbitMQPublisher connects to the broker at url and declares queue.
func NewRabbitMQPublisher(url, queue string) (*RabbitMQPublisher, error) {
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: url, Queue: queue})
	if err != nil {
		return nil, err
	}
	return &RabbitMQPublisher{client: client}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, event ProductEvent) error {
	body, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	return p.client.Publish(string(event.Type), body)
}

func (p *RabbitMQPublisher) Close() error {
	return p.client.Close()
}
