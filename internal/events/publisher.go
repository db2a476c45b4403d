package events

import (
	"fmt"

	"catalog/internal/config"
)

// NewPublisher returns the publisher selected by cfg.Driver.
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	switch cfg.Driver {
	case config.EventsNone, "":
		return Noop{}, nil
	case config.EventsRabbitMQ:
		return NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.Queue)
	case config.EventsKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("kafka events need at least one broker")
		}
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
