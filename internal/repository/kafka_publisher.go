package repository

import (
	"context"

	"PowerPos/internal/domain/models"
	drepo "PowerPos/internal/domain/repository"
	pkgkafka "PowerPos/pkg/kafka"
)

// KafkaPublisher implements EventPublisher for Kafka. Outcome events are
// keyed by trading date so a consumer sees per-day outcomes in order.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates a Kafka outcome publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) drepo.EventPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishOutcome(ctx context.Context, ev *models.CycleOutcome) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.TradingDate), ev)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
