package tradepublisher

import (
	"context"

	"github.com/segmentio/kafka-go"

	tradepublisherv1 "tickermatch/internal/domain/trade-publisher/v1"
	"tickermatch/pkg/config"
	"tickermatch/pkg/errors"
	"tickermatch/pkg/logger"
)

// Publisher represents a Kafka Publisher for publishing trade events.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewPublisher creates a new Kafka publisher for publishing trade events.
func NewPublisher(config config.KafkaConfig, log *logger.Logger) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: config.Brokers,
		Topic:   config.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTradeEvent publishes a trade event to the Kafka topic.
func (p *Publisher) PublishTradeEvent(ctx context.Context, event *tradepublisherv1.TradeEventPayload) error {
	msg := kafka.Message{
		Key:   []byte(event.Ticker),
		Value: tradepublisherv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "tradeEvent", Value: event},
		)
		return errors.NewTracer("failed to publish trade event").Wrap(err)
	}
	return nil
}

// Close properly closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
