package orderreader

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	orderreaderv1 "tickermatch/internal/domain/order-reader/v1"
	"tickermatch/pkg/config"
	"tickermatch/pkg/logger"
)

// Reader represents a Kafka Reader for consuming order submissions.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      *logger.Logger
}

// NewReader creates a new Kafka reader for consuming order submissions.
// It returns an implementation of the OrderReader interface.
func NewReader(config config.KafkaConfig, log *logger.Logger) Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "error", Value: err.Error()},
		logger.Field{Key: "operation", Value: operation},
	)
}

// ReadMessage reads a message from the Kafka topic and parses it as a SubmitRequest.
func (r Reader) ReadMessage(ctx context.Context) (kafka.Message, *orderreaderv1.SubmitRequest, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(err, "ReadMessage")
		return kafka.Message{}, nil, err
	}

	var request orderreaderv1.SubmitRequest
	if err := json.Unmarshal(msg.Value, &request); err != nil {
		r.logError(err, "UnmarshalSubmitRequest")
		return kafka.Message{}, nil, err
	}

	r.logger.Debug("ReadMessage",
		logger.Field{
			Key:   "side",
			Value: request.Side,
		},
		logger.Field{
			Key:   "ticker",
			Value: request.Ticker,
		},
		logger.Field{
			Key:   "quantity",
			Value: request.Quantity,
		},
		logger.Field{
			Key:   "price",
			Value: request.Price,
		},
	)

	return msg, &request, nil
}

// Close properly closes the Kafka reader.
func (r Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}
