package orderreaderv1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// SubmitRequest is the wire form of an order submission.
type SubmitRequest struct {
	Side     string  `json:"side"`
	Ticker   string  `json:"ticker"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderReader defines the interface for reading order submissions from a source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderreaderv1_mock
type OrderReader interface {
	// ReadMessage reads a message and returns the parsed submission
	ReadMessage(ctx context.Context) (kafka.Message, *SubmitRequest, error)
	// Close closes the reader
	Close() error
}
