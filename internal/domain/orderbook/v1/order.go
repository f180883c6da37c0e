package orderbookv1

import (
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

// Side represents the direction of an order.
type Side string

const (
	// SideBuy represents a buy order.
	SideBuy Side = "buy"
	// SideSell represents a sell order.
	SideSell Side = "sell"
)

var (
	// ErrNilOrder is returned when a nil order is pushed into a book.
	ErrNilOrder = errors.New("order cannot be nil")
	// ErrInvalidQuantity is returned when an order quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidPrice is returned when an order price is not positive.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrInvalidTicker is returned when an order ticker symbol is empty.
	ErrInvalidTicker = errors.New("ticker must not be empty")
	// ErrInvalidSide is returned when an order side is neither buy nor sell.
	ErrInvalidSide = errors.New("side must be buy or sell")
)

// Order represents a single order resting in an order book. Quantity is the
// remaining amount and is mutated only by the matching transaction; every
// other field is fixed at creation.
type Order struct {
	ID        string  `json:"id"`
	Side      Side    `json:"side"`
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	Timestamp int64   `json:"timestamp"`
	Sequence  int64   `json:"sequence"` // Submission sequence, breaks same-nanosecond ties
}

// NewOrder creates a new order with a fresh ULID and the current timestamp.
func NewOrder(side Side, ticker string, quantity, price float64, sequence int64) *Order {
	return &Order{
		ID:        ulid.Make().String(), // Generate a unique ID for the order
		Side:      side,
		Ticker:    ticker,
		Price:     price,
		Quantity:  quantity,
		Timestamp: time.Now().UnixNano(),
		Sequence:  sequence,
	}
}

// IsBuy checks if the order is a buy order.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}

// IsSell checks if the order is a sell order.
func (o *Order) IsSell() bool {
	return o.Side == SideSell
}

// Outranks reports whether o has strictly higher matching priority than other
// on the same book side. Buys rank by descending price, sells by ascending
// price; equal prices rank by earlier timestamp, then by lower sequence so
// the ordering stays total under same-nanosecond submissions.
func (o *Order) Outranks(other *Order) bool {
	if o.Price != other.Price {
		if o.IsBuy() {
			return o.Price > other.Price
		}
		return o.Price < other.Price
	}
	if o.Timestamp != other.Timestamp {
		return o.Timestamp < other.Timestamp
	}
	return o.Sequence < other.Sequence
}

// Validate checks the order fields that Submit promises to reject.
func (o *Order) Validate() error {
	if o.Side != SideBuy && o.Side != SideSell {
		return ErrInvalidSide
	}
	if o.Ticker == "" {
		return ErrInvalidTicker
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if o.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
