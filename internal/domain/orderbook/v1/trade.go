package orderbookv1

import (
	"math"
	"time"
)

// Trade records a fill between a crossing buy and sell order. It references
// the matched orders by ID only and is immutable once created.
type Trade struct {
	BuyOrderID  string  `json:"buyOrderID"`
	SellOrderID string  `json:"sellOrderID"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	MatchedAt   int64   `json:"matchedAt"`
}

// NewTrade creates the trade for a crossing buy/sell pair. The fill quantity
// is the smaller remaining quantity and the fill price is always the resting
// sell's price, the maker-price convention.
func NewTrade(buy, sell *Order) Trade {
	return Trade{
		BuyOrderID:  buy.ID,
		SellOrderID: sell.ID,
		Quantity:    math.Min(buy.Quantity, sell.Quantity),
		Price:       sell.Price,
		MatchedAt:   time.Now().UnixNano(),
	}
}

// Crosses reports whether a buy and sell order can trade against each other.
func Crosses(buy, sell *Order) bool {
	return buy.Price >= sell.Price
}
