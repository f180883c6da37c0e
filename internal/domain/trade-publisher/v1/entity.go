package tradepublisherv1

import (
	"encoding/json"

	orderbookv1 "tickermatch/internal/domain/orderbook/v1"
)

// TradeEventPayload is the wire form of an executed trade.
type TradeEventPayload struct {
	BuyOrderID  string  `json:"buyOrderID"`
	SellOrderID string  `json:"sellOrderID"`
	Ticker      string  `json:"ticker"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	MatchedAt   int64   `json:"matchedAt"`
}

// CreateFromTrade creates a trade event from a ledger trade and its ticker.
func CreateFromTrade(trade orderbookv1.Trade, ticker string) *TradeEventPayload {
	return &TradeEventPayload{
		BuyOrderID:  trade.BuyOrderID,
		SellOrderID: trade.SellOrderID,
		Ticker:      ticker,
		Quantity:    trade.Quantity,
		Price:       trade.Price,
		MatchedAt:   trade.MatchedAt,
	}
}

// ToBytes converts the trade event to a byte array.
func ToBytes(event *TradeEventPayload) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	return data
}

// FromBytes converts a byte array to a trade event.
func FromBytes(data []byte) *TradeEventPayload {
	var event TradeEventPayload
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
