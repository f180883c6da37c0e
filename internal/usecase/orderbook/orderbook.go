package orderbook

import (
	"container/heap"
	"sync"

	orderbookv1 "tickermatch/internal/domain/orderbook/v1"
)

// Book holds one ticker's resting orders as two priority queues: bids ranked
// highest price first and asks ranked lowest price first, both with earlier
// submissions winning price ties. Each side has its own lock, so a buy and a
// sell can be inserted simultaneously; a single push, pop or peek is atomic
// but multi-step sequences need the caller's own coordination (the engine's
// per-slot matching lock).
type Book struct {
	bidMu sync.Mutex
	bids  orderbookv1.Queue

	askMu sync.Mutex
	asks  orderbookv1.Queue
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		bids: make(orderbookv1.Queue, 0),
		asks: make(orderbookv1.Queue, 0),
	}
}

// Push inserts an order into the bid or ask queue per its side. Routing is
// the only validation done here; field checks are the engine's job.
func (b *Book) Push(order *orderbookv1.Order) error {
	if order == nil {
		return orderbookv1.ErrNilOrder
	}

	if order.IsBuy() {
		b.bidMu.Lock()
		defer b.bidMu.Unlock()
		heap.Push(&b.bids, order)
		return nil
	}

	b.askMu.Lock()
	defer b.askMu.Unlock()
	heap.Push(&b.asks, order)
	return nil
}

// PeekBestBid returns the highest-priced resting buy without removing it, or
// nil if there are no bids.
func (b *Book) PeekBestBid() *orderbookv1.Order {
	b.bidMu.Lock()
	defer b.bidMu.Unlock()
	return b.bids.Peek()
}

// PeekBestAsk returns the lowest-priced resting sell without removing it, or
// nil if there are no asks.
func (b *Book) PeekBestAsk() *orderbookv1.Order {
	b.askMu.Lock()
	defer b.askMu.Unlock()
	return b.asks.Peek()
}

// PopBestBid removes and returns the highest-priced resting buy, or nil if
// there are no bids.
func (b *Book) PopBestBid() *orderbookv1.Order {
	b.bidMu.Lock()
	defer b.bidMu.Unlock()
	if b.bids.Len() == 0 {
		return nil
	}
	return heap.Pop(&b.bids).(*orderbookv1.Order)
}

// PopBestAsk removes and returns the lowest-priced resting sell, or nil if
// there are no asks.
func (b *Book) PopBestAsk() *orderbookv1.Order {
	b.askMu.Lock()
	defer b.askMu.Unlock()
	if b.asks.Len() == 0 {
		return nil
	}
	return heap.Pop(&b.asks).(*orderbookv1.Order)
}

// BidDepth returns the number of resting buy orders.
func (b *Book) BidDepth() int {
	b.bidMu.Lock()
	defer b.bidMu.Unlock()
	return b.bids.Len()
}

// AskDepth returns the number of resting sell orders.
func (b *Book) AskDepth() int {
	b.askMu.Lock()
	defer b.askMu.Unlock()
	return b.asks.Len()
}
