package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	orderreaderv1 "tickermatch/internal/domain/order-reader/v1"
	orderbookv1 "tickermatch/internal/domain/orderbook/v1"
	tradepublisherv1 "tickermatch/internal/domain/trade-publisher/v1"
	"tickermatch/internal/usecase/directory"
	"tickermatch/pkg/logger"
)

// Engine is the continuous double-auction matching engine. It owns the
// ticker directory, the append-only trade ledger and a background sweep that
// periodically matches crossing orders in every assigned slot. Submit may be
// called concurrently from any number of goroutines, and concurrently with
// the sweep: it only takes the per-side queue locks, never a slot's matching
// lock, so an order pushed mid-transaction is simply picked up on the next
// pass.
type Engine struct {
	// Core components
	directory      *directory.Directory
	orderReader    orderreaderv1.OrderReader       // optional intake collaborator
	tradePublisher tradepublisherv1.TradePublisher // optional trade sink
	logger         *logger.Logger

	// Append-only trade ledger; one lock shared across tickers since an
	// individual append is O(1)
	ledgerMu sync.Mutex
	ledger   []orderbookv1.Trade

	// Submission sequence, breaks same-nanosecond priority ties
	sequence atomic.Int64

	// Trades queued for the publisher drain goroutine, so no lock is ever
	// held across Kafka I/O
	publishCh chan *tradepublisherv1.TradeEventPayload

	// Shutdown coordination
	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	sweepInterval time.Duration
}

// NewEngine creates a new Engine with default options. The order reader and
// trade publisher are optional collaborators; pass nil to drive the engine
// through Submit and Trades directly.
func NewEngine(
	orderReader orderreaderv1.OrderReader,
	tradePublisher tradepublisherv1.TradePublisher,
	logger *logger.Logger,
) *Engine {
	return NewEngineWithOptions(orderReader, tradePublisher, logger, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options
func NewEngineWithOptions(
	orderReader orderreaderv1.OrderReader,
	tradePublisher tradepublisherv1.TradePublisher,
	logger *logger.Logger,
	options *Options,
) *Engine {
	e := &Engine{
		directory:      directory.New(options.DirectoryCapacity),
		orderReader:    orderReader,
		tradePublisher: tradePublisher,
		logger:         logger,

		sweepInterval: options.SweepInterval,
	}

	if tradePublisher != nil {
		buffer := options.PublishBuffer
		if buffer <= 0 {
			buffer = DefaultEngineOptions().PublishBuffer
		}
		e.publishCh = make(chan *tradepublisherv1.TradeEventPayload, buffer)
	}

	return e
}

// Submit validates and places a new order, returning its ID. It fails with
// one of the orderbookv1 validation sentinels when quantity or price is not
// positive, and with directory.ErrDirectoryFull when the ticker is unseen
// and the directory has no free slot. Nothing is mutated on failure.
func (e *Engine) Submit(side orderbookv1.Side, ticker string, quantity, price float64) (string, error) {
	request := orderbookv1.Order{
		Side:     side,
		Ticker:   ticker,
		Quantity: quantity,
		Price:    price,
	}
	if err := request.Validate(); err != nil {
		return "", err
	}

	order := orderbookv1.NewOrder(side, ticker, quantity, price, e.sequence.Add(1))

	index, err := e.directory.Resolve(ticker)
	if err != nil {
		return "", err
	}

	if err := e.directory.Book(index).Push(order); err != nil {
		return "", err
	}

	return order.ID, nil
}

// Start begins the background matching sweep and, when configured, the order
// intake and trade publishing goroutines. Calling Start on a running engine
// is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}

	e.ctx, e.cancel = context.WithCancel(ctx)
	e.running = true

	e.wg.Add(1)
	go e.runSweeper()

	if e.orderReader != nil {
		e.wg.Add(1)
		go e.runOrderIntake()
	}
	if e.tradePublisher != nil {
		e.wg.Add(1)
		go e.runTradeForwarder()
	}

	e.logger.Info("Matching engine started",
		logger.Field{Key: "sweepInterval", Value: e.sweepInterval.String()},
		logger.Field{Key: "directoryCapacity", Value: e.directory.Capacity()},
	)

	return nil
}

// Stop halts the background goroutines and blocks until they have observed
// the stop signal and exited; an in-progress sweep runs to completion first.
// Stopping an already stopped engine is a no-op.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = false
	e.cancel()
	e.mu.Unlock()

	// Wait for goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Matching engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// Trades returns a snapshot copy of the trade ledger in append order.
func (e *Engine) Trades() []orderbookv1.Trade {
	e.ledgerMu.Lock()
	defer e.ledgerMu.Unlock()

	trades := make([]orderbookv1.Trade, len(e.ledger))
	copy(trades, e.ledger)
	return trades
}

// TradeCount returns the number of trades recorded so far.
func (e *Engine) TradeCount() int {
	e.ledgerMu.Lock()
	defer e.ledgerMu.Unlock()
	return len(e.ledger)
}

// Depth returns the resting bid and ask counts for a ticker. Both are zero
// for a ticker that has never been submitted.
func (e *Engine) Depth(ticker string) (bids, asks int) {
	index, found := e.directory.Lookup(ticker)
	if !found {
		return 0, 0
	}
	book := e.directory.Book(index)
	return book.BidDepth(), book.AskDepth()
}

// runSweeper wakes on a fixed period and matches every slot until stopped.
func (e *Engine) runSweeper() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Matching sweep shutting down")
			return
		case <-ticker.C:
			e.matchAll()
		}
	}
}

// matchAll runs the matching transaction for every directory slot. Slot
// order is irrelevant since different tickers are independent.
func (e *Engine) matchAll() {
	for index := 0; index < e.directory.Capacity(); index++ {
		e.matchSlot(index)
	}
}

// matchSlot repeats the matching transaction for one slot until a pass finds
// no cross. Each pass pops both tops under the slot's matching lock, trades
// at the resting sell's price when the best buy's price reaches it, requeues
// the partially filled side, and pushes both orders back unmodified when
// they do not cross. Submissions landing mid-transaction are not corrupted:
// every push and pop still takes the side's own queue lock.
func (e *Engine) matchSlot(index int) {
	matchMu := e.directory.MatchLock(index)
	if matchMu == nil {
		// Slot was never assigned a ticker.
		return
	}
	book := e.directory.Book(index)

	for {
		matchMu.Lock()

		bestBuy := book.PopBestBid()
		bestSell := book.PopBestAsk()

		if bestBuy == nil || bestSell == nil || !orderbookv1.Crosses(bestBuy, bestSell) {
			// Put back whatever was popped, unmodified.
			if bestBuy != nil {
				book.Push(bestBuy)
			}
			if bestSell != nil {
				book.Push(bestSell)
			}
			matchMu.Unlock()
			return
		}

		trade := orderbookv1.NewTrade(bestBuy, bestSell)
		e.appendTrade(trade, e.directory.Ticker(index))

		switch {
		case bestBuy.Quantity > bestSell.Quantity:
			bestBuy.Quantity -= trade.Quantity
			book.Push(bestBuy)
		case bestBuy.Quantity < bestSell.Quantity:
			bestSell.Quantity -= trade.Quantity
			book.Push(bestSell)
		}
		// Equal quantities consume both sides entirely.

		matchMu.Unlock()
	}
}

// appendTrade records a trade in the ledger and hands it to the publisher
// drain when one is configured.
func (e *Engine) appendTrade(trade orderbookv1.Trade, ticker string) {
	e.ledgerMu.Lock()
	e.ledger = append(e.ledger, trade)
	e.ledgerMu.Unlock()

	if e.publishCh == nil {
		return
	}
	select {
	case e.publishCh <- tradepublisherv1.CreateFromTrade(trade, ticker):
	default:
		e.logger.Warn("Trade publish buffer full, dropping event",
			logger.Field{Key: "ticker", Value: ticker},
			logger.Field{Key: "buyOrderID", Value: trade.BuyOrderID},
			logger.Field{Key: "sellOrderID", Value: trade.SellOrderID},
		)
	}
}

// runOrderIntake feeds Submit from the configured order reader. Invalid
// submissions are logged and skipped so a malformed message never stalls the
// stream.
func (e *Engine) runOrderIntake() {
	defer e.wg.Done()

	e.logger.Info("Starting order intake")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Order intake shutting down")
			e.orderReader.Close()
			return
		default:
			_, request, err := e.orderReader.ReadMessage(e.ctx)
			if err != nil {
				if e.ctx.Err() != nil {
					continue
				}
				e.logger.Error(err, logger.Field{
					Key:   "action",
					Value: "read_order_message",
				})
				// Simple backoff
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if _, err := e.Submit(orderbookv1.Side(request.Side), request.Ticker, request.Quantity, request.Price); err != nil {
				e.logger.Error(err,
					logger.Field{Key: "action", Value: "submit_order"},
					logger.Field{Key: "ticker", Value: request.Ticker},
					logger.Field{Key: "side", Value: request.Side},
				)
			}
		}
	}
}

// runTradeForwarder drains queued trade events into the publisher.
func (e *Engine) runTradeForwarder() {
	defer e.wg.Done()

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Trade forwarder shutting down")
			e.tradePublisher.Close()
			return
		case event := <-e.publishCh:
			if err := e.tradePublisher.PublishTradeEvent(e.ctx, event); err != nil {
				e.logger.Error(err, logger.Field{
					Key:   "action",
					Value: "publish_trade_event",
				})
			}
		}
	}
}
