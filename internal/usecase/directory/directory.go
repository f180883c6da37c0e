package directory

import (
	"errors"
	"sync"

	"github.com/cespare/xxhash/v2"

	"tickermatch/internal/usecase/orderbook"
)

var (
	// ErrDirectoryFull is returned when every slot has been probed and no
	// free or matching slot exists for a ticker.
	ErrDirectoryFull = errors.New("ticker directory is full")
	// ErrEmptyTicker is returned for the empty symbol, which marks an
	// unassigned slot and can never be claimed.
	ErrEmptyTicker = errors.New("ticker must not be empty")
)

// DefaultCapacity comfortably exceeds the expected distinct-ticker count to
// keep probe sequences short.
const DefaultCapacity = 1600

// slot binds one ticker to its order book and matching lock. The ticker and
// the lazily created match lock are written once, under the directory lock;
// the book pointer is fixed at construction.
type slot struct {
	ticker  string
	book    *orderbook.Book
	matchMu *sync.Mutex
}

// Directory maps ticker symbols to order-book slots with a fixed-capacity
// open-addressing table: linear probing from the ticker's hash, no rehashing
// and no resizing, so a ticker never migrates to another slot. The directory
// lock guards slot assignment only; routine book access and matching use the
// slot's own locks.
type Directory struct {
	mu    sync.RWMutex
	slots []slot
}

// New creates a directory with the given slot capacity. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *Directory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	d := &Directory{
		slots: make([]slot, capacity),
	}
	for i := range d.slots {
		d.slots[i].book = orderbook.NewBook()
	}
	return d
}

// Capacity returns the fixed slot count.
func (d *Directory) Capacity() int {
	return len(d.slots)
}

func (d *Directory) probeStart(ticker string) int {
	return int(xxhash.Sum64String(ticker) % uint64(len(d.slots)))
}

// Resolve returns the slot index owning ticker, claiming the first free slot
// on the probe path when the ticker is new. Claiming assigns the ticker and
// creates the slot's matching lock in one critical section, so two callers
// can never bind different tickers to the same slot or race on lock creation.
func (d *Directory) Resolve(ticker string) (int, error) {
	if ticker == "" {
		return 0, ErrEmptyTicker
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	start := d.probeStart(ticker)
	for i := 0; i < len(d.slots); i++ {
		index := (start + i) % len(d.slots)
		s := &d.slots[index]
		if s.ticker != ticker && s.ticker != "" {
			continue
		}

		s.ticker = ticker
		if s.matchMu == nil {
			s.matchMu = &sync.Mutex{}
		}
		return index, nil
	}

	return 0, ErrDirectoryFull
}

// Lookup returns the slot index owning ticker without claiming anything.
func (d *Directory) Lookup(ticker string) (int, bool) {
	if ticker == "" {
		return 0, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	start := d.probeStart(ticker)
	for i := 0; i < len(d.slots); i++ {
		index := (start + i) % len(d.slots)
		switch d.slots[index].ticker {
		case ticker:
			return index, true
		case "":
			return 0, false
		}
	}
	return 0, false
}

// Book returns the order book of slot index. The pointer never changes after
// construction, so no lock is needed.
func (d *Directory) Book(index int) *orderbook.Book {
	return d.slots[index].book
}

// Ticker returns the ticker assigned to slot index, or "" if unassigned.
func (d *Directory) Ticker(index int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slots[index].ticker
}

// MatchLock returns the matching lock of slot index, or nil while the slot is
// unassigned. Once created the lock is never replaced.
func (d *Directory) MatchLock(index int) *sync.Mutex {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slots[index].matchMu
}
