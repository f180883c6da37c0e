package directory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	d := New(16)

	assert.Equal(t, 16, d.Capacity())
	for i := 0; i < d.Capacity(); i++ {
		assert.NotNil(t, d.Book(i))
		assert.Equal(t, "", d.Ticker(i))
		assert.Nil(t, d.MatchLock(i))
	}
}

func TestNew_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Capacity())
	assert.Equal(t, DefaultCapacity, New(-3).Capacity())
}

func TestDirectory_Resolve_Stable(t *testing.T) {
	d := New(16)

	first, err := d.Resolve("AAPL")
	require.NoError(t, err)

	// Resolving again must return the same slot, never migrate.
	for i := 0; i < 10; i++ {
		index, err := d.Resolve("AAPL")
		require.NoError(t, err)
		assert.Equal(t, first, index)
	}
	assert.Equal(t, "AAPL", d.Ticker(first))
	assert.NotNil(t, d.MatchLock(first))
}

func TestDirectory_Resolve_DistinctTickersDistinctSlots(t *testing.T) {
	d := New(8)
	tickers := []string{"AAPL", "MSFT", "AMZN", "GOOGL", "META"}

	seen := make(map[int]string)
	for _, ticker := range tickers {
		index, err := d.Resolve(ticker)
		require.NoError(t, err)
		owner, taken := seen[index]
		assert.False(t, taken, "slot %d already owned by %s", index, owner)
		seen[index] = ticker
		assert.Equal(t, ticker, d.Ticker(index))
	}
}

func TestDirectory_Resolve_CollisionProbing(t *testing.T) {
	// Capacity 2 forces probe collisions regardless of hash values.
	d := New(2)

	a, err := d.Resolve("AAA")
	require.NoError(t, err)
	b, err := d.Resolve("BBB")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, "AAA", d.Ticker(a))
	assert.Equal(t, "BBB", d.Ticker(b))

	// Existing assignments still resolve after the table is full.
	again, err := d.Resolve("AAA")
	require.NoError(t, err)
	assert.Equal(t, a, again)
}

func TestDirectory_Resolve_CapacityExceeded(t *testing.T) {
	d := New(4)
	for i := 0; i < 4; i++ {
		_, err := d.Resolve(fmt.Sprintf("T%d", i))
		require.NoError(t, err)
	}

	_, err := d.Resolve("OVERFLOW")
	assert.ErrorIs(t, err, ErrDirectoryFull)

	// Previously assigned tickers are unaffected.
	for i := 0; i < 4; i++ {
		index, err := d.Resolve(fmt.Sprintf("T%d", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("T%d", i), d.Ticker(index))
	}
}

func TestDirectory_EmptyTicker(t *testing.T) {
	d := New(8)

	_, err := d.Resolve("")
	assert.ErrorIs(t, err, ErrEmptyTicker)

	_, found := d.Lookup("")
	assert.False(t, found)

	// Nothing was claimed.
	for i := 0; i < d.Capacity(); i++ {
		assert.Equal(t, "", d.Ticker(i))
		assert.Nil(t, d.MatchLock(i))
	}
}

func TestDirectory_Lookup(t *testing.T) {
	d := New(8)

	_, found := d.Lookup("AAPL")
	assert.False(t, found)

	index, err := d.Resolve("AAPL")
	require.NoError(t, err)

	got, found := d.Lookup("AAPL")
	assert.True(t, found)
	assert.Equal(t, index, got)

	// Lookup never claims.
	_, found = d.Lookup("MSFT")
	assert.False(t, found)
	_, stillMissing := d.Lookup("MSFT")
	assert.False(t, stillMissing)
}

func TestDirectory_Resolve_Concurrent(t *testing.T) {
	d := New(64)
	tickers := make([]string, 16)
	for i := range tickers {
		tickers[i] = fmt.Sprintf("TICK%d", i)
	}

	results := make([][]int, 8)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w] = make([]int, len(tickers))
			for i, ticker := range tickers {
				index, err := d.Resolve(ticker)
				assert.NoError(t, err)
				results[w][i] = index
			}
		}(w)
	}
	wg.Wait()

	// Every worker must agree on each ticker's slot.
	for w := 1; w < 8; w++ {
		assert.Equal(t, results[0], results[w])
	}

	// And no slot may serve two tickers.
	owners := make(map[int]bool)
	for _, index := range results[0] {
		assert.False(t, owners[index])
		owners[index] = true
	}
}
