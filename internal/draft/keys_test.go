package draft

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pitchshare/internal/alloc"
)

func TestSessionKeyGenerator_Unique(t *testing.T) {
	gen := NewSessionKeyGenerator()

	seen := make(map[alloc.RowKey]bool)
	for i := 0; i < 1000; i++ {
		key := gen.Next()
		require.False(t, seen[key], "key %s issued twice", key)
		seen[key] = true
	}
}

func TestSessionKeyGenerator_UniqueAcrossSessions(t *testing.T) {
	a := NewSessionKeyGenerator()
	b := NewSessionKeyGenerator()

	assert.NotEqual(t, a.Next(), b.Next())
}

func TestSessionKeyGenerator_ConcurrentAdds(t *testing.T) {
	// Two rapid "add" presses must never collide, even when racing.
	gen := NewSessionKeyGenerator()

	const workers = 8
	const perWorker = 100

	var mu sync.Mutex
	seen := make(map[alloc.RowKey]bool)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := gen.Next()
				mu.Lock()
				seen[key] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker, "every key must be distinct")
}

func TestFixedKeyGenerator_Order(t *testing.T) {
	gen := NewFixedKeyGenerator("row-1", "row-2", "row-3")

	assert.Equal(t, alloc.RowKey("row-1"), gen.Next())
	assert.Equal(t, alloc.RowKey("row-2"), gen.Next())
	assert.Equal(t, alloc.RowKey("row-3"), gen.Next())
}

func TestFixedKeyGenerator_ExhaustionPanics(t *testing.T) {
	gen := NewFixedKeyGenerator("only")
	gen.Next()

	assert.Panics(t, func() { gen.Next() })
}
