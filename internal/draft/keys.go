package draft

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/roach88/pitchshare/internal/alloc"
)

// KeyGenerator produces session-unique row keys.
//
// Implementations must return a distinct key on every call, even for two
// rows created at the same logical instant. A pure timestamp is not good
// enough; generators combine a per-session value with a monotonic counter.
type KeyGenerator interface {
	// Next returns a fresh key, never equal to any key returned before.
	Next() alloc.RowKey
}

// SessionKeyGenerator is the production KeyGenerator.
//
// Each generator carries a UUIDv7 session token and an atomic sequence
// counter. Keys look like "0190c8a3-...-7f3a#4": unique across sessions via
// the token, unique within the session via the counter. Two rapid "add"
// presses can never collide because the counter, not wall time, provides
// in-session uniqueness.
//
// Thread-safety: safe for concurrent use (atomic counter), though the
// single-editor discipline means calls are normally serialized anyway.
type SessionKeyGenerator struct {
	session string
	seq     atomic.Int64
}

// NewSessionKeyGenerator creates a generator with a fresh session token.
//
// Panics if UUID generation fails (should never happen in practice).
func NewSessionKeyGenerator() *SessionKeyGenerator {
	return &SessionKeyGenerator{session: uuid.Must(uuid.NewV7()).String()}
}

// Next returns the next key for this session.
func (g *SessionKeyGenerator) Next() alloc.RowKey {
	return alloc.RowKey(fmt.Sprintf("%s#%d", g.session, g.seq.Add(1)))
}

// FixedKeyGenerator returns predetermined keys for testing.
//
// This enables deterministic tests and golden outcome comparison: tests can
// provide a known key sequence and address rows by exact key.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedKeyGenerator struct {
	mu   sync.Mutex
	keys []alloc.RowKey
	idx  int
}

// NewFixedKeyGenerator creates a generator that returns keys in order.
//
// Example:
//
//	gen := NewFixedKeyGenerator("row-1", "row-2")
//	gen.Next() // "row-1"
//	gen.Next() // "row-2"
//	gen.Next() // panic: all keys exhausted
func NewFixedKeyGenerator(keys ...alloc.RowKey) *FixedKeyGenerator {
	return &FixedKeyGenerator{keys: keys}
}

// Next returns the next predetermined key.
//
// Panics when all keys are consumed. This is a fail-fast approach: a test
// that adds more rows than it planned for is a broken test.
func (g *FixedKeyGenerator) Next() alloc.RowKey {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.keys) {
		panic(fmt.Sprintf("FixedKeyGenerator: all %d keys exhausted", len(g.keys)))
	}
	key := g.keys[g.idx]
	g.idx++
	return key
}
