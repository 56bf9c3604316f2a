package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates predictable entity ids for tests.
//
// Production code assigns UUIDv7 ids; golden tests need ids that are
// byte-identical across runs. SequentialIDs yields "PREFIX-1",
// "PREFIX-2", ... in call order.
//
// Thread-safety: Next is safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDs creates a generator with the given prefix.
// An empty prefix defaults to "test".
func NewSequentialIDs(prefix string) *SequentialIDs {
	if prefix == "" {
		prefix = "test"
	}
	return &SequentialIDs{prefix: prefix}
}

// Next returns the next id in sequence.
func (g *SequentialIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
