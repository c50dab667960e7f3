package domain

import (
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid/v2"
)

// LoadIDs issues lexically sortable identifiers for word-list loads and
// imports. IDs from one generator are strictly increasing.
type LoadIDs struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewLoadIDs() *LoadIDs {
	return &LoadIDs{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// Next returns a new ID.
func (g *LoadIDs) Next() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Now(), g.entropy)
}
