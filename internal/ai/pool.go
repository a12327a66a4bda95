package ai

import (
	"errors"
	"strings"
	"sync/atomic"
)

// ErrNoCredentials is returned when the pool is constructed without any
// usable API keys.
var ErrNoCredentials = errors.New("ai: credential pool requires at least one API key")

// Pool holds an ordered list of API credentials and the index of the one
// currently in use. The cursor is shared by all requests and advanced with a
// compare-and-swap so concurrent rotations never clobber each other.
type Pool struct {
	keys   []string
	cursor atomic.Int64
}

// NewPool builds a credential pool, dropping blank entries.
func NewPool(keys []string) (*Pool, error) {
	clean := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) != "" {
			clean = append(clean, strings.TrimSpace(k))
		}
	}
	if len(clean) == 0 {
		return nil, ErrNoCredentials
	}
	return &Pool{keys: clean}, nil
}

// Size returns the number of credentials in the pool.
func (p *Pool) Size() int {
	return len(p.keys)
}

// Current returns the active credential and its index.
func (p *Pool) Current() (string, int) {
	idx := int(p.cursor.Load()) % len(p.keys)
	return p.keys[idx], idx
}

// Advance rotates away from the given index, wrapping around the list. When
// another request already rotated past it, the cursor is left alone so both
// callers end up on the same fresh credential. Returns the new active index.
func (p *Pool) Advance(from int) int {
	next := int64((from + 1) % len(p.keys))
	p.cursor.CompareAndSwap(int64(from), next)
	return int(p.cursor.Load()) % len(p.keys)
}
