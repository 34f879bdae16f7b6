// Package latest orders concurrent requests so that only the newest one per key
// is applied. Keys are usually browser id plus widget name.
package latest

import "sync"

// Ticket identifies one request within a key.
type Ticket struct {
	Key string
	Seq uint64
}

// Guard hands out tickets. Sequence numbers are never reused across keys, so a
// released key cannot make an old ticket current again.
type Guard struct {
	mu   sync.Mutex
	next uint64
	seqs map[string]uint64
}

// NewGuard returns an empty guard.
func NewGuard() *Guard {
	return &Guard{seqs: make(map[string]uint64)}
}

// Begin records a new request for key. Every earlier ticket of key becomes stale.
func (g *Guard) Begin(key string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	g.seqs[key] = g.next
	return Ticket{Key: key, Seq: g.next}
}

// IsCurrent reports whether t is still the newest ticket of its key.
func (g *Guard) IsCurrent(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seqs[t.Key] == t.Seq
}

// Done releases the key when t is still current, keeping the map bounded.
func (g *Guard) Done(t Ticket) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seqs[t.Key] == t.Seq {
		delete(g.seqs, t.Key)
	}
}
