package chat

import "sync"

// Tracker keeps an occupancy count per room, purely for bookkeeping: delivery
// goes through the Bus, not through these counts. A room entry exists only
// while its count is positive; dropping to zero deletes it, which is the only
// cleanup mechanism.
type Tracker struct {
	mu     sync.RWMutex
	counts map[string]int
}

func NewTracker() *Tracker { return &Tracker{counts: make(map[string]int)} }

// Adjust adds delta (±1) to the room's count, clamped at 0. The clamp keeps a
// missed or duplicated event from driving the count negative.
func (t *Tracker) Adjust(room string, delta int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.counts[room] + delta
	if n <= 0 {
		delete(t.counts, room)
		return 0
	}
	t.counts[room] = n
	return n
}

func (t *Tracker) Count(room string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[room]
}

// Snapshot copies the current room -> count mapping.
func (t *Tracker) Snapshot() map[string]int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]int, len(t.counts))
	for room, n := range t.counts {
		out[room] = n
	}
	return out
}
