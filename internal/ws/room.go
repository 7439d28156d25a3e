package ws

import "sync"

// sink is the write side of a connection as a room sees it.
type sink interface {
	write(mt int, data []byte) error
	close()
}

type room struct {
	mu    sync.RWMutex
	conns map[sink]struct{}
}

func newRoom() *room { return &room{conns: map[sink]struct{}{}} }

func (r *room) add(c sink) {
	r.mu.Lock()
	r.conns[c] = struct{}{}
	r.mu.Unlock()
}

// remove drops the connection without closing it (a connection leaving one
// room may still be live in another). Returns the remaining occupancy.
func (r *room) remove(c sink) int {
	r.mu.Lock()
	delete(r.conns, c)
	n := len(r.conns)
	r.mu.Unlock()
	return n
}

func (r *room) broadcast(msg []byte) {
	// Take a quick snapshot of the current connections
	r.mu.RLock()
	conns := make([]sink, 0, len(r.conns))
	for c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	// Do the I/O outside the lock
	var failed []sink
	for _, c := range conns {
		if err := c.write(textMessage, msg); err != nil {
			failed = append(failed, c)
		}
	}
	for _, c := range failed {
		r.remove(c)
		c.close()
	}
}
