package ws

import (
	"chatrelaygo/internal/services/chat"
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBus is the room-addressed broadcast primitive. Publishes go through
// redis pub/sub ("room:<name>:events"), so broadcasts reach the rooms of
// every relay instance, not just the local hub. A refcounted subscription
// manager guarantees **exactly one** redis subscription per occupied room per
// process, no matter how many local clients sit in the same room.
type RedisBus struct {
	rdb  *redis.Client
	hub  *Hub
	mu   sync.Mutex
	subs map[string]*subEntry // room name -> subscription data
}

type subEntry struct {
	refCnt int
	cancel context.CancelFunc
}

func NewRedisBus(rdb *redis.Client, hub *Hub) *RedisBus {
	return &RedisBus{
		rdb:  rdb,
		hub:  hub,
		subs: make(map[string]*subEntry),
	}
}

func roomChannel(room string) string { return "room:" + room + ":events" }

// Join subscribes the session to the room on the local hub and makes sure a
// redis subscription for that room exists.
func (b *RedisBus) Join(room string, s chat.Session) {
	c, ok := s.(sink)
	if !ok {
		zap.L().Warn("ws.bus_join_unroutable", zap.String("sid", s.ID()))
		return
	}
	b.hub.Join(room, c)
	b.subscribe(room)
}

// Leave mirrors Join: a session that never subscribed (failed sink cast)
// must not eat a refcount either.
func (b *RedisBus) Leave(room string, s chat.Session) {
	c, ok := s.(sink)
	if !ok {
		zap.L().Warn("ws.bus_leave_unroutable", zap.String("sid", s.ID()))
		return
	}
	b.hub.Leave(room, c)
	b.unsubscribe(room)
}

// Publish marshals the envelope and hands it to redis; delivery to the local
// room goes through the subscription loop like everyone else's.
func (b *RedisBus) Publish(ctx context.Context, room, event string, body any) error {
	env := map[string]any{"event": event}
	if body != nil {
		env["body"] = body
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, roomChannel(room), payload).Err()
}

// subscribe ensures the process is subscribed to the room's channel;
// subsequent calls for the same room only increment the ref-counter.
func (b *RedisBus) subscribe(room string) {
	b.mu.Lock()
	if e, ok := b.subs[room]; ok {
		e.refCnt++
		b.mu.Unlock()
		return
	}

	// First consumer → create the redis SUB and fan-out loop.
	ctx, cancel := context.WithCancel(context.Background())
	ps := b.rdb.Subscribe(ctx, roomChannel(room))

	b.subs[room] = &subEntry{refCnt: 1, cancel: cancel}
	b.mu.Unlock()

	go func() {
		defer ps.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ps.Channel():
				if !ok { // redis connection closed
					return
				}
				// The payload already is a full envelope; forward as-is.
				b.hub.Broadcast(room, []byte(m.Payload))
			}
		}
	}()
}

// unsubscribe decrements the ref-counter and tears the redis SUB down when
// the last local client leaves the room.
func (b *RedisBus) unsubscribe(room string) {
	b.mu.Lock()
	e, ok := b.subs[room]
	if !ok {
		b.mu.Unlock()
		return
	}
	e.refCnt--
	if e.refCnt > 0 {
		b.mu.Unlock()
		return
	}
	delete(b.subs, room)
	b.mu.Unlock()

	// Outside the lock → stop the fan-out goroutine.
	e.cancel()
}
