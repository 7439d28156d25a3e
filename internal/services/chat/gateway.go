package chat

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Session is what the gateway needs from a transport connection: a stable
// opaque ID and a way to send a private frame back to this client only.
type Session interface {
	ID() string
	Send(event string, body any) error
}

// Bus is the room-addressed broadcast primitive. Join/Leave manage the
// session's subscription to a room; Publish fans an event out to every
// current subscriber of the room, the publisher included.
type Bus interface {
	Join(room string, s Session)
	Leave(room string, s Session)
	Publish(ctx context.Context, room, event string, body any) error
}

// EventKind enumerates the connection events the gateway reacts to.
type EventKind int

const (
	KindConnect EventKind = iota
	KindDisconnect
	KindJoin
	KindChat
	KindPing
)

// Event is one tagged connection event. Only the fields relevant to the
// Kind are set.
type Event struct {
	Kind     EventKind
	Room     string
	Nickname string
	Text     string
	Reason   string // disconnect only
}

// IRoomDirectory is the read side consumed by the HTTP layer.
type IRoomDirectory interface {
	RoomCounts() map[string]int
}

// Gateway is the session state machine: it owns the registry and tracker and
// mutates them in reaction to connection events, issuing broadcasts through
// the Bus. One mutex serialises all events, so every handler runs to
// completion before the next one starts and no finer locking is needed.
type Gateway struct {
	mu      sync.Mutex
	reg     *Registry
	tracker *Tracker
	bus     Bus
	maxLen  int
}

func NewGateway(bus Bus, maxMessageLen int) *Gateway {
	return &Gateway{
		reg:     NewRegistry(),
		tracker: NewTracker(),
		bus:     bus,
		maxLen:  maxMessageLen,
	}
}

// Handle dispatches a single event. Errors are transport write failures; the
// gateway's own state is always left consistent.
func (g *Gateway) Handle(ctx context.Context, s Session, ev Event) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch ev.Kind {
	case KindConnect:
		// Registry entry is created lazily on first join.
		zap.L().Info("chat.connect", zap.String("sid", s.ID()))
		return nil
	case KindJoin:
		return g.join(ctx, s, ev.Room, ev.Nickname)
	case KindChat:
		return g.chat(ctx, s, ev.Room, ev.Text)
	case KindPing:
		return s.Send(EventPong, nil)
	case KindDisconnect:
		g.disconnect(ctx, s, ev.Reason)
		return nil
	}
	return fmt.Errorf("unknown event kind %d", ev.Kind)
}

func (g *Gateway) join(ctx context.Context, s Session, room, nickname string) error {
	id := s.ID()
	zap.L().Info("chat.join",
		zap.String("sid", id),
		zap.String("room", room),
		zap.String("nickname", nickname),
	)

	// Leave-cleanup only runs when a nickname is already recorded: a
	// connection's very first join never counts as leaving anything. The
	// current room is excluded so a re-join stays a no-op re-subscribe.
	if g.reg.Nickname(id) != "" {
		for _, prev := range g.reg.Rooms(id) {
			if prev == room {
				continue
			}
			g.bus.Leave(prev, s)
			g.reg.RemoveRoom(id, prev)
			g.tracker.Adjust(prev, -1)
		}
	}

	if !g.reg.Member(id, room) {
		g.bus.Join(room, s)
		g.reg.AddRoom(id, room)
		g.tracker.Adjust(room, +1)
	}
	g.reg.SetNickname(id, nickname)

	if err := s.Send(EventJoined, JoinedPayload{Room: room}); err != nil {
		zap.L().Warn("chat.join_ack", zap.Error(err))
	}
	return g.bus.Publish(ctx, room, EventSystem, fmt.Sprintf(joinNoticeFmt, nickname))
}

func (g *Gateway) chat(ctx context.Context, s Session, room, text string) error {
	nickname := g.reg.Nickname(s.ID())
	if nickname == "" {
		nickname = FallbackNickname
	}

	if utf8.RuneCountInString(text) > g.maxLen {
		return s.Send(EventSystem, fmt.Sprintf(tooLongNoticeFmt, g.maxLen))
	}

	// Membership is deliberately not checked: any connection can publish
	// into any room name. Known trust-boundary gap, acceptable for the
	// single-tenant demo model this relay serves.
	return g.bus.Publish(ctx, room, EventChat, ChatPayload{
		Nickname: nickname,
		Text:     text,
		Ts:       time.Now().UnixMilli(),
	})
}

func (g *Gateway) disconnect(ctx context.Context, s Session, reason string) {
	id := s.ID()
	zap.L().Info("chat.disconnect", zap.String("sid", id), zap.String("reason", reason))

	// Guarded by the nickname presence check: a connection that never
	// joined has nothing to announce or unwind.
	if nickname := g.reg.Nickname(id); nickname != "" {
		for _, room := range g.reg.Rooms(id) {
			if err := g.bus.Publish(ctx, room, EventSystem, fmt.Sprintf(leaveNoticeFmt, nickname)); err != nil {
				zap.L().Warn("chat.leave_notice", zap.Error(err))
			}
			g.bus.Leave(room, s)
			g.tracker.Adjust(room, -1)
		}
	}
	g.reg.Remove(id)
}

// RoomCounts snapshots current room occupancy for the REST surface.
func (g *Gateway) RoomCounts() map[string]int { return g.tracker.Snapshot() }
