package ws

import (
	"sync"
)

// Hub keeps connection sets per room name.
type Hub struct {
	rooms sync.Map // room name -> *room
}

func NewHub() *Hub { return &Hub{} }

// Broadcast is called by the redis subscription loop.
func (h *Hub) Broadcast(roomName string, msg []byte) {
	if v, ok := h.rooms.Load(roomName); ok {
		v.(*room).broadcast(msg)
	}
}

func (h *Hub) Join(roomName string, c sink) {
	r, _ := h.rooms.LoadOrStore(roomName, newRoom())
	r.(*room).add(c)
}

// Leave drops the connection from the room; the last leaver takes the room
// entry with it. Membership changes are serialised by the gateway, so the
// check-then-delete cannot race a concurrent Join.
func (h *Hub) Leave(roomName string, c sink) {
	if v, ok := h.rooms.Load(roomName); ok {
		if v.(*room).remove(c) == 0 {
			h.rooms.Delete(roomName)
		}
	}
}
