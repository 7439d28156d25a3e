package chat

// Registry maps a session ID to its connection state: the recorded nickname
// and the set of joined rooms. Entries are created lazily on first use and
// removed on disconnect. Access is serialised by the Gateway mutex; the
// Registry itself carries no lock.
type Registry struct {
	conns map[string]*connEntry
}

type connEntry struct {
	nickname string
	rooms    map[string]struct{}
}

func NewRegistry() *Registry { return &Registry{conns: make(map[string]*connEntry)} }

func (r *Registry) entry(id string) *connEntry {
	e, ok := r.conns[id]
	if !ok {
		e = &connEntry{rooms: make(map[string]struct{})}
		r.conns[id] = e
	}
	return e
}

// SetNickname overwrites any prior nickname, last write wins.
func (r *Registry) SetNickname(id, name string) { r.entry(id).nickname = name }

// Nickname returns the recorded nickname, or "" when none has been set.
func (r *Registry) Nickname(id string) string {
	if e, ok := r.conns[id]; ok {
		return e.nickname
	}
	return ""
}

func (r *Registry) AddRoom(id, room string) { r.entry(id).rooms[room] = struct{}{} }

// RemoveRoom is a plain delete: an unknown id must not grow the map.
func (r *Registry) RemoveRoom(id, room string) {
	if e, ok := r.conns[id]; ok {
		delete(e.rooms, room)
	}
}

func (r *Registry) Member(id, room string) bool {
	e, ok := r.conns[id]
	if !ok {
		return false
	}
	_, ok = e.rooms[room]
	return ok
}

// Rooms returns a copy of the joined room set.
func (r *Registry) Rooms(id string) []string {
	e, ok := r.conns[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(e.rooms))
	for room := range e.rooms {
		out = append(out, room)
	}
	return out
}

// Remove drops the whole entry; called once on disconnect.
func (r *Registry) Remove(id string) { delete(r.conns, id) }
