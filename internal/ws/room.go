package ws

import "sync"

// roster tracks which sessions sit in which room on this instance.
// Game state lives in game.Room; this is only the delivery side.
type roster struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*session // roomID -> playerID -> session
}

func newRoster() *roster {
	return &roster{rooms: map[string]map[string]*session{}}
}

// join adds a session under a room
func (r *roster) join(roomID string, s *session) {
	r.mu.Lock()
	m := r.rooms[roomID]
	if m == nil {
		m = map[string]*session{}
		r.rooms[roomID] = m
	}
	m[s.id] = s
	r.mu.Unlock()
}

// leave removes a session from a room, dropping the room entry when empty
func (r *roster) leave(roomID string, s *session) {
	r.mu.Lock()
	if m := r.rooms[roomID]; m != nil {
		delete(m, s.id)
		if len(m) == 0 {
			delete(r.rooms, roomID)
		}
	}
	r.mu.Unlock()
}

// broadcast sends a frame to every session in the room without blocking,
// skipping exceptID when non-empty
func (r *roster) broadcast(roomID, exceptID string, b []byte) {
	if b == nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, s := range r.rooms[roomID] {
		if id == exceptID {
			continue
		}
		select {
		case s.out <- b:
		default: // skip if send buffer is full
		}
	}
}
