package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrRoomNotFound = errors.New("room not found")
)

// RoomInfo is the public room listing entry
type RoomInfo struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Registry holds all live rooms. It is constructed once at process start and
// injected into every consumer; rooms exist only for the process lifetime.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create makes a new room under the given name, or a generated
// Room_<n> name when empty. Duplicate names fail with ErrRoomExists.
func (g *Registry) Create(name string) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if name == "" {
		name = fmt.Sprintf("Room_%d", rand.Intn(1000))
	}
	if _, exists := g.rooms[name]; exists {
		return nil, ErrRoomExists
	}
	r := newRoom(name)
	g.rooms[name] = r
	return r, nil
}

// Get returns the room by id
func (g *Registry) Get(id string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[id]
	return r, ok
}

// Join adds the player to the named room and returns it.
// A missing room is ErrRoomNotFound; callers treat that as a silent no-op.
// Lookup and add happen under the registry lock so a concurrent Leave of
// the last occupant can never delete the room out from under the joiner.
func (g *Registry) Join(roomID string, p *Player) (*Room, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	r.Join(p)
	return r, nil
}

// Leave removes the player from the room. Empty rooms are deleted
// immediately; deleted reports whether that happened.
func (g *Registry) Leave(roomID, playerID string) (removed, deleted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[roomID]
	if !ok {
		return false, false
	}
	removed = r.Leave(playerID)
	if removed && r.PlayerCount() == 0 {
		delete(g.rooms, roomID)
		deleted = true
	}
	return removed, deleted
}

// List returns every room with its player count
func (g *Registry) List() []RoomInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]RoomInfo, 0, len(g.rooms))
	for id, r := range g.rooms {
		out = append(out, RoomInfo{ID: id, Count: r.PlayerCount()})
	}
	return out
}

// Count returns the number of live rooms
func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
