package game

import "sync"

// Room is one isolated match instance: its own player set + loot pool.
// All access goes through the mutex; the relay layer never touches fields directly.
type Room struct {
	ID string

	mu      sync.RWMutex
	players map[string]*Player
	loot    []LootItem
}

func newRoom(id string) *Room {
	return &Room{
		ID:      id,
		players: make(map[string]*Player),
		loot:    generateLoot(),
	}
}

// Join adds the player to the room
func (r *Room) Join(p *Player) {
	r.mu.Lock()
	r.players[p.ID] = p
	r.mu.Unlock()
}

// Leave removes the player, reporting whether they were present
func (r *Room) Leave(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return false
	}
	delete(r.players, id)
	return true
}

// Move overwrites the player's last reported position/rotation.
// The values are client-authoritative; nothing is validated here.
func (r *Room) Move(id string, x, y, z, rotation float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.X, p.Y, p.Z = x, y, z
	p.Rotation = rotation
	return true
}

// Hit applies fixed damage to the target. hp is the value after damage
// (may be <= 0); respawned reports a threshold crossing, in which case the
// player is already back at the respawn point with full health.
func (r *Room) Hit(targetID string) (hp int, respawned bool, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, found := r.players[targetID]
	if !found {
		return 0, false, false
	}
	p.HP -= HitDamage
	hp = p.HP
	if p.HP <= 0 {
		p.HP = MaxHP
		p.X, p.Y, p.Z = RespawnX, RespawnY, RespawnZ
		respawned = true
	}
	return hp, respawned, true
}

// TakeLoot removes the item by id. A second take of the same id is a no-op
// and returns false, so no duplicate pickup is ever announced.
func (r *Room) TakeLoot(lootID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.loot {
		if item.ID == lootID {
			r.loot = append(r.loot[:i], r.loot[i+1:]...)
			return true
		}
	}
	return false
}

// Player returns a copy of one player's record
func (r *Room) Player(id string) (Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// Players returns a copy of the full player mapping (sent on joinSuccess)
func (r *Room) Players() map[string]Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Player, len(r.players))
	for id, p := range r.players {
		out[id] = *p
	}
	return out
}

// Loot returns a copy of the remaining loot list
func (r *Room) Loot() []LootItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LootItem, len(r.loot))
	copy(out, r.loot)
	return out
}

// PlayerCount returns the current number of players
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
