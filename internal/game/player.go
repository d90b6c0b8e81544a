package game

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// MaxHP is the full health a player spawns and respawns with
	MaxHP = 100
	// HitDamage is subtracted from the target on every playerHit
	HitDamage = 10

	spawnY     = 10
	spawnRange = 25 // spawn x uniform in [-spawnRange, spawnRange]
)

// Respawn point after elimination
const (
	RespawnX = 0
	RespawnY = 10
	RespawnZ = 0
)

// Player is the per-room authoritative record for one connection.
// Position and rotation are whatever the client last reported.
type Player struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
	HP       int     `json:"hp"`
}

// NewPlayer creates a player at a fresh spawn position
func NewPlayer(id, username string) *Player {
	return &Player{
		ID:       id,
		Username: username,
		X:        rand.Float64()*2*spawnRange - spawnRange,
		Y:        spawnY,
		Z:        0,
		Rotation: 0,
		HP:       MaxHP,
	}
}

// LootItem is a pickable world object; first claim wins, no respawn
type LootItem struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	Type string  `json:"type"`
}

const (
	lootPerRoom = 10
	lootRange   = 200 // loot x/z uniform in [-lootRange, lootRange]

	LootTypeRifle = "rifle"
)

// generateLoot builds the initial loot pool for a new room
func generateLoot() []LootItem {
	now := time.Now().UnixMilli()
	items := make([]LootItem, 0, lootPerRoom)
	for i := 0; i < lootPerRoom; i++ {
		items = append(items, LootItem{
			ID:   fmt.Sprintf("loot_%d_%d", i, now),
			X:    rand.Float64()*2*lootRange - lootRange,
			Z:    rand.Float64()*2*lootRange - lootRange,
			Type: LootTypeRifle,
		})
	}
	return items
}
