package game

import (
	"strings"
	"testing"
)

func TestNewPlayerSpawnBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		p := NewPlayer("p1", "alice")
		if p.X < -spawnRange || p.X > spawnRange {
			t.Fatalf("spawn x out of bounds: %f", p.X)
		}
		if p.Y != spawnY || p.Z != 0 {
			t.Fatalf("unexpected spawn y/z: %f/%f", p.Y, p.Z)
		}
		if p.Rotation != 0 {
			t.Fatalf("unexpected spawn rotation: %f", p.Rotation)
		}
		if p.HP != MaxHP {
			t.Fatalf("expected hp %d, got %d", MaxHP, p.HP)
		}
	}
}

func TestRoomHitDamageAndRespawn(t *testing.T) {
	r := newRoom("arena")
	r.Join(NewPlayer("p1", "alice"))

	// 9 hits take hp from 100 down to 10, no respawn yet
	for i := 1; i <= 9; i++ {
		hp, respawned, ok := r.Hit("p1")
		if !ok {
			t.Fatalf("hit %d: target not found", i)
		}
		if respawned {
			t.Fatalf("hit %d: unexpected respawn at hp %d", i, hp)
		}
		want := MaxHP - i*HitDamage
		if hp != want {
			t.Fatalf("hit %d: hp = %d, want %d", i, hp, want)
		}
	}

	// 10th hit crosses the threshold exactly once
	hp, respawned, ok := r.Hit("p1")
	if !ok || !respawned {
		t.Fatalf("expected respawn on 10th hit, got ok=%v respawned=%v", ok, respawned)
	}
	if hp != 0 {
		t.Fatalf("reported hp after lethal hit = %d, want 0", hp)
	}

	p, _ := r.Player("p1")
	if p.HP != MaxHP {
		t.Fatalf("hp after respawn = %d, want %d", p.HP, MaxHP)
	}
	if p.X != RespawnX || p.Y != RespawnY || p.Z != RespawnZ {
		t.Fatalf("position after respawn = (%f,%f,%f), want (%d,%d,%d)",
			p.X, p.Y, p.Z, RespawnX, RespawnY, RespawnZ)
	}

	// The next hit starts a fresh cycle, no second respawn
	hp, respawned, _ = r.Hit("p1")
	if respawned || hp != MaxHP-HitDamage {
		t.Fatalf("after respawn: hp=%d respawned=%v", hp, respawned)
	}
}

func TestRoomHitUnknownTarget(t *testing.T) {
	r := newRoom("arena")
	if _, _, ok := r.Hit("ghost"); ok {
		t.Fatal("expected ok=false for unknown target")
	}
}

func TestRoomMoveOverwritesState(t *testing.T) {
	r := newRoom("arena")
	r.Join(NewPlayer("p1", "alice"))

	if !r.Move("p1", 5, 10, 5, 1.5) {
		t.Fatal("move rejected for known player")
	}
	p, _ := r.Player("p1")
	if p.X != 5 || p.Y != 10 || p.Z != 5 || p.Rotation != 1.5 {
		t.Fatalf("state after move: %+v", p)
	}

	if r.Move("ghost", 1, 2, 3, 0) {
		t.Fatal("move accepted for unknown player")
	}
}

func TestRoomLootPoolAndPickup(t *testing.T) {
	r := newRoom("arena")
	loot := r.Loot()
	if len(loot) != lootPerRoom {
		t.Fatalf("initial loot = %d items, want %d", len(loot), lootPerRoom)
	}
	seen := map[string]bool{}
	for _, item := range loot {
		if seen[item.ID] {
			t.Fatalf("duplicate loot id %q", item.ID)
		}
		seen[item.ID] = true
		if !strings.HasPrefix(item.ID, "loot_") {
			t.Fatalf("unexpected loot id format %q", item.ID)
		}
		if item.Type != LootTypeRifle {
			t.Fatalf("unexpected loot type %q", item.Type)
		}
		if item.X < -lootRange || item.X > lootRange || item.Z < -lootRange || item.Z > lootRange {
			t.Fatalf("loot out of bounds: %+v", item)
		}
	}

	id := loot[3].ID
	if !r.TakeLoot(id) {
		t.Fatal("first pickup failed")
	}
	if r.TakeLoot(id) {
		t.Fatal("second pickup of the same id should be a no-op")
	}
	if len(r.Loot()) != lootPerRoom-1 {
		t.Fatalf("loot count after pickup = %d", len(r.Loot()))
	}
}

func TestRoomLeave(t *testing.T) {
	r := newRoom("arena")
	r.Join(NewPlayer("p1", "alice"))
	if !r.Leave("p1") {
		t.Fatal("leave failed for present player")
	}
	if r.Leave("p1") {
		t.Fatal("second leave should report absence")
	}
	if r.PlayerCount() != 0 {
		t.Fatalf("player count = %d, want 0", r.PlayerCount())
	}
}
