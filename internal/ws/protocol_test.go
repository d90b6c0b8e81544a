package ws

import (
	"encoding/json"
	"testing"
)

func TestEncodeRoundtrip(t *testing.T) {
	b := Encode(EvPlayerMoved, MovedData{ID: "p1", X: 1, Y: 2, Z: 3, Rotation: 0.5})
	if b == nil {
		t.Fatal("encode returned nil")
	}

	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Event != EvPlayerMoved {
		t.Fatalf("event = %q", env.Event)
	}
	var mv MovedData
	if err := json.Unmarshal(env.Data, &mv); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if mv.ID != "p1" || mv.X != 1 || mv.Y != 2 || mv.Z != 3 || mv.Rotation != 0.5 {
		t.Fatalf("payload = %+v", mv)
	}
}

func TestEncodeRawMatchesEncode(t *testing.T) {
	payload := HealthUpdate{ID: "p1", HP: 90}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	raw := EncodeRaw(EvUpdateHealth, data)
	full := Encode(EvUpdateHealth, payload)
	if string(raw) != string(full) {
		t.Fatalf("frames differ:\n raw: %s\nfull: %s", raw, full)
	}
}

func TestEncodeNoPayload(t *testing.T) {
	b := Encode(EvRoomList, nil)
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Event != EvRoomList || len(env.Data) != 0 {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestEnvelopeStringPayload(t *testing.T) {
	// createRoom/joinRoom/playerHit/pickupLoot carry bare JSON strings
	raw := []byte(`{"event":"joinRoom","data":"Arena"}`)
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var roomID string
	if err := json.Unmarshal(env.Data, &roomID); err != nil {
		t.Fatalf("decode string payload: %v", err)
	}
	if roomID != "Arena" {
		t.Fatalf("roomID = %q", roomID)
	}
}
