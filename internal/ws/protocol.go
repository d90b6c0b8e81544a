package ws

import (
	"encoding/json"

	"arena-relay/internal/game"
)

// Client -> server events. Dispatch is a closed switch over these; anything
// else is counted and dropped.
const (
	EvRegister     = "register"
	EvLogin        = "login"
	EvCreateRoom   = "createRoom"
	EvJoinRoom     = "joinRoom"
	EvRefreshRooms = "refreshRooms"
	EvPlayerMove   = "playerMove"
	EvPlayerShoot  = "playerShoot"
	EvPlayerHit    = "playerHit"
	EvPickupLoot   = "pickupLoot"
)

// Server -> client events
const (
	EvAuthError        = "authError"
	EvAuthSuccess      = "authSuccess"
	EvRoomError        = "roomError"
	EvRoomList         = "roomList"
	EvJoinSuccess      = "joinSuccess"
	EvNewPlayer        = "newPlayer"
	EvPlayerMoved      = "playerMoved"
	EvPlayerDisconnect = "playerDisconnect"
	EvRemoteShoot      = "remoteShoot"
	EvUpdateHealth     = "updateHealth"
	EvPlayerRespawn    = "playerRespawn"
	EvLootTaken        = "lootTaken"
)

// knownEvents is the full inbound protocol. Frames outside it are dropped
// before any per-event bookkeeping, so clients cannot mint new metric label
// values by inventing event names.
var knownEvents = map[string]struct{}{
	EvRegister:     {},
	EvLogin:        {},
	EvCreateRoom:   {},
	EvJoinRoom:     {},
	EvRefreshRooms: {},
	EvPlayerMove:   {},
	EvPlayerShoot:  {},
	EvPlayerHit:    {},
	EvPickupLoot:   {},
}

func knownEvent(name string) bool {
	_, ok := knownEvents[name]
	return ok
}

// Envelope is the wire frame: event name + raw payload
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode marshals an outbound frame. Payloads are our own types, so a
// marshal error here is a programming bug; it returns nil and the caller
// drops the frame.
func Encode(event string, payload any) []byte {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil
		}
		data = b
	}
	return EncodeRaw(event, data)
}

// EncodeRaw wraps already-marshaled payload bytes in an envelope frame,
// letting broadcast paths marshal a payload once and reuse it for the bus
func EncodeRaw(event string, data json.RawMessage) []byte {
	b, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return nil
	}
	return b
}

// Credentials carries register/login payloads
type Credentials struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

// MoveData is the client's per-frame position report. Fields are trusted
// as-is: no bounds or speed checks anywhere.
type MoveData struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
}

// MovedData relays a move to the rest of the room
type MovedData struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
}

// JoinSuccess is the caller's view of the room at join time
type JoinSuccess struct {
	RoomID     string                 `json:"roomId"`
	InitialPos game.Player            `json:"initialPos"`
	Players    map[string]game.Player `json:"players"`
	Loot       []game.LootItem        `json:"loot"`
}

// HealthUpdate broadcasts a target's hp after damage
type HealthUpdate struct {
	ID string `json:"id"`
	HP int    `json:"hp"`
}

// RespawnData broadcasts an elimination reset
type RespawnData struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}
