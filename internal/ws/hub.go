package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"log/slog"

	"arena-relay/internal/game"
	"arena-relay/internal/store"
	"arena-relay/pkg/auth"
	"arena-relay/pkg/metrics"
)

// session is one connected client. It walks Connected -> Authenticated ->
// InRoom and never back; auth state lives only here and dies with the socket.
type session struct {
	id       string
	username string // empty until register/login succeeds
	roomID   string // empty until joinRoom succeeds
	out      chan []byte
}

func newSession() *session {
	return &session{id: uuid.NewString(), out: make(chan []byte, 256)}
}

func (s *session) authed() bool { return s.username != "" }

// Hub owns every live session and dispatches their events against the
// room registry and user store.
type Hub struct {
	log        *slog.Logger
	users      store.Users
	reg        *game.Registry
	bus        Bus
	jwt        *auth.JWT
	instanceID string
	roster     *roster
}

// NewHub wires the relay together; all collaborators are injected
func NewHub(log *slog.Logger, users store.Users, reg *game.Registry, bus Bus, jwt *auth.JWT) *Hub {
	return &Hub{
		log:        log,
		users:      users,
		reg:        reg,
		bus:        bus,
		jwt:        jwt,
		instanceID: uuid.NewString(),
		roster:     newRoster(),
	}
}

// Run forwards bus messages from peer instances to local sessions
func (h *Hub) Run(ctx context.Context) {
	go h.bus.Subscribe(ctx, func(m BusMessage) {
		if m.Origin == h.instanceID {
			return
		}
		b, err := json.Marshal(Envelope{Event: m.Event, Data: m.Data})
		if err != nil {
			return
		}
		h.roster.broadcast(m.RoomID, "", b)
	})
	<-ctx.Done()
}

// ServeWS handles a new /ws connection. An optional ?token= from the HTTP
// auth API pre-authenticates the session so the client can skip the ws login.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	s := newSession()
	if tok := r.URL.Query().Get("token"); tok != "" {
		if uname, err := h.jwt.Verify(tok); err == nil {
			s.username = uname
		}
	}
	metrics.Connections.Inc()
	h.log.Debug("ws.connect", "sid", s.id, "user", s.username)

	go conn.WriteLoop(ctx, s.out)

	for {
		payload, ok := conn.Read(ctx)
		if !ok {
			break
		}
		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			continue // undecodable frame, drop it
		}
		h.handleEvent(ctx, s, env)
	}

	h.disconnect(ctx, s)
	_ = conn.Close()
}

// handleEvent dispatches one inbound frame. The event set is closed;
// anything unknown is counted under a single metric and dropped, so the
// per-event counter only ever carries protocol label values.
func (h *Hub) handleEvent(ctx context.Context, s *session, env Envelope) {
	if !knownEvent(env.Event) {
		metrics.UnknownEvents.Inc()
		h.log.Debug("ws.event.unknown", "sid", s.id, "event", env.Event)
		return
	}
	metrics.Events.WithLabelValues(env.Event).Inc()

	switch env.Event {
	case EvRegister:
		h.handleAuth(ctx, s, env.Data, true)
	case EvLogin:
		h.handleAuth(ctx, s, env.Data, false)
	case EvCreateRoom:
		h.handleCreateRoom(s, env.Data)
	case EvJoinRoom:
		h.handleJoinRoom(ctx, s, env.Data)
	case EvRefreshRooms:
		h.send(s, EvRoomList, h.reg.List())
	case EvPlayerMove:
		h.handleMove(ctx, s, env.Data)
	case EvPlayerShoot:
		h.broadcastRoom(ctx, s.roomID, s.id, EvRemoteShoot, s.id)
	case EvPlayerHit:
		h.handleHit(ctx, s, env.Data)
	case EvPickupLoot:
		h.handlePickup(ctx, s, env.Data)
	}
}

// handleAuth serves both register and login: a successful register
// authenticates the session exactly like a login would
func (h *Hub) handleAuth(ctx context.Context, s *session, data json.RawMessage, isRegister bool) {
	var creds Credentials
	if len(data) > 0 {
		_ = json.Unmarshal(data, &creds)
	}

	var u store.User
	var err error
	if isRegister {
		u, err = h.users.Register(ctx, creds.User, creds.Pass)
	} else {
		u, err = h.users.Authenticate(ctx, creds.User, creds.Pass)
	}
	if err != nil {
		h.send(s, EvAuthError, err.Error())
		return
	}

	s.username = u.Username
	h.log.Info("ws.auth", "sid", s.id, "user", s.username, "register", isRegister)
	h.send(s, EvAuthSuccess, s.username)
	h.send(s, EvRoomList, h.reg.List())
}

func (h *Hub) handleCreateRoom(s *session, data json.RawMessage) {
	if !s.authed() {
		h.send(s, EvAuthError, "login required")
		return
	}
	var name string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &name)
	}
	room, err := h.reg.Create(name)
	if err != nil {
		h.send(s, EvRoomError, err.Error())
		return
	}
	metrics.ActiveRooms.Set(float64(h.reg.Count()))
	h.log.Info("room.created", "room", room.ID, "by", s.username)
	h.send(s, EvRoomList, h.reg.List())
}

func (h *Hub) handleJoinRoom(ctx context.Context, s *session, data json.RawMessage) {
	if !s.authed() {
		h.send(s, EvAuthError, "login required")
		return
	}
	var roomID string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &roomID)
	}
	if roomID == "" || roomID == s.roomID {
		return
	}

	// A session holds at most one room; switching rooms leaves the old one
	if s.roomID != "" {
		h.leaveRoom(ctx, s)
	}

	p := game.NewPlayer(s.id, s.username)
	room, err := h.reg.Join(roomID, p)
	if err != nil {
		// Unknown room id: silent no-op, no joinSuccess
		h.log.Debug("room.join.miss", "sid", s.id, "room", roomID)
		return
	}

	s.roomID = roomID
	h.roster.join(roomID, s)
	metrics.ActivePlayers.Inc()
	h.log.Info("room.join", "room", roomID, "sid", s.id, "user", s.username)

	h.send(s, EvJoinSuccess, JoinSuccess{
		RoomID:     roomID,
		InitialPos: *p,
		Players:    room.Players(),
		Loot:       room.Loot(),
	})
	h.broadcastRoom(ctx, roomID, s.id, EvNewPlayer, *p)
}

func (h *Hub) handleMove(ctx context.Context, s *session, data json.RawMessage) {
	if s.roomID == "" {
		return
	}
	var mv MoveData
	if len(data) > 0 {
		_ = json.Unmarshal(data, &mv)
	}
	room, ok := h.reg.Get(s.roomID)
	if !ok || !room.Move(s.id, mv.X, mv.Y, mv.Z, mv.Rotation) {
		return
	}
	h.broadcastRoom(ctx, s.roomID, s.id, EvPlayerMoved, MovedData{
		ID: s.id, X: mv.X, Y: mv.Y, Z: mv.Z, Rotation: mv.Rotation,
	})
}

func (h *Hub) handleHit(ctx context.Context, s *session, data json.RawMessage) {
	if s.roomID == "" {
		return
	}
	var targetID string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &targetID)
	}
	room, ok := h.reg.Get(s.roomID)
	if !ok {
		return
	}
	hp, respawned, ok := room.Hit(targetID)
	if !ok {
		return
	}
	// Whole room hears the damage, target included
	h.broadcastRoom(ctx, s.roomID, "", EvUpdateHealth, HealthUpdate{ID: targetID, HP: hp})
	if respawned {
		h.broadcastRoom(ctx, s.roomID, "", EvPlayerRespawn, RespawnData{
			ID: targetID, X: game.RespawnX, Y: game.RespawnY, Z: game.RespawnZ,
		})
	}
}

func (h *Hub) handlePickup(ctx context.Context, s *session, data json.RawMessage) {
	if s.roomID == "" {
		return
	}
	var lootID string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &lootID)
	}
	room, ok := h.reg.Get(s.roomID)
	if !ok || !room.TakeLoot(lootID) {
		return // already taken or unknown id, nothing to announce
	}
	h.broadcastRoom(ctx, s.roomID, "", EvLootTaken, lootID)
}

// disconnect tears the session down; peers hear playerDisconnect exactly once
func (h *Hub) disconnect(ctx context.Context, s *session) {
	if s.roomID != "" {
		h.leaveRoom(ctx, s)
	}
	h.log.Debug("ws.disconnect", "sid", s.id)
}

func (h *Hub) leaveRoom(ctx context.Context, s *session) {
	roomID := s.roomID
	s.roomID = ""
	removed, deleted := h.reg.Leave(roomID, s.id)
	h.roster.leave(roomID, s)
	if removed {
		metrics.ActivePlayers.Dec()
		h.broadcastRoom(ctx, roomID, s.id, EvPlayerDisconnect, s.id)
	}
	if deleted {
		metrics.ActiveRooms.Set(float64(h.reg.Count()))
		h.log.Info("room.deleted", "room", roomID)
	}
}

// send queues a frame for one session without blocking
func (h *Hub) send(s *session, event string, payload any) {
	b := Encode(event, payload)
	if b == nil {
		return
	}
	select {
	case s.out <- b:
	default: // slow client, drop the frame
	}
}

// broadcastRoom fans a room event out locally and over the bus.
// The payload is marshaled once; frame and bus message share the bytes.
func (h *Hub) broadcastRoom(ctx context.Context, roomID, exceptID, event string, payload any) {
	if roomID == "" {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.roster.broadcast(roomID, exceptID, EncodeRaw(event, data))

	if err := h.bus.Publish(ctx, BusMessage{
		RoomID: roomID, Origin: h.instanceID, Event: event, Data: data,
	}); err != nil {
		h.log.Error("bus.publish", "room", roomID, "event", event, "err", err)
	}
}
