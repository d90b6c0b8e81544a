package httpx

import (
	"net/http"

	"log/slog"

	"arena-relay/internal/app"
	"arena-relay/internal/game"
	"arena-relay/internal/store"
	"arena-relay/internal/ws"
	"arena-relay/pkg/auth"
	"arena-relay/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, logger *slog.Logger, hub *ws.Hub, users store.Users, reg *game.Registry) http.Handler {
	j := auth.New(cfg.JWTSecret)
	mw := NewMiddleware(cfg, j)
	authAPI := &AuthAPI{Users: users, JWT: j}
	roomsAPI := &RoomsAPI{Registry: reg}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint (game relay)
	mux.Handle("/ws", http.HandlerFunc(hub.ServeWS))

	// Auth endpoints, rate limited against credential guessing
	mux.Handle("/api/auth/register", mw.Limit(http.HandlerFunc(authAPI.Register)))
	mux.Handle("/api/auth/login", mw.Limit(http.HandlerFunc(authAPI.Login)))
	mux.Handle("/api/auth/me", mw.Auth(http.HandlerFunc(authAPI.Me)))

	// Lobby listing (JWT-protected)
	mux.Handle("/api/rooms", mw.Auth(http.HandlerFunc(roomsAPI.List)))

	// Static client assets
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	logger.Debug("router.ready", "static", cfg.StaticDir)
	return mw.Wrap(mux)
}
