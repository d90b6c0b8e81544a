package httpx

import (
	"net/http"

	"arena-relay/internal/game"
)

// RoomsAPI exposes the lobby listing over plain HTTP, mirroring the
// refreshRooms websocket event
type RoomsAPI struct{ Registry *game.Registry }

// List returns every room with its player count
func (a *RoomsAPI) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, a.Registry.List())
}
