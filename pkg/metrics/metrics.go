package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Connections counts websocket upgrades over the process lifetime
	Connections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_connections_total",
		Help: "Accepted websocket connections.",
	})

	// Events counts inbound client events by name
	Events = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_events_total",
		Help: "Inbound client events by event name.",
	}, []string{"event"})

	// UnknownEvents counts frames with an event name outside the protocol
	UnknownEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_unknown_events_total",
		Help: "Dropped frames with an unrecognized event name.",
	})

	// ActiveRooms tracks live rooms on this instance
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_active_rooms",
		Help: "Rooms currently registered.",
	})

	// ActivePlayers tracks players currently inside a room
	ActivePlayers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "relay_active_players",
		Help: "Players currently joined to a room.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
