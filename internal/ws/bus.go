package ws

import (
	"context"
	"encoding/json"
)

// BusMessage is one relayed room event crossing instance boundaries.
// Origin is the publishing instance id, used to skip our own messages.
type BusMessage struct {
	RoomID string          `json:"roomId"`
	Origin string          `json:"origin"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Bus fans room events out to peer instances. The relay works unchanged
// with the no-op bus on a single instance.
type Bus interface {
	Publish(ctx context.Context, m BusMessage) error
	Subscribe(ctx context.Context, fn func(BusMessage))
	Close()
}

// NoopBus is the single-instance default
type NoopBus struct{}

func (NoopBus) Publish(context.Context, BusMessage) error  { return nil }
func (NoopBus) Subscribe(context.Context, func(BusMessage)) {}
func (NoopBus) Close()                                      {}
