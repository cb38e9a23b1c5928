package models

// RoomEvent is the wire format pushed to connected clients and published on
// the room's Redis channel.
type RoomEvent struct {
	ID       uint   `json:"id,omitempty"`
	RoomID   string `json:"room_id"`
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
	Type     string `json:"type"` // "message", "system_claimed", "system_closed"
}

// Event types carried in RoomEvent.Type.
const (
	EventMessage      = "message"
	EventRoomClaimed  = "system_claimed"
	EventRoomClosed   = "system_closed"
	EventRoomResolved = "system_resolved"
	EventError        = "error"
)
