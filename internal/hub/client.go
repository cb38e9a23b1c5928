package hub

import "unicare/backend/internal/models"

// Client is the interface for any type of live connection to a room. It
// abstracts the underlying transport so the hub can manage clients uniformly.
type Client interface {
	// GetUserID returns the unique identifier for the user behind the client.
	GetUserID() string
	// GetRole returns the user's role as carried in their session token.
	GetRole() string
	// GetRoomID returns the room this connection is attached to.
	GetRoomID() string

	// GetSendChannel returns the channel the hub writes events destined for
	// this client to. It is a send-only channel.
	GetSendChannel() chan<- models.RoomEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's connection and associated channels.
	Close()
}
