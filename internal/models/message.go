package models

import "gorm.io/gorm"

// SupportMessage represents a saved chat message in the PostgreSQL database.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt
// fields; CreatedAt defines the room's message ordering.
type SupportMessage struct {
	gorm.Model

	// RoomID is the identifier of the support room the message was sent to.
	RoomID string `gorm:"type:uuid;not null;index:idx_room_msg"`
	// SenderID is the participant who sent the message.
	SenderID string `gorm:"type:uuid;not null;index:idx_room_msg"`
	// Content is the message text.
	Content string `gorm:"type:text;not null"`
}
