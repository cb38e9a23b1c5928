package models

import "time"

// Support room statuses. WAITING is the initial state (student, no supporter);
// ACTIVE is entered when a supporter claims the room; RESOLVED and CLOSED are
// terminal and never reopened.
const (
	RoomStatusWaiting  = "WAITING"
	RoomStatusActive   = "ACTIVE"
	RoomStatusResolved = "RESOLVED"
	RoomStatusClosed   = "CLOSED"
)

// SupportRoom represents a conversation between one student and at most one
// supporter. SupporterID is nil exactly while the room is WAITING; once a
// supporter claims the room it is fixed for the room's lifetime.
type SupportRoom struct {
	// ID is the unique identifier for the room (UUID).
	ID string `gorm:"primaryKey"`
	// StudentID is the student the room belongs to.
	StudentID string `gorm:"type:uuid;not null;index"`
	// SupporterID is the claimed supporter, nil until the room leaves WAITING.
	SupporterID *string `gorm:"type:uuid;index"`
	// Status is the room's lifecycle state.
	Status string `gorm:"not null;default:'WAITING';index"`
	// Topic is the concern area the room was opened for.
	Topic string `gorm:"not null"`
	// CreatedAt is when the room entered WAITING.
	CreatedAt time.Time
	// ClaimedAt is when the room became ACTIVE.
	ClaimedAt *time.Time
	// EndedAt is when the room reached a terminal status.
	EndedAt *time.Time
}

// IsTerminal reports whether the room has reached RESOLVED or CLOSED.
func (r *SupportRoom) IsTerminal() bool {
	return r.Status == RoomStatusResolved || r.Status == RoomStatusClosed
}

// ParticipantIDs returns the room's student and, once claimed, its supporter.
func (r *SupportRoom) ParticipantIDs() []string {
	ids := []string{r.StudentID}
	if r.SupporterID != nil {
		ids = append(ids, *r.SupporterID)
	}
	return ids
}

// IsParticipant reports whether userID is the room's student or its claimed
// supporter.
func (r *SupportRoom) IsParticipant(userID string) bool {
	if r.StudentID == userID {
		return true
	}
	return r.SupporterID != nil && *r.SupporterID == userID
}
