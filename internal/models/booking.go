package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Booking is a scheduled session between a student and a counselor. It is an
// independent aggregate: bookings do not interact with the room state machine.
// No two CONFIRMED bookings for the same counselor may overlap in time.
type Booking struct {
	ID          string    `gorm:"primaryKey"`
	StudentID   string    `gorm:"type:uuid;not null;index"`
	CounselorID string    `gorm:"type:uuid;not null;index"`
	StartsAt    time.Time `gorm:"not null"`
	EndsAt      time.Time `gorm:"not null"`
	Status      string    `gorm:"not null;default:'CONFIRMED'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

// ParticipantIDs returns the two parties to the booking.
func (b *Booking) ParticipantIDs() []string {
	return []string{b.StudentID, b.CounselorID}
}

// Overlaps reports whether the booking's interval intersects [start, end).
// Touching intervals (one ends exactly when the other starts) do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndsAt) && b.StartsAt.Before(end)
}
