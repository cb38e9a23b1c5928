package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Self-reported urgency levels on a triage form.
const (
	UrgencyLow      = "LOW"
	UrgencyModerate = "MODERATE"
	UrgencyHigh     = "HIGH"
	UrgencyCrisis   = "CRISIS"
)

// TriageForm captures a student's intake: what they want to talk about and how
// urgent they feel it is. Forms are immutable after creation and kept as
// read-only history.
type TriageForm struct {
	ID        string `gorm:"primaryKey"`
	StudentID string `gorm:"type:uuid;not null;index"`
	Topic     string `gorm:"not null"`
	Concern   string `gorm:"type:text;not null"`
	Urgency   string `gorm:"not null;default:'LOW'"`
	// Tags are free-form labels the student picked alongside the topic.
	Tags pq.StringArray `gorm:"type:text[]"`
	// RoomID is the support room the intake was routed to.
	RoomID    string `gorm:"type:uuid;index"`
	CreatedAt time.Time
}

func (f *TriageForm) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
