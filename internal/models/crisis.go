package models

import "gorm.io/gorm"

// Crisis alert sources and states.
const (
	AlertSourceTriage  = "triage"
	AlertSourceMessage = "message"

	AlertStatusOpen         = "OPEN"
	AlertStatusAcknowledged = "ACKNOWLEDGED"
	AlertStatusResolved     = "RESOLVED"
)

// CrisisAlert is raised when triage or message content matches the risk
// heuristics. Alerts are created by the system and worked by staff.
type CrisisAlert struct {
	gorm.Model

	StudentID string `gorm:"type:uuid;not null;index"`
	// Source is where the flagged content came from ("triage" or "message").
	Source string `gorm:"not null"`
	// RoomID is set when the source is a room message.
	RoomID *string `gorm:"type:uuid;index"`
	// Excerpt is the flagged content, truncated for the alert feed.
	Excerpt  string `gorm:"type:text"`
	Severity int    `gorm:"not null"`
	Status   string `gorm:"not null;default:'OPEN'"`
}

// AuditLog is an append-only record of consequential actions: claims, closes,
// crisis alerts, booking creation, peer reviews, account deletion.
type AuditLog struct {
	gorm.Model

	ActorID string `gorm:"type:uuid;index"`
	Action  string `gorm:"not null;index"`
	// SubjectID identifies the affected entity (room, booking, application...).
	SubjectID string `gorm:"index"`
	Detail    string `gorm:"type:text"`
}
