package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Peer application review states.
const (
	ApplicationSubmitted = "SUBMITTED"
	ApplicationApproved  = "APPROVED"
	ApplicationRejected  = "REJECTED"
)

// PeerApplication is a student's request to become a peer supporter (intern).
// It moves through SUBMITTED -> APPROVED/REJECTED by admin action only.
type PeerApplication struct {
	ID          string `gorm:"primaryKey"`
	ApplicantID string `gorm:"type:uuid;not null;index"`
	Motivation  string `gorm:"type:text;not null"`
	Status      string `gorm:"not null;default:'SUBMITTED'"`
	// ReviewedBy is the admin who decided the application, nil while SUBMITTED.
	ReviewedBy *string `gorm:"type:uuid"`
	CreatedAt  time.Time
	ReviewedAt *time.Time
}

func (a *PeerApplication) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
