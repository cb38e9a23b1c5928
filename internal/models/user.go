package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Roles a user can hold. Students receive support; counselors, interns and
// moderators are supporters eligible to claim rooms; admins manage the platform.
const (
	RoleStudent   = "student"
	RoleCounselor = "counselor"
	RoleIntern    = "intern"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Age brackets used for consent handling.
const (
	AgeBracketUnder18 = "UNDER18"
	AgeBracketAdult   = "ADULT"
)

// User represents an account in the system: a student seeking support,
// a supporter (counselor, intern, moderator), or an admin.
type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	DisplayName  string
	Role         string `gorm:"not null;default:'student'"`
	AgeBracket   string `gorm:"not null;default:'ADULT'"`
	// ConsentMinorOk records guardian consent for UNDER18 accounts.
	ConsentMinorOk bool
	// Specialties are topic tags a supporter covers (e.g. "Anxiety", "Exams").
	Specialties pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID is unset.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsSupporter reports whether the user's role makes them eligible to claim rooms.
func (u *User) IsSupporter() bool {
	switch u.Role {
	case RoleCounselor, RoleIntern, RoleModerator:
		return true
	}
	return false
}

// IsStaff reports whether the user can act on rooms and alerts they do not
// participate in (moderation and administration).
func (u *User) IsStaff() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
