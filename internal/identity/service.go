// Package identity owns accounts: registration, credential checks, profile
// updates and deletion.
package identity

import (
	"unicare/backend/internal/authz"
	"unicare/backend/internal/models"
	"unicare/backend/internal/storage"
	apperrors "unicare/backend/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

// Service handles the business logic for accounts.
type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Register creates a student account with a bcrypt-hashed password. UNDER18
// registrations require the guardian consent flag.
func (s *Service) Register(email, password, displayName, ageBracket string, consentMinorOk bool) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.InvalidArg("email and password are required")
	}
	if len(password) < 8 {
		return nil, apperrors.InvalidArg("password must be at least 8 characters")
	}
	if ageBracket != models.AgeBracketUnder18 && ageBracket != models.AgeBracketAdult {
		return nil, apperrors.InvalidArg("unknown age bracket")
	}
	if ageBracket == models.AgeBracketUnder18 && !consentMinorOk {
		return nil, apperrors.FailedPrecondition("guardian consent is required for minors")
	}

	if _, err := s.Storage.GetUserByEmail(email); err == nil {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to hash password", err)
	}

	user := &models.User{
		Email:          email,
		PasswordHash:   string(hash),
		DisplayName:    displayName,
		Role:           models.RoleStudent,
		AgeBracket:     ageBracket,
		ConsentMinorOk: consentMinorOk,
	}
	if err := s.Storage.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials and returns the account. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(email, password string) (*models.User, error) {
	user, err := s.Storage.GetUserByEmail(email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetProfile returns the actor's own account.
func (s *Service) GetProfile(actor authz.Actor) (*models.User, error) {
	return s.Storage.GetUserByID(actor.ID)
}

// UpdateProfile changes display name and supporter specialties. Role and age
// bracket are not self-service.
func (s *Service) UpdateProfile(actor authz.Actor, displayName string, specialties []string) (*models.User, error) {
	user, err := s.Storage.GetUserByID(actor.ID)
	if err != nil {
		return nil, err
	}
	if displayName != "" {
		user.DisplayName = displayName
	}
	if specialties != nil {
		user.Specialties = specialties
	}
	if err := s.Storage.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *Service) ChangePassword(actor authz.Actor, current, next string) error {
	user, err := s.Storage.GetUserByID(actor.ID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	if len(next) < 8 {
		return apperrors.InvalidArg("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "failed to hash password", err)
	}
	user.PasswordHash = string(hash)
	return s.Storage.UpdateUser(user)
}

// DeleteAccount removes the actor's account; owned data follows the schema's
// cascade rules. The deletion itself is audited.
func (s *Service) DeleteAccount(actor authz.Actor) error {
	if err := s.Storage.DeleteUser(actor.ID); err != nil {
		return err
	}
	s.Storage.AppendAudit(&models.AuditLog{
		ActorID: actor.ID,
		Action:  "account.delete",
	})
	return nil
}
