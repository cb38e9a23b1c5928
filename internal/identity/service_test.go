package identity_test

import (
	"testing"

	"unicare/backend/internal/authz"
	"unicare/backend/internal/identity"
	"unicare/backend/internal/models"
	"unicare/backend/internal/storage/storagetest"
	apperrors "unicare/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	svc := identity.NewService(storageMock)

	storageMock.On("GetUserByEmail", "ada@uni.edu").Return(nil, apperrors.ErrUserNotFound).Once()
	storageMock.On("CreateUser", mock.AnythingOfType("*models.User")).Return(nil).Once()

	// Act
	user, err := svc.Register("ada@uni.edu", "correct horse", "Ada", models.AgeBracketAdult, false)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "correct horse", user.PasswordHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
	storageMock.AssertExpectations(t)
}

func TestRegisterValidation(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := identity.NewService(storageMock)

	_, err := svc.Register("", "password123", "", models.AgeBracketAdult, false)
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))

	_, err = svc.Register("a@b.c", "short", "", models.AgeBracketAdult, false)
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))

	_, err = svc.Register("a@b.c", "password123", "", "TEEN", false)
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))

	storageMock.AssertNotCalled(t, "CreateUser", mock.Anything)
}

// TestRegisterMinorNeedsConsent: UNDER18 registrations without the guardian
// consent flag are rejected.
func TestRegisterMinorNeedsConsent(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := identity.NewService(storageMock)

	_, err := svc.Register("kid@uni.edu", "password123", "", models.AgeBracketUnder18, false)
	assert.Equal(t, apperrors.CodeFailedPrecondition, apperrors.CodeOf(err))

	storageMock.On("GetUserByEmail", "kid@uni.edu").Return(nil, apperrors.ErrUserNotFound).Once()
	storageMock.On("CreateUser", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := svc.Register("kid@uni.edu", "password123", "", models.AgeBracketUnder18, true)
	assert.NoError(t, err)
	assert.True(t, user.ConsentMinorOk)
}

func TestRegisterEmailTaken(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := identity.NewService(storageMock)

	storageMock.On("GetUserByEmail", "ada@uni.edu").Return(&models.User{ID: "u-1", Email: "ada@uni.edu"}, nil).Once()

	_, err := svc.Register("ada@uni.edu", "password123", "", models.AgeBracketAdult, false)
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
}

func TestAuthenticate(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	svc := identity.NewService(storageMock)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	user := &models.User{ID: "u-1", Email: "ada@uni.edu", PasswordHash: string(hash)}
	storageMock.On("GetUserByEmail", "ada@uni.edu").Return(user, nil)
	storageMock.On("GetUserByEmail", "nobody@uni.edu").Return(nil, apperrors.ErrUserNotFound)

	// Act / Assert
	got, err := svc.Authenticate("ada@uni.edu", "correct horse")
	assert.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)

	_, err = svc.Authenticate("ada@uni.edu", "wrong")
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))

	// Unknown email is indistinguishable from a wrong password.
	_, err = svc.Authenticate("nobody@uni.edu", "correct horse")
	assert.Equal(t, apperrors.CodeUnauthenticated, apperrors.CodeOf(err))
}

func TestDeleteAccountAudited(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := identity.NewService(storageMock)

	storageMock.On("DeleteUser", "u-1").Return(nil).Once()
	storageMock.On("AppendAudit", mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == "account.delete" && entry.ActorID == "u-1"
	})).Return(nil).Once()

	err := svc.DeleteAccount(authz.Actor{ID: "u-1", Role: models.RoleStudent})
	assert.NoError(t, err)
	storageMock.AssertExpectations(t)
}
