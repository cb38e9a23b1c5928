package peer_test

import (
	"testing"

	"unicare/backend/internal/authz"
	"unicare/backend/internal/models"
	"unicare/backend/internal/peer"
	"unicare/backend/internal/storage/storagetest"
	apperrors "unicare/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var admin = authz.Actor{ID: "admin-1", Role: models.RoleAdmin}

func TestSubmitApplication(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := peer.NewService(storageMock)

	storageMock.On("CreateApplication", mock.AnythingOfType("*models.PeerApplication")).Return(nil).Once()

	app, err := svc.Submit(authz.Actor{ID: "student-1", Role: models.RoleStudent}, "I want to help")
	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationSubmitted, app.Status)

	_, err = svc.Submit(authz.Actor{ID: "student-1", Role: models.RoleStudent}, "")
	assert.Equal(t, apperrors.CodeInvalidArgument, apperrors.CodeOf(err))
}

// TestReviewApprovalPromotesApplicant verifies an approved student becomes an
// intern supporter.
func TestReviewApprovalPromotesApplicant(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	svc := peer.NewService(storageMock)

	decided := &models.PeerApplication{ID: "app-1", ApplicantID: "student-1", Status: models.ApplicationApproved}
	applicant := &models.User{ID: "student-1", Role: models.RoleStudent}

	storageMock.On("DecideApplication", "app-1", models.ApplicationApproved, "admin-1").Return(decided, nil).Once()
	storageMock.On("GetUserByID", "student-1").Return(applicant, nil).Once()
	storageMock.On("UpdateUser", mock.MatchedBy(func(u *models.User) bool {
		return u.ID == "student-1" && u.Role == models.RoleIntern
	})).Return(nil).Once()
	storageMock.On("AppendAudit", mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()

	// Act
	app, err := svc.Review(admin, "app-1", true)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, app.Status)
	storageMock.AssertExpectations(t)
}

func TestReviewRejectionKeepsRole(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := peer.NewService(storageMock)

	decided := &models.PeerApplication{ID: "app-1", ApplicantID: "student-1", Status: models.ApplicationRejected}
	storageMock.On("DecideApplication", "app-1", models.ApplicationRejected, "admin-1").Return(decided, nil).Once()
	storageMock.On("AppendAudit", mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()

	app, err := svc.Review(admin, "app-1", false)

	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationRejected, app.Status)
	storageMock.AssertNotCalled(t, "UpdateUser", mock.Anything)
}

func TestReviewAdminOnly(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := peer.NewService(storageMock)

	_, err := svc.Review(authz.Actor{ID: "mod-1", Role: models.RoleModerator}, "app-1", true)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))
	storageMock.AssertNotCalled(t, "DecideApplication", mock.Anything, mock.Anything, mock.Anything)
}

// TestReviewAlreadyDecided: a second decision on the same application fails.
func TestReviewAlreadyDecided(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := peer.NewService(storageMock)

	storageMock.On("DecideApplication", "app-1", models.ApplicationApproved, "admin-1").
		Return(nil, apperrors.ErrApplicationDecided).Once()

	_, err := svc.Review(admin, "app-1", true)
	assert.Equal(t, apperrors.CodeFailedPrecondition, apperrors.CodeOf(err))
}
