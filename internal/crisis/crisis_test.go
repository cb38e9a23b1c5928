package crisis_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"unicare/backend/internal/authz"
	"unicare/backend/internal/config"
	"unicare/backend/internal/crisis"
	"unicare/backend/internal/models"
	"unicare/backend/internal/storage/storagetest"
	apperrors "unicare/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyAlert(alert *models.CrisisAlert) error {
	args := m.Called(alert)
	return args.Error(0)
}

// TestScanTriageRaisesAndNotifies verifies a crisis-level intake stores an
// alert, audits it, and pushes it to the staff channel.
func TestScanTriageRaisesAndNotifies(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	notifierMock := new(MockNotifier)
	svc := crisis.NewService(storageMock, notifierMock)

	storageMock.On("SaveAlert", mock.MatchedBy(func(alert *models.CrisisAlert) bool {
		return alert.StudentID == "student-1" && alert.Source == models.AlertSourceTriage
	})).Return(nil).Once()
	storageMock.On("AppendAudit", mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()
	notifierMock.On("NotifyAlert", mock.AnythingOfType("*models.CrisisAlert")).Return(nil).Once()

	// Act
	svc.ScanTriage(&models.TriageForm{
		StudentID: "student-1",
		Topic:     "Crisis",
		Concern:   "I can't see a way out",
		Urgency:   models.UrgencyCrisis,
	})

	// Assert
	storageMock.AssertExpectations(t)
	notifierMock.AssertExpectations(t)
}

func TestScanTriageBelowThreshold(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := crisis.NewService(storageMock, nil)

	svc.ScanTriage(&models.TriageForm{
		StudentID: "student-1",
		Topic:     "Exams",
		Concern:   "A bit worried about finals",
		Urgency:   models.UrgencyLow,
	})

	storageMock.AssertNotCalled(t, "SaveAlert", mock.Anything)
}

// TestScanMessageSupporterContentIgnored: only student-authored content is
// scanned.
func TestScanMessageSupporterContentIgnored(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := crisis.NewService(storageMock, nil)

	supporter := "supporter-A"
	room := &models.SupportRoom{ID: "room-1", StudentID: "student-1", SupporterID: &supporter}

	svc.ScanMessage(room, &models.SupportMessage{
		RoomID:   "room-1",
		SenderID: "supporter-A",
		Content:  "have you had thoughts of suicide?",
	})

	storageMock.AssertNotCalled(t, "SaveAlert", mock.Anything)
}

// TestScanTriageExcerptRuneSafe ensures long multi-byte content is truncated
// on a rune boundary, never leaving an invalid-UTF-8 excerpt on the alert.
func TestScanTriageExcerptRuneSafe(t *testing.T) {
	// Arrange
	storageMock := new(storagetest.MockStorage)
	svc := crisis.NewService(storageMock, nil)

	concern := "мені безнадійно, suicide " + strings.Repeat("є", 300)
	storageMock.On("SaveAlert", mock.MatchedBy(func(alert *models.CrisisAlert) bool {
		return utf8.ValidString(alert.Excerpt) &&
			utf8.RuneCountInString(alert.Excerpt) == config.AlertExcerptMaxLen
	})).Return(nil).Once()
	storageMock.On("AppendAudit", mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()

	// Act
	svc.ScanTriage(&models.TriageForm{
		StudentID: "student-1",
		Topic:     "Crisis",
		Concern:   concern,
		Urgency:   models.UrgencyCrisis,
	})

	// Assert
	storageMock.AssertExpectations(t)
}

func TestSetAlertStatusStaffOnly(t *testing.T) {
	storageMock := new(storagetest.MockStorage)
	svc := crisis.NewService(storageMock, nil)

	err := svc.SetAlertStatus(authz.Actor{ID: "student-1", Role: models.RoleStudent}, 1, models.AlertStatusAcknowledged)
	assert.Equal(t, apperrors.CodePermissionDenied, apperrors.CodeOf(err))

	storageMock.On("SetAlertStatus", uint(1), models.AlertStatusAcknowledged).Return(nil).Once()
	storageMock.On("AppendAudit", mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()

	err = svc.SetAlertStatus(authz.Actor{ID: "mod-1", Role: models.RoleModerator}, 1, models.AlertStatusAcknowledged)
	assert.NoError(t, err)
	storageMock.AssertExpectations(t)
}
