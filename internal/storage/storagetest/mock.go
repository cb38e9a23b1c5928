// Package storagetest provides a testify mock of storage.Storage shared by
// the service test suites.
package storagetest

import (
	"time"

	"unicare/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) DeleteUser(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) CreateRoom(room *models.SupportRoom) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockStorage) GetRoomByID(roomID string) (*models.SupportRoom, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupportRoom), args.Error(1)
}

func (m *MockStorage) ClaimRoom(roomID, supporterID string) error {
	args := m.Called(roomID, supporterID)
	return args.Error(0)
}

func (m *MockStorage) EndRoom(roomID, status string) error {
	args := m.Called(roomID, status)
	return args.Error(0)
}

func (m *MockStorage) FindOpenRoomForStudent(studentID, topic string) (*models.SupportRoom, error) {
	args := m.Called(studentID, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupportRoom), args.Error(1)
}

func (m *MockStorage) ListRoomsForUser(userID string) ([]models.SupportRoom, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SupportRoom), args.Error(1)
}

func (m *MockStorage) ListWaitingRooms() ([]models.SupportRoom, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SupportRoom), args.Error(1)
}

func (m *MockStorage) ExpireWaitingRooms(olderThan time.Time) ([]models.SupportRoom, error) {
	args := m.Called(olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SupportRoom), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.SupportMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetRoomMessages(roomID string, limit, offset int) ([]models.SupportMessage, error) {
	args := m.Called(roomID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SupportMessage), args.Error(1)
}

func (m *MockStorage) CreateTriageForm(form *models.TriageForm) error {
	args := m.Called(form)
	return args.Error(0)
}

func (m *MockStorage) ListTriageForms(studentID string) ([]models.TriageForm, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TriageForm), args.Error(1)
}

func (m *MockStorage) CreateBooking(booking *models.Booking) error {
	args := m.Called(booking)
	return args.Error(0)
}

func (m *MockStorage) GetBookingByID(id string) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockStorage) CancelBooking(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ListBookingsForUser(userID string) ([]models.Booking, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockStorage) CreateApplication(app *models.PeerApplication) error {
	args := m.Called(app)
	return args.Error(0)
}

func (m *MockStorage) GetApplicationByID(id string) (*models.PeerApplication, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PeerApplication), args.Error(1)
}

func (m *MockStorage) DecideApplication(id, status, reviewerID string) (*models.PeerApplication, error) {
	args := m.Called(id, status, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PeerApplication), args.Error(1)
}

func (m *MockStorage) ListApplications(status string) ([]models.PeerApplication, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PeerApplication), args.Error(1)
}

func (m *MockStorage) SaveAlert(alert *models.CrisisAlert) error {
	args := m.Called(alert)
	return args.Error(0)
}

func (m *MockStorage) GetAlertByID(id uint) (*models.CrisisAlert, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CrisisAlert), args.Error(1)
}

func (m *MockStorage) SetAlertStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockStorage) ListAlerts(status string) ([]models.CrisisAlert, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CrisisAlert), args.Error(1)
}

func (m *MockStorage) AppendAudit(entry *models.AuditLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockStorage) AddRoomToWaitingSet(roomID string) error {
	args := m.Called(roomID)
	return args.Error(0)
}

func (m *MockStorage) RemoveRoomFromWaitingSet(roomID string) error {
	args := m.Called(roomID)
	return args.Error(0)
}

func (m *MockStorage) GetWaitingRoomIDs() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) PublishEvent(roomID string, event models.RoomEvent) error {
	args := m.Called(roomID, event)
	return args.Error(0)
}
