package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"unicare/backend/internal/models"
	apperrors "unicare/backend/pkg/errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Storage interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id string) error

	CreateRoom(room *models.SupportRoom) error
	GetRoomByID(roomID string) (*models.SupportRoom, error)
	ClaimRoom(roomID, supporterID string) error
	EndRoom(roomID, status string) error
	FindOpenRoomForStudent(studentID, topic string) (*models.SupportRoom, error)
	ListRoomsForUser(userID string) ([]models.SupportRoom, error)
	ListWaitingRooms() ([]models.SupportRoom, error)
	ExpireWaitingRooms(olderThan time.Time) ([]models.SupportRoom, error)

	SaveMessage(msg *models.SupportMessage) error
	GetRoomMessages(roomID string, limit, offset int) ([]models.SupportMessage, error)

	CreateTriageForm(form *models.TriageForm) error
	ListTriageForms(studentID string) ([]models.TriageForm, error)

	CreateBooking(booking *models.Booking) error
	GetBookingByID(id string) (*models.Booking, error)
	CancelBooking(id string) error
	ListBookingsForUser(userID string) ([]models.Booking, error)

	CreateApplication(app *models.PeerApplication) error
	GetApplicationByID(id string) (*models.PeerApplication, error)
	DecideApplication(id, status, reviewerID string) (*models.PeerApplication, error)
	ListApplications(status string) ([]models.PeerApplication, error)

	SaveAlert(alert *models.CrisisAlert) error
	GetAlertByID(id uint) (*models.CrisisAlert, error)
	SetAlertStatus(id uint, status string) error
	ListAlerts(status string) ([]models.CrisisAlert, error)
	AppendAudit(entry *models.AuditLog) error

	AddRoomToWaitingSet(roomID string) error
	RemoveRoomFromWaitingSet(roomID string) error
	GetWaitingRoomIDs() ([]string, error)

	PublishEvent(roomID string, event models.RoomEvent) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser inserts a new user row.
func (s *Service) CreateUser(user *models.User) error {
	err := s.DB.Create(user).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailTaken
	}
	return err
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get user %s: %v", id, err)
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser persists profile changes.
func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// DeleteUser removes the account. Owned rows (rooms, messages, bookings,
// triage history) follow the schema's cascade rules.
func (s *Service) DeleteUser(id string) error {
	return s.DB.Where("id = ?", id).Delete(&models.User{}).Error
}
