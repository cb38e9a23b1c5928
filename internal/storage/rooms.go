package storage

import (
	"errors"
	"log"
	"time"

	"unicare/backend/internal/models"
	apperrors "unicare/backend/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateRoom inserts a new support room (normally in WAITING status).
func (s *Service) CreateRoom(room *models.SupportRoom) error {
	return s.DB.Create(room).Error
}

func (s *Service) GetRoomByID(roomID string) (*models.SupportRoom, error) {
	var room models.SupportRoom
	err := s.DB.Where("id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRoomNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", roomID, err)
		return nil, err
	}
	return &room, nil
}

// ClaimRoom performs the WAITING -> ACTIVE transition as a single conditional
// update. Two supporters racing on the same room get exactly one winner: the
// loser's update matches zero rows and maps to a conflict error.
func (s *Service) ClaimRoom(roomID, supporterID string) error {
	now := time.Now()
	res := s.DB.Model(&models.SupportRoom{}).
		Where("id = ? AND status = ? AND supporter_id IS NULL", roomID, models.RoomStatusWaiting).
		Updates(map[string]interface{}{
			"supporter_id": supporterID,
			"status":       models.RoomStatusActive,
			"claimed_at":   now,
		})
	if res.Error != nil {
		log.Printf("ERROR: Failed to claim room %s: %v", roomID, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows means the room is gone or no longer WAITING.
		if _, err := s.GetRoomByID(roomID); err != nil {
			return err
		}
		return apperrors.ErrRoomAlreadyClaimed
	}
	return nil
}

// EndRoom moves a room to a terminal status (RESOLVED or CLOSED). The update
// is conditional on the room not already being terminal, so a close racing a
// resolve settles on whichever lands first.
func (s *Service) EndRoom(roomID, status string) error {
	res := s.DB.Model(&models.SupportRoom{}).
		Where("id = ? AND status IN ?", roomID, []string{models.RoomStatusWaiting, models.RoomStatusActive}).
		Updates(map[string]interface{}{
			"status":   status,
			"ended_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetRoomByID(roomID); err != nil {
			return err
		}
		return apperrors.ErrRoomTerminal
	}
	return nil
}

// FindOpenRoomForStudent returns the student's existing WAITING or ACTIVE room
// for a topic, or nil when there is none. Used to dedup repeated triage
// submissions.
func (s *Service) FindOpenRoomForStudent(studentID, topic string) (*models.SupportRoom, error) {
	var room models.SupportRoom
	err := s.DB.Where("student_id = ? AND topic = ?", studentID, topic).
		Where("status IN ?", []string{models.RoomStatusWaiting, models.RoomStatusActive}).
		Order("created_at asc").
		First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRoomsForUser returns every room the user participates in, newest first.
func (s *Service) ListRoomsForUser(userID string) ([]models.SupportRoom, error) {
	var rooms []models.SupportRoom
	err := s.DB.Where("student_id = ? OR supporter_id = ?", userID, userID).
		Order("created_at desc").
		Find(&rooms).Error
	if err != nil {
		log.Printf("ERROR: Failed to list rooms for user %s: %v", userID, err)
		return nil, err
	}
	return rooms, nil
}

// ListWaitingRooms returns unclaimed rooms, oldest first so supporters see the
// longest-waiting students at the top.
func (s *Service) ListWaitingRooms() ([]models.SupportRoom, error) {
	var rooms []models.SupportRoom
	err := s.DB.Where("status = ?", models.RoomStatusWaiting).
		Order("created_at asc").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// ExpireWaitingRooms closes WAITING rooms created before the cutoff. The
// update carries RETURNING, so the result holds exactly the rows it touched
// and a room claimed mid-sweep is neither closed nor reported.
func (s *Service) ExpireWaitingRooms(olderThan time.Time) ([]models.SupportRoom, error) {
	var expired []models.SupportRoom
	err := s.DB.Model(&expired).
		Clauses(clause.Returning{}).
		Where("status = ? AND created_at < ?", models.RoomStatusWaiting, olderThan).
		Updates(map[string]interface{}{
			"status":   models.RoomStatusClosed,
			"ended_at": time.Now(),
		}).Error
	if err != nil {
		log.Printf("ERROR: Failed to expire waiting rooms: %v", err)
		return nil, err
	}
	return expired, nil
}
