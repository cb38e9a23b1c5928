package storage

import (
	"encoding/json"
	"errors"
	"log"

	"unicare/backend/internal/models"

	"gorm.io/gorm"
)

// SaveMessage persists a message row. The row's generated ID is written back
// so callers can publish it to the room channel.
func (s *Service) SaveMessage(msg *models.SupportMessage) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// GetRoomMessages returns a room's messages ordered by creation time
// ascending. limit <= 0 returns the full history.
func (s *Service) GetRoomMessages(roomID string, limit, offset int) ([]models.SupportMessage, error) {
	var messages []models.SupportMessage
	q := s.DB.Where("room_id = ?", roomID).Order("created_at asc")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&messages).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return messages, nil
		}
		log.Printf("ERROR: Failed to get messages for room %s: %v", roomID, err)
		return nil, err
	}
	return messages, nil
}

// CreateTriageForm inserts an intake form. Forms are immutable afterwards.
func (s *Service) CreateTriageForm(form *models.TriageForm) error {
	return s.DB.Create(form).Error
}

// ListTriageForms returns a student's intake history, newest first.
func (s *Service) ListTriageForms(studentID string) ([]models.TriageForm, error) {
	var forms []models.TriageForm
	err := s.DB.Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

// PublishEvent publishes a room event to Redis Pub/Sub so every server
// instance can fan it out to its connected clients.
func (s *Service) PublishEvent(roomID string, event models.RoomEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, roomChannel(roomID), payload).Err()
}

func roomChannel(roomID string) string {
	return "room:" + roomID
}
