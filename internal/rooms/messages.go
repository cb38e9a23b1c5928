package rooms

import (
	"unicare/backend/internal/authz"
	"unicare/backend/internal/models"
	apperrors "unicare/backend/pkg/errors"
)

// AppendMessage stores a message in a room. The sender must be the room's
// student or its claimed supporter, and the room must not have reached a
// terminal status. The stored message is published to the room channel and
// scanned for risk.
func (s *Service) AppendMessage(actor authz.Actor, roomID, content string) (*models.SupportMessage, error) {
	if content == "" {
		return nil, apperrors.InvalidArg("message content is required")
	}
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, room, authz.MessageAppend); err != nil {
		return nil, err
	}
	if room.IsTerminal() {
		return nil, apperrors.ErrRoomTerminal
	}

	msg := &models.SupportMessage{
		RoomID:   roomID,
		SenderID: actor.ID,
		Content:  content,
	}
	if err := s.Storage.SaveMessage(msg); err != nil {
		return nil, err
	}

	s.publish(models.RoomEvent{
		ID:       msg.ID,
		RoomID:   roomID,
		SenderID: actor.ID,
		Content:  content,
		Type:     models.EventMessage,
	})
	s.Crisis.ScanMessage(room, msg)

	return msg, nil
}

// GetMessages returns a room's messages in creation order for a participant
// or staff member. limit <= 0 returns the whole history.
func (s *Service) GetMessages(actor authz.Actor, roomID string, limit, offset int) ([]models.SupportMessage, error) {
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, room, authz.MessageRead); err != nil {
		return nil, err
	}
	return s.Storage.GetRoomMessages(roomID, limit, offset)
}
