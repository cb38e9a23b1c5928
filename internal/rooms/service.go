// Package rooms implements the support-room lifecycle: triage intake into a
// WAITING room, supporter claim, message exchange, and terminal close/resolve.
package rooms

import (
	"log"
	"sort"
	"time"

	"unicare/backend/internal/authz"
	"unicare/backend/internal/crisis"
	"unicare/backend/internal/models"
	"unicare/backend/internal/storage"
	apperrors "unicare/backend/pkg/errors"

	"github.com/google/uuid"
)

// Service handles the business logic for support rooms and their messages.
type Service struct {
	Storage storage.Storage
	Crisis  *crisis.Service
}

// NewService creates a new room service.
func NewService(s storage.Storage, c *crisis.Service) *Service {
	return &Service{Storage: s, Crisis: c}
}

// IntakeResult is what a triage submission routed to.
type IntakeResult struct {
	Form *models.TriageForm
	Room *models.SupportRoom
	// Reused is true when the student already had an open room for the topic
	// and no new room was created.
	Reused bool
}

// SubmitTriage records the intake form and routes the student to a support
// room: an existing WAITING/ACTIVE room for the same topic when one exists,
// otherwise a fresh WAITING room. The form is always scanned for risk.
func (s *Service) SubmitTriage(studentID, topic, concern, urgency string, tags []string) (*IntakeResult, error) {
	if topic == "" {
		return nil, apperrors.InvalidArg("topic is required")
	}
	if concern == "" {
		return nil, apperrors.InvalidArg("concern is required")
	}
	switch urgency {
	case models.UrgencyLow, models.UrgencyModerate, models.UrgencyHigh, models.UrgencyCrisis:
	default:
		return nil, apperrors.InvalidArg("unknown urgency level")
	}

	room, err := s.Storage.FindOpenRoomForStudent(studentID, topic)
	if err != nil {
		return nil, err
	}
	reused := room != nil
	if room == nil {
		room = &models.SupportRoom{
			ID:        uuid.New().String(),
			StudentID: studentID,
			Status:    models.RoomStatusWaiting,
			Topic:     topic,
			CreatedAt: time.Now(),
		}
		if err := s.Storage.CreateRoom(room); err != nil {
			log.Printf("ERROR: Failed to create room for student %s: %v", studentID, err)
			return nil, err
		}
		if err := s.Storage.AddRoomToWaitingSet(room.ID); err != nil {
			log.Printf("WARNING: Room %s not added to waiting registry: %v", room.ID, err)
		}
	}

	form := &models.TriageForm{
		StudentID: studentID,
		Topic:     topic,
		Concern:   concern,
		Urgency:   urgency,
		Tags:      tags,
		RoomID:    room.ID,
	}
	if err := s.Storage.CreateTriageForm(form); err != nil {
		return nil, err
	}

	s.Crisis.ScanTriage(form)

	return &IntakeResult{Form: form, Room: room, Reused: reused}, nil
}

// ListTriageHistory returns a student's past intake forms, newest first.
func (s *Service) ListTriageHistory(studentID string) ([]models.TriageForm, error) {
	return s.Storage.ListTriageForms(studentID)
}

// Claim assigns a WAITING room to a supporter. The storage layer performs the
// transition as one conditional update, so concurrent claims settle on exactly
// one winner; everyone else receives a conflict.
func (s *Service) Claim(actor authz.Actor, roomID string) (*models.SupportRoom, error) {
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, room, authz.RoomClaim); err != nil {
		return nil, err
	}

	if err := s.Storage.ClaimRoom(roomID, actor.ID); err != nil {
		return nil, err
	}
	if err := s.Storage.RemoveRoomFromWaitingSet(roomID); err != nil {
		log.Printf("WARNING: Room %s not removed from waiting registry: %v", roomID, err)
	}

	s.Storage.AppendAudit(&models.AuditLog{
		ActorID:   actor.ID,
		Action:    "room.claim",
		SubjectID: roomID,
	})
	s.publish(models.RoomEvent{
		RoomID:   roomID,
		SenderID: actor.ID,
		Type:     models.EventRoomClaimed,
	})

	return s.Storage.GetRoomByID(roomID)
}

// End moves a room to RESOLVED or CLOSED. Participants and staff may end an
// ACTIVE room; terminal rooms stay terminal. A WAITING room was never a
// conversation, so it cannot resolve: only staff may close one to clear the
// backlog.
func (s *Service) End(actor authz.Actor, roomID, status string) error {
	if status != models.RoomStatusResolved && status != models.RoomStatusClosed {
		return apperrors.InvalidArg("status must be RESOLVED or CLOSED")
	}
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return err
	}
	if err := authz.Allow(actor, room, authz.RoomEnd); err != nil {
		return err
	}
	if room.Status == models.RoomStatusWaiting {
		if status != models.RoomStatusClosed || !actor.IsStaff() {
			return apperrors.ErrRoomUnclaimed
		}
	}

	if err := s.Storage.EndRoom(roomID, status); err != nil {
		return err
	}
	if room.Status == models.RoomStatusWaiting {
		if err := s.Storage.RemoveRoomFromWaitingSet(roomID); err != nil {
			log.Printf("WARNING: Room %s not removed from waiting registry: %v", roomID, err)
		}
	}

	s.Storage.AppendAudit(&models.AuditLog{
		ActorID:   actor.ID,
		Action:    "room.end",
		SubjectID: roomID,
		Detail:    status,
	})
	eventType := models.EventRoomClosed
	if status == models.RoomStatusResolved {
		eventType = models.EventRoomResolved
	}
	s.publish(models.RoomEvent{RoomID: roomID, SenderID: actor.ID, Type: eventType})

	return nil
}

// GetRoom returns a room to a participant or staff member.
func (s *Service) GetRoom(actor authz.Actor, roomID string) (*models.SupportRoom, error) {
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, room, authz.RoomRead); err != nil {
		return nil, err
	}
	return room, nil
}

// ListForUser returns the actor's own rooms.
func (s *Service) ListForUser(actor authz.Actor) ([]models.SupportRoom, error) {
	return s.Storage.ListRoomsForUser(actor.ID)
}

// ListWaiting returns the unclaimed-room backlog for supporters. The Redis
// registry answers first; entries that no longer point at a WAITING room are
// dropped from the set, and Postgres serves the list when the registry is
// unavailable or empty.
func (s *Service) ListWaiting(actor authz.Actor) ([]models.SupportRoom, error) {
	if !actor.IsSupporter() && !actor.IsStaff() {
		return nil, apperrors.ErrNotSupporter
	}

	ids, err := s.Storage.GetWaitingRoomIDs()
	if err != nil || len(ids) == 0 {
		if err != nil {
			log.Printf("WARNING: Waiting registry unavailable, listing from database: %v", err)
		}
		return s.Storage.ListWaitingRooms()
	}

	backlog := make([]models.SupportRoom, 0, len(ids))
	for _, id := range ids {
		room, err := s.Storage.GetRoomByID(id)
		if err != nil || room.Status != models.RoomStatusWaiting {
			// Stale registry entry, claimed or closed since it was added.
			if rmErr := s.Storage.RemoveRoomFromWaitingSet(id); rmErr != nil {
				log.Printf("WARNING: Stale room %s not removed from waiting registry: %v", id, rmErr)
			}
			continue
		}
		backlog = append(backlog, *room)
	}
	// Longest-waiting students first, matching the database ordering.
	sort.Slice(backlog, func(i, j int) bool {
		return backlog[i].CreatedAt.Before(backlog[j].CreatedAt)
	})
	return backlog, nil
}

func (s *Service) publish(event models.RoomEvent) {
	if err := s.Storage.PublishEvent(event.RoomID, event); err != nil {
		log.Printf("WARNING: Failed to publish event for room %s: %v", event.RoomID, err)
	}
}
