// Package booking schedules counseling sessions. Bookings are independent of
// the room state machine; the one invariant is that a counselor's confirmed
// sessions never overlap.
package booking

import (
	"time"

	"unicare/backend/internal/authz"
	"unicare/backend/internal/models"
	"unicare/backend/internal/storage"
	apperrors "unicare/backend/pkg/errors"
)

// Service handles the business logic for bookings.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new booking service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Create books a session with a counselor. The overlap invariant is enforced
// transactionally in storage; a taken slot surfaces as a conflict.
func (s *Service) Create(actor authz.Actor, counselorID string, start, end time.Time) (*models.Booking, error) {
	if !end.After(start) {
		return nil, apperrors.ErrInvalidSlot
	}
	counselor, err := s.Storage.GetUserByID(counselorID)
	if err != nil {
		return nil, err
	}
	if counselor.Role != models.RoleCounselor {
		return nil, apperrors.ErrNotCounselor
	}

	booking := &models.Booking{
		StudentID:   actor.ID,
		CounselorID: counselorID,
		StartsAt:    start,
		EndsAt:      end,
		Status:      models.BookingStatusConfirmed,
	}
	if err := s.Storage.CreateBooking(booking); err != nil {
		return nil, err
	}

	s.Storage.AppendAudit(&models.AuditLog{
		ActorID:   actor.ID,
		Action:    "booking.create",
		SubjectID: booking.ID,
	})
	return booking, nil
}

// Cancel frees a slot. Either party or an admin may cancel.
func (s *Service) Cancel(actor authz.Actor, bookingID string) error {
	booking, err := s.Storage.GetBookingByID(bookingID)
	if err != nil {
		return err
	}
	if err := authz.Allow(actor, booking, authz.BookingCancel); err != nil {
		return err
	}
	if err := s.Storage.CancelBooking(bookingID); err != nil {
		return err
	}
	s.Storage.AppendAudit(&models.AuditLog{
		ActorID:   actor.ID,
		Action:    "booking.cancel",
		SubjectID: bookingID,
	})
	return nil
}

// List returns the actor's bookings, soonest first.
func (s *Service) List(actor authz.Actor) ([]models.Booking, error) {
	return s.Storage.ListBookingsForUser(actor.ID)
}
