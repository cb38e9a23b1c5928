package storage

import (
	"errors"
	"log"

	"unicare/backend/internal/models"
	apperrors "unicare/backend/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateBooking inserts the booking inside a transaction that locks the
// counselor's confirmed bookings FOR UPDATE and rejects any time overlap.
// Two clients racing for the same slot get exactly one booking.
func (s *Service) CreateBooking(booking *models.Booking) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("counselor_id = ? AND status = ?", booking.CounselorID, models.BookingStatusConfirmed).
			Where("starts_at < ? AND ends_at > ?", booking.EndsAt, booking.StartsAt).
			Find(&existing).Error
		if err != nil {
			log.Printf("ERROR: Failed overlap check for counselor %s: %v", booking.CounselorID, err)
			return err
		}
		if len(existing) > 0 {
			return apperrors.ErrSlotTaken
		}
		return tx.Create(booking).Error
	})
}

func (s *Service) GetBookingByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Where("id = ?", id).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking marks the booking CANCELLED, freeing the slot for others.
func (s *Service) CancelBooking(id string) error {
	res := s.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingStatusConfirmed).
		Update("status", models.BookingStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetBookingByID(id); err != nil {
			return err
		}
	}
	return nil
}

// ListBookingsForUser returns bookings where the user is either side,
// soonest first.
func (s *Service) ListBookingsForUser(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Where("student_id = ? OR counselor_id = ?", userID, userID).
		Order("starts_at asc").
		Find(&bookings).Error
	if err != nil {
		log.Printf("ERROR: Failed to list bookings for user %s: %v", userID, err)
		return nil, err
	}
	return bookings, nil
}
