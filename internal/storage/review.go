package storage

import (
	"errors"
	"log"
	"time"

	"unicare/backend/internal/models"
	apperrors "unicare/backend/pkg/errors"

	"gorm.io/gorm"
)

// CreateApplication inserts a peer application in SUBMITTED status.
func (s *Service) CreateApplication(app *models.PeerApplication) error {
	if app.Status == "" {
		app.Status = models.ApplicationSubmitted
	}
	return s.DB.Create(app).Error
}

func (s *Service) GetApplicationByID(id string) (*models.PeerApplication, error) {
	var app models.PeerApplication
	err := s.DB.Where("id = ?", id).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// DecideApplication moves a SUBMITTED application to APPROVED or REJECTED.
// The update is conditional on SUBMITTED so a decision cannot be overwritten.
func (s *Service) DecideApplication(id, status, reviewerID string) (*models.PeerApplication, error) {
	res := s.DB.Model(&models.PeerApplication{}).
		Where("id = ? AND status = ?", id, models.ApplicationSubmitted).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetApplicationByID(id); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrApplicationDecided
	}
	return s.GetApplicationByID(id)
}

// ListApplications returns applications, optionally filtered by status,
// oldest first so reviewers work the backlog in order.
func (s *Service) ListApplications(status string) ([]models.PeerApplication, error) {
	var apps []models.PeerApplication
	q := s.DB.Order("created_at asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// SaveAlert persists a crisis alert.
func (s *Service) SaveAlert(alert *models.CrisisAlert) error {
	if alert.Status == "" {
		alert.Status = models.AlertStatusOpen
	}
	if err := s.DB.Create(alert).Error; err != nil {
		log.Printf("ERROR: Failed to save crisis alert for student %s: %v", alert.StudentID, err)
		return err
	}
	return nil
}

func (s *Service) GetAlertByID(id uint) (*models.CrisisAlert, error) {
	var alert models.CrisisAlert
	err := s.DB.First(&alert, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrAlertNotFound
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (s *Service) SetAlertStatus(id uint, status string) error {
	res := s.DB.Model(&models.CrisisAlert{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAlertNotFound
	}
	return nil
}

// ListAlerts returns alerts for the staff feed, optionally filtered by status,
// newest first.
func (s *Service) ListAlerts(status string) ([]models.CrisisAlert, error) {
	var alerts []models.CrisisAlert
	q := s.DB.Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// AppendAudit writes an append-only audit entry. Audit failures are logged,
// never propagated: auditing must not fail the audited action.
func (s *Service) AppendAudit(entry *models.AuditLog) error {
	if err := s.DB.Create(entry).Error; err != nil {
		log.Printf("ERROR: Failed to append audit entry %s/%s: %v", entry.Action, entry.SubjectID, err)
		return err
	}
	return nil
}
