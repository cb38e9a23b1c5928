// Package peer handles peer-supporter applications: students apply, admins
// review, approval promotes the applicant to intern.
package peer

import (
	"unicare/backend/internal/authz"
	"unicare/backend/internal/models"
	"unicare/backend/internal/storage"
	apperrors "unicare/backend/pkg/errors"
)

// Service handles the peer application workflow.
type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Submit files an application for the actor.
func (s *Service) Submit(actor authz.Actor, motivation string) (*models.PeerApplication, error) {
	if motivation == "" {
		return nil, apperrors.InvalidArg("motivation is required")
	}
	app := &models.PeerApplication{
		ApplicantID: actor.ID,
		Motivation:  motivation,
		Status:      models.ApplicationSubmitted,
	}
	if err := s.Storage.CreateApplication(app); err != nil {
		return nil, err
	}
	return app, nil
}

// Review decides a SUBMITTED application. Approval promotes the applicant to
// the intern role so they can claim rooms.
func (s *Service) Review(actor authz.Actor, applicationID string, approve bool) (*models.PeerApplication, error) {
	if err := authz.Allow(actor, nil, authz.PeerReview); err != nil {
		return nil, err
	}

	status := models.ApplicationRejected
	if approve {
		status = models.ApplicationApproved
	}
	app, err := s.Storage.DecideApplication(applicationID, status, actor.ID)
	if err != nil {
		return nil, err
	}

	if approve {
		applicant, err := s.Storage.GetUserByID(app.ApplicantID)
		if err != nil {
			return nil, err
		}
		if applicant.Role == models.RoleStudent {
			applicant.Role = models.RoleIntern
			if err := s.Storage.UpdateUser(applicant); err != nil {
				return nil, err
			}
		}
	}

	s.Storage.AppendAudit(&models.AuditLog{
		ActorID:   actor.ID,
		Action:    "peer.review",
		SubjectID: app.ID,
		Detail:    status,
	})
	return app, nil
}

// ListPending returns the review backlog for admins.
func (s *Service) ListPending(actor authz.Actor) ([]models.PeerApplication, error) {
	if err := authz.Allow(actor, nil, authz.PeerReview); err != nil {
		return nil, err
	}
	return s.Storage.ListApplications(models.ApplicationSubmitted)
}
