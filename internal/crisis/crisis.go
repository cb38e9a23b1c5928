// Package crisis turns risky triage and message content into crisis alerts,
// audits them, and pushes them to the on-call staff channel.
package crisis

import (
	"log"

	"unicare/backend/internal/authz"
	"unicare/backend/internal/config"
	"unicare/backend/internal/models"
	"unicare/backend/internal/risk"
	"unicare/backend/internal/storage"
)

// Notifier delivers a freshly raised alert to staff. Implementations must be
// safe to call from request handlers.
type Notifier interface {
	NotifyAlert(alert *models.CrisisAlert) error
}

// Service handles risk scanning and the alert lifecycle.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier // nil disables notifications
}

// NewService creates a new crisis service.
func NewService(s storage.Storage, n Notifier) *Service {
	return &Service{Storage: s, Notifier: n}
}

// ScanTriage scores an intake form and raises an alert when the combined
// urgency and content score crosses the threshold. Scan failures are logged
// and swallowed: a broken alert pipeline must not reject the intake itself.
func (s *Service) ScanTriage(form *models.TriageForm) {
	score := risk.ScoreUrgency(form.Urgency) + risk.ScoreContent(form.Concern)
	if !risk.IsCrisis(score) {
		return
	}
	s.raise(&models.CrisisAlert{
		StudentID: form.StudentID,
		Source:    models.AlertSourceTriage,
		Excerpt:   excerpt(form.Concern),
		Severity:  score,
	})
}

// ScanMessage scores a room message. Only student-authored content is scanned;
// the room is recorded on the alert so staff can open the conversation.
func (s *Service) ScanMessage(room *models.SupportRoom, msg *models.SupportMessage) {
	if msg.SenderID != room.StudentID {
		return
	}
	score := risk.ScoreContent(msg.Content)
	if !risk.IsCrisis(score) {
		return
	}
	roomID := room.ID
	s.raise(&models.CrisisAlert{
		StudentID: room.StudentID,
		Source:    models.AlertSourceMessage,
		RoomID:    &roomID,
		Excerpt:   excerpt(msg.Content),
		Severity:  score,
	})
}

func (s *Service) raise(alert *models.CrisisAlert) {
	if err := s.Storage.SaveAlert(alert); err != nil {
		log.Printf("ERROR: Failed to save crisis alert for student %s: %v", alert.StudentID, err)
		return
	}
	s.Storage.AppendAudit(&models.AuditLog{
		ActorID:   alert.StudentID,
		Action:    "crisis.alert",
		SubjectID: alert.StudentID,
		Detail:    alert.Source,
	})
	if s.Notifier != nil {
		if err := s.Notifier.NotifyAlert(alert); err != nil {
			log.Printf("ERROR: Failed to notify staff about alert for student %s: %v", alert.StudentID, err)
		}
	}
}

// ListAlerts returns the staff alert feed.
func (s *Service) ListAlerts(actor authz.Actor, status string) ([]models.CrisisAlert, error) {
	if err := authz.Allow(actor, nil, authz.AlertManage); err != nil {
		return nil, err
	}
	return s.Storage.ListAlerts(status)
}

// SetAlertStatus moves an alert through OPEN -> ACKNOWLEDGED -> RESOLVED.
func (s *Service) SetAlertStatus(actor authz.Actor, id uint, status string) error {
	if err := authz.Allow(actor, nil, authz.AlertManage); err != nil {
		return err
	}
	if err := s.Storage.SetAlertStatus(id, status); err != nil {
		return err
	}
	s.Storage.AppendAudit(&models.AuditLog{
		ActorID: actor.ID,
		Action:  "crisis.status",
		Detail:  status,
	})
	return nil
}

// excerpt truncates on a rune boundary so multi-byte content never yields an
// invalid-UTF-8 alert excerpt.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= config.AlertExcerptMaxLen {
		return text
	}
	return string(runes[:config.AlertExcerptMaxLen])
}
