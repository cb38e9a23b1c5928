// Package authz is the single authorization point: every handler and service
// asks Allow(actor, resource, action) instead of branching on roles inline.
package authz

import (
	"unicare/backend/internal/models"
	apperrors "unicare/backend/pkg/errors"
)

// Actor is the validated identity attached to a request.
type Actor struct {
	ID   string
	Role string
}

// IsSupporter reports whether the actor may claim waiting rooms.
func (a Actor) IsSupporter() bool {
	switch a.Role {
	case models.RoleCounselor, models.RoleIntern, models.RoleModerator:
		return true
	}
	return false
}

// IsStaff reports whether the actor may act on resources they do not
// participate in.
func (a Actor) IsStaff() bool {
	return a.Role == models.RoleModerator || a.Role == models.RoleAdmin
}

// Action names an operation against a resource.
type Action string

const (
	RoomClaim     Action = "room.claim"
	RoomEnd       Action = "room.end"
	RoomRead      Action = "room.read"
	MessageAppend Action = "message.append"
	MessageRead   Action = "message.read"
	BookingCancel Action = "booking.cancel"
	PeerReview    Action = "peer.review"
	AlertManage   Action = "alert.manage"
)

// Resource is anything with a participant set. Rooms expose their student and
// claimed supporter; bookings their student and counselor. A nil resource
// means the action is not tied to a specific entity (staff-only actions).
type Resource interface {
	ParticipantIDs() []string
}

// Allow returns nil when the actor may perform the action, or a forbidden
// error otherwise.
func Allow(actor Actor, resource Resource, action Action) error {
	switch action {
	case RoomClaim:
		if !actor.IsSupporter() {
			return apperrors.ErrNotSupporter
		}
		if isParticipant(actor, resource) {
			return apperrors.ErrOwnRoomClaim
		}
		return nil

	case MessageAppend:
		// Strictly the room's own participants; staff moderate via RoomEnd,
		// they do not speak in rooms they have not claimed.
		if isParticipant(actor, resource) {
			return nil
		}
		return apperrors.ErrNotParticipant

	case MessageRead, RoomRead, RoomEnd:
		if isParticipant(actor, resource) || actor.IsStaff() {
			return nil
		}
		return apperrors.ErrNotParticipant

	case BookingCancel:
		if isParticipant(actor, resource) || actor.Role == models.RoleAdmin {
			return nil
		}
		return apperrors.Forbidden("not a party to this booking")

	case PeerReview:
		if actor.Role == models.RoleAdmin {
			return nil
		}
		return apperrors.Forbidden("only admins review applications")

	case AlertManage:
		if actor.IsStaff() || actor.Role == models.RoleCounselor {
			return nil
		}
		return apperrors.Forbidden("alerts are staff only")
	}

	return apperrors.Forbidden("unknown action")
}

func isParticipant(actor Actor, resource Resource) bool {
	if resource == nil {
		return false
	}
	for _, id := range resource.ParticipantIDs() {
		if id == actor.ID {
			return true
		}
	}
	return false
}
