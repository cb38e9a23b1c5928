package authz_test

import (
	"testing"

	"unicare/backend/internal/authz"
	"unicare/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func room(studentID string, supporterID *string) *models.SupportRoom {
	return &models.SupportRoom{ID: "room-1", StudentID: studentID, SupporterID: supporterID}
}

func TestAllowRoomClaim(t *testing.T) {
	waiting := room("student-1", nil)

	assert.NoError(t, authz.Allow(authz.Actor{ID: "c-1", Role: models.RoleCounselor}, waiting, authz.RoomClaim))
	assert.NoError(t, authz.Allow(authz.Actor{ID: "i-1", Role: models.RoleIntern}, waiting, authz.RoomClaim))
	assert.NoError(t, authz.Allow(authz.Actor{ID: "m-1", Role: models.RoleModerator}, waiting, authz.RoomClaim))

	// Students and admins are not supporters.
	assert.Error(t, authz.Allow(authz.Actor{ID: "s-1", Role: models.RoleStudent}, waiting, authz.RoomClaim))
	assert.Error(t, authz.Allow(authz.Actor{ID: "a-1", Role: models.RoleAdmin}, waiting, authz.RoomClaim))

	// A supporter cannot claim a room they opened themselves.
	own := room("c-1", nil)
	assert.Error(t, authz.Allow(authz.Actor{ID: "c-1", Role: models.RoleCounselor}, own, authz.RoomClaim))
}

func TestAllowMessageAppend(t *testing.T) {
	supporter := "c-1"
	active := room("student-1", &supporter)

	assert.NoError(t, authz.Allow(authz.Actor{ID: "student-1", Role: models.RoleStudent}, active, authz.MessageAppend))
	assert.NoError(t, authz.Allow(authz.Actor{ID: "c-1", Role: models.RoleCounselor}, active, authz.MessageAppend))

	// Nobody else posts, staff included.
	assert.Error(t, authz.Allow(authz.Actor{ID: "student-2", Role: models.RoleStudent}, active, authz.MessageAppend))
	assert.Error(t, authz.Allow(authz.Actor{ID: "m-1", Role: models.RoleModerator}, active, authz.MessageAppend))
}

func TestAllowMessageReadAndEnd(t *testing.T) {
	supporter := "c-1"
	active := room("student-1", &supporter)

	for _, action := range []authz.Action{authz.MessageRead, authz.RoomRead, authz.RoomEnd} {
		assert.NoError(t, authz.Allow(authz.Actor{ID: "student-1", Role: models.RoleStudent}, active, action))
		assert.NoError(t, authz.Allow(authz.Actor{ID: "c-1", Role: models.RoleCounselor}, active, action))
		assert.NoError(t, authz.Allow(authz.Actor{ID: "m-1", Role: models.RoleModerator}, active, action))
		assert.NoError(t, authz.Allow(authz.Actor{ID: "a-1", Role: models.RoleAdmin}, active, action))
		assert.Error(t, authz.Allow(authz.Actor{ID: "student-2", Role: models.RoleStudent}, active, action))
	}
}

func TestAllowBookingCancel(t *testing.T) {
	booking := &models.Booking{ID: "b-1", StudentID: "student-1", CounselorID: "c-1"}

	assert.NoError(t, authz.Allow(authz.Actor{ID: "student-1", Role: models.RoleStudent}, booking, authz.BookingCancel))
	assert.NoError(t, authz.Allow(authz.Actor{ID: "c-1", Role: models.RoleCounselor}, booking, authz.BookingCancel))
	assert.NoError(t, authz.Allow(authz.Actor{ID: "a-1", Role: models.RoleAdmin}, booking, authz.BookingCancel))
	assert.Error(t, authz.Allow(authz.Actor{ID: "m-1", Role: models.RoleModerator}, booking, authz.BookingCancel))
}

func TestAllowStaffOnlyActions(t *testing.T) {
	assert.NoError(t, authz.Allow(authz.Actor{ID: "a-1", Role: models.RoleAdmin}, nil, authz.PeerReview))
	assert.Error(t, authz.Allow(authz.Actor{ID: "m-1", Role: models.RoleModerator}, nil, authz.PeerReview))
	assert.Error(t, authz.Allow(authz.Actor{ID: "s-1", Role: models.RoleStudent}, nil, authz.PeerReview))

	assert.NoError(t, authz.Allow(authz.Actor{ID: "m-1", Role: models.RoleModerator}, nil, authz.AlertManage))
	assert.NoError(t, authz.Allow(authz.Actor{ID: "c-1", Role: models.RoleCounselor}, nil, authz.AlertManage))
	assert.Error(t, authz.Allow(authz.Actor{ID: "s-1", Role: models.RoleStudent}, nil, authz.AlertManage))
}

func TestAllowUnknownAction(t *testing.T) {
	assert.Error(t, authz.Allow(authz.Actor{ID: "a-1", Role: models.RoleAdmin}, nil, authz.Action("room.teleport")))
}
