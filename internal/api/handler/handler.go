package handler

import (
	"net/http"

	"unicare/backend/internal/booking"
	"unicare/backend/internal/crisis"
	"unicare/backend/internal/hub"
	"unicare/backend/internal/identity"
	"unicare/backend/internal/peer"
	"unicare/backend/internal/rooms"
	apperrors "unicare/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Handler holds references to the domain services and the live-connection hub.
type Handler struct {
	Identity *identity.Service
	Rooms    *rooms.Service
	Bookings *booking.Service
	Peers    *peer.Service
	Crisis   *crisis.Service
	Hub      *hub.ManagerService

	jwtSecret []byte
}

func NewHandler(
	identitySvc *identity.Service,
	roomSvc *rooms.Service,
	bookingSvc *booking.Service,
	peerSvc *peer.Service,
	crisisSvc *crisis.Service,
	h *hub.ManagerService,
	jwtSecret string,
) *Handler {
	return &Handler{
		Identity:  identitySvc,
		Rooms:     roomSvc,
		Bookings:  bookingSvc,
		Peers:     peerSvc,
		Crisis:    crisisSvc,
		Hub:       h,
		jwtSecret: []byte(jwtSecret),
	}
}

// abortWithError maps an application error code onto an HTTP status and
// writes the JSON error body.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		status = http.StatusForbidden
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeConflict:
		status = http.StatusConflict
	case apperrors.CodeFailedPrecondition:
		status = http.StatusConflict
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
