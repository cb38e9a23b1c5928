package handler

import (
	"net/http"
	"time"

	apperrors "unicare/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	CounselorID string    `json:"counselor_id" binding:"required"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

// CreateBooking books a counselor slot for the caller.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}

	booking, err := h.Bookings.Create(actorFrom(c), req.CounselorID, req.StartsAt, req.EndsAt)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListBookings returns the caller's bookings.
func (h *Handler) ListBookings(c *gin.Context) {
	list, err := h.Bookings.List(actorFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CancelBooking frees a slot.
func (h *Handler) CancelBooking(c *gin.Context) {
	if err := h.Bookings.Cancel(actorFrom(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
