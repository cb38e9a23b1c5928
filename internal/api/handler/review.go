package handler

import (
	"net/http"
	"strconv"

	apperrors "unicare/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type peerApplicationRequest struct {
	Motivation string `json:"motivation" binding:"required"`
}

// SubmitPeerApplication files a peer-supporter application for the caller.
func (h *Handler) SubmitPeerApplication(c *gin.Context) {
	var req peerApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}
	app, err := h.Peers.Submit(actorFrom(c), req.Motivation)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListPeerApplications returns the review backlog.
func (h *Handler) ListPeerApplications(c *gin.Context) {
	apps, err := h.Peers.ListPending(actorFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

type reviewApplicationRequest struct {
	Approve bool `json:"approve"`
}

// ReviewPeerApplication decides an application.
func (h *Handler) ReviewPeerApplication(c *gin.Context) {
	var req reviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}
	app, err := h.Peers.Review(actorFrom(c), c.Param("id"), req.Approve)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// ListAlerts returns the staff crisis-alert feed, optionally filtered with
// ?status=.
func (h *Handler) ListAlerts(c *gin.Context) {
	alerts, err := h.Crisis.ListAlerts(actorFrom(c), c.Query("status"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

type alertStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetAlertStatus acknowledges or resolves an alert.
func (h *Handler) SetAlertStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, apperrors.InvalidArg("invalid alert id"))
		return
	}
	var req alertStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}
	if err := h.Crisis.SetAlertStatus(actorFrom(c), uint(id), req.Status); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
