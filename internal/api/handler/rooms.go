package handler

import (
	"net/http"
	"strconv"

	apperrors "unicare/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type triageRequest struct {
	Topic   string   `json:"topic" binding:"required"`
	Concern string   `json:"concern" binding:"required"`
	Urgency string   `json:"urgency" binding:"required"`
	Tags    []string `json:"tags"`
}

// SubmitTriage files an intake form and routes the student to a room.
func (h *Handler) SubmitTriage(c *gin.Context) {
	var req triageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}

	result, err := h.Rooms.SubmitTriage(actorFrom(c).ID, req.Topic, req.Concern, req.Urgency, req.Tags)
	if err != nil {
		abortWithError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"form": result.Form, "room": result.Room, "reused": result.Reused})
}

// ListTriageHistory returns the caller's past intake forms.
func (h *Handler) ListTriageHistory(c *gin.Context) {
	forms, err := h.Rooms.ListTriageHistory(actorFrom(c).ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// ListRooms returns rooms the caller participates in.
func (h *Handler) ListRooms(c *gin.Context) {
	list, err := h.Rooms.ListForUser(actorFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListWaitingRooms returns the unclaimed backlog for supporters.
func (h *Handler) ListWaitingRooms(c *gin.Context) {
	list, err := h.Rooms.ListWaiting(actorFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetRoom returns one room.
func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.Rooms.GetRoom(actorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ClaimRoom assigns a waiting room to the calling supporter.
func (h *Handler) ClaimRoom(c *gin.Context) {
	room, err := h.Rooms.Claim(actorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type endRoomRequest struct {
	Status string `json:"status" binding:"required"`
}

// EndRoom moves a room to RESOLVED or CLOSED.
func (h *Handler) EndRoom(c *gin.Context) {
	var req endRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}
	if err := h.Rooms.End(actorFrom(c), c.Param("id"), req.Status); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

type appendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// AppendMessage posts a message to a room.
func (h *Handler) AppendMessage(c *gin.Context) {
	var req appendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apperrors.InvalidArg(err.Error()))
		return
	}
	msg, err := h.Rooms.AppendMessage(actorFrom(c), c.Param("id"), req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetMessages returns a room's history in creation order, optionally
// paginated with ?limit= and ?offset=.
func (h *Handler) GetMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.Rooms.GetMessages(actorFrom(c), c.Param("id"), limit, offset)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
