package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gift-service/internal/models"
	"gift-service/internal/repositories"
	"gift-service/internal/ws"
)

// NudgeHandler manages nudges, the gift-free social pings.
type NudgeHandler struct {
	nudgeRepo repositories.NudgeRepository
	userRepo  repositories.UserRepository
	hub       *ws.Hub
}

// NewNudgeHandler builds a NudgeHandler.
func NewNudgeHandler(nudgeRepo repositories.NudgeRepository, userRepo repositories.UserRepository, hub *ws.Hub) *NudgeHandler {
	return &NudgeHandler{nudgeRepo: nudgeRepo, userRepo: userRepo, hub: hub}
}

// CreateNudge handles POST /nudges.
func (h *NudgeHandler) CreateNudge(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		ReceiverID int `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ReceiverID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot nudge yourself"})
		return
	}
	if _, err := h.userRepo.GetUser(c.Request.Context(), req.ReceiverID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "receiver not found"})
		return
	}

	nudge, err := h.nudgeRepo.CreateNudge(c.Request.Context(), userID, req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send nudge"})
		return
	}

	h.hub.SendToUser(nudge.ReceiverID, models.FeedEvent{Type: "nudge.insert", Payload: nudge})
	c.JSON(http.StatusCreated, nudge)
}

// ListReceived handles GET /nudges/received.
func (h *NudgeHandler) ListReceived(c *gin.Context) {
	userID := c.GetInt("userID")
	nudges, err := h.nudgeRepo.ListReceived(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load nudges"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nudges": nudges})
}

// MarkSeen handles POST /nudges/:nudge_id/seen, receiver only.
func (h *NudgeHandler) MarkSeen(c *gin.Context) {
	nudgeID, ok := parseNudgeID(c)
	if !ok {
		return
	}
	userID := c.GetInt("userID")

	nudge, transitioned, err := h.nudgeRepo.MarkSeen(c.Request.Context(), nudgeID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrNudgeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not mark nudge seen"})
		return
	}
	if nudge.ReceiverID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your nudge"})
		return
	}
	if transitioned {
		h.hub.SendToUsers([]int{nudge.SenderID, nudge.ReceiverID}, models.FeedEvent{Type: "nudge.update", Payload: nudge})
	}
	c.JSON(http.StatusOK, nudge)
}

// Undo handles POST /nudges/:nudge_id/undo. Sender only, and only while the
// receiver has not seen the nudge.
func (h *NudgeHandler) Undo(c *gin.Context) {
	nudgeID, ok := parseNudgeID(c)
	if !ok {
		return
	}
	userID := c.GetInt("userID")

	nudge, transitioned, err := h.nudgeRepo.Undo(c.Request.Context(), nudgeID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrNudgeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not undo nudge"})
		return
	}
	if nudge.SenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the sender can undo"})
		return
	}
	if !transitioned && nudge.Status == models.NudgeStatusSeen {
		c.JSON(http.StatusConflict, gin.H{"error": "nudge was already seen"})
		return
	}
	if transitioned {
		h.hub.SendToUsers([]int{nudge.SenderID, nudge.ReceiverID}, models.FeedEvent{Type: "nudge.update", Payload: nudge})
	}
	c.JSON(http.StatusOK, nudge)
}

func parseNudgeID(c *gin.Context) (int, bool) {
	nudgeID, err := strconv.Atoi(c.Param("nudge_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nudge id"})
		return 0, false
	}
	return nudgeID, true
}
