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

// InviteHandler manages collaboration invites.
type InviteHandler struct {
	inviteRepo repositories.InviteRepository
	userRepo   repositories.UserRepository
	hub        *ws.Hub
}

// NewInviteHandler builds an InviteHandler.
func NewInviteHandler(inviteRepo repositories.InviteRepository, userRepo repositories.UserRepository, hub *ws.Hub) *InviteHandler {
	return &InviteHandler{inviteRepo: inviteRepo, userRepo: userRepo, hub: hub}
}

// CreateInvite handles POST /invites: a host pulls a friend into a session.
func (h *InviteHandler) CreateInvite(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		SessionID  string `json:"session_id" binding:"required"`
		ReceiverID int    `json:"receiver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hostID, err := parseSessionHost(req.SessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	if hostID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the session host can invite"})
		return
	}
	if req.ReceiverID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot invite yourself"})
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

	invite, err := h.inviteRepo.CreateInvite(c.Request.Context(), req.SessionID, userID, req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send invite"})
		return
	}

	h.hub.SendToUser(invite.ReceiverID, models.FeedEvent{Type: "invite.insert", Payload: invite})
	c.JSON(http.StatusCreated, invite)
}

// ListReceived handles GET /invites/received.
func (h *InviteHandler) ListReceived(c *gin.Context) {
	userID := c.GetInt("userID")
	invites, err := h.inviteRepo.ListReceived(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load invites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

// Respond handles POST /invites/:invite_id/respond with accept or decline.
func (h *InviteHandler) Respond(c *gin.Context) {
	inviteID, err := strconv.Atoi(c.Param("invite_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invite id"})
		return
	}
	userID := c.GetInt("userID")

	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.InviteStatusDeclined
	if *req.Accept {
		status = models.InviteStatusAccepted
	}

	invite, transitioned, err := h.inviteRepo.Respond(c.Request.Context(), inviteID, userID, status)
	if err != nil {
		respStatus := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrInviteNotFound) {
			respStatus = http.StatusNotFound
		}
		c.JSON(respStatus, gin.H{"error": "could not respond to invite"})
		return
	}
	if invite.ReceiverID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your invite"})
		return
	}
	if transitioned {
		h.hub.SendToUsers([]int{invite.HostID, invite.ReceiverID}, models.FeedEvent{Type: "invite.update", Payload: invite})
	}
	c.JSON(http.StatusOK, invite)
}
