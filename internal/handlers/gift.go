package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gift-service/internal/geo"
	"gift-service/internal/models"
	"gift-service/internal/observability"
	"gift-service/internal/repositories"
	"gift-service/internal/telemetry"
	"gift-service/internal/ws"
)

// GiftHandler manages the individual gift lifecycle.
type GiftHandler struct {
	giftRepo repositories.GiftRepository
	userRepo repositories.UserRepository
	hub      *ws.Hub
	audit    *telemetry.AuditEmitter
}

// NewGiftHandler builds a GiftHandler.
func NewGiftHandler(giftRepo repositories.GiftRepository, userRepo repositories.UserRepository, hub *ws.Hub, audit *telemetry.AuditEmitter) *GiftHandler {
	return &GiftHandler{
		giftRepo: giftRepo,
		userRepo: userRepo,
		hub:      hub,
		audit:    audit,
	}
}

// CreateGift handles POST /gifts. The row lands with status pending; a failed
// insert writes nothing.
func (h *GiftHandler) CreateGift(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		ReceiverID int               `json:"receiver_id" binding:"required"`
		Address    string            `json:"address" binding:"required"`
		Lat        float64           `json:"lat" binding:"required"`
		Lon        float64           `json:"lon" binding:"required"`
		GiftType   models.GiftType   `json:"gift_type" binding:"required"`
		Content    models.RawContent `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ReceiverID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot send a gift to yourself"})
		return
	}
	if err := models.ValidateContent(req.GiftType, req.Content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sender, err := h.userRepo.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sender"})
		return
	}
	receiver, err := h.userRepo.GetUser(c.Request.Context(), req.ReceiverID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrUserNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "receiver not found"})
		return
	}

	gift, err := h.giftRepo.CreateGift(c.Request.Context(), models.Gift{
		SenderID:     userID,
		SenderName:   sender.Username,
		ReceiverID:   receiver.ID,
		ReceiverName: receiver.Username,
		Address:      req.Address,
		Lat:          req.Lat,
		Lon:          req.Lon,
		GiftType:     req.GiftType,
		Content:      req.Content,
	})
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create gift"})
		return
	}

	h.hub.SendToUsers([]int{gift.SenderID, gift.ReceiverID}, models.FeedEvent{Type: "gift.insert", Payload: gift})
	h.emitAudit(c, "INFO", "Gift sent")
	c.JSON(http.StatusCreated, gift)
}

// ListSent returns the caller's placed pins, pending only.
func (h *GiftHandler) ListSent(c *gin.Context) {
	userID := c.GetInt("userID")
	gifts, err := h.giftRepo.ListSentPending(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sent gifts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gifts": gifts})
}

// ListReceived returns pending gifts addressed to the caller.
func (h *GiftHandler) ListReceived(c *gin.Context) {
	userID := c.GetInt("userID")
	gifts, err := h.giftRepo.ListReceivedPending(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load received gifts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gifts": gifts})
}

// GetGift returns one gift to its sender or receiver.
func (h *GiftHandler) GetGift(c *gin.Context) {
	gift, ok := h.loadGiftForParticipant(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gift)
}

// OpenGift handles POST /gifts/:gift_id/open. Receiver only; pending -> opened
// is the only move and reapplying is a no-op.
func (h *GiftHandler) OpenGift(c *gin.Context) {
	gift, ok := h.loadGiftForParticipant(c)
	if !ok {
		return
	}
	userID := c.GetInt("userID")
	if gift.ReceiverID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the receiver can open a gift"})
		return
	}
	if gift.Status == models.GiftStatusDeleted {
		c.JSON(http.StatusConflict, gin.H{"error": "gift was unsent"})
		return
	}

	updated, transitioned, err := h.giftRepo.MarkOpened(c.Request.Context(), gift.ID)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open gift"})
		return
	}
	if transitioned {
		observability.IncGiftTransition("gift", string(models.GiftStatusOpened))
		h.hub.SendToUsers([]int{updated.SenderID, updated.ReceiverID}, models.FeedEvent{Type: "gift.update", Payload: updated})
		h.emitAudit(c, "INFO", "Gift opened")
	}
	c.JSON(http.StatusOK, updated)
}

// UnsendGift handles POST /gifts/:gift_id/unsend. Sender only; pending ->
// deleted, idempotent like OpenGift.
func (h *GiftHandler) UnsendGift(c *gin.Context) {
	gift, ok := h.loadGiftForParticipant(c)
	if !ok {
		return
	}
	userID := c.GetInt("userID")
	if gift.SenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the sender can unsend a gift"})
		return
	}
	if gift.Status == models.GiftStatusOpened {
		c.JSON(http.StatusConflict, gin.H{"error": "gift was already opened"})
		return
	}

	updated, transitioned, err := h.giftRepo.Unsend(c.Request.Context(), gift.ID, userID)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not unsend gift"})
		return
	}
	if transitioned {
		observability.IncGiftTransition("gift", string(models.GiftStatusDeleted))
		h.hub.SendToUsers([]int{updated.SenderID, updated.ReceiverID}, models.FeedEvent{Type: "gift.update", Payload: updated})
		h.emitAudit(c, "INFO", "Gift unsent")
	}
	c.JSON(http.StatusOK, updated)
}

// CheckArrival handles POST /gifts/:gift_id/arrival: the proximity gate. It
// never mutates gift status; opening stays a separate explicit action.
func (h *GiftHandler) CheckArrival(c *gin.Context) {
	gift, ok := h.loadGiftForParticipant(c)
	if !ok {
		return
	}
	userID := c.GetInt("userID")
	if gift.ReceiverID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the receiver can check arrival"})
		return
	}

	var req struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target := geo.Point{Lat: gift.Lat, Lon: gift.Lon}
	var device *geo.Point
	if req.Lat != nil && req.Lon != nil {
		device = &geo.Point{Lat: *req.Lat, Lon: *req.Lon}
	}

	arrived := geo.Arrived(device, target)
	observability.IncProximityCheck(arrived)

	resp := gin.H{"arrived": arrived}
	if device != nil {
		resp["distance_feet"] = geo.DistanceFeet(*device, target)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GiftHandler) loadGiftForParticipant(c *gin.Context) (models.Gift, bool) {
	giftID, err := strconv.Atoi(c.Param("gift_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gift id"})
		return models.Gift{}, false
	}

	gift, err := h.giftRepo.GetGift(c.Request.Context(), giftID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrGiftNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "gift not found"})
		return models.Gift{}, false
	}

	userID := c.GetInt("userID")
	if gift.SenderID != userID && gift.ReceiverID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a gift participant"})
		return models.Gift{}, false
	}
	return gift, true
}

func (h *GiftHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
