package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gift-service/internal/models"
	"gift-service/internal/observability"
	"gift-service/internal/repositories"
	"gift-service/internal/telemetry"
	"gift-service/internal/ws"
)

// CollabHandler manages collaborative sessions: the shared basket and the
// finalized combined gifts.
type CollabHandler struct {
	basketRepo repositories.BasketRepository
	collabRepo repositories.CollabGiftRepository
	userRepo   repositories.UserRepository
	hub        *ws.Hub
	audit      *telemetry.AuditEmitter
}

// NewCollabHandler builds a CollabHandler.
func NewCollabHandler(basketRepo repositories.BasketRepository, collabRepo repositories.CollabGiftRepository, userRepo repositories.UserRepository, hub *ws.Hub, audit *telemetry.AuditEmitter) *CollabHandler {
	return &CollabHandler{
		basketRepo: basketRepo,
		collabRepo: collabRepo,
		userRepo:   userRepo,
		hub:        hub,
		audit:      audit,
	}
}

// UpsertBasketItem handles PUT /collab/sessions/:session_id/basket. Re-adding
// the same (sender, receiver, type, address) tuple replaces the prior row.
func (h *CollabHandler) UpsertBasketItem(c *gin.Context) {
	sessionID := c.Param("session_id")
	hostID, err := parseSessionHost(sessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	userID := c.GetInt("userID")

	var req struct {
		ReceiverID int               `json:"receiver_id" binding:"required"`
		GiftType   models.GiftType   `json:"gift_type" binding:"required"`
		Address    string            `json:"address" binding:"required"`
		Lat        float64           `json:"lat" binding:"required"`
		Lon        float64           `json:"lon" binding:"required"`
		Content    models.RawContent `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.ValidateContent(req.GiftType, req.Content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.basketRepo.UpsertItem(c.Request.Context(), models.BasketItem{
		SessionID:  sessionID,
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		GiftType:   req.GiftType,
		Address:    req.Address,
		Lat:        req.Lat,
		Lon:        req.Lon,
		Content:    req.Content,
	})
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add to basket"})
		return
	}

	h.hub.SendToUsers([]int{hostID, userID}, models.FeedEvent{Type: "basket.upsert", Payload: item})
	c.JSON(http.StatusOK, item)
}

// ListBasket returns the session's basket items in contribution order.
func (h *CollabHandler) ListBasket(c *gin.Context) {
	sessionID := c.Param("session_id")
	items, err := h.basketRepo.ListSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load basket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// BasketCount returns a fresh row count so collaborators' devices never
// drift from the table.
func (h *CollabHandler) BasketCount(c *gin.Context) {
	sessionID := c.Param("session_id")
	count, err := h.basketRepo.CountSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count basket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// DeleteBasketItem removes a row. Allowed to the contributor who added it and
// to the session host.
func (h *CollabHandler) DeleteBasketItem(c *gin.Context) {
	sessionID := c.Param("session_id")
	hostID, err := parseSessionHost(sessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := h.basketRepo.GetItem(c.Request.Context(), itemID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrBasketItemNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "basket item not found"})
		return
	}
	if item.SessionID != sessionID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item does not belong to session"})
		return
	}

	userID := c.GetInt("userID")
	if item.SenderID != userID && hostID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		return
	}

	if err := h.basketRepo.DeleteItem(c.Request.Context(), sessionID, itemID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrBasketItemNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not delete basket item"})
		return
	}

	h.hub.SendToUsers([]int{hostID, item.SenderID}, models.FeedEvent{Type: "basket.delete", ID: itemID})
	c.Status(http.StatusNoContent)
}

// Finalize handles POST /collab/sessions/:session_id/finalize. Host only: the
// whole basket collapses into one combined gift row. Basket rows stay behind
// as a record of who contributed what.
func (h *CollabHandler) Finalize(c *gin.Context) {
	sessionID := c.Param("session_id")
	hostID, err := parseSessionHost(sessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	userID := c.GetInt("userID")
	if userID != hostID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the session host can finalize"})
		return
	}

	items, err := h.basketRepo.ListSession(c.Request.Context(), sessionID)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load basket"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "basket is empty"})
		return
	}

	// Distinct contributors in contribution order, host first.
	senderIDs := []int{hostID}
	seen := map[int]struct{}{hostID: {}}
	for _, item := range items {
		if _, ok := seen[item.SenderID]; !ok {
			seen[item.SenderID] = struct{}{}
			senderIDs = append(senderIDs, item.SenderID)
		}
	}

	users, err := h.userRepo.GetUsersByIDs(c.Request.Context(), append(append([]int{}, senderIDs...), items[0].ReceiverID))
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve profiles"})
		return
	}
	usernameByID := map[int]string{}
	for _, u := range users {
		usernameByID[u.ID] = u.Username
	}

	senderNames := make([]string, 0, len(senderIDs))
	for _, id := range senderIDs {
		senderNames = append(senderNames, usernameByID[id])
	}

	entries := make([]models.CollabGiftEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, models.CollabGiftEntry{
			SenderID:   item.SenderID,
			SenderName: usernameByID[item.SenderID],
			GiftType:   item.GiftType,
			Content:    item.Content,
		})
	}
	content, err := models.CollabContent{Gifts: entries}.Encode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build combined gift"})
		return
	}

	gift, err := h.collabRepo.CreateCollabGift(c.Request.Context(), models.CollaborativeGift{
		SessionID:    sessionID,
		SenderIDs:    senderIDs,
		SenderNames:  senderNames,
		ReceiverID:   items[0].ReceiverID,
		ReceiverName: usernameByID[items[0].ReceiverID],
		Address:      items[0].Address,
		Lat:          items[0].Lat,
		Lon:          items[0].Lon,
		Content:      content,
	})
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not finalize session"})
		return
	}

	notify := append(append([]int{}, gift.SenderIDs...), gift.ReceiverID)
	h.hub.SendToUsers(notify, models.FeedEvent{Type: "collab_gift.insert", Payload: gift})
	h.emitAudit(c, "INFO", "Collaborative gift sent")
	c.JSON(http.StatusCreated, gift)
}

// ListSentCollab returns pending collaborative gifts the caller helped send.
func (h *CollabHandler) ListSentCollab(c *gin.Context) {
	userID := c.GetInt("userID")
	gifts, err := h.collabRepo.ListSentPending(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sent gifts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gifts": gifts})
}

// ListReceivedCollab returns pending collaborative gifts addressed to the caller.
func (h *CollabHandler) ListReceivedCollab(c *gin.Context) {
	userID := c.GetInt("userID")
	gifts, err := h.collabRepo.ListReceivedPending(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load received gifts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gifts": gifts})
}

// GetCollabGift returns one collaborative gift to a contributor or the receiver.
func (h *CollabHandler) GetCollabGift(c *gin.Context) {
	gift, ok := h.loadCollabGiftForParticipant(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gift)
}

// OpenCollabGift moves a pending collaborative gift to opened, receiver only.
func (h *CollabHandler) OpenCollabGift(c *gin.Context) {
	gift, ok := h.loadCollabGiftForParticipant(c)
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

	updated, transitioned, err := h.collabRepo.MarkOpened(c.Request.Context(), gift.ID)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open gift"})
		return
	}
	if transitioned {
		observability.IncGiftTransition("collab_gift", string(models.GiftStatusOpened))
		notify := append(append([]int{}, updated.SenderIDs...), updated.ReceiverID)
		h.hub.SendToUsers(notify, models.FeedEvent{Type: "collab_gift.update", Payload: updated})
		h.emitAudit(c, "INFO", "Collaborative gift opened")
	}
	c.JSON(http.StatusOK, updated)
}

// UnsendCollabGift moves a pending collaborative gift to deleted, host only.
func (h *CollabHandler) UnsendCollabGift(c *gin.Context) {
	gift, ok := h.loadCollabGiftForParticipant(c)
	if !ok {
		return
	}
	userID := c.GetInt("userID")
	if gift.HostID() != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the host can unsend a collaborative gift"})
		return
	}
	if gift.Status == models.GiftStatusOpened {
		c.JSON(http.StatusConflict, gin.H{"error": "gift was already opened"})
		return
	}

	updated, transitioned, err := h.collabRepo.Unsend(c.Request.Context(), gift.ID)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not unsend gift"})
		return
	}
	if transitioned {
		observability.IncGiftTransition("collab_gift", string(models.GiftStatusDeleted))
		notify := append(append([]int{}, updated.SenderIDs...), updated.ReceiverID)
		h.hub.SendToUsers(notify, models.FeedEvent{Type: "collab_gift.update", Payload: updated})
		h.emitAudit(c, "INFO", "Collaborative gift unsent")
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CollabHandler) loadCollabGiftForParticipant(c *gin.Context) (models.CollaborativeGift, bool) {
	giftID, err := strconv.Atoi(c.Param("gift_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gift id"})
		return models.CollaborativeGift{}, false
	}

	gift, err := h.collabRepo.GetCollabGift(c.Request.Context(), giftID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrCollabGiftNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "gift not found"})
		return models.CollaborativeGift{}, false
	}

	userID := c.GetInt("userID")
	participant := gift.ReceiverID == userID
	for _, id := range gift.SenderIDs {
		if id == userID {
			participant = true
		}
	}
	if !participant {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a gift participant"})
		return models.CollaborativeGift{}, false
	}
	return gift, true
}

func (h *CollabHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}

// parseSessionHost extracts the host id from a "{host}-{friend}-{millis}"
// session key. Malformed ids are rejected rather than defaulted.
func parseSessionHost(sessionID string) (int, error) {
	parts := strings.Split(sessionID, "-")
	if len(parts) != 3 {
		return 0, errors.New("malformed session id")
	}
	hostID, err := strconv.Atoi(parts[0])
	if err != nil || hostID <= 0 {
		return 0, errors.New("malformed session id")
	}
	return hostID, nil
}
