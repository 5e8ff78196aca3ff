package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gift-service/internal/models"
	"gift-service/internal/repositories"
)

// DraftHandler manages saved-but-unsent gifts. Draft content may be half
// finished, so only the gift type is validated here; full content validation
// happens when the draft is actually sent through the gift endpoints.
type DraftHandler struct {
	draftRepo repositories.DraftRepository
}

// NewDraftHandler builds a DraftHandler.
func NewDraftHandler(draftRepo repositories.DraftRepository) *DraftHandler {
	return &DraftHandler{draftRepo: draftRepo}
}

type draftRequest struct {
	ReceiverID   *int              `json:"receiver_id"`
	ReceiverName string            `json:"receiver_name"`
	Address      string            `json:"address"`
	Lat          *float64          `json:"lat"`
	Lon          *float64          `json:"lon"`
	GiftType     models.GiftType   `json:"gift_type" binding:"required"`
	Content      models.RawContent `json:"content" binding:"required"`
}

// CreateDraft handles POST /drafts.
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	userID := c.GetInt("userID")

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.GiftType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown gift type"})
		return
	}

	draft, err := h.draftRepo.CreateDraft(c.Request.Context(), models.GiftDraft{
		SenderID:     userID,
		ReceiverID:   nullInt(req.ReceiverID),
		ReceiverName: req.ReceiverName,
		Address:      req.Address,
		Lat:          nullFloat(req.Lat),
		Lon:          nullFloat(req.Lon),
		GiftType:     req.GiftType,
		Content:      req.Content,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save draft"})
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// ListDrafts handles GET /drafts.
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	userID := c.GetInt("userID")
	drafts, err := h.draftRepo.ListDrafts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load drafts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

// GetDraft handles GET /drafts/:draft_id, owner only.
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draftID, ok := parseDraftID(c)
	if !ok {
		return
	}

	draft, err := h.draftRepo.GetDraft(c.Request.Context(), draftID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrDraftNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "draft not found"})
		return
	}
	if draft.SenderID != c.GetInt("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your draft"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateDraft handles PUT /drafts/:draft_id.
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	draftID, ok := parseDraftID(c)
	if !ok {
		return
	}
	userID := c.GetInt("userID")

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.GiftType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown gift type"})
		return
	}

	draft, err := h.draftRepo.UpdateDraft(c.Request.Context(), models.GiftDraft{
		ID:           draftID,
		SenderID:     userID,
		ReceiverID:   nullInt(req.ReceiverID),
		ReceiverName: req.ReceiverName,
		Address:      req.Address,
		Lat:          nullFloat(req.Lat),
		Lon:          nullFloat(req.Lon),
		GiftType:     req.GiftType,
		Content:      req.Content,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrDraftNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not update draft"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// DeleteDraft handles DELETE /drafts/:draft_id.
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	draftID, ok := parseDraftID(c)
	if !ok {
		return
	}

	if err := h.draftRepo.DeleteDraft(c.Request.Context(), draftID, c.GetInt("userID")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrDraftNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not delete draft"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateCollabDraft handles POST /collab/drafts.
func (h *DraftHandler) CreateCollabDraft(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		draftRequest
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.GiftType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown gift type"})
		return
	}

	draft, err := h.draftRepo.CreateCollabDraft(c.Request.Context(), models.GiftDraftCollab{
		SessionID:    req.SessionID,
		SenderID:     userID,
		ReceiverID:   nullInt(req.ReceiverID),
		ReceiverName: req.ReceiverName,
		Address:      req.Address,
		Lat:          nullFloat(req.Lat),
		Lon:          nullFloat(req.Lon),
		GiftType:     req.GiftType,
		Content:      req.Content,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save draft"})
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// ListCollabDrafts handles GET /collab/drafts.
func (h *DraftHandler) ListCollabDrafts(c *gin.Context) {
	userID := c.GetInt("userID")
	drafts, err := h.draftRepo.ListCollabDrafts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load drafts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

// GetCollabDraft handles GET /collab/drafts/:draft_id, owner only.
func (h *DraftHandler) GetCollabDraft(c *gin.Context) {
	draftID, ok := parseDraftID(c)
	if !ok {
		return
	}

	draft, err := h.draftRepo.GetCollabDraft(c.Request.Context(), draftID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrDraftNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "draft not found"})
		return
	}
	if draft.SenderID != c.GetInt("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your draft"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateCollabDraft handles PUT /collab/drafts/:draft_id. The draft keeps the
// session it was created under.
func (h *DraftHandler) UpdateCollabDraft(c *gin.Context) {
	draftID, ok := parseDraftID(c)
	if !ok {
		return
	}
	userID := c.GetInt("userID")

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.GiftType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown gift type"})
		return
	}

	draft, err := h.draftRepo.UpdateCollabDraft(c.Request.Context(), models.GiftDraftCollab{
		ID:           draftID,
		SenderID:     userID,
		ReceiverID:   nullInt(req.ReceiverID),
		ReceiverName: req.ReceiverName,
		Address:      req.Address,
		Lat:          nullFloat(req.Lat),
		Lon:          nullFloat(req.Lon),
		GiftType:     req.GiftType,
		Content:      req.Content,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrDraftNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not update draft"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// DeleteCollabDraft handles DELETE /collab/drafts/:draft_id.
func (h *DraftHandler) DeleteCollabDraft(c *gin.Context) {
	draftID, ok := parseDraftID(c)
	if !ok {
		return
	}

	if err := h.draftRepo.DeleteCollabDraft(c.Request.Context(), draftID, c.GetInt("userID")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrDraftNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "could not delete draft"})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseDraftID(c *gin.Context) (int, bool) {
	draftID, err := strconv.Atoi(c.Param("draft_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return 0, false
	}
	return draftID, true
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
