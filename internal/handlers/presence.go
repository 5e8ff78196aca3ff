package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gift-service/internal/models"
	"gift-service/internal/repositories"
	"gift-service/internal/ws"
)

// PresenceHandler manages friend profiles and map presence.
type PresenceHandler struct {
	userRepo repositories.UserRepository
	hub      *ws.Hub
}

// NewPresenceHandler builds a PresenceHandler.
func NewPresenceHandler(userRepo repositories.UserRepository, hub *ws.Hub) *PresenceHandler {
	return &PresenceHandler{userRepo: userRepo, hub: hub}
}

// CreateUser handles POST /users. Profiles are just usernames; the app
// switches between them instead of authenticating.
func (h *PresenceHandler) CreateUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListFriends handles GET /friends: every other profile with presence data.
func (h *PresenceHandler) ListFriends(c *gin.Context) {
	userID := c.GetInt("userID")
	friends, err := h.userRepo.ListFriends(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load friends"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// UpdatePresence handles PUT /presence. Disabling sharing sends no
// coordinates; the stored address becomes the "Location off" sentinel.
func (h *PresenceHandler) UpdatePresence(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		Lat     *float64          `json:"lat"`
		Lon     *float64          `json:"lon"`
		Address string            `json:"address"`
		Status  models.UserStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := req.Address
	if req.Lat == nil || req.Lon == nil {
		req.Lat, req.Lon = nil, nil
		address = models.AddressLocationOff
	}
	status := req.Status
	if status == "" {
		status = models.UserStatusFree
	}

	user, err := h.userRepo.UpdatePresence(c.Request.Context(), userID, req.Lat, req.Lon, address, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update presence"})
		return
	}

	h.hub.BroadcastAll(models.FeedEvent{Type: "presence.update", Payload: user})
	c.JSON(http.StatusOK, user)
}

// UpdateFavorites handles PUT /presence/favorites.
func (h *PresenceHandler) UpdateFavorites(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		Favorites models.FavoriteLocations `json:"favorites"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.UpdateFavorites(c.Request.Context(), userID, req.Favorites)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update favorites"})
		return
	}
	c.JSON(http.StatusOK, user)
}
