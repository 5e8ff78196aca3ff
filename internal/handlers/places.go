package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gift-service/internal/places"
)

// defaultNearbyRadiusMeters matches the gift card picker's merchant search.
const defaultNearbyRadiusMeters = 1500

// PlacesHandler proxies the maps calls the app makes so the API key stays
// server-side.
type PlacesHandler struct {
	places places.Client
}

// NewPlacesHandler builds a PlacesHandler. A nil client means no API key was
// configured and every endpoint returns 503.
func NewPlacesHandler(client places.Client) *PlacesHandler {
	return &PlacesHandler{places: client}
}

// Nearby handles GET /places/nearby?lat=&lon=&keyword=&radius=.
func (h *PlacesHandler) Nearby(c *gin.Context) {
	if h.places == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "places not configured"})
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required"})
		return
	}
	radius := uint(defaultNearbyRadiusMeters)
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
			return
		}
		radius = uint(parsed)
	}

	results, err := h.places.Nearby(c.Request.Context(), lat, lon, c.Query("keyword"), radius)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "nearby search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": results})
}

// Details handles GET /places/:place_id.
func (h *PlacesHandler) Details(c *gin.Context) {
	if h.places == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "places not configured"})
		return
	}

	place, err := h.places.Details(c.Request.Context(), c.Param("place_id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "place lookup failed"})
		return
	}
	c.JSON(http.StatusOK, place)
}

// Geocode handles GET /places/geocode?address=.
func (h *PlacesHandler) Geocode(c *gin.Context) {
	if h.places == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "places not configured"})
		return
	}
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	result, err := h.places.Geocode(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocode failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Directions handles GET /places/directions?from_lat=&from_lon=&to_lat=&to_lon=,
// returning walking legs toward a gift's unlock point.
func (h *PlacesHandler) Directions(c *gin.Context) {
	if h.places == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "places not configured"})
		return
	}

	fromLat, err1 := strconv.ParseFloat(c.Query("from_lat"), 64)
	fromLon, err2 := strconv.ParseFloat(c.Query("from_lon"), 64)
	toLat, err3 := strconv.ParseFloat(c.Query("to_lat"), 64)
	toLon, err4 := strconv.ParseFloat(c.Query("to_lon"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to coordinates are required"})
		return
	}

	legs, err := h.places.Directions(c.Request.Context(), fromLat, fromLon, toLat, toLon)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "directions failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"legs": legs})
}
