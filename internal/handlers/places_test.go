package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gift-service/internal/mocks"
	"gift-service/internal/places"
)

func setupPlacesRouter(handler *PlacesHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/places/nearby", handler.Nearby)
	r.GET("/places/geocode", handler.Geocode)
	r.GET("/places/directions", handler.Directions)
	r.GET("/places/:place_id", handler.Details)
	return r
}

func TestNearbyUnconfigured(t *testing.T) {
	handler := NewPlacesHandler(nil)
	router := setupPlacesRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/places/nearby?lat=40.7&lon=-74.0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNearbyMissingCoordinates(t *testing.T) {
	placesClient := new(mocks.PlacesClientMock)
	handler := NewPlacesHandler(placesClient)
	router := setupPlacesRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/places/nearby?lat=40.7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	placesClient.AssertNotCalled(t, "Nearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNearbySuccess(t *testing.T) {
	placesClient := new(mocks.PlacesClientMock)
	handler := NewPlacesHandler(placesClient)
	router := setupPlacesRouter(handler)

	placesClient.On("Nearby", mock.Anything, 40.7, -74.0, "coffee", uint(500)).
		Return([]places.Place{{PlaceID: "p1", Name: "Cafe"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/places/nearby?lat=40.7&lon=-74.0&keyword=coffee&radius=500", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	placesClient.AssertExpectations(t)
}

func TestGeocodeUpstreamError(t *testing.T) {
	placesClient := new(mocks.PlacesClientMock)
	handler := NewPlacesHandler(placesClient)
	router := setupPlacesRouter(handler)

	placesClient.On("Geocode", mock.Anything, "1 Main St").
		Return(places.GeocodeResult{}, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/places/geocode?address=1+Main+St", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	placesClient.AssertExpectations(t)
}

func TestDirectionsMissingCoordinates(t *testing.T) {
	handler := NewPlacesHandler(new(mocks.PlacesClientMock))
	router := setupPlacesRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/places/directions?from_lat=40.7&from_lon=-74.0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
