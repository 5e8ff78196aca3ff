package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gift-service/internal/mocks"
	"gift-service/internal/models"
	"gift-service/internal/ws"
)

func setupPresenceRouter(handler *PresenceHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/friends", handler.ListFriends)
	r.PUT("/presence", handler.UpdatePresence)
	r.PUT("/presence/favorites", handler.UpdateFavorites)
	return r
}

func TestListFriends(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewPresenceHandler(userRepo, ws.NewHub())
	router := setupPresenceRouter(handler)

	userRepo.On("ListFriends", mock.Anything, 1).Return([]models.User{{ID: 2, Username: "bob"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/friends", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestUpdatePresenceWithCoordinates(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewPresenceHandler(userRepo, ws.NewHub())
	router := setupPresenceRouter(handler)

	userRepo.On("UpdatePresence", mock.Anything, 1, mock.Anything, mock.Anything, "Mission District", models.UserStatusBusy).
		Return(models.User{ID: 1, Username: "alice", Address: "Mission District", Status: models.UserStatusBusy}, nil).Once()

	body := bytes.NewBufferString(`{"lat": 37.76, "lon": -122.42, "address": "Mission District", "status": "busy"}`)
	req := httptest.NewRequest(http.MethodPut, "/presence", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestUpdatePresenceLocationOff(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewPresenceHandler(userRepo, ws.NewHub())
	router := setupPresenceRouter(handler)

	// No coordinates means sharing is off: stored address becomes the sentinel.
	userRepo.On("UpdatePresence", mock.Anything, 1, (*float64)(nil), (*float64)(nil), models.AddressLocationOff, models.UserStatusFree).
		Return(models.User{ID: 1, Username: "alice", Address: models.AddressLocationOff}, nil).Once()

	body := bytes.NewBufferString(`{"address": "ignored"}`)
	req := httptest.NewRequest(http.MethodPut, "/presence", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.AddressLocationOff, resp.Address)
	userRepo.AssertExpectations(t)
}

func TestUpdateFavorites(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewPresenceHandler(userRepo, ws.NewHub())
	router := setupPresenceRouter(handler)

	favorites := models.FavoriteLocations{{Label: "Dolores Park", Address: "19th & Dolores", Lat: 37.7596, Lon: -122.4269}}
	userRepo.On("UpdateFavorites", mock.Anything, 1, favorites).
		Return(models.User{ID: 1, Username: "alice", FavoriteLocations: favorites}, nil).Once()

	body, err := json.Marshal(gin.H{"favorites": favorites})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/presence/favorites", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)
}
