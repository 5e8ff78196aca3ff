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

func setupGiftRouter(handler *GiftHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/gifts", handler.CreateGift)
	r.GET("/gifts/sent", handler.ListSent)
	r.GET("/gifts/:gift_id", handler.GetGift)
	r.POST("/gifts/:gift_id/open", handler.OpenGift)
	r.POST("/gifts/:gift_id/unsend", handler.UnsendGift)
	r.POST("/gifts/:gift_id/arrival", handler.CheckArrival)
	return r
}

func TestCreateGiftSuccess(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewGiftHandler(giftRepo, userRepo, ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	userRepo.On("GetUser", mock.Anything, 1).Return(models.User{ID: 1, Username: "alice"}, nil).Once()
	userRepo.On("GetUser", mock.Anything, 2).Return(models.User{ID: 2, Username: "bob"}, nil).Once()
	giftRepo.On("CreateGift", mock.Anything, mock.MatchedBy(func(g models.Gift) bool {
		return g.SenderID == 1 && g.ReceiverID == 2 && g.SenderName == "alice" &&
			g.ReceiverName == "bob" && g.GiftType == models.GiftTypeLetter
	})).Return(models.Gift{ID: 9, SenderID: 1, ReceiverID: 2, Status: models.GiftStatusPending}, nil).Once()

	body := bytes.NewBufferString(`{
		"receiver_id": 2,
		"address": "Blue Bottle Coffee",
		"lat": 37.7763,
		"lon": -122.4233,
		"gift_type": "letter",
		"content": {"text": "miss you", "paper": "classic", "ink_color": "blue"}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/gifts", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	giftRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestCreateGiftToSelf(t *testing.T) {
	handler := NewGiftHandler(new(mocks.GiftRepositoryMock), new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	body := bytes.NewBufferString(`{
		"receiver_id": 1,
		"address": "somewhere",
		"lat": 1,
		"lon": 1,
		"gift_type": "letter",
		"content": {"text": "hi"}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/gifts", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateGiftInvalidContent(t *testing.T) {
	handler := NewGiftHandler(new(mocks.GiftRepositoryMock), new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	// Letter with no text must be rejected before anything is stored.
	body := bytes.NewBufferString(`{
		"receiver_id": 2,
		"address": "somewhere",
		"lat": 1,
		"lon": 1,
		"gift_type": "letter",
		"content": {"paper": "classic"}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/gifts", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOpenGiftSuccess(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	pending := models.Gift{ID: 5, SenderID: 2, ReceiverID: 1, Status: models.GiftStatusPending}
	opened := pending
	opened.Status = models.GiftStatusOpened

	giftRepo.On("GetGift", mock.Anything, 5).Return(pending, nil).Once()
	giftRepo.On("MarkOpened", mock.Anything, 5).Return(opened, true, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/gifts/5/open", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.Gift
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, models.GiftStatusOpened, resp.Status)
	giftRepo.AssertExpectations(t)
}

func TestOpenGiftIdempotent(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	opened := models.Gift{ID: 5, SenderID: 2, ReceiverID: 1, Status: models.GiftStatusOpened}
	giftRepo.On("GetGift", mock.Anything, 5).Return(opened, nil).Once()
	giftRepo.On("MarkOpened", mock.Anything, 5).Return(opened, false, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/gifts/5/open", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	giftRepo.AssertExpectations(t)
}

func TestOpenGiftSenderForbidden(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	giftRepo.On("GetGift", mock.Anything, 5).Return(models.Gift{ID: 5, SenderID: 1, ReceiverID: 2, Status: models.GiftStatusPending}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/gifts/5/open", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	giftRepo.AssertExpectations(t)
}

func TestOpenGiftAfterUnsend(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	giftRepo.On("GetGift", mock.Anything, 5).Return(models.Gift{ID: 5, SenderID: 2, ReceiverID: 1, Status: models.GiftStatusDeleted}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/gifts/5/open", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	giftRepo.AssertExpectations(t)
}

func TestUnsendGiftAfterOpen(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	giftRepo.On("GetGift", mock.Anything, 5).Return(models.Gift{ID: 5, SenderID: 1, ReceiverID: 2, Status: models.GiftStatusOpened}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/gifts/5/unsend", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	giftRepo.AssertExpectations(t)
}

func TestCheckArrivalAtLocation(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	giftRepo.On("GetGift", mock.Anything, 5).Return(models.Gift{
		ID: 5, SenderID: 2, ReceiverID: 1, Lat: 37.7763, Lon: -122.4233, Status: models.GiftStatusPending,
	}, nil).Once()

	body := bytes.NewBufferString(`{"lat": 37.7763, "lon": -122.4233}`)
	req := httptest.NewRequest(http.MethodPost, "/gifts/5/arrival", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["arrived"])
	assert.Contains(t, resp, "distance_feet")
	giftRepo.AssertExpectations(t)
}

func TestCheckArrivalFarAway(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	giftRepo.On("GetGift", mock.Anything, 5).Return(models.Gift{
		ID: 5, SenderID: 2, ReceiverID: 1, Lat: 37.7763, Lon: -122.4233, Status: models.GiftStatusPending,
	}, nil).Once()

	// Roughly a mile east of the pin.
	body := bytes.NewBufferString(`{"lat": 37.7763, "lon": -122.4050}`)
	req := httptest.NewRequest(http.MethodPost, "/gifts/5/arrival", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, false, resp["arrived"])
	giftRepo.AssertExpectations(t)
}

func TestCheckArrivalNoLocationFix(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	giftRepo.On("GetGift", mock.Anything, 5).Return(models.Gift{
		ID: 5, SenderID: 2, ReceiverID: 1, Lat: 37.7763, Lon: -122.4233, Status: models.GiftStatusPending,
	}, nil).Once()

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/gifts/5/arrival", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, false, resp["arrived"])
	assert.NotContains(t, resp, "distance_feet")
	giftRepo.AssertExpectations(t)
}

func TestGetGiftNotParticipant(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	giftRepo.On("GetGift", mock.Anything, 5).Return(models.Gift{ID: 5, SenderID: 3, ReceiverID: 4}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/gifts/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	giftRepo.AssertExpectations(t)
}

func TestListSentRepoError(t *testing.T) {
	giftRepo := new(mocks.GiftRepositoryMock)
	handler := NewGiftHandler(giftRepo, new(mocks.UserRepositoryMock), ws.NewHub(), nil)
	router := setupGiftRouter(handler)

	giftRepo.On("ListSentPending", mock.Anything, 1).Return(([]models.Gift)(nil), assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/gifts/sent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	giftRepo.AssertExpectations(t)
}
