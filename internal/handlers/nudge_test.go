package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gift-service/internal/mocks"
	"gift-service/internal/models"
	"gift-service/internal/ws"
)

func setupNudgeRouter(handler *NudgeHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/nudges", handler.CreateNudge)
	r.GET("/nudges/received", handler.ListReceived)
	r.POST("/nudges/:nudge_id/seen", handler.MarkSeen)
	r.POST("/nudges/:nudge_id/undo", handler.Undo)
	return r
}

func TestCreateNudgeSuccess(t *testing.T) {
	nudgeRepo := new(mocks.NudgeRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewNudgeHandler(nudgeRepo, userRepo, ws.NewHub())
	router := setupNudgeRouter(handler)

	userRepo.On("GetUser", mock.Anything, 2).Return(models.User{ID: 2, Username: "bob"}, nil).Once()
	nudgeRepo.On("CreateNudge", mock.Anything, 1, 2).Return(models.Nudge{ID: 3, SenderID: 1, ReceiverID: 2, Status: models.NudgeStatusSent}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/nudges", bytes.NewBufferString(`{"receiver_id":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	nudgeRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestCreateNudgeSelf(t *testing.T) {
	handler := NewNudgeHandler(new(mocks.NudgeRepositoryMock), new(mocks.UserRepositoryMock), ws.NewHub())
	router := setupNudgeRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/nudges", bytes.NewBufferString(`{"receiver_id":1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkSeenWrongReceiver(t *testing.T) {
	nudgeRepo := new(mocks.NudgeRepositoryMock)
	handler := NewNudgeHandler(nudgeRepo, new(mocks.UserRepositoryMock), ws.NewHub())
	router := setupNudgeRouter(handler)

	nudgeRepo.On("MarkSeen", mock.Anything, 3, 1).Return(models.Nudge{ID: 3, SenderID: 4, ReceiverID: 5, Status: models.NudgeStatusSent}, false, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/nudges/3/seen", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	nudgeRepo.AssertExpectations(t)
}

func TestUndoNudgeAfterSeen(t *testing.T) {
	nudgeRepo := new(mocks.NudgeRepositoryMock)
	handler := NewNudgeHandler(nudgeRepo, new(mocks.UserRepositoryMock), ws.NewHub())
	router := setupNudgeRouter(handler)

	// The receiver already saw it: the guarded update does not fire.
	nudgeRepo.On("Undo", mock.Anything, 3, 1).Return(models.Nudge{ID: 3, SenderID: 1, ReceiverID: 2, Status: models.NudgeStatusSeen}, false, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/nudges/3/undo", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	nudgeRepo.AssertExpectations(t)
}

func TestUndoNudgeSuccess(t *testing.T) {
	nudgeRepo := new(mocks.NudgeRepositoryMock)
	handler := NewNudgeHandler(nudgeRepo, new(mocks.UserRepositoryMock), ws.NewHub())
	router := setupNudgeRouter(handler)

	nudgeRepo.On("Undo", mock.Anything, 3, 1).Return(models.Nudge{ID: 3, SenderID: 1, ReceiverID: 2, Status: models.NudgeStatusUndone}, true, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/nudges/3/undo", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	nudgeRepo.AssertExpectations(t)
}
