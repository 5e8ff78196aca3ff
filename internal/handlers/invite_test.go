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

func setupInviteRouter(handler *InviteHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/invites", handler.CreateInvite)
	r.GET("/invites/received", handler.ListReceived)
	r.POST("/invites/:invite_id/respond", handler.Respond)
	return r
}

func TestCreateInviteSuccess(t *testing.T) {
	inviteRepo := new(mocks.InviteRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewInviteHandler(inviteRepo, userRepo, ws.NewHub())
	router := setupInviteRouter(handler)

	userRepo.On("GetUser", mock.Anything, 2).Return(models.User{ID: 2, Username: "bob"}, nil).Once()
	inviteRepo.On("CreateInvite", mock.Anything, "1-2-1700000000000", 1, 2).
		Return(models.Invite{ID: 7, SessionID: "1-2-1700000000000", HostID: 1, ReceiverID: 2, Status: models.InviteStatusSent}, nil).Once()

	body := bytes.NewBufferString(`{"session_id": "1-2-1700000000000", "receiver_id": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/invites", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	inviteRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestCreateInviteNotSessionHost(t *testing.T) {
	inviteRepo := new(mocks.InviteRepositoryMock)
	handler := NewInviteHandler(inviteRepo, new(mocks.UserRepositoryMock), ws.NewHub())
	router := setupInviteRouter(handler)

	// Caller 1 tries to invite into a session hosted by user 2.
	body := bytes.NewBufferString(`{"session_id": "2-3-1700000000000", "receiver_id": 3}`)
	req := httptest.NewRequest(http.MethodPost, "/invites", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	inviteRepo.AssertNotCalled(t, "CreateInvite", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateInviteMalformedSession(t *testing.T) {
	handler := NewInviteHandler(new(mocks.InviteRepositoryMock), new(mocks.UserRepositoryMock), ws.NewHub())
	router := setupInviteRouter(handler)

	body := bytes.NewBufferString(`{"session_id": "not-a-session", "receiver_id": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/invites", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRespondAcceptInvite(t *testing.T) {
	inviteRepo := new(mocks.InviteRepositoryMock)
	handler := NewInviteHandler(inviteRepo, new(mocks.UserRepositoryMock), ws.NewHub())
	router := setupInviteRouter(handler)

	inviteRepo.On("Respond", mock.Anything, 7, 1, models.InviteStatusAccepted).
		Return(models.Invite{ID: 7, SessionID: "2-1-1700000000000", HostID: 2, ReceiverID: 1, Status: models.InviteStatusAccepted}, true, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/invites/7/respond", bytes.NewBufferString(`{"accept": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	inviteRepo.AssertExpectations(t)
}

func TestRespondWrongReceiver(t *testing.T) {
	inviteRepo := new(mocks.InviteRepositoryMock)
	handler := NewInviteHandler(inviteRepo, new(mocks.UserRepositoryMock), ws.NewHub())
	router := setupInviteRouter(handler)

	inviteRepo.On("Respond", mock.Anything, 7, 1, models.InviteStatusDeclined).
		Return(models.Invite{ID: 7, SessionID: "2-5-1700000000000", HostID: 2, ReceiverID: 5, Status: models.InviteStatusSent}, false, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/invites/7/respond", bytes.NewBufferString(`{"accept": false}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	inviteRepo.AssertExpectations(t)
}
