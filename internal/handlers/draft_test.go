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
)

func setupDraftRouter(handler *DraftHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/drafts", handler.CreateDraft)
	r.GET("/drafts/:draft_id", handler.GetDraft)
	r.DELETE("/drafts/:draft_id", handler.DeleteDraft)
	r.GET("/collab/drafts/:draft_id", handler.GetCollabDraft)
	r.PUT("/collab/drafts/:draft_id", handler.UpdateCollabDraft)
	return r
}

func TestCreateDraftAllowsPartialContent(t *testing.T) {
	draftRepo := new(mocks.DraftRepositoryMock)
	handler := NewDraftHandler(draftRepo)
	router := setupDraftRouter(handler)

	// Half-finished letter with no text yet: drafts only validate the type.
	draftRepo.On("CreateDraft", mock.Anything, mock.MatchedBy(func(d models.GiftDraft) bool {
		return d.SenderID == 1 && d.GiftType == models.GiftTypeLetter
	})).Return(models.GiftDraft{ID: 2, SenderID: 1, GiftType: models.GiftTypeLetter}, nil).Once()

	body := bytes.NewBufferString(`{"gift_type": "letter", "content": {"paper": "classic"}}`)
	req := httptest.NewRequest(http.MethodPost, "/drafts", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	draftRepo.AssertExpectations(t)
}

func TestCreateDraftUnknownType(t *testing.T) {
	handler := NewDraftHandler(new(mocks.DraftRepositoryMock))
	router := setupDraftRouter(handler)

	body := bytes.NewBufferString(`{"gift_type": "balloon", "content": {}}`)
	req := httptest.NewRequest(http.MethodPost, "/drafts", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDraftOwnerOnly(t *testing.T) {
	draftRepo := new(mocks.DraftRepositoryMock)
	handler := NewDraftHandler(draftRepo)
	router := setupDraftRouter(handler)

	draftRepo.On("GetDraft", mock.Anything, 2).Return(models.GiftDraft{ID: 2, SenderID: 9}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/drafts/2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	draftRepo.AssertExpectations(t)
}

func TestGetCollabDraftOwnerOnly(t *testing.T) {
	draftRepo := new(mocks.DraftRepositoryMock)
	handler := NewDraftHandler(draftRepo)
	router := setupDraftRouter(handler)

	draftRepo.On("GetCollabDraft", mock.Anything, 4).
		Return(models.GiftDraftCollab{ID: 4, SessionID: "9-2-1700000000000", SenderID: 9}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/collab/drafts/4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	draftRepo.AssertExpectations(t)
}

func TestUpdateCollabDraftSuccess(t *testing.T) {
	draftRepo := new(mocks.DraftRepositoryMock)
	handler := NewDraftHandler(draftRepo)
	router := setupDraftRouter(handler)

	draftRepo.On("UpdateCollabDraft", mock.Anything, mock.MatchedBy(func(d models.GiftDraftCollab) bool {
		return d.ID == 4 && d.SenderID == 1 && d.GiftType == models.GiftTypeLetter
	})).Return(models.GiftDraftCollab{ID: 4, SessionID: "1-2-1700000000000", SenderID: 1, GiftType: models.GiftTypeLetter}, nil).Once()

	body := bytes.NewBufferString(`{"gift_type": "letter", "content": {"text": "draft two"}}`)
	req := httptest.NewRequest(http.MethodPut, "/collab/drafts/4", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	draftRepo.AssertExpectations(t)
}
