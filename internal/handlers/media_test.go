package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gift-service/internal/mocks"
)

func setupMediaRouter(handler *MediaHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/media/recordings", handler.UploadRecording)
	r.POST("/media/recordings/url", handler.RefreshRecordingURL)
	r.POST("/media/transcriptions", handler.Transcribe)
	r.POST("/assist/prompts", handler.GeneratePrompts)
	return r
}

func audioUploadRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("audio", "note.m4a")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake audio bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadRecordingUnconfigured(t *testing.T) {
	handler := NewMediaHandler(nil, nil)
	router := setupMediaRouter(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, audioUploadRequest(t, "/media/recordings"))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUploadRecordingSuccess(t *testing.T) {
	audioStore := new(mocks.AudioStoreMock)
	handler := NewMediaHandler(audioStore, nil)
	router := setupMediaRouter(handler)

	audioStore.On("SaveRecording", mock.Anything, 1, mock.Anything).
		Return("recordings/1/abc.m4a", "https://storage.example/signed", nil).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, audioUploadRequest(t, "/media/recordings"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "recordings/1/abc.m4a", resp["object_path"])
	assert.Equal(t, "https://storage.example/signed", resp["url"])
	audioStore.AssertExpectations(t)
}

func TestRefreshRecordingURL(t *testing.T) {
	audioStore := new(mocks.AudioStoreMock)
	handler := NewMediaHandler(audioStore, nil)
	router := setupMediaRouter(handler)

	audioStore.On("SignedURL", "recordings/1/abc.m4a").
		Return("https://storage.example/fresh", nil).Once()

	body := bytes.NewBufferString(`{"object_path": "recordings/1/abc.m4a"}`)
	req := httptest.NewRequest(http.MethodPost, "/media/recordings/url", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	audioStore.AssertExpectations(t)
}

func TestTranscribeUnconfigured(t *testing.T) {
	handler := NewMediaHandler(new(mocks.AudioStoreMock), nil)
	router := setupMediaRouter(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, audioUploadRequest(t, "/media/transcriptions"))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGeneratePromptsSuccess(t *testing.T) {
	assistClient := new(mocks.AssistClientMock)
	handler := NewMediaHandler(nil, assistClient)
	router := setupMediaRouter(handler)

	assistClient.On("GeneratePrompts", mock.Anything, "Maya", "birthday").
		Return([]string{"Remember the lake trip?"}, nil).Once()

	body := bytes.NewBufferString(`{"receiver_name": "Maya", "occasion": "birthday"}`)
	req := httptest.NewRequest(http.MethodPost, "/assist/prompts", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assistClient.AssertExpectations(t)
}
