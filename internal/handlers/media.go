package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gift-service/internal/assist"
	"gift-service/internal/storage"
)

// maxRecordingBytes caps audio uploads at 25 MB, the transcription API limit.
const maxRecordingBytes = 25 << 20

// MediaHandler covers audio recording uploads and the generative helpers
// used by the composition screens.
type MediaHandler struct {
	audioStore storage.AudioStore
	assist     assist.Client
}

// NewMediaHandler builds a MediaHandler. Either dependency may be nil when
// the matching credential is not configured; the endpoint then returns 503.
func NewMediaHandler(audioStore storage.AudioStore, assistClient assist.Client) *MediaHandler {
	return &MediaHandler{audioStore: audioStore, assist: assistClient}
}

// UploadRecording handles POST /media/recordings: multipart "audio" file in,
// object path plus a long-lived signed URL out.
func (h *MediaHandler) UploadRecording(c *gin.Context) {
	if h.audioStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audio storage not configured"})
		return
	}
	userID := c.GetInt("userID")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing audio file"})
		return
	}
	defer file.Close()
	if header.Size > maxRecordingBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "recording too large"})
		return
	}

	objectPath, signedURL, err := h.audioStore.SaveRecording(c.Request.Context(), userID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store recording"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"object_path": objectPath, "url": signedURL})
}

// RefreshRecordingURL handles POST /media/recordings/url: re-sign an
// existing object path when the receiver finally opens an old gift.
func (h *MediaHandler) RefreshRecordingURL(c *gin.Context) {
	if h.audioStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audio storage not configured"})
		return
	}

	var req struct {
		ObjectPath string `json:"object_path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.audioStore.SignedURL(req.ObjectPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not sign url"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Transcribe handles POST /media/transcriptions: multipart "audio" file in,
// transcript text out.
func (h *MediaHandler) Transcribe(c *gin.Context) {
	if h.assist == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "transcription not configured"})
		return
	}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing audio file"})
		return
	}
	defer file.Close()
	if header.Size > maxRecordingBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "recording too large"})
		return
	}

	text, err := h.assist.Transcribe(c.Request.Context(), header.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transcription failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcript": text})
}

// GeneratePrompts handles POST /assist/prompts: letter-writing suggestions
// personalized to the receiver.
func (h *MediaHandler) GeneratePrompts(c *gin.Context) {
	if h.assist == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "prompt generation not configured"})
		return
	}

	var req struct {
		ReceiverName string `json:"receiver_name" binding:"required"`
		Occasion     string `json:"occasion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompts, err := h.assist.GeneratePrompts(c.Request.Context(), req.ReceiverName, req.Occasion)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prompt generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}
