package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
)

// signedURLTTL keeps recording links valid for one year so an unopened gift
// can still play its audio months later.
const signedURLTTL = 365 * 24 * time.Hour

// AudioStore persists audio recordings in an object bucket.
type AudioStore interface {
	SaveRecording(ctx context.Context, userID int, r io.Reader) (objectPath string, signedURL string, err error)
	SignedURL(objectPath string) (string, error)
}

// GCSAudioStore stores recordings under {userId}/{unixMillis}.m4a.
type GCSAudioStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSAudioStore builds a store over the configured bucket.
func NewGCSAudioStore(ctx context.Context, bucket string) (*GCSAudioStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCSAudioStore{client: client, bucket: bucket}, nil
}

// SaveRecording uploads the recording and returns its path and a signed URL.
func (s *GCSAudioStore) SaveRecording(ctx context.Context, userID int, r io.Reader) (string, string, error) {
	objectPath := fmt.Sprintf("%d/%d.m4a", userID, time.Now().UnixMilli())

	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = "audio/mp4"
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", "", fmt.Errorf("upload recording: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", "", fmt.Errorf("upload recording: %w", err)
	}

	url, err := s.SignedURL(objectPath)
	if err != nil {
		return "", "", err
	}
	return objectPath, url, nil
}

// SignedURL issues a year-long read link for an uploaded recording. V2
// signing is used because V4 caps expiry at seven days.
func (s *GCSAudioStore) SignedURL(objectPath string) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(objectPath, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(signedURLTTL),
		Scheme:  gcs.SigningSchemeV2,
	})
	if err != nil {
		return "", fmt.Errorf("sign url: %w", err)
	}
	return url, nil
}

// Close releases the underlying client.
func (s *GCSAudioStore) Close() error {
	return s.client.Close()
}
