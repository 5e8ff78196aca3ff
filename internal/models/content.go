package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GiftType discriminates the content payload stored with a gift.
type GiftType string

const (
	GiftTypeGiftCard GiftType = "giftCard"
	GiftTypeLetter   GiftType = "letter"
	GiftTypeAudio    GiftType = "audioRecording"
	GiftTypePlaylist GiftType = "playlist"
)

// Valid reports whether t is a known gift type.
func (t GiftType) Valid() bool {
	switch t {
	case GiftTypeGiftCard, GiftTypeLetter, GiftTypeAudio, GiftTypePlaylist:
		return true
	}
	return false
}

// Content is one variant of the per-type gift payload.
type Content interface {
	Validate() error
}

// GiftCardContent is the payload for gift cards.
type GiftCardContent struct {
	AmountCents int    `json:"amount_cents"`
	Design      string `json:"design"`
	MerchantID  string `json:"merchant_id,omitempty"`
}

func (c GiftCardContent) Validate() error {
	if c.AmountCents <= 0 {
		return errors.New("gift card amount must be positive")
	}
	if c.Design == "" {
		return errors.New("gift card design is required")
	}
	return nil
}

// LetterContent is the payload for letters.
type LetterContent struct {
	Text     string `json:"text"`
	Paper    string `json:"paper"`
	InkColor string `json:"ink_color"`
}

func (c LetterContent) Validate() error {
	if c.Text == "" {
		return errors.New("letter text is required")
	}
	return nil
}

// AudioContent is the payload for audio recordings.
type AudioContent struct {
	ObjectPath      string  `json:"object_path"`
	URL             string  `json:"url"`
	Transcript      string  `json:"transcript,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func (c AudioContent) Validate() error {
	if c.ObjectPath == "" && c.URL == "" {
		return errors.New("audio recording reference is required")
	}
	return nil
}

// PlaylistTrack is a single entry of a playlist gift.
type PlaylistTrack struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ArtworkURL string `json:"artwork_url,omitempty"`
	TrackURL   string `json:"track_url,omitempty"`
}

// PlaylistContent is the payload for playlists.
type PlaylistContent struct {
	Title  string          `json:"title"`
	Tracks []PlaylistTrack `json:"tracks"`
}

func (c PlaylistContent) Validate() error {
	if len(c.Tracks) == 0 {
		return errors.New("playlist needs at least one track")
	}
	for _, t := range c.Tracks {
		if t.Title == "" {
			return errors.New("playlist track title is required")
		}
	}
	return nil
}

// DecodeContent parses and validates a raw payload against the gift type.
func DecodeContent(giftType GiftType, raw RawContent) (Content, error) {
	if !giftType.Valid() {
		return nil, fmt.Errorf("unknown gift type %q", giftType)
	}

	var content Content
	switch giftType {
	case GiftTypeGiftCard:
		content = &GiftCardContent{}
	case GiftTypeLetter:
		content = &LetterContent{}
	case GiftTypeAudio:
		content = &AudioContent{}
	case GiftTypePlaylist:
		content = &PlaylistContent{}
	}

	if err := json.Unmarshal([]byte(raw), content); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", giftType, err)
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}
	return content, nil
}

// ValidateContent checks a raw payload without keeping the decoded form.
func ValidateContent(giftType GiftType, raw RawContent) error {
	_, err := DecodeContent(giftType, raw)
	return err
}
