package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContentLetter(t *testing.T) {
	content, err := DecodeContent(GiftTypeLetter, RawContent(`{"text":"hey","paper":"classic","ink_color":"blue"}`))
	require.NoError(t, err)

	letter, ok := content.(*LetterContent)
	require.True(t, ok)
	assert.Equal(t, "hey", letter.Text)
}

func TestDecodeContentLetterMissingText(t *testing.T) {
	_, err := DecodeContent(GiftTypeLetter, RawContent(`{"paper":"classic"}`))
	assert.Error(t, err)
}

func TestDecodeContentGiftCard(t *testing.T) {
	content, err := DecodeContent(GiftTypeGiftCard, RawContent(`{"amount_cents":2500,"design":"confetti"}`))
	require.NoError(t, err)

	card, ok := content.(*GiftCardContent)
	require.True(t, ok)
	assert.Equal(t, 2500, card.AmountCents)
}

func TestDecodeContentGiftCardZeroAmount(t *testing.T) {
	_, err := DecodeContent(GiftTypeGiftCard, RawContent(`{"amount_cents":0,"design":"confetti"}`))
	assert.Error(t, err)
}

func TestDecodeContentUnknownType(t *testing.T) {
	_, err := DecodeContent(GiftType("balloon"), RawContent(`{}`))
	assert.Error(t, err)
}

func TestDecodeContentAudioNeedsReference(t *testing.T) {
	_, err := DecodeContent(GiftTypeAudio, RawContent(`{"duration_seconds":12}`))
	assert.Error(t, err)

	_, err = DecodeContent(GiftTypeAudio, RawContent(`{"object_path":"1/1700000000000.m4a"}`))
	assert.NoError(t, err)
}

func TestDecodeContentPlaylist(t *testing.T) {
	_, err := DecodeContent(GiftTypePlaylist, RawContent(`{"title":"for you","tracks":[]}`))
	assert.Error(t, err)

	content, err := DecodeContent(GiftTypePlaylist, RawContent(`{"title":"for you","tracks":[{"title":"song","artist":"band"}]}`))
	require.NoError(t, err)
	playlist, ok := content.(*PlaylistContent)
	require.True(t, ok)
	assert.Len(t, playlist.Tracks, 1)
}

func TestDecodeContentMalformedJSON(t *testing.T) {
	_, err := DecodeContent(GiftTypeLetter, RawContent(`{"text":`))
	assert.Error(t, err)
}

func TestCollabContentEncode(t *testing.T) {
	raw, err := CollabContent{Gifts: []CollabGiftEntry{
		{SenderID: 1, SenderName: "alice", GiftType: GiftTypeLetter, Content: RawContent(`{"text":"hi"}`)},
	}}.Encode()
	require.NoError(t, err)

	var decoded CollabContent
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Len(t, decoded.Gifts, 1)
	assert.Equal(t, "alice", decoded.Gifts[0].SenderName)
}
