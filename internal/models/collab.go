package models

import (
	"encoding/json"
	"time"
)

// CollaborativeGift is a combined gift assembled from one session's basket.
// sender_ids holds the host first, then the collaborators.
type CollaborativeGift struct {
	ID           int         `db:"id" json:"id"`
	SessionID    string      `db:"session_id" json:"session_id"`
	SenderIDs    IntSlice    `db:"sender_ids" json:"sender_ids"`
	SenderNames  StringSlice `db:"sender_names" json:"sender_names"`
	ReceiverID   int         `db:"receiver_id" json:"receiver_id"`
	ReceiverName string      `db:"receiver_name" json:"receiver_name"`
	Address      string      `db:"address" json:"address"`
	Lat          float64     `db:"lat" json:"lat"`
	Lon          float64     `db:"lon" json:"lon"`
	Content      RawContent  `db:"content" json:"content"`
	Status       GiftStatus  `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// HostID returns the session host, the first entry of sender_ids.
func (g CollaborativeGift) HostID() int {
	if len(g.SenderIDs) == 0 {
		return 0
	}
	return g.SenderIDs[0]
}

// BasketItem is one contributor's entry in a session basket before finalization.
// The (session, sender, receiver, type, address) tuple is the upsert key.
type BasketItem struct {
	ID         int        `db:"id" json:"id"`
	SessionID  string     `db:"session_id" json:"session_id"`
	SenderID   int        `db:"sender_id" json:"sender_id"`
	ReceiverID int        `db:"receiver_id" json:"receiver_id"`
	GiftType   GiftType   `db:"gift_type" json:"gift_type"`
	Address    string     `db:"address" json:"address"`
	Lat        float64    `db:"lat" json:"lat"`
	Lon        float64    `db:"lon" json:"lon"`
	Content    RawContent `db:"content" json:"content"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// CollabGiftEntry is one element of a finalized gift's content.gifts array.
type CollabGiftEntry struct {
	SenderID   int        `json:"sender_id"`
	SenderName string     `json:"sender_name"`
	GiftType   GiftType   `json:"gift_type"`
	Content    RawContent `json:"content"`
}

// CollabContent is the content payload of a finalized collaborative gift.
type CollabContent struct {
	Gifts []CollabGiftEntry `json:"gifts"`
}

// Encode serializes the combined content for storage.
func (c CollabContent) Encode() (RawContent, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return RawContent(data), nil
}
