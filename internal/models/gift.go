package models

import "time"

// GiftStatus is the lifecycle state of a sent gift.
// pending is the only non-terminal state; opened and deleted are terminal.
type GiftStatus string

const (
	GiftStatusPending GiftStatus = "pending"
	GiftStatusOpened  GiftStatus = "opened"
	GiftStatusDeleted GiftStatus = "deleted"
)

// Gift represents an individually sent gift pinned to an unlock point.
type Gift struct {
	ID           int        `db:"id" json:"id"`
	SenderID     int        `db:"sender_id" json:"sender_id"`
	SenderName   string     `db:"sender_name" json:"sender_name"`
	ReceiverID   int        `db:"receiver_id" json:"receiver_id"`
	ReceiverName string     `db:"receiver_name" json:"receiver_name"`
	Address      string     `db:"address" json:"address"`
	Lat          float64    `db:"lat" json:"lat"`
	Lon          float64    `db:"lon" json:"lon"`
	GiftType     GiftType   `db:"gift_type" json:"gift_type"`
	Content      RawContent `db:"content" json:"content"`
	Status       GiftStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// FeedEvent is broadcast over the per-user websocket feed.
type FeedEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	ID      int         `json:"id,omitempty"`
}
