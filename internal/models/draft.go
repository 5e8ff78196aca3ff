package models

import (
	"database/sql"
	"time"
)

// GiftDraft is a saved, unsent gift. Drafts never leave the draft state and
// are never visible to the receiver.
type GiftDraft struct {
	ID           int             `db:"id" json:"id"`
	SenderID     int             `db:"sender_id" json:"sender_id"`
	ReceiverID   sql.NullInt64   `db:"receiver_id" json:"receiver_id,omitempty"`
	ReceiverName string          `db:"receiver_name" json:"receiver_name"`
	Address      string          `db:"address" json:"address"`
	Lat          sql.NullFloat64 `db:"lat" json:"lat,omitempty"`
	Lon          sql.NullFloat64 `db:"lon" json:"lon,omitempty"`
	GiftType     GiftType        `db:"gift_type" json:"gift_type"`
	Content      RawContent      `db:"content" json:"content"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// GiftDraftCollab is a draft scoped to a collaborative session.
type GiftDraftCollab struct {
	ID           int             `db:"id" json:"id"`
	SessionID    string          `db:"session_id" json:"session_id"`
	SenderID     int             `db:"sender_id" json:"sender_id"`
	ReceiverID   sql.NullInt64   `db:"receiver_id" json:"receiver_id,omitempty"`
	ReceiverName string          `db:"receiver_name" json:"receiver_name"`
	Address      string          `db:"address" json:"address"`
	Lat          sql.NullFloat64 `db:"lat" json:"lat,omitempty"`
	Lon          sql.NullFloat64 `db:"lon" json:"lon,omitempty"`
	GiftType     GiftType        `db:"gift_type" json:"gift_type"`
	Content      RawContent      `db:"content" json:"content"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
