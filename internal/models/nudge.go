package models

import "time"

// NudgeStatus is the lifecycle state of a nudge.
type NudgeStatus string

const (
	NudgeStatusSent   NudgeStatus = "sent"
	NudgeStatusSeen   NudgeStatus = "seen"
	NudgeStatusUndone NudgeStatus = "undone"
)

// Nudge is an ephemeral social ping between friends, unrelated to gifts.
type Nudge struct {
	ID         int         `db:"id" json:"id"`
	SenderID   int         `db:"sender_id" json:"sender_id"`
	ReceiverID int         `db:"receiver_id" json:"receiver_id"`
	Status     NudgeStatus `db:"status" json:"status"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}
