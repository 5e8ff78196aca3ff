package models

import "time"

// InviteStatus is the lifecycle state of a collaboration invite.
type InviteStatus string

const (
	InviteStatusSent     InviteStatus = "sent"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// Invite asks a friend to join a collaborative gift session.
type Invite struct {
	ID         int          `db:"id" json:"id"`
	SessionID  string       `db:"session_id" json:"session_id"`
	HostID     int          `db:"host_id" json:"host_id"`
	ReceiverID int          `db:"receiver_id" json:"receiver_id"`
	Status     InviteStatus `db:"status" json:"status"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}
