package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gift-service/internal/models"
)

var ErrInviteNotFound = errors.New("invite not found")

const inviteColumns = `id, session_id, host_id, receiver_id, status, created_at`

// InviteRepository abstracts collaboration invites.
type InviteRepository interface {
	CreateInvite(ctx context.Context, sessionID string, hostID, receiverID int) (models.Invite, error)
	GetInvite(ctx context.Context, inviteID int) (models.Invite, error)
	ListReceived(ctx context.Context, receiverID int) ([]models.Invite, error)
	Respond(ctx context.Context, inviteID int, receiverID int, status models.InviteStatus) (models.Invite, bool, error)
}

// InviteRepo is a sqlx implementation of InviteRepository.
type InviteRepo struct {
	db *sqlx.DB
}

// NewInviteRepo constructs an InviteRepo.
func NewInviteRepo(db *sqlx.DB) *InviteRepo {
	return &InviteRepo{db: db}
}

// CreateInvite records an invite into a session.
func (r *InviteRepo) CreateInvite(ctx context.Context, sessionID string, hostID, receiverID int) (models.Invite, error) {
	var invite models.Invite
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO sent_invites (session_id, host_id, receiver_id) VALUES ($1, $2, $3) RETURNING `+inviteColumns,
		sessionID, hostID, receiverID,
	).StructScan(&invite)
	return invite, err
}

// GetInvite fetches an invite by id.
func (r *InviteRepo) GetInvite(ctx context.Context, inviteID int) (models.Invite, error) {
	var invite models.Invite
	err := r.db.GetContext(ctx, &invite, `SELECT `+inviteColumns+` FROM sent_invites WHERE id=$1`, inviteID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invite{}, ErrInviteNotFound
	}
	return invite, err
}

// ListReceived returns open invites addressed to the user.
func (r *InviteRepo) ListReceived(ctx context.Context, receiverID int) ([]models.Invite, error) {
	var invites []models.Invite
	err := r.db.SelectContext(ctx, &invites,
		`SELECT `+inviteColumns+` FROM sent_invites WHERE receiver_id=$1 AND status='sent' ORDER BY created_at DESC`, receiverID)
	return invites, err
}

// Respond accepts or declines a still-open invite.
func (r *InviteRepo) Respond(ctx context.Context, inviteID int, receiverID int, status models.InviteStatus) (models.Invite, bool, error) {
	var invite models.Invite
	err := r.db.QueryRowxContext(ctx,
		`UPDATE sent_invites SET status=$3 WHERE id=$1 AND receiver_id=$2 AND status='sent' RETURNING `+inviteColumns,
		inviteID, receiverID, status,
	).StructScan(&invite)
	if errors.Is(err, sql.ErrNoRows) {
		current, getErr := r.GetInvite(ctx, inviteID)
		if getErr != nil {
			return models.Invite{}, false, getErr
		}
		return current, false, nil
	}
	if err != nil {
		return models.Invite{}, false, err
	}
	return invite, true, nil
}
