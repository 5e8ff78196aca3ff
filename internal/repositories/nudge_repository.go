package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gift-service/internal/models"
)

var ErrNudgeNotFound = errors.New("nudge not found")

const nudgeColumns = `id, sender_id, receiver_id, status, created_at`

// NudgeRepository abstracts nudge persistence.
type NudgeRepository interface {
	CreateNudge(ctx context.Context, senderID, receiverID int) (models.Nudge, error)
	GetNudge(ctx context.Context, nudgeID int) (models.Nudge, error)
	ListReceived(ctx context.Context, receiverID int) ([]models.Nudge, error)
	MarkSeen(ctx context.Context, nudgeID int, receiverID int) (models.Nudge, bool, error)
	Undo(ctx context.Context, nudgeID int, senderID int) (models.Nudge, bool, error)
}

// NudgeRepo is a sqlx implementation of NudgeRepository.
type NudgeRepo struct {
	db *sqlx.DB
}

// NewNudgeRepo constructs a NudgeRepo.
func NewNudgeRepo(db *sqlx.DB) *NudgeRepo {
	return &NudgeRepo{db: db}
}

// CreateNudge records a nudge in the sent state.
func (r *NudgeRepo) CreateNudge(ctx context.Context, senderID, receiverID int) (models.Nudge, error) {
	var nudge models.Nudge
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO nudges (sender_id, receiver_id) VALUES ($1, $2) RETURNING `+nudgeColumns,
		senderID, receiverID,
	).StructScan(&nudge)
	return nudge, err
}

// GetNudge fetches a nudge by id.
func (r *NudgeRepo) GetNudge(ctx context.Context, nudgeID int) (models.Nudge, error) {
	var nudge models.Nudge
	err := r.db.GetContext(ctx, &nudge, `SELECT `+nudgeColumns+` FROM nudges WHERE id=$1`, nudgeID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Nudge{}, ErrNudgeNotFound
	}
	return nudge, err
}

// ListReceived returns unacknowledged nudges for the receiver.
func (r *NudgeRepo) ListReceived(ctx context.Context, receiverID int) ([]models.Nudge, error) {
	var nudges []models.Nudge
	err := r.db.SelectContext(ctx, &nudges,
		`SELECT `+nudgeColumns+` FROM nudges WHERE receiver_id=$1 AND status='sent' ORDER BY created_at DESC`, receiverID)
	return nudges, err
}

// MarkSeen acknowledges a nudge. Only moves sent -> seen.
func (r *NudgeRepo) MarkSeen(ctx context.Context, nudgeID int, receiverID int) (models.Nudge, bool, error) {
	return r.transition(ctx, `UPDATE nudges SET status='seen' WHERE id=$1 AND receiver_id=$2 AND status='sent' RETURNING `+nudgeColumns, nudgeID, receiverID)
}

// Undo retracts a nudge the receiver has not yet seen.
func (r *NudgeRepo) Undo(ctx context.Context, nudgeID int, senderID int) (models.Nudge, bool, error) {
	return r.transition(ctx, `UPDATE nudges SET status='undone' WHERE id=$1 AND sender_id=$2 AND status='sent' RETURNING `+nudgeColumns, nudgeID, senderID)
}

func (r *NudgeRepo) transition(ctx context.Context, query string, nudgeID, actorID int) (models.Nudge, bool, error) {
	var nudge models.Nudge
	err := r.db.QueryRowxContext(ctx, query, nudgeID, actorID).StructScan(&nudge)
	if errors.Is(err, sql.ErrNoRows) {
		current, getErr := r.GetNudge(ctx, nudgeID)
		if getErr != nil {
			return models.Nudge{}, false, getErr
		}
		return current, false, nil
	}
	if err != nil {
		return models.Nudge{}, false, err
	}
	return nudge, true, nil
}
