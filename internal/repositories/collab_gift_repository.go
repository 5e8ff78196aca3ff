package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gift-service/internal/models"
)

var ErrCollabGiftNotFound = errors.New("collaborative gift not found")

const collabGiftColumns = `id, session_id, sender_ids, sender_names, receiver_id, receiver_name, address, lat, lon, content, status, created_at, updated_at`

// CollabGiftRepository abstracts finalized collaborative gifts.
type CollabGiftRepository interface {
	CreateCollabGift(ctx context.Context, gift models.CollaborativeGift) (models.CollaborativeGift, error)
	GetCollabGift(ctx context.Context, giftID int) (models.CollaborativeGift, error)
	ListSentPending(ctx context.Context, senderID int) ([]models.CollaborativeGift, error)
	ListReceivedPending(ctx context.Context, receiverID int) ([]models.CollaborativeGift, error)
	MarkOpened(ctx context.Context, giftID int) (models.CollaborativeGift, bool, error)
	Unsend(ctx context.Context, giftID int) (models.CollaborativeGift, bool, error)
}

// CollabGiftRepo is a sqlx implementation of CollabGiftRepository.
type CollabGiftRepo struct {
	db *sqlx.DB
}

// NewCollabGiftRepo constructs a CollabGiftRepo.
func NewCollabGiftRepo(db *sqlx.DB) *CollabGiftRepo {
	return &CollabGiftRepo{db: db}
}

// CreateCollabGift inserts the single combined row a finalized session yields.
func (r *CollabGiftRepo) CreateCollabGift(ctx context.Context, gift models.CollaborativeGift) (models.CollaborativeGift, error) {
	query := `INSERT INTO sent_gifts_collab (session_id, sender_ids, sender_names, receiver_id, receiver_name, address, lat, lon, content)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + collabGiftColumns
	var created models.CollaborativeGift
	err := r.db.QueryRowxContext(ctx, query,
		gift.SessionID, gift.SenderIDs, gift.SenderNames, gift.ReceiverID, gift.ReceiverName,
		gift.Address, gift.Lat, gift.Lon, gift.Content,
	).StructScan(&created)
	return created, err
}

// GetCollabGift fetches a collaborative gift by id.
func (r *CollabGiftRepo) GetCollabGift(ctx context.Context, giftID int) (models.CollaborativeGift, error) {
	var gift models.CollaborativeGift
	err := r.db.GetContext(ctx, &gift, `SELECT `+collabGiftColumns+` FROM sent_gifts_collab WHERE id=$1`, giftID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CollaborativeGift{}, ErrCollabGiftNotFound
	}
	return gift, err
}

// ListSentPending returns pending collaborative gifts the user contributed to.
func (r *CollabGiftRepo) ListSentPending(ctx context.Context, senderID int) ([]models.CollaborativeGift, error) {
	var gifts []models.CollaborativeGift
	err := r.db.SelectContext(ctx, &gifts,
		`SELECT `+collabGiftColumns+` FROM sent_gifts_collab WHERE sender_ids @> to_jsonb($1::int) AND status='pending' ORDER BY created_at DESC`, senderID)
	return gifts, err
}

// ListReceivedPending returns pending collaborative gifts addressed to the user.
func (r *CollabGiftRepo) ListReceivedPending(ctx context.Context, receiverID int) ([]models.CollaborativeGift, error) {
	var gifts []models.CollaborativeGift
	err := r.db.SelectContext(ctx, &gifts,
		`SELECT `+collabGiftColumns+` FROM sent_gifts_collab WHERE receiver_id=$1 AND status='pending' ORDER BY created_at DESC`, receiverID)
	return gifts, err
}

// MarkOpened moves a pending collaborative gift to opened, idempotently.
func (r *CollabGiftRepo) MarkOpened(ctx context.Context, giftID int) (models.CollaborativeGift, bool, error) {
	return r.transition(ctx, giftID, models.GiftStatusOpened)
}

// Unsend moves a pending collaborative gift to deleted, idempotently.
func (r *CollabGiftRepo) Unsend(ctx context.Context, giftID int) (models.CollaborativeGift, bool, error) {
	return r.transition(ctx, giftID, models.GiftStatusDeleted)
}

func (r *CollabGiftRepo) transition(ctx context.Context, giftID int, to models.GiftStatus) (models.CollaborativeGift, bool, error) {
	query := `UPDATE sent_gifts_collab SET status=$2, updated_at=NOW() WHERE id=$1 AND status='pending' RETURNING ` + collabGiftColumns
	var gift models.CollaborativeGift
	err := r.db.QueryRowxContext(ctx, query, giftID, to).StructScan(&gift)
	if errors.Is(err, sql.ErrNoRows) {
		current, getErr := r.GetCollabGift(ctx, giftID)
		if getErr != nil {
			return models.CollaborativeGift{}, false, getErr
		}
		return current, false, nil
	}
	if err != nil {
		return models.CollaborativeGift{}, false, err
	}
	return gift, true, nil
}
