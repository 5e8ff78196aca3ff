package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gift-service/internal/models"
)

var ErrGiftNotFound = errors.New("gift not found")

const giftColumns = `id, sender_id, sender_name, receiver_id, receiver_name, address, lat, lon, gift_type, content, status, created_at, updated_at`

// GiftRepository abstracts individual gift persistence.
type GiftRepository interface {
	CreateGift(ctx context.Context, gift models.Gift) (models.Gift, error)
	GetGift(ctx context.Context, giftID int) (models.Gift, error)
	ListSentPending(ctx context.Context, senderID int) ([]models.Gift, error)
	ListReceivedPending(ctx context.Context, receiverID int) ([]models.Gift, error)
	MarkOpened(ctx context.Context, giftID int) (models.Gift, bool, error)
	Unsend(ctx context.Context, giftID int, senderID int) (models.Gift, bool, error)
}

// GiftRepo is a sqlx implementation of GiftRepository.
type GiftRepo struct {
	db *sqlx.DB
}

// NewGiftRepo constructs a GiftRepo.
func NewGiftRepo(db *sqlx.DB) *GiftRepo {
	return &GiftRepo{db: db}
}

// CreateGift inserts a gift with status pending.
func (r *GiftRepo) CreateGift(ctx context.Context, gift models.Gift) (models.Gift, error) {
	query := `INSERT INTO sent_gifts (sender_id, sender_name, receiver_id, receiver_name, address, lat, lon, gift_type, content)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + giftColumns
	var created models.Gift
	err := r.db.QueryRowxContext(ctx, query,
		gift.SenderID, gift.SenderName, gift.ReceiverID, gift.ReceiverName,
		gift.Address, gift.Lat, gift.Lon, gift.GiftType, gift.Content,
	).StructScan(&created)
	return created, err
}

// GetGift fetches a gift by id.
func (r *GiftRepo) GetGift(ctx context.Context, giftID int) (models.Gift, error) {
	var gift models.Gift
	err := r.db.GetContext(ctx, &gift, `SELECT `+giftColumns+` FROM sent_gifts WHERE id=$1`, giftID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Gift{}, ErrGiftNotFound
	}
	return gift, err
}

// ListSentPending returns the sender's still-placed pins. Opened and deleted
// gifts drop off the sender's map.
func (r *GiftRepo) ListSentPending(ctx context.Context, senderID int) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.SelectContext(ctx, &gifts,
		`SELECT `+giftColumns+` FROM sent_gifts WHERE sender_id=$1 AND status='pending' ORDER BY created_at DESC`, senderID)
	return gifts, err
}

// ListReceivedPending returns gifts still waiting for the receiver.
func (r *GiftRepo) ListReceivedPending(ctx context.Context, receiverID int) ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.SelectContext(ctx, &gifts,
		`SELECT `+giftColumns+` FROM sent_gifts WHERE receiver_id=$1 AND status='pending' ORDER BY created_at DESC`, receiverID)
	return gifts, err
}

// MarkOpened moves a pending gift to opened. The guard on status makes the
// call idempotent: a second application affects no rows and reports false.
func (r *GiftRepo) MarkOpened(ctx context.Context, giftID int) (models.Gift, bool, error) {
	return r.transition(ctx, giftID, 0, models.GiftStatusOpened)
}

// Unsend moves a pending gift to deleted. Only the sender may unsend.
func (r *GiftRepo) Unsend(ctx context.Context, giftID int, senderID int) (models.Gift, bool, error) {
	return r.transition(ctx, giftID, senderID, models.GiftStatusDeleted)
}

func (r *GiftRepo) transition(ctx context.Context, giftID int, senderID int, to models.GiftStatus) (models.Gift, bool, error) {
	query := `UPDATE sent_gifts SET status=$2, updated_at=NOW() WHERE id=$1 AND status='pending'`
	args := []interface{}{giftID, to}
	if senderID != 0 {
		query += ` AND sender_id=$3`
		args = append(args, senderID)
	}
	query += ` RETURNING ` + giftColumns

	var gift models.Gift
	err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&gift)
	if errors.Is(err, sql.ErrNoRows) {
		// Already terminal (or not the sender); report the current row instead.
		current, getErr := r.GetGift(ctx, giftID)
		if getErr != nil {
			return models.Gift{}, false, getErr
		}
		return current, false, nil
	}
	if err != nil {
		return models.Gift{}, false, err
	}
	return gift, true, nil
}
