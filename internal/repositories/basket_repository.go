package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gift-service/internal/models"
)

var ErrBasketItemNotFound = errors.New("basket item not found")

const basketColumns = `id, session_id, sender_id, receiver_id, gift_type, address, lat, lon, content, created_at`

// BasketRepository abstracts the pre-finalization collaborative basket.
type BasketRepository interface {
	UpsertItem(ctx context.Context, item models.BasketItem) (models.BasketItem, error)
	ListSession(ctx context.Context, sessionID string) ([]models.BasketItem, error)
	CountSession(ctx context.Context, sessionID string) (int, error)
	GetItem(ctx context.Context, itemID int) (models.BasketItem, error)
	DeleteItem(ctx context.Context, sessionID string, itemID int) error
}

// BasketRepo is a sqlx implementation of BasketRepository.
type BasketRepo struct {
	db *sqlx.DB
}

// NewBasketRepo constructs a BasketRepo.
func NewBasketRepo(db *sqlx.DB) *BasketRepo {
	return &BasketRepo{db: db}
}

// UpsertItem inserts a basket item or replaces the contributor's existing row
// for the same (session, sender, receiver, type, address) tuple. Two
// collaborators writing concurrently resolve at the row level through this
// key; there is no session-level lock.
func (r *BasketRepo) UpsertItem(ctx context.Context, item models.BasketItem) (models.BasketItem, error) {
	query := `INSERT INTO collab_gift_basket (session_id, sender_id, receiver_id, gift_type, address, lat, lon, content)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (session_id, sender_id, receiver_id, gift_type, address)
        DO UPDATE SET lat = EXCLUDED.lat, lon = EXCLUDED.lon, content = EXCLUDED.content
        RETURNING ` + basketColumns
	var stored models.BasketItem
	err := r.db.QueryRowxContext(ctx, query,
		item.SessionID, item.SenderID, item.ReceiverID, item.GiftType,
		item.Address, item.Lat, item.Lon, item.Content,
	).StructScan(&stored)
	return stored, err
}

// ListSession returns the session's basket items in contribution order.
func (r *BasketRepo) ListSession(ctx context.Context, sessionID string) ([]models.BasketItem, error) {
	var items []models.BasketItem
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+basketColumns+` FROM collab_gift_basket WHERE session_id=$1 ORDER BY created_at ASC, id ASC`, sessionID)
	return items, err
}

// CountSession counts basket rows. Always a fresh query so collaborators'
// devices never drift from the table.
func (r *BasketRepo) CountSession(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM collab_gift_basket WHERE session_id=$1`, sessionID)
	return count, err
}

// GetItem fetches a single basket item.
func (r *BasketRepo) GetItem(ctx context.Context, itemID int) (models.BasketItem, error) {
	var item models.BasketItem
	err := r.db.GetContext(ctx, &item, `SELECT `+basketColumns+` FROM collab_gift_basket WHERE id=$1`, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BasketItem{}, ErrBasketItemNotFound
	}
	return item, err
}

// DeleteItem hard-deletes a basket row.
func (r *BasketRepo) DeleteItem(ctx context.Context, sessionID string, itemID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collab_gift_basket WHERE id=$1 AND session_id=$2`, itemID, sessionID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrBasketItemNotFound
	}
	return nil
}
