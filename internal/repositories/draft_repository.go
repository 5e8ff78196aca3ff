package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gift-service/internal/models"
)

var ErrDraftNotFound = errors.New("draft not found")

const draftColumns = `id, sender_id, receiver_id, receiver_name, address, lat, lon, gift_type, content, created_at, updated_at`
const collabDraftColumns = `id, session_id, sender_id, receiver_id, receiver_name, address, lat, lon, gift_type, content, created_at, updated_at`

// DraftRepository abstracts saved-but-unsent gifts, individual and collaborative.
type DraftRepository interface {
	CreateDraft(ctx context.Context, draft models.GiftDraft) (models.GiftDraft, error)
	GetDraft(ctx context.Context, draftID int) (models.GiftDraft, error)
	ListDrafts(ctx context.Context, senderID int) ([]models.GiftDraft, error)
	UpdateDraft(ctx context.Context, draft models.GiftDraft) (models.GiftDraft, error)
	DeleteDraft(ctx context.Context, draftID int, senderID int) error

	CreateCollabDraft(ctx context.Context, draft models.GiftDraftCollab) (models.GiftDraftCollab, error)
	GetCollabDraft(ctx context.Context, draftID int) (models.GiftDraftCollab, error)
	ListCollabDrafts(ctx context.Context, senderID int) ([]models.GiftDraftCollab, error)
	UpdateCollabDraft(ctx context.Context, draft models.GiftDraftCollab) (models.GiftDraftCollab, error)
	DeleteCollabDraft(ctx context.Context, draftID int, senderID int) error
}

// DraftRepo is a sqlx implementation of DraftRepository.
type DraftRepo struct {
	db *sqlx.DB
}

// NewDraftRepo constructs a DraftRepo.
func NewDraftRepo(db *sqlx.DB) *DraftRepo {
	return &DraftRepo{db: db}
}

// CreateDraft stores a new draft for its owner.
func (r *DraftRepo) CreateDraft(ctx context.Context, draft models.GiftDraft) (models.GiftDraft, error) {
	query := `INSERT INTO gift_drafts (sender_id, receiver_id, receiver_name, address, lat, lon, gift_type, content)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + draftColumns
	var created models.GiftDraft
	err := r.db.QueryRowxContext(ctx, query,
		draft.SenderID, draft.ReceiverID, draft.ReceiverName, draft.Address,
		draft.Lat, draft.Lon, draft.GiftType, draft.Content,
	).StructScan(&created)
	return created, err
}

// GetDraft fetches a draft by id.
func (r *DraftRepo) GetDraft(ctx context.Context, draftID int) (models.GiftDraft, error) {
	var draft models.GiftDraft
	err := r.db.GetContext(ctx, &draft, `SELECT `+draftColumns+` FROM gift_drafts WHERE id=$1`, draftID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GiftDraft{}, ErrDraftNotFound
	}
	return draft, err
}

// ListDrafts returns the owner's drafts, newest first.
func (r *DraftRepo) ListDrafts(ctx context.Context, senderID int) ([]models.GiftDraft, error) {
	var drafts []models.GiftDraft
	err := r.db.SelectContext(ctx, &drafts,
		`SELECT `+draftColumns+` FROM gift_drafts WHERE sender_id=$1 ORDER BY updated_at DESC`, senderID)
	return drafts, err
}

// UpdateDraft overwrites an existing draft owned by the caller.
func (r *DraftRepo) UpdateDraft(ctx context.Context, draft models.GiftDraft) (models.GiftDraft, error) {
	query := `UPDATE gift_drafts SET receiver_id=$3, receiver_name=$4, address=$5, lat=$6, lon=$7, gift_type=$8, content=$9, updated_at=NOW()
        WHERE id=$1 AND sender_id=$2
        RETURNING ` + draftColumns
	var updated models.GiftDraft
	err := r.db.QueryRowxContext(ctx, query,
		draft.ID, draft.SenderID, draft.ReceiverID, draft.ReceiverName, draft.Address,
		draft.Lat, draft.Lon, draft.GiftType, draft.Content,
	).StructScan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GiftDraft{}, ErrDraftNotFound
	}
	return updated, err
}

// DeleteDraft removes a draft owned by the caller.
func (r *DraftRepo) DeleteDraft(ctx context.Context, draftID int, senderID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gift_drafts WHERE id=$1 AND sender_id=$2`, draftID, senderID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// CreateCollabDraft stores a collaborative draft tied to a session.
func (r *DraftRepo) CreateCollabDraft(ctx context.Context, draft models.GiftDraftCollab) (models.GiftDraftCollab, error) {
	query := `INSERT INTO gift_drafts_collab (session_id, sender_id, receiver_id, receiver_name, address, lat, lon, gift_type, content)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + collabDraftColumns
	var created models.GiftDraftCollab
	err := r.db.QueryRowxContext(ctx, query,
		draft.SessionID, draft.SenderID, draft.ReceiverID, draft.ReceiverName, draft.Address,
		draft.Lat, draft.Lon, draft.GiftType, draft.Content,
	).StructScan(&created)
	return created, err
}

// GetCollabDraft fetches a collaborative draft by id.
func (r *DraftRepo) GetCollabDraft(ctx context.Context, draftID int) (models.GiftDraftCollab, error) {
	var draft models.GiftDraftCollab
	err := r.db.GetContext(ctx, &draft, `SELECT `+collabDraftColumns+` FROM gift_drafts_collab WHERE id=$1`, draftID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GiftDraftCollab{}, ErrDraftNotFound
	}
	return draft, err
}

// ListCollabDrafts returns the owner's collaborative drafts, newest first.
func (r *DraftRepo) ListCollabDrafts(ctx context.Context, senderID int) ([]models.GiftDraftCollab, error) {
	var drafts []models.GiftDraftCollab
	err := r.db.SelectContext(ctx, &drafts,
		`SELECT `+collabDraftColumns+` FROM gift_drafts_collab WHERE sender_id=$1 ORDER BY updated_at DESC`, senderID)
	return drafts, err
}

// UpdateCollabDraft overwrites a collaborative draft owned by the caller. The
// session key is fixed at creation and never rewritten.
func (r *DraftRepo) UpdateCollabDraft(ctx context.Context, draft models.GiftDraftCollab) (models.GiftDraftCollab, error) {
	query := `UPDATE gift_drafts_collab SET receiver_id=$3, receiver_name=$4, address=$5, lat=$6, lon=$7, gift_type=$8, content=$9, updated_at=NOW()
        WHERE id=$1 AND sender_id=$2
        RETURNING ` + collabDraftColumns
	var updated models.GiftDraftCollab
	err := r.db.QueryRowxContext(ctx, query,
		draft.ID, draft.SenderID, draft.ReceiverID, draft.ReceiverName, draft.Address,
		draft.Lat, draft.Lon, draft.GiftType, draft.Content,
	).StructScan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GiftDraftCollab{}, ErrDraftNotFound
	}
	return updated, err
}

// DeleteCollabDraft removes a collaborative draft owned by the caller.
func (r *DraftRepo) DeleteCollabDraft(ctx context.Context, draftID int, senderID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gift_drafts_collab WHERE id=$1 AND sender_id=$2`, draftID, senderID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrDraftNotFound
	}
	return nil
}
