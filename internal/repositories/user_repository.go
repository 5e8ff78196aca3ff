package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"gift-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, username, lat, lon, address, status, favorite_locations, created_at, updated_at`

// UserRepository abstracts friend profiles and presence.
type UserRepository interface {
	CreateUser(ctx context.Context, username string) (models.User, error)
	GetUser(ctx context.Context, userID int) (models.User, error)
	GetUsersByIDs(ctx context.Context, ids []int) ([]models.User, error)
	ListFriends(ctx context.Context, userID int) ([]models.User, error)
	UpdatePresence(ctx context.Context, userID int, lat, lon *float64, address string, status models.UserStatus) (models.User, error)
	UpdateFavorites(ctx context.Context, userID int, favorites models.FavoriteLocations) (models.User, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser registers a profile. The app switches between local profiles
// instead of authenticating, so creation is just a username.
func (r *UserRepo) CreateUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (username) VALUES ($1) RETURNING `+userColumns, username,
	).StructScan(&user)
	return user, err
}

// GetUser fetches a profile by id.
func (r *UserRepo) GetUser(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUsersByIDs resolves a set of profiles, preserving no particular order.
func (r *UserRepo) GetUsersByIDs(ctx context.Context, ids []int) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)
	var users []models.User
	err = r.db.SelectContext(ctx, &users, query, args...)
	return users, err
}

// ListFriends returns every other profile with presence data. The app runs on
// a small closed friend graph; everyone sees everyone.
func (r *UserRepo) ListFriends(ctx context.Context, userID int) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users WHERE id<>$1 ORDER BY username ASC`, userID)
	return users, err
}

// UpdatePresence writes the caller's location and status. Nil coordinates
// together with the "Location off" sentinel represent disabled sharing.
func (r *UserRepo) UpdatePresence(ctx context.Context, userID int, lat, lon *float64, address string, status models.UserStatus) (models.User, error) {
	query := `UPDATE users SET lat=$2, lon=$3, address=$4, status=$5, updated_at=NOW() WHERE id=$1 RETURNING ` + userColumns
	var user models.User
	err := r.db.QueryRowxContext(ctx, query, userID, lat, lon, address, status).StructScan(&user)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// UpdateFavorites replaces the caller's favorite locations list.
func (r *UserRepo) UpdateFavorites(ctx context.Context, userID int, favorites models.FavoriteLocations) (models.User, error) {
	query := `UPDATE users SET favorite_locations=$2, updated_at=NOW() WHERE id=$1 RETURNING ` + userColumns
	var user models.User
	err := r.db.QueryRowxContext(ctx, query, userID, favorites).StructScan(&user)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}
