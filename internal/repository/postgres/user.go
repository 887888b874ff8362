package postgres

import (
	"database/sql"

	"lexideck/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Ensure creates the user on first contact, bumps last_seen_at and
// returns the stored row in one roundtrip
func (r *UserRepo) Ensure(userID int64) (*domain.User, error) {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (user_id)
		DO UPDATE SET last_seen_at = NOW()
		RETURNING user_id, authorized, created_at, last_seen_at
	`
	var u domain.User
	err := r.db.QueryRow(query, userID).Scan(&u.UserID, &u.Authorized, &u.CreatedAt, &u.LastSeenAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Authorize marks user as authorized
func (r *UserRepo) Authorize(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`
	_, err := r.db.Exec(query, userID)
	return err
}
