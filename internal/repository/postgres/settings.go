package postgres

import (
	"database/sql"
)

// SettingsRepo implements repository.SettingsRepository
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetInt returns a stored value; a missing key reads as zero
func (r *SettingsRepo) GetInt(userID int64, key string) (int, error) {
	var value int
	query := `SELECT value FROM user_settings WHERE user_id = $1 AND key = $2`
	err := r.db.QueryRow(query, userID, key).Scan(&value)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return value, nil
}

// SetInt stores a value, replacing any previous one
func (r *SettingsRepo) SetInt(userID int64, key string, value int) error {
	query := `
		INSERT INTO user_settings (user_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = EXCLUDED.value
	`
	_, err := r.db.Exec(query, userID, key, value)
	return err
}
