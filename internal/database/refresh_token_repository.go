package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// RefreshTokenRepository handles refresh token persistence
type RefreshTokenRepository struct {
	db *sqlx.DB
}

// NewRefreshTokenRepository creates a new RefreshTokenRepository
func NewRefreshTokenRepository(db *sqlx.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// StoreToken persists a refresh token for the given email, replacing any
// token previously stored for that email.
func (r *RefreshTokenRepository) StoreToken(token, email string, expiry time.Time) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM refresh_tokens WHERE email = $1`, email); err != nil {
		return fmt.Errorf("failed to clear previous tokens: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO refresh_tokens (id, token, email, expiry_date)
		VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), token, email, expiry)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetEmailByToken resolves the email a refresh token was issued to. Expired
// tokens are reported as ErrRefreshTokenExpired.
func (r *RefreshTokenRepository) GetEmailByToken(token string) (string, error) {
	stored := &models.RefreshToken{}
	err := r.db.Get(stored, `
		SELECT id, token, email, expiry_date
		FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", models.ErrRefreshTokenNotFound
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if time.Now().After(stored.ExpiryDate) {
		return "", models.ErrRefreshTokenExpired
	}
	return stored.Email, nil
}

// RevokeToken deletes a refresh token. Returns ErrRefreshTokenNotFound when
// the token was never stored or is already revoked.
func (r *RefreshTokenRepository) RevokeToken(token string) error {
	result, err := r.db.Exec(`DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check revocation: %w", err)
	}
	if rows == 0 {
		return models.ErrRefreshTokenNotFound
	}
	return nil
}

// DeleteExpired removes expired tokens, returning how many were purged
func (r *RefreshTokenRepository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM refresh_tokens WHERE expiry_date < now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return result.RowsAffected()
}
