package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, phone, address, role, is_active, created_at, updated_at`

// CreateUser inserts a new user. Duplicate emails map to ErrEmailInUse.
func (r *UserRepository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, phone, address, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING ` + userColumns

	id := uuid.New().String()
	err := r.db.Get(user, query,
		id, user.Name, user.Email, user.PasswordHash, user.Phone, user.Address, user.Role)
	if err != nil {
		if isUniqueViolation(err, "") {
			return models.ErrEmailInUse
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(userID string) (*models.User, error) {
	user := &models.User{}
	err := r.db.Get(user, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.Get(user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetAllUsers lists every user, newest first
func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	users := []models.User{}
	err := r.db.Select(&users, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of req to the user row
func (r *UserRepository) UpdateUser(userID string, req *models.UpdateUserRequest, passwordHash *string) (*models.User, error) {
	user := &models.User{}
	query := `
		UPDATE users SET
			name          = COALESCE($2, name),
			phone         = COALESCE($3, phone),
			address       = COALESCE($4, address),
			password_hash = COALESCE($5, password_hash),
			updated_at    = now()
		WHERE id = $1
		RETURNING ` + userColumns

	err := r.db.Get(user, query, userID, req.Name, req.Phone, req.Address, passwordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// SetUserActive soft-deletes or reactivates a user
func (r *UserRepository) SetUserActive(userID string, active bool) (*models.User, error) {
	user := &models.User{}
	query := `
		UPDATE users SET is_active = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	err := r.db.Get(user, query, userID, active)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	return user, nil
}

// AssignRole changes a user's role
func (r *UserRepository) AssignRole(userID, role string) error {
	result, err := r.db.Exec(`UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, userID, role)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check role assignment: %w", err)
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// IsEmailUnique reports whether no user exists with the given email
func (r *UserRepository) IsEmailUnique(email string) (bool, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM users WHERE email = $1`, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return count == 0, nil
}
