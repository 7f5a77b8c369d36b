package database

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "phone", "address",
		"role", "is_active", "created_at", "updated_at",
	})
}

func TestCreateUser_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(sqlmock.AnyArg(), "Nimal Perera", "nimal@example.com", sqlmock.AnyArg(), "0771234567", "Colombo", "passenger").
		WillReturnRows(userRows().AddRow(
			testUserID, "Nimal Perera", "nimal@example.com", "$2a$12$hash",
			"0771234567", "Colombo", "passenger", true, now, now))

	user := &models.User{
		Name:         "Nimal Perera",
		Email:        "nimal@example.com",
		PasswordHash: "$2a$12$hash",
		Phone:        "0771234567",
		Address:      "Colombo",
		Role:         models.RolePassenger,
	}
	err := repo.CreateUser(user)
	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)
	assert.True(t, user.IsActive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.CreateUser(&models.User{
		Name:         "Nimal Perera",
		Email:        "nimal@example.com",
		PasswordHash: "$2a$12$hash",
		Role:         models.RolePassenger,
	})
	assert.ErrorIs(t, err, models.ErrEmailInUse)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("missing@example.com").
		WillReturnRows(userRows())

	_, err := repo.GetUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(testUserID).
		WillReturnRows(userRows().AddRow(
			testUserID, "Nimal Perera", "nimal@example.com", "$2a$12$hash",
			"0771234567", "Colombo", "operator", true, now, now))

	user, err := repo.GetUserByID(testUserID)
	require.NoError(t, err)
	assert.Equal(t, "nimal@example.com", user.Email)
	assert.Equal(t, models.RoleOperator, user.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}
