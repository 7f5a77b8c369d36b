package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableSeatCount(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewScheduleSeatRepository(db)

	mock.ExpectQuery(`SELECT b\.total_seats`).
		WithArgs(testScheduleID).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(37))

	count, err := repo.AvailableSeatCount(testScheduleID)
	require.NoError(t, err)
	assert.Equal(t, 37, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSeatNumbers(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewScheduleSeatRepository(db)

	mock.ExpectQuery(`SELECT s\.seat_number`).
		WithArgs(testScheduleID).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).
			AddRow("1").AddRow("2").AddRow("4"))

	numbers, err := repo.AvailableSeatNumbers(testScheduleID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "4"}, numbers)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSeatNumbers_FullyBooked(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewScheduleSeatRepository(db)

	mock.ExpectQuery(`SELECT s\.seat_number`).
		WithArgs(testScheduleID).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))

	numbers, err := repo.AvailableSeatNumbers(testScheduleID)
	require.NoError(t, err)
	assert.Empty(t, numbers)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservedSeatNumbers(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewScheduleSeatRepository(db)

	mock.ExpectQuery(`SELECT ss\.seat_number`).
		WithArgs(testScheduleID).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).
			AddRow("3").AddRow("10"))

	numbers, err := repo.ReservedSeatNumbers(testScheduleID)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "10"}, numbers)

	assert.NoError(t, mock.ExpectationsWereMet())
}
