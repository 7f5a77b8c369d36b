package database

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a mock database for testing
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

const (
	testUserID     = "a3b54f3c-1111-4a8d-9c6e-000000000001"
	testScheduleID = "a3b54f3c-2222-4a8d-9c6e-000000000002"
	testBusID      = "a3b54f3c-3333-4a8d-9c6e-000000000003"
	testBookingID  = "a3b54f3c-4444-4a8d-9c6e-000000000004"
)

func expectScheduleLock(mock sqlmock.Sqlmock, fare string, totalSeats int) {
	mock.ExpectQuery(`FOR UPDATE OF s`).
		WithArgs(testScheduleID).
		WillReturnRows(sqlmock.NewRows([]string{"bus_id", "fare", "total_seats"}).
			AddRow(testBusID, fare, totalSeats))
}

func expectReservedRecheck(mock sqlmock.Sqlmock, reserved ...string) {
	rows := sqlmock.NewRows([]string{"seat_number"})
	for _, n := range reserved {
		rows.AddRow(n)
	}
	mock.ExpectQuery(`SELECT ss\.seat_number`).
		WithArgs(testScheduleID).
		WillReturnRows(rows)
}

func TestCreateBooking_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	expectScheduleLock(mock, "100.00", 40)
	expectReservedRecheck(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WithArgs(sqlmock.AnyArg(), testUserID, testScheduleID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "booking_date", "total_fare", "status"}).
			AddRow(testBookingID, testUserID, testScheduleID, time.Now(), "200.00", "confirmed"))

	seatIDs := map[string]string{
		"7": "a3b54f3c-5555-4a8d-9c6e-000000000005",
		"8": "a3b54f3c-5555-4a8d-9c6e-000000000006",
	}
	for _, seat := range []string{"7", "8"} {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM seats WHERE bus_id = $1 AND seat_number = $2`)).
			WithArgs(testBusID, seat).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(seatIDs[seat]))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO schedule_seats`)).
			WithArgs(sqlmock.AnyArg(), testScheduleID, seatIDs[seat], seat, testBookingID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO seat_logs`)).
		WithArgs(sqlmock.AnyArg(), testBookingID, testBusID, "7,8").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := repo.CreateBooking(testUserID, testScheduleID, []string{"7", "8"})
	require.NoError(t, err)
	assert.Equal(t, testBookingID, booking.BookingID)
	assert.Equal(t, []string{"7", "8"}, booking.ReservedSeats)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	// 100.00 x 2 must be exactly 200.00
	assert.True(t, booking.TotalFare.Equal(decimal.RequireFromString("200.00")),
		"expected total fare 200.00, got %s", booking.TotalFare)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_SeatAlreadyReserved(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	expectScheduleLock(mock, "50.00", 40)
	expectReservedRecheck(mock, "3", "5")
	mock.ExpectRollback()

	_, err := repo.CreateBooking(testUserID, testScheduleID, []string{"4", "5"})

	var seatsErr *models.SeatsUnavailableError
	require.ErrorAs(t, err, &seatsErr)
	assert.Equal(t, []string{"5"}, seatsErr.Seats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_InsufficientSeats(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	expectScheduleLock(mock, "50.00", 3)
	expectReservedRecheck(mock, "1", "2")
	mock.ExpectRollback()

	_, err := repo.CreateBooking(testUserID, testScheduleID, []string{"3", "4"})
	assert.ErrorIs(t, err, models.ErrInsufficientSeats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_ScheduleNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF s`).
		WithArgs(testScheduleID).
		WillReturnRows(sqlmock.NewRows([]string{"bus_id", "fare", "total_seats"}))
	mock.ExpectRollback()

	_, err := repo.CreateBooking(testUserID, testScheduleID, []string{"1"})
	assert.ErrorIs(t, err, models.ErrScheduleNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent booking can win a seat between our recheck and insert. The
// unique index turns that into a conflict, and the whole attempt rolls back.
func TestCreateBooking_UniqueViolationMapsToConflict(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	expectScheduleLock(mock, "75.00", 40)
	expectReservedRecheck(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WithArgs(sqlmock.AnyArg(), testUserID, testScheduleID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "booking_date", "total_fare", "status"}).
			AddRow(testBookingID, testUserID, testScheduleID, time.Now(), "75.00", "confirmed"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM seats WHERE bus_id = $1 AND seat_number = $2`)).
		WithArgs(testBusID, "12").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a3b54f3c-5555-4a8d-9c6e-000000000005"))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO schedule_seats`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "schedule_seats_schedule_seat_key"})
	mock.ExpectRollback()

	_, err := repo.CreateBooking(testUserID, testScheduleID, []string{"12"})

	var seatsErr *models.SeatsUnavailableError
	require.ErrorAs(t, err, &seatsErr)
	assert.Equal(t, []string{"12"}, seatsErr.Seats)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_UnknownSeatNumber(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	expectScheduleLock(mock, "75.00", 40)
	expectReservedRecheck(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WithArgs(sqlmock.AnyArg(), testUserID, testScheduleID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "booking_date", "total_fare", "status"}).
			AddRow(testBookingID, testUserID, testScheduleID, time.Now(), "75.00", "confirmed"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM seats WHERE bus_id = $1 AND seat_number = $2`)).
		WithArgs(testBusID, "99").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.CreateBooking(testUserID, testScheduleID, []string{"99"})

	var seatErr *models.SeatNotFoundError
	require.ErrorAs(t, err, &seatErr)
	assert.Equal(t, "99", seatErr.SeatNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBooking_ReleasesSeats(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM bookings WHERE id = $1 FOR UPDATE`)).
		WithArgs(testBookingID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("confirmed"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET status = 'cancelled' WHERE id = $1`)).
		WithArgs(testBookingID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM schedule_seats WHERE booking_id = $1`)).
		WithArgs(testBookingID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	cancelled, err := repo.CancelBooking(testBookingID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBooking_AlreadyCancelledIsNoOp(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM bookings WHERE id = $1 FOR UPDATE`)).
		WithArgs(testBookingID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("cancelled"))
	mock.ExpectRollback()

	cancelled, err := repo.CancelBooking(testBookingID)
	require.NoError(t, err)
	assert.False(t, cancelled)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBooking_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM bookings WHERE id = $1 FOR UPDATE`)).
		WithArgs(testBookingID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	_, err := repo.CancelBooking(testBookingID)
	assert.ErrorIs(t, err, models.ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewBookingRepository(db)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WithArgs(testBookingID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "schedule_id", "booking_date", "total_fare", "status"}))

	_, err := repo.GetBookingByID(testBookingID)
	assert.ErrorIs(t, err, models.ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
