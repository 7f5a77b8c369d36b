package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// FeedbackRepository handles feedback database operations
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

const feedbackColumns = `id, booking_id, rating, feedback_text, created_at`

// CreateFeedback stores feedback for a booking (FK enforces existence)
func (r *FeedbackRepository) CreateFeedback(req *models.AddFeedbackRequest) (*models.Feedback, error) {
	feedback := &models.Feedback{}
	err := r.db.Get(feedback, `
		INSERT INTO feedbacks (id, booking_id, rating, feedback_text)
		VALUES ($1, $2, $3, $4)
		RETURNING `+feedbackColumns,
		uuid.New().String(), req.BookingID, req.Rating, req.FeedbackText)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return feedback, nil
}

// GetFeedbackByID retrieves feedback by ID
func (r *FeedbackRepository) GetFeedbackByID(feedbackID string) (*models.Feedback, error) {
	feedback := &models.Feedback{}
	err := r.db.Get(feedback, `SELECT `+feedbackColumns+` FROM feedbacks WHERE id = $1`, feedbackID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return feedback, nil
}

// GetAllFeedbacks lists every feedback entry
func (r *FeedbackRepository) GetAllFeedbacks() ([]models.Feedback, error) {
	feedbacks := []models.Feedback{}
	err := r.db.Select(&feedbacks, `SELECT `+feedbackColumns+` FROM feedbacks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks: %w", err)
	}
	return feedbacks, nil
}

// GetFeedbacksByBookingID lists feedback left on a booking
func (r *FeedbackRepository) GetFeedbacksByBookingID(bookingID string) ([]models.Feedback, error) {
	feedbacks := []models.Feedback{}
	err := r.db.Select(&feedbacks,
		`SELECT `+feedbackColumns+` FROM feedbacks WHERE booking_id = $1 ORDER BY created_at DESC`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks by booking: %w", err)
	}
	return feedbacks, nil
}

// GetFeedbacksByBusID lists feedback across every booking on a bus
func (r *FeedbackRepository) GetFeedbacksByBusID(busID string) ([]models.BusFeedback, error) {
	feedbacks := []models.BusFeedback{}
	err := r.db.Select(&feedbacks, `
		SELECT f.id, f.booking_id, f.rating, f.feedback_text, f.created_at,
		       bus.id AS bus_id, bus.bus_number
		FROM feedbacks f
		JOIN bookings b ON b.id = f.booking_id
		JOIN schedules s ON s.id = b.schedule_id
		JOIN buses bus ON bus.id = s.bus_id
		WHERE bus.id = $1
		ORDER BY f.created_at DESC`, busID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks by bus: %w", err)
	}
	return feedbacks, nil
}

// UpdateFeedback applies the non-nil fields of req
func (r *FeedbackRepository) UpdateFeedback(feedbackID string, req *models.UpdateFeedbackRequest) (*models.Feedback, error) {
	feedback := &models.Feedback{}
	err := r.db.Get(feedback, `
		UPDATE feedbacks SET
			rating        = COALESCE($2, rating),
			feedback_text = COALESCE($3, feedback_text)
		WHERE id = $1
		RETURNING `+feedbackColumns,
		feedbackID, req.Rating, req.FeedbackText)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}
	return feedback, nil
}
