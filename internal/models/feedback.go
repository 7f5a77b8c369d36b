package models

import (
	"time"
)

// Feedback is a passenger rating tied to a booking
type Feedback struct {
	ID           string    `json:"id" db:"id"`
	BookingID    string    `json:"booking_id" db:"booking_id"`
	Rating       int       `json:"rating" db:"rating"`
	FeedbackText string    `json:"feedback_text" db:"feedback_text"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// BusFeedback is feedback joined with the bus it concerns, for operator views
type BusFeedback struct {
	Feedback
	BusID     string `json:"bus_id" db:"bus_id"`
	BusNumber string `json:"bus_number" db:"bus_number"`
}

// AddFeedbackRequest is the payload for submitting feedback
type AddFeedbackRequest struct {
	BookingID    string `json:"booking_id" binding:"required,uuid"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	FeedbackText string `json:"feedback_text" binding:"omitempty,max=500"`
}

// UpdateFeedbackRequest carries feedback changes
type UpdateFeedbackRequest struct {
	Rating       *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	FeedbackText *string `json:"feedback_text" binding:"omitempty,max=500"`
}
