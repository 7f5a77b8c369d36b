package services

import (
	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// FeedbackService manages passenger ratings
type FeedbackService struct {
	feedbackRepo *database.FeedbackRepository
	bookingRepo  *database.BookingRepository
	busRepo      *database.BusRepository
	logger       *logrus.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(
	feedbackRepo *database.FeedbackRepository,
	bookingRepo *database.BookingRepository,
	busRepo *database.BusRepository,
	logger *logrus.Logger,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		bookingRepo:  bookingRepo,
		busRepo:      busRepo,
		logger:       logger,
	}
}

// AddFeedback records a rating against an existing booking
func (s *FeedbackService) AddFeedback(req *models.AddFeedbackRequest) (*models.Feedback, error) {
	if _, err := s.bookingRepo.GetBookingByID(req.BookingID); err != nil {
		return nil, err
	}

	feedback, err := s.feedbackRepo.CreateFeedback(req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"feedback_id": feedback.ID,
		"booking_id":  feedback.BookingID,
		"rating":      feedback.Rating,
	}).Info("Feedback submitted")

	return feedback, nil
}

// GetFeedbackByID returns a single feedback entry
func (s *FeedbackService) GetFeedbackByID(feedbackID string) (*models.Feedback, error) {
	return s.feedbackRepo.GetFeedbackByID(feedbackID)
}

// GetAllFeedbacks returns every feedback entry
func (s *FeedbackService) GetAllFeedbacks() ([]models.Feedback, error) {
	return s.feedbackRepo.GetAllFeedbacks()
}

// GetFeedbacksByBookingID returns the feedback left on a booking
func (s *FeedbackService) GetFeedbacksByBookingID(bookingID string) ([]models.Feedback, error) {
	if _, err := s.bookingRepo.GetBookingByID(bookingID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.GetFeedbacksByBookingID(bookingID)
}

// GetFeedbacksByBusID returns all feedback across a bus's trips
func (s *FeedbackService) GetFeedbacksByBusID(busID string) ([]models.BusFeedback, error) {
	if _, err := s.busRepo.GetBusByID(busID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.GetFeedbacksByBusID(busID)
}

// UpdateFeedback applies rating or text changes
func (s *FeedbackService) UpdateFeedback(feedbackID string, req *models.UpdateFeedbackRequest) (*models.Feedback, error) {
	return s.feedbackRepo.UpdateFeedback(feedbackID, req)
}
