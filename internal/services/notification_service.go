package services

import (
	"github.com/nextstop/nextstop-backend/internal/database"
	"github.com/nextstop/nextstop-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// NotificationService delivers messages to user inboxes
type NotificationService struct {
	notificationRepo *database.NotificationRepository
	userRepo         *database.UserRepository
	logger           *logrus.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo *database.NotificationRepository,
	userRepo *database.UserRepository,
	logger *logrus.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// SendNotification pushes a typed message to a user
func (s *NotificationService) SendNotification(req *models.SendNotificationRequest) (*models.Notification, error) {
	if _, err := s.userRepo.GetUserByID(req.UserID); err != nil {
		return nil, err
	}

	notification, err := s.notificationRepo.CreateNotification(req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"notification_id": notification.ID,
		"user_id":         notification.UserID,
		"type":            notification.NotificationType,
	}).Info("Notification sent")

	return notification, nil
}

// GetNotificationsByUserID returns a user's inbox, newest first
func (s *NotificationService) GetNotificationsByUserID(userID string) ([]models.Notification, error) {
	if _, err := s.userRepo.GetUserByID(userID); err != nil {
		return nil, err
	}
	return s.notificationRepo.GetNotificationsByUserID(userID)
}

// MarkAsRead flags a notification as read. Marking an already-read
// notification is a no-op.
func (s *NotificationService) MarkAsRead(notificationID string) (*models.Notification, error) {
	return s.notificationRepo.MarkAsRead(notificationID)
}
