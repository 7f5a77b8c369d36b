package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nextstop/nextstop-backend/internal/models"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, user_id, message, notification_type, sent_date, is_read`

// CreateNotification stores a notification for a user
func (r *NotificationRepository) CreateNotification(req *models.SendNotificationRequest) (*models.Notification, error) {
	notification := &models.Notification{}
	err := r.db.Get(notification, `
		INSERT INTO notifications (id, user_id, message, notification_type)
		VALUES ($1, $2, $3, $4)
		RETURNING `+notificationColumns,
		uuid.New().String(), req.UserID, req.Message, req.NotificationType)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

// GetNotificationsByUserID lists a user's notifications, newest first
func (r *NotificationRepository) GetNotificationsByUserID(userID string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.Select(&notifications, `
		SELECT `+notificationColumns+`
		FROM notifications WHERE user_id = $1
		ORDER BY sent_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkAsRead marks a notification read
func (r *NotificationRepository) MarkAsRead(notificationID string) (*models.Notification, error) {
	notification := &models.Notification{}
	err := r.db.Get(notification, `
		UPDATE notifications SET is_read = true
		WHERE id = $1
		RETURNING `+notificationColumns, notificationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return notification, nil
}
