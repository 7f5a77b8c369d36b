package models

import (
	"time"
)

// NotificationType categorises a notification message
type NotificationType string

const (
	NotificationBookingConfirmation NotificationType = "booking_confirmation"
	NotificationCancellation        NotificationType = "cancellation"
	NotificationDelay               NotificationType = "delay"
	NotificationOffer               NotificationType = "offer"
)

// Notification is a message delivered to a user's inbox
type Notification struct {
	ID               string           `json:"id" db:"id"`
	UserID           string           `json:"user_id" db:"user_id"`
	Message          string           `json:"message" db:"message"`
	NotificationType NotificationType `json:"notification_type" db:"notification_type"`
	SentDate         time.Time        `json:"sent_date" db:"sent_date"`
	IsRead           bool             `json:"is_read" db:"is_read"`
}

// SendNotificationRequest is the payload for pushing a notification
type SendNotificationRequest struct {
	UserID           string           `json:"user_id" binding:"required,uuid"`
	Message          string           `json:"message" binding:"required,max=255"`
	NotificationType NotificationType `json:"notification_type" binding:"required,oneof=booking_confirmation cancellation delay offer"`
}
