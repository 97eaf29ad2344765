package notification

import (
	"time"

	"github.com/google/uuid"

	domainNotification "fleet-manager/internal/domain/notification"
)

type CreateNotificationRequest struct {
	UserID  *uuid.UUID `json:"user_id"`
	TruckID *uuid.UUID `json:"truck_id"`
	Title   string     `json:"title" validate:"required,max=255"`
	Message string     `json:"message" validate:"required,max=2000"`
	Kind    string     `json:"kind" validate:"required,oneof=alert info maintenance system"`
}

type NotificationResponse struct {
	ID      uuid.UUID  `json:"id"`
	UserID  *uuid.UUID `json:"user_id"`
	TruckID *uuid.UUID `json:"truck_id"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	Kind    string     `json:"kind"`
	SentAt  time.Time  `json:"sent_at"`
	Read    bool       `json:"read"`
}

func ToNotificationResponse(n *domainNotification.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}
	return &NotificationResponse{
		ID:      n.ID,
		UserID:  n.UserID,
		TruckID: n.TruckID,
		Title:   n.Title,
		Message: n.Message,
		Kind:    string(n.Kind),
		SentAt:  n.SentAt,
		Read:    n.Read,
	}
}
