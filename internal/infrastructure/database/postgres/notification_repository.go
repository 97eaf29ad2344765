package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainNotification "fleet-manager/internal/domain/notification"
	"fleet-manager/internal/infrastructure/database/postgres/models"
)

// NotificationRepository implements domain notification.Repository
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *DB) domainNotification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domainNotification.Notification) error {
	n.ID = uuid.New()
	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}

	dbModel := toNotificationModel(n)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	n.ID = dbModel.ID

	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, notificationID uuid.UUID) (*domainNotification.Notification, error) {
	var dbModel models.NotificationModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", notificationID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainNotification.ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return toNotificationEntity(&dbModel), nil
}

func (r *NotificationRepository) List(ctx context.Context, scope *domainNotification.Scope) ([]*domainNotification.Notification, error) {
	db := r.db.DB.WithContext(ctx).Model(&models.NotificationModel{})

	if scope != nil && scope.UserID != nil {
		if len(scope.TruckIDs) > 0 {
			db = db.Where("user_id = ? OR truck_id IN ?", *scope.UserID, scope.TruckIDs)
		} else {
			db = db.Where("user_id = ?", *scope.UserID)
		}
	}

	var dbModels []models.NotificationModel
	err := db.Order("sent_at DESC").Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*domainNotification.Notification, len(dbModels))
	for i := range dbModels {
		notifications[i] = toNotificationEntity(&dbModels[i])
	}

	return notifications, nil
}

func (r *NotificationRepository) UnreadExists(ctx context.Context, userID uuid.UUID, truckID *uuid.UUID, kind domainNotification.Kind, title string) (bool, error) {
	db := r.db.DB.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND kind = ? AND title = ? AND read = ?", userID, string(kind), title, false)

	if truckID != nil {
		db = db.Where("truck_id = ?", *truckID)
	} else {
		db = db.Where("truck_id IS NULL")
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check for duplicate notification: %w", err)
	}

	return count > 0, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("id = ?", notificationID).
		Update("read", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotification.ErrNotificationNotFound
	}

	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, notificationID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", notificationID).
		Delete(&models.NotificationModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotification.ErrNotificationNotFound
	}

	return nil
}

func (r *NotificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.NotificationModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toNotificationModel(n *domainNotification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
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

func toNotificationEntity(m *models.NotificationModel) *domainNotification.Notification {
	return &domainNotification.Notification{
		ID:      m.ID,
		UserID:  m.UserID,
		TruckID: m.TruckID,
		Title:   m.Title,
		Message: m.Message,
		Kind:    domainNotification.Kind(m.Kind),
		SentAt:  m.SentAt,
		Read:    m.Read,
	}
}
