package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-manager/internal/alerts"
	domainDriver "fleet-manager/internal/domain/driver"
	domainNotification "fleet-manager/internal/domain/notification"
	domainTruck "fleet-manager/internal/domain/truck"
	domainUser "fleet-manager/internal/domain/user"
	"fleet-manager/internal/infrastructure/database/postgres/models"
)

// AlertStore implements alerts.Store. It holds a raw gorm handle so InTx
// can hand out a transaction-bound copy of itself.
type AlertStore struct {
	db *gorm.DB
}

// NewAlertStore creates the persistence backend for the alert engine
func NewAlertStore(db *DB) alerts.Store {
	return &AlertStore{db: db.DB}
}

func (s *AlertStore) ScheduledTrucks(ctx context.Context) ([]*domainTruck.Truck, error) {
	var dbModels []models.TruckModel
	err := s.db.WithContext(ctx).
		Where("next_maintenance_at IS NOT NULL").
		Order("next_maintenance_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled trucks: %w", err)
	}

	trucks := make([]*domainTruck.Truck, len(dbModels))
	for i := range dbModels {
		trucks[i] = toTruckEntity(&dbModels[i])
	}

	return trucks, nil
}

func (s *AlertStore) UpdateTruckStatus(ctx context.Context, truckID uuid.UUID, status domainTruck.Status) error {
	result := s.db.WithContext(ctx).
		Model(&models.TruckModel{}).
		Where("id = ?", truckID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update truck status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainTruck.ErrTruckNotFound
	}

	return nil
}

func (s *AlertStore) UsersByRole(ctx context.Context, roles ...domainUser.Role) ([]*domainUser.User, error) {
	roleValues := make([]string, len(roles))
	for i, role := range roles {
		roleValues[i] = string(role)
	}

	var dbModels []models.UserModel
	err := s.db.WithContext(ctx).
		Where("role IN ? AND is_active = ?", roleValues, true).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}

	users := make([]*domainUser.User, len(dbModels))
	for i := range dbModels {
		users[i] = toUserEntity(&dbModels[i])
	}

	return users, nil
}

func (s *AlertStore) AssignmentsForTruck(ctx context.Context, truckID uuid.UUID, cutoff time.Time) ([]*domainDriver.Assignment, error) {
	var dbModels []models.AssignmentModel
	err := s.db.WithContext(ctx).
		Preload("Driver").
		Preload("Driver.User").
		Where("truck_id = ?", truckID).
		Where("active = ? OR end_date IS NULL OR end_date >= ?", true, cutoff).
		Order("start_date ASC, created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	assignments := make([]*domainDriver.Assignment, len(dbModels))
	for i := range dbModels {
		assignments[i] = toAssignmentEntity(&dbModels[i])
	}

	return assignments, nil
}

func (s *AlertStore) LegacyDriverForTruck(ctx context.Context, truckID uuid.UUID) (*domainDriver.Driver, error) {
	var dbModel models.DriverModel
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("current_truck_id = ?", truckID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDriver.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver for truck: %w", err)
	}

	return toDriverEntity(&dbModel), nil
}

func (s *AlertStore) UnreadNotificationExists(ctx context.Context, userID uuid.UUID, truckID *uuid.UUID, kind domainNotification.Kind, title string) (bool, error) {
	db := s.db.WithContext(ctx).
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

func (s *AlertStore) CreateNotification(ctx context.Context, n *domainNotification.Notification) error {
	n.ID = uuid.New()
	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}

	dbModel := toNotificationModel(n)
	if err := s.db.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	n.ID = dbModel.ID

	return nil
}

func (s *AlertStore) InTx(ctx context.Context, fn func(alerts.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AlertStore{db: tx})
	})
}
