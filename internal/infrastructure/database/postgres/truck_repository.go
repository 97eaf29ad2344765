package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainTruck "fleet-manager/internal/domain/truck"
	"fleet-manager/internal/infrastructure/database/postgres/models"
)

// TruckRepository implements domain truck.Repository
type TruckRepository struct {
	db *DB
}

// NewTruckRepository creates a new truck repository
func NewTruckRepository(db *DB) domainTruck.Repository {
	return &TruckRepository{db: db}
}

func (r *TruckRepository) Create(ctx context.Context, t *domainTruck.Truck) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	if t.Status == "" {
		t.Status = domainTruck.StatusReleased
	}

	dbModel := toTruckModel(t)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return domainTruck.ErrPlateTaken
		}
		return fmt.Errorf("failed to create truck: %w", err)
	}

	t.ID = dbModel.ID
	t.CreatedAt = dbModel.CreatedAt
	t.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *TruckRepository) GetByID(ctx context.Context, truckID uuid.UUID) (*domainTruck.Truck, error) {
	var dbModel models.TruckModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", truckID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainTruck.ErrTruckNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get truck: %w", err)
	}

	return toTruckEntity(&dbModel), nil
}

func (r *TruckRepository) GetAll(ctx context.Context) ([]*domainTruck.Truck, error) {
	var dbModels []models.TruckModel
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trucks: %w", err)
	}

	trucks := make([]*domainTruck.Truck, len(dbModels))
	for i := range dbModels {
		trucks[i] = toTruckEntity(&dbModels[i])
	}

	return trucks, nil
}

func (r *TruckRepository) GetScheduled(ctx context.Context) ([]*domainTruck.Truck, error) {
	var dbModels []models.TruckModel
	err := r.db.DB.WithContext(ctx).
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

func (r *TruckRepository) Update(ctx context.Context, t *domainTruck.Truck) error {
	t.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.TruckModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"plate":               t.Plate,
			"model":               t.Model,
			"current_mileage":     t.CurrentMileage,
			"status":              string(t.Status),
			"last_maintenance_at": t.LastMaintenanceAt,
			"next_maintenance_at": t.NextMaintenanceAt,
			"updated_at":          t.UpdatedAt,
		})

	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "duplicate key value") {
			return domainTruck.ErrPlateTaken
		}
		return fmt.Errorf("failed to update truck: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainTruck.ErrTruckNotFound
	}

	return nil
}

func (r *TruckRepository) UpdateStatus(ctx context.Context, truckID uuid.UUID, status domainTruck.Status) error {
	result := r.db.DB.WithContext(ctx).
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

func (r *TruckRepository) Delete(ctx context.Context, truckID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", truckID).
		Delete(&models.TruckModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete truck: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainTruck.ErrTruckNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toTruckModel(t *domainTruck.Truck) *models.TruckModel {
	return &models.TruckModel{
		ID:                t.ID,
		Plate:             t.Plate,
		Model:             t.Model,
		CurrentMileage:    t.CurrentMileage,
		Status:            string(t.Status),
		LastMaintenanceAt: t.LastMaintenanceAt,
		NextMaintenanceAt: t.NextMaintenanceAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func toTruckEntity(m *models.TruckModel) *domainTruck.Truck {
	return &domainTruck.Truck{
		ID:                m.ID,
		Plate:             m.Plate,
		Model:             m.Model,
		CurrentMileage:    m.CurrentMileage,
		Status:            domainTruck.Status(m.Status),
		LastMaintenanceAt: m.LastMaintenanceAt,
		NextMaintenanceAt: m.NextMaintenanceAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
