package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainMaintenance "fleet-manager/internal/domain/maintenance"
	"fleet-manager/internal/infrastructure/database/postgres/models"
)

// MaintenanceRepository implements domain maintenance.Repository
type MaintenanceRepository struct {
	db *DB
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *DB) domainMaintenance.Repository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) Create(ctx context.Context, record *domainMaintenance.Record) error {
	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	dbModel := toMaintenanceModel(record)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create maintenance record: %w", err)
	}

	record.ID = dbModel.ID

	return nil
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, recordID uuid.UUID) (*domainMaintenance.Record, error) {
	var dbModel models.MaintenanceRecordModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", recordID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainMaintenance.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance record: %w", err)
	}

	return toMaintenanceEntity(&dbModel), nil
}

func (r *MaintenanceRepository) GetAll(ctx context.Context) ([]*domainMaintenance.Record, error) {
	var dbModels []models.MaintenanceRecordModel
	err := r.db.DB.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance records: %w", err)
	}

	records := make([]*domainMaintenance.Record, len(dbModels))
	for i := range dbModels {
		records[i] = toMaintenanceEntity(&dbModels[i])
	}

	return records, nil
}

func (r *MaintenanceRepository) GetByTruck(ctx context.Context, truckID uuid.UUID) ([]*domainMaintenance.Record, error) {
	var dbModels []models.MaintenanceRecordModel
	err := r.db.DB.WithContext(ctx).
		Where("truck_id = ?", truckID).
		Order("date DESC, created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance records: %w", err)
	}

	records := make([]*domainMaintenance.Record, len(dbModels))
	for i := range dbModels {
		records[i] = toMaintenanceEntity(&dbModels[i])
	}

	return records, nil
}

func (r *MaintenanceRepository) Update(ctx context.Context, record *domainMaintenance.Record) error {
	record.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.MaintenanceRecordModel{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"date":          record.Date,
			"kind":          string(record.Kind),
			"mileage":       record.Mileage,
			"description":   record.Description,
			"mechanic_name": record.MechanicName,
			"updated_at":    record.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update maintenance record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainMaintenance.ErrRecordNotFound
	}

	return nil
}

func (r *MaintenanceRepository) Delete(ctx context.Context, recordID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", recordID).
		Delete(&models.MaintenanceRecordModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete maintenance record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainMaintenance.ErrRecordNotFound
	}

	return nil
}

func (r *MaintenanceRepository) DeleteByTruck(ctx context.Context, truckID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).
		Where("truck_id = ?", truckID).
		Delete(&models.MaintenanceRecordModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete maintenance records: %w", err)
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toMaintenanceModel(record *domainMaintenance.Record) *models.MaintenanceRecordModel {
	return &models.MaintenanceRecordModel{
		ID:           record.ID,
		TruckID:      record.TruckID,
		Date:         record.Date,
		Kind:         string(record.Kind),
		Mileage:      record.Mileage,
		Description:  record.Description,
		MechanicName: record.MechanicName,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func toMaintenanceEntity(m *models.MaintenanceRecordModel) *domainMaintenance.Record {
	return &domainMaintenance.Record{
		ID:           m.ID,
		TruckID:      m.TruckID,
		Date:         m.Date,
		Kind:         domainMaintenance.Kind(m.Kind),
		Mileage:      m.Mileage,
		Description:  m.Description,
		MechanicName: m.MechanicName,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
