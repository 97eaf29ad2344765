package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainDriver "fleet-manager/internal/domain/driver"
	"fleet-manager/internal/infrastructure/database/postgres/models"
)

// DriverRepository implements domain driver.Repository
type DriverRepository struct {
	db *DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *DB) domainDriver.Repository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(ctx context.Context, d *domainDriver.Driver) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()

	dbModel := toDriverModel(d)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return domainDriver.ErrLicenseTaken
		}
		return fmt.Errorf("failed to create driver: %w", err)
	}

	d.ID = dbModel.ID
	d.CreatedAt = dbModel.CreatedAt
	d.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID uuid.UUID) (*domainDriver.Driver, error) {
	var dbModel models.DriverModel
	err := r.db.DB.WithContext(ctx).
		Preload("User").
		Where("id = ?", driverID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDriver.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return toDriverEntity(&dbModel), nil
}

func (r *DriverRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domainDriver.Driver, error) {
	var dbModel models.DriverModel
	err := r.db.DB.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDriver.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return toDriverEntity(&dbModel), nil
}

func (r *DriverRepository) GetByCurrentTruck(ctx context.Context, truckID uuid.UUID) (*domainDriver.Driver, error) {
	var dbModel models.DriverModel
	err := r.db.DB.WithContext(ctx).
		Preload("User").
		Where("current_truck_id = ?", truckID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDriver.ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return toDriverEntity(&dbModel), nil
}

func (r *DriverRepository) Update(ctx context.Context, d *domainDriver.Driver) error {
	d.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.DriverModel{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"name":             d.Name,
			"license_number":   d.LicenseNumber,
			"phone":            d.Phone,
			"email":            d.Email,
			"current_truck_id": d.CurrentTruckID,
			"updated_at":       d.UpdatedAt,
		})

	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "duplicate key value") {
			return domainDriver.ErrLicenseTaken
		}
		return fmt.Errorf("failed to update driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDriver.ErrDriverNotFound
	}

	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, driverID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", driverID).
		Delete(&models.DriverModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete driver: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDriver.ErrDriverNotFound
	}

	return nil
}

func (r *DriverRepository) AssignmentsForTruck(ctx context.Context, truckID uuid.UUID, cutoff time.Time) ([]*domainDriver.Assignment, error) {
	var dbModels []models.AssignmentModel
	err := r.db.DB.WithContext(ctx).
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

func (r *DriverRepository) AssignmentsForDriver(ctx context.Context, driverID uuid.UUID) ([]*domainDriver.Assignment, error) {
	var dbModels []models.AssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("active DESC, start_date ASC").
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

func (r *DriverRepository) GetAssignment(ctx context.Context, driverID, truckID uuid.UUID) (*domainDriver.Assignment, error) {
	var dbModel models.AssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("driver_id = ? AND truck_id = ?", driverID, truckID).
		Order("created_at DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDriver.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return toAssignmentEntity(&dbModel), nil
}

func (r *DriverRepository) CreateAssignment(ctx context.Context, a *domainDriver.Assignment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	dbModel := toAssignmentModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	a.ID = dbModel.ID

	return nil
}

func (r *DriverRepository) UpdateAssignment(ctx context.Context, a *domainDriver.Assignment) error {
	a.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.AssignmentModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"start_date": a.StartDate,
			"end_date":   a.EndDate,
			"active":     a.Active,
			"updated_at": a.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainDriver.ErrAssignmentNotFound
	}

	return nil
}

func (r *DriverRepository) CloseActiveAssignment(ctx context.Context, driverID, truckID uuid.UUID, end time.Time) error {
	// Newest active row for the pair; older duplicates are left alone.
	var dbModel models.AssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("driver_id = ? AND truck_id = ? AND active = ?", driverID, truckID, true).
		Order("created_at DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find active assignment: %w", err)
	}

	return r.db.DB.WithContext(ctx).
		Model(&models.AssignmentModel{}).
		Where("id = ?", dbModel.ID).
		Updates(map[string]interface{}{
			"active":     false,
			"end_date":   end,
			"updated_at": time.Now(),
		}).Error
}

func (r *DriverRepository) DeleteAssignmentsByDriver(ctx context.Context, driverID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Delete(&models.AssignmentModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toDriverModel(d *domainDriver.Driver) *models.DriverModel {
	return &models.DriverModel{
		ID:             d.ID,
		Name:           d.Name,
		LicenseNumber:  d.LicenseNumber,
		Phone:          d.Phone,
		Email:          d.Email,
		UserID:         d.UserID,
		CurrentTruckID: d.CurrentTruckID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toDriverEntity(m *models.DriverModel) *domainDriver.Driver {
	d := &domainDriver.Driver{
		ID:             m.ID,
		Name:           m.Name,
		LicenseNumber:  m.LicenseNumber,
		Phone:          m.Phone,
		Email:          m.Email,
		UserID:         m.UserID,
		CurrentTruckID: m.CurrentTruckID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.User != nil {
		d.User = toUserEntity(m.User)
	}
	return d
}

func toAssignmentModel(a *domainDriver.Assignment) *models.AssignmentModel {
	return &models.AssignmentModel{
		ID:        a.ID,
		DriverID:  a.DriverID,
		TruckID:   a.TruckID,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAssignmentEntity(m *models.AssignmentModel) *domainDriver.Assignment {
	a := &domainDriver.Assignment{
		ID:        m.ID,
		DriverID:  m.DriverID,
		TruckID:   m.TruckID,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Driver != nil {
		a.Driver = toDriverEntity(m.Driver)
	}
	return a
}
