package driver

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for driver and assignment operations
type Repository interface {
	Create(ctx context.Context, driver *Driver) error
	GetByID(ctx context.Context, driverID uuid.UUID) (*Driver, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Driver, error)
	// GetByCurrentTruck returns the driver whose legacy direct pointer
	// references the truck, with the linked account resolved.
	GetByCurrentTruck(ctx context.Context, truckID uuid.UUID) (*Driver, error)
	Update(ctx context.Context, driver *Driver) error
	Delete(ctx context.Context, driverID uuid.UUID) error

	// AssignmentsForTruck returns assignment rows for the truck that are
	// active, open-ended, or ended on/after the cutoff date, oldest first,
	// with each driver's linked account resolved.
	AssignmentsForTruck(ctx context.Context, truckID uuid.UUID, cutoff time.Time) ([]*Assignment, error)
	AssignmentsForDriver(ctx context.Context, driverID uuid.UUID) ([]*Assignment, error)
	GetAssignment(ctx context.Context, driverID, truckID uuid.UUID) (*Assignment, error)
	CreateAssignment(ctx context.Context, assignment *Assignment) error
	UpdateAssignment(ctx context.Context, assignment *Assignment) error
	// CloseActiveAssignment flips the newest active row for the pair to
	// inactive with the given end date.
	CloseActiveAssignment(ctx context.Context, driverID, truckID uuid.UUID, end time.Time) error
	DeleteAssignmentsByDriver(ctx context.Context, driverID uuid.UUID) error
}
