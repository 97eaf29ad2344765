package truck

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for truck repository operations
type Repository interface {
	Create(ctx context.Context, truck *Truck) error
	GetByID(ctx context.Context, truckID uuid.UUID) (*Truck, error)
	GetAll(ctx context.Context) ([]*Truck, error)
	// GetScheduled returns trucks with a next maintenance date set. Trucks
	// without one are invisible to the alert engine.
	GetScheduled(ctx context.Context) ([]*Truck, error)
	Update(ctx context.Context, truck *Truck) error
	UpdateStatus(ctx context.Context, truckID uuid.UUID, status Status) error
	Delete(ctx context.Context, truckID uuid.UUID) error
}
