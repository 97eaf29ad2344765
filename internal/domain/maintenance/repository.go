package maintenance

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for maintenance record operations
type Repository interface {
	Create(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, recordID uuid.UUID) (*Record, error)
	GetAll(ctx context.Context) ([]*Record, error)
	GetByTruck(ctx context.Context, truckID uuid.UUID) ([]*Record, error)
	Update(ctx context.Context, record *Record) error
	Delete(ctx context.Context, recordID uuid.UUID) error
	// DeleteByTruck removes a truck's whole maintenance history. Used when
	// the truck itself is deleted.
	DeleteByTruck(ctx context.Context, truckID uuid.UUID) error
}
