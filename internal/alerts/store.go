package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleet-manager/internal/domain/driver"
	"fleet-manager/internal/domain/notification"
	"fleet-manager/internal/domain/truck"
	"fleet-manager/internal/domain/user"
)

// Store is the persistence surface the alert engine needs. The postgres
// package provides the production implementation; tests substitute mocks.
type Store interface {
	// ScheduledTrucks returns every truck with a next maintenance date set.
	ScheduledTrucks(ctx context.Context) ([]*truck.Truck, error)
	UpdateTruckStatus(ctx context.Context, truckID uuid.UUID, status truck.Status) error

	// UsersByRole returns accounts holding any of the given roles.
	UsersByRole(ctx context.Context, roles ...user.Role) ([]*user.User, error)

	// AssignmentsForTruck returns assignment history rows for the truck
	// that are active, open-ended, or ended on/after the cutoff, oldest
	// first, with each driver's linked account resolved.
	AssignmentsForTruck(ctx context.Context, truckID uuid.UUID, cutoff time.Time) ([]*driver.Assignment, error)
	// LegacyDriverForTruck resolves the driver whose direct truck pointer
	// references the truck. Used only when no assignment history exists.
	LegacyDriverForTruck(ctx context.Context, truckID uuid.UUID) (*driver.Driver, error)

	UnreadNotificationExists(ctx context.Context, userID uuid.UUID, truckID *uuid.UUID, kind notification.Kind, title string) (bool, error)
	CreateNotification(ctx context.Context, n *notification.Notification) error

	// InTx runs fn against a transaction-bound Store. The truck status
	// update and its notification batch commit or roll back together.
	InTx(ctx context.Context, fn func(Store) error) error
}
