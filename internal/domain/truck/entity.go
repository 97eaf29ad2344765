package truck

import (
	"time"

	"github.com/google/uuid"
)

// Truck represents a fleet vehicle.
//
// Status is persisted state, not a projection of the maintenance dates: a
// blocked truck stays blocked until it is manually unlocked or its next
// maintenance date is pushed into the future, even when the date math alone
// would release it again.
type Truck struct {
	ID                uuid.UUID
	Plate             string
	Model             string
	CurrentMileage    int
	Status            Status
	LastMaintenanceAt *time.Time
	NextMaintenanceAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Status of a truck with respect to maintenance.
type Status string

const (
	StatusReleased Status = "released"
	StatusBlocked  Status = "blocked"
	StatusPending  Status = "pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusReleased, StatusBlocked, StatusPending:
		return true
	}
	return false
}
