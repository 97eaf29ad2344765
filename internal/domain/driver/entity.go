package driver

import (
	"time"

	"github.com/google/uuid"

	"fleet-manager/internal/domain/user"
)

// Driver holds the licensing and contact details of a driving employee.
// UserID links the driver to a sign-in account; CurrentTruckID is the legacy
// direct pointer kept for records that predate assignment history.
type Driver struct {
	ID             uuid.UUID
	Name           string
	LicenseNumber  string
	Phone          string
	Email          string
	UserID         *uuid.UUID
	CurrentTruckID *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// User is populated when the repository is asked to resolve accounts.
	User *user.User
}

// Assignment is one row of driver-truck history. At most one assignment per
// driver may be active at a time; that invariant is enforced by the
// application, not the schema.
type Assignment struct {
	ID        uuid.UUID
	DriverID  uuid.UUID
	TruckID   uuid.UUID
	StartDate time.Time
	EndDate   *time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Driver *Driver
}
