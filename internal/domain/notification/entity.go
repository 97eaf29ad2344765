package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message for one user. A nil UserID means a
// broadcast row; the schema supports it but the alert engine always
// addresses concrete recipients.
type Notification struct {
	ID      uuid.UUID
	UserID  *uuid.UUID
	TruckID *uuid.UUID
	Title   string
	Message string
	Kind    Kind
	SentAt  time.Time
	Read    bool
}

// Kind drives how the frontend renders a notification.
type Kind string

const (
	KindAlert       Kind = "alert"
	KindInfo        Kind = "info"
	KindMaintenance Kind = "maintenance"
	KindSystem      Kind = "system"
)

func (k Kind) Valid() bool {
	switch k {
	case KindAlert, KindInfo, KindMaintenance, KindSystem:
		return true
	}
	return false
}

// Scope is the capability-scoped listing predicate. A nil UserID lists
// everything; otherwise rows addressed to the user plus, for drivers, rows
// scoped to any of the user's trucks.
type Scope struct {
	UserID   *uuid.UUID
	TruckIDs []uuid.UUID
}

// All is the unrestricted scope.
func All() *Scope {
	return &Scope{}
}

// ForDriver widens a user scope with the trucks the driver is or was
// assigned to.
func ForDriver(userID uuid.UUID, truckIDs []uuid.UUID) *Scope {
	return &Scope{UserID: &userID, TruckIDs: truckIDs}
}
