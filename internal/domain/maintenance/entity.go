package maintenance

import (
	"time"

	"github.com/google/uuid"
)

// Record is one maintenance event in a truck's history.
type Record struct {
	ID           uuid.UUID
	TruckID      uuid.UUID
	Date         time.Time
	Kind         Kind
	Mileage      *int
	Description  string
	MechanicName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Kind of maintenance performed.
type Kind string

const (
	KindPreventive Kind = "preventive"
	KindCorrective Kind = "corrective"
)

func (k Kind) Valid() bool {
	return k == KindPreventive || k == KindCorrective
}
