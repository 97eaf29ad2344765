package truck

import (
	"time"

	"github.com/google/uuid"

	domainTruck "fleet-manager/internal/domain/truck"
)

const dateLayout = "2006-01-02"

type CreateTruckRequest struct {
	Plate          string `json:"plate" validate:"required,min=2,max=20"`
	Model          string `json:"model" validate:"required,min=2,max=255"`
	CurrentMileage int    `json:"current_mileage" validate:"gte=0"`
	Status         string `json:"status" validate:"omitempty,oneof=released blocked pending"`

	LastMaintenanceAt string `json:"last_maintenance_at"`
	NextMaintenanceAt string `json:"next_maintenance_at"`
}

type UpdateTruckRequest struct {
	Plate          *string `json:"plate" validate:"omitempty,min=2,max=20"`
	Model          *string `json:"model" validate:"omitempty,min=2,max=255"`
	CurrentMileage *int    `json:"current_mileage" validate:"omitempty,gte=0"`

	LastMaintenanceAt *string `json:"last_maintenance_at"`
	NextMaintenanceAt *string `json:"next_maintenance_at"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=released blocked pending"`
}

type TruckResponse struct {
	ID                uuid.UUID `json:"id"`
	Plate             string    `json:"plate"`
	Model             string    `json:"model"`
	CurrentMileage    int       `json:"current_mileage"`
	Status            string    `json:"status"`
	LastMaintenanceAt *string   `json:"last_maintenance_at"`
	NextMaintenanceAt *string   `json:"next_maintenance_at"`
	CreatedAt         time.Time `json:"created_at"`
}

// MyTruckResponse is one truck in a driver's own listing, with the
// assignment link it came from.
type MyTruckResponse struct {
	Truck     *TruckResponse `json:"truck"`
	Active    bool           `json:"active"`
	StartDate *string        `json:"start_date"`
	EndDate   *string        `json:"end_date"`
}

func ToTruckResponse(t *domainTruck.Truck) *TruckResponse {
	if t == nil {
		return nil
	}
	return &TruckResponse{
		ID:                t.ID,
		Plate:             t.Plate,
		Model:             t.Model,
		CurrentMileage:    t.CurrentMileage,
		Status:            string(t.Status),
		LastMaintenanceAt: formatDate(t.LastMaintenanceAt),
		NextMaintenanceAt: formatDate(t.NextMaintenanceAt),
		CreatedAt:         t.CreatedAt,
	}
}

// parseDate reads an ISO date, returning nil for empty or unparsable input.
// Date fields on trucks are optional, so bad values degrade to absent.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
