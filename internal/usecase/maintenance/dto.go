package maintenance

import (
	"time"

	"github.com/google/uuid"

	domainMaintenance "fleet-manager/internal/domain/maintenance"
)

const dateLayout = "2006-01-02"

type CreateRecordRequest struct {
	TruckID      uuid.UUID `json:"truck_id" validate:"required"`
	Date         string    `json:"date" validate:"required"`
	Kind         string    `json:"kind" validate:"omitempty,oneof=preventive corrective"`
	Mileage      *int      `json:"mileage" validate:"omitempty,gte=0"`
	Description  string    `json:"description" validate:"omitempty,max=2000"`
	MechanicName string    `json:"mechanic_name" validate:"omitempty,max=255"`
}

type UpdateRecordRequest struct {
	Date         *string `json:"date"`
	Kind         *string `json:"kind" validate:"omitempty,oneof=preventive corrective"`
	Mileage      *int    `json:"mileage" validate:"omitempty,gte=0"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	MechanicName *string `json:"mechanic_name" validate:"omitempty,max=255"`
}

type RecordResponse struct {
	ID           uuid.UUID `json:"id"`
	TruckID      uuid.UUID `json:"truck_id"`
	Date         string    `json:"date"`
	Kind         string    `json:"kind"`
	Mileage      *int      `json:"mileage"`
	Description  string    `json:"description"`
	MechanicName string    `json:"mechanic_name"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToRecordResponse(r *domainMaintenance.Record) *RecordResponse {
	if r == nil {
		return nil
	}
	return &RecordResponse{
		ID:           r.ID,
		TruckID:      r.TruckID,
		Date:         r.Date.Format(dateLayout),
		Kind:         string(r.Kind),
		Mileage:      r.Mileage,
		Description:  r.Description,
		MechanicName: r.MechanicName,
		CreatedAt:    r.CreatedAt,
	}
}

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
