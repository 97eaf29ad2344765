package models

import (
	"time"

	"github.com/google/uuid"
)

// MaintenanceRecordModel represents the database model for MaintenanceRecord
type MaintenanceRecordModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TruckID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Date         time.Time `gorm:"type:date;not null"`
	Kind         string    `gorm:"type:varchar(20);not null"`
	Mileage      *int      `gorm:"type:integer"`
	Description  string    `gorm:"type:text"`
	MechanicName string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	// Relations
	Truck *TruckModel `gorm:"foreignKey:TruckID"`
}

func (MaintenanceRecordModel) TableName() string {
	return "maintenance_records"
}
