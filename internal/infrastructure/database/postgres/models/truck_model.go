package models

import (
	"time"

	"github.com/google/uuid"
)

// TruckModel represents the database model for Truck
type TruckModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Plate             string     `gorm:"type:varchar(10);not null;uniqueIndex"`
	Model             string     `gorm:"type:varchar(50)"`
	CurrentMileage    int        `gorm:"type:integer;default:0;not null"`
	Status            string     `gorm:"type:varchar(20);not null;default:'released';index"`
	LastMaintenanceAt *time.Time `gorm:"type:date"`
	NextMaintenanceAt *time.Time `gorm:"type:date;index"`
	CreatedAt         time.Time  `gorm:"not null"`
	UpdatedAt         time.Time  `gorm:"not null"`
}

func (TruckModel) TableName() string {
	return "trucks"
}
