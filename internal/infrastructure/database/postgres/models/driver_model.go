package models

import (
	"time"

	"github.com/google/uuid"
)

// DriverModel represents the database model for Driver
type DriverModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string     `gorm:"type:varchar(100);not null"`
	LicenseNumber  string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	Phone          string     `gorm:"type:varchar(20)"`
	Email          string     `gorm:"type:varchar(255)"`
	UserID         *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CurrentTruckID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`

	// Relations
	User         *UserModel  `gorm:"foreignKey:UserID"`
	CurrentTruck *TruckModel `gorm:"foreignKey:CurrentTruckID"`
}

func (DriverModel) TableName() string {
	return "drivers"
}

// AssignmentModel represents one row of driver-truck assignment history
type AssignmentModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DriverID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	TruckID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartDate time.Time  `gorm:"type:date;not null"`
	EndDate   *time.Time `gorm:"type:date"`
	Active    bool       `gorm:"default:true;not null;index"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`

	// Relations
	Driver *DriverModel `gorm:"foreignKey:DriverID"`
	Truck  *TruckModel  `gorm:"foreignKey:TruckID"`
}

func (AssignmentModel) TableName() string {
	return "truck_driver_assignments"
}
