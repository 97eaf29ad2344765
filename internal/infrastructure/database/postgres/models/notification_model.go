package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel represents the database model for Notification
type NotificationModel struct {
	ID      uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID  *uuid.UUID `gorm:"type:uuid;index"`
	TruckID *uuid.UUID `gorm:"type:uuid;index"`
	Title   string     `gorm:"type:varchar(150);not null"`
	Message string     `gorm:"type:text;not null"`
	Kind    string     `gorm:"type:varchar(20);not null;default:'info'"`
	SentAt  time.Time  `gorm:"not null;index"`
	Read    bool       `gorm:"default:false;not null;index"`

	// Relations
	User  *UserModel  `gorm:"foreignKey:UserID"`
	Truck *TruckModel `gorm:"foreignKey:TruckID"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
