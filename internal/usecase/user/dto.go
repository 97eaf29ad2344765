package user

import (
	"time"

	"github.com/google/uuid"

	domainDriver "fleet-manager/internal/domain/driver"
	domainUser "fleet-manager/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required,oneof=administrator manager driver mechanic"`

	// Driver-role extras. LicenseNumber is mandatory for drivers; TruckID
	// opens an assignment on creation.
	LicenseNumber *string    `json:"license_number" validate:"omitempty,max=50"`
	Phone         *string    `json:"phone" validate:"omitempty,max=30"`
	TruckID       *uuid.UUID `json:"truck_id"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=administrator manager driver mechanic"`
	IsActive *bool   `json:"is_active"`

	LicenseNumber *string    `json:"license_number" validate:"omitempty,max=50"`
	Phone         *string    `json:"phone" validate:"omitempty,max=30"`
	TruckID       *uuid.UUID `json:"truck_id"`
	// UnassignTruck closes the driver's active assignment without opening
	// a new one. TruckID wins when both are set.
	UnassignTruck bool `json:"unassign_truck"`
}

type DriverInfo struct {
	ID            uuid.UUID  `json:"id"`
	LicenseNumber string     `json:"license_number"`
	Phone         string     `json:"phone,omitempty"`
	TruckID       *uuid.UUID `json:"truck_id"`
}

type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	Driver    *DriverInfo `json:"driver,omitempty"`
}

type AuthResponse struct {
	User      *UserResponse `json:"user"`
	Token     string        `json:"token"`
	ExpiresAt int64         `json:"expires_at"`
}

func ToUserResponse(u *domainUser.User, d *domainDriver.Driver) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if d != nil {
		resp.Driver = &DriverInfo{
			ID:            d.ID,
			LicenseNumber: d.LicenseNumber,
			Phone:         d.Phone,
			TruckID:       d.CurrentTruckID,
		}
	}
	return resp
}
