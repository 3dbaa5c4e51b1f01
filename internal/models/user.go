package models

import "time"

// Role distinguishes donors from NGO accounts
type Role string

const (
	RoleDonor Role = "donor"
	RoleNGO   Role = "ngo"
)

// User is a donor or NGO account (PostgreSQL)
type User struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Email     string    `json:"email" bson:"email" gorm:"uniqueIndex"`
	Role      Role      `json:"role" bson:"role" gorm:"size:10;index"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty"`
	Bio       string    `json:"bio,omitempty" bson:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// RegisterUserRequest defines the request body for registering an account
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required,oneof=donor ngo"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Location string `json:"location,omitempty" validate:"omitempty,max=200"`
}

// LoginRequest is the demo login payload. The password is accepted but never checked.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role" validate:"required,oneof=donor ngo"`
}

// UpdateUserRequest defines the request body for updating profile fields
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Location string `json:"location,omitempty" validate:"omitempty,max=200"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=1000"`
}
