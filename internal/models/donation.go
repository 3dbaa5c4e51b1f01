package models

import "time"

// DonationStatus tracks a donation through pickup and delivery
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationInTransit DonationStatus = "in_transit"
	DonationDelivered DonationStatus = "delivered"
)

// Rank orders statuses along the lifecycle. Unknown statuses rank 0.
func (s DonationStatus) Rank() int {
	switch s {
	case DonationPending:
		return 1
	case DonationInTransit:
		return 2
	case DonationDelivered:
		return 3
	}
	return 0
}

// Valid reports whether s is a known status
func (s DonationStatus) Valid() bool {
	return s.Rank() > 0
}

// DonationItem is a single item offered in a donation
type DonationItem struct {
	Name        string `json:"name" bson:"name" validate:"required,max=100"`
	Quantity    int    `json:"quantity" bson:"quantity" validate:"min=1"`
	Category    string `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,max=50"`
	Description string `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=1000"`
	Condition   string `json:"condition,omitempty" bson:"condition,omitempty" validate:"omitempty,max=30"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
}

// Donation represents a donor's offered items (MongoDB)
type Donation struct {
	ID             string         `json:"id" bson:"_id"`
	DonorID        string         `json:"donorId" bson:"donor_id"`
	NgoID          string         `json:"ngoId,omitempty" bson:"ngo_id,omitempty"`
	Items          []DonationItem `json:"items" bson:"items"`
	Images         []string       `json:"images,omitempty" bson:"images,omitempty"`
	Status         DonationStatus `json:"status" bson:"status"`
	PickupLocation string         `json:"pickupLocation,omitempty" bson:"pickup_location,omitempty"`
	PickupDate     string         `json:"pickupDate,omitempty" bson:"pickup_date,omitempty"`
	PickupTime     string         `json:"pickupTime,omitempty" bson:"pickup_time,omitempty"`
	ContactPhone   string         `json:"contactPhone,omitempty" bson:"contact_phone,omitempty"`
	Notes          string         `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt      time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updated_at"`
}

// CreateDonationRequest defines the request body for listing a donation.
// NgoID is only set by need-driven flows where the donor answers a specific NGO.
type CreateDonationRequest struct {
	DonorID        string         `json:"donorId" validate:"required"`
	NgoID          string         `json:"ngoId,omitempty"`
	Items          []DonationItem `json:"items" validate:"required,min=1,dive"`
	Images         []string       `json:"images,omitempty" validate:"omitempty,max=5"`
	PickupLocation string         `json:"pickupLocation,omitempty" validate:"omitempty,max=300"`
	PickupDate     string         `json:"pickupDate,omitempty"`
	PickupTime     string         `json:"pickupTime,omitempty"`
	ContactPhone   string         `json:"contactPhone,omitempty" validate:"omitempty,max=30"`
	Notes          string         `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateDonationRequest is a partial edit of a pending donation. Nil fields are left untouched.
type UpdateDonationRequest struct {
	Items          []DonationItem `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	Images         []string       `json:"images,omitempty" validate:"omitempty,max=5"`
	PickupLocation *string        `json:"pickupLocation,omitempty" validate:"omitempty,max=300"`
	PickupDate     *string        `json:"pickupDate,omitempty"`
	PickupTime     *string        `json:"pickupTime,omitempty"`
	ContactPhone   *string        `json:"contactPhone,omitempty" validate:"omitempty,max=30"`
	Notes          *string        `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// SchedulePickupRequest assigns an NGO and a pickup slot
type SchedulePickupRequest struct {
	NgoID      string `json:"ngoId" validate:"required"`
	PickupDate string `json:"pickupDate" validate:"required"`
	PickupTime string `json:"pickupTime" validate:"required"`
}

// UpdateDonationStatusRequest is the body of the status-only patch
type UpdateDonationStatusRequest struct {
	Status DonationStatus `json:"status" validate:"required,oneof=pending in_transit delivered"`
}

// DonationFilter narrows donation listings. Zero values match everything.
type DonationFilter struct {
	DonorID    string
	NgoID      string
	Status     DonationStatus
	Unassigned bool
}

// Matches reports whether d passes the filter
func (f DonationFilter) Matches(d *Donation) bool {
	if f.DonorID != "" && d.DonorID != f.DonorID {
		return false
	}
	if f.NgoID != "" && d.NgoID != f.NgoID {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.Unassigned && d.NgoID != "" {
		return false
	}
	return true
}
