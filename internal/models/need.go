package models

import "time"

// NeedStatus is the state of an NGO request
type NeedStatus string

const (
	NeedActive    NeedStatus = "active"
	NeedCompleted NeedStatus = "completed"
	NeedCancelled NeedStatus = "cancelled"
)

// Priority of a need
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Urgency of a need
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyCritical Urgency = "critical"
)

// Need is an NGO's posted request for items (PostgreSQL). The API calls these "requests".
// CurrentQuantity is never advanced by matching.
type Need struct {
	ID              string     `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	NgoID           string     `json:"ngoId" bson:"ngo_id" gorm:"size:36;index"`
	Title           string     `json:"title" bson:"title"`
	Description     string     `json:"description,omitempty" bson:"description,omitempty"`
	Category        string     `json:"category,omitempty" bson:"category,omitempty" gorm:"index"`
	Priority        Priority   `json:"priority" bson:"priority" gorm:"size:10"`
	Urgency         Urgency    `json:"urgency" bson:"urgency" gorm:"size:10"`
	TargetQuantity  int        `json:"targetQuantity" bson:"target_quantity"`
	CurrentQuantity int        `json:"currentQuantity" bson:"current_quantity"`
	Status          NeedStatus `json:"status" bson:"status" gorm:"size:12;index"`
	Deadline        *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Location        string     `json:"location,omitempty" bson:"location,omitempty"`
	ContactInfo     string     `json:"contactInfo,omitempty" bson:"contact_info,omitempty"`
	CreatedAt       time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updated_at"`
}

// CreateNeedRequest defines the request body for posting a need
type CreateNeedRequest struct {
	NgoID          string     `json:"ngoId" validate:"required"`
	Title          string     `json:"title" validate:"required,max=200"`
	Description    string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category       string     `json:"category,omitempty" validate:"omitempty,max=50"`
	Priority       Priority   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Urgency        Urgency    `json:"urgency,omitempty" validate:"omitempty,oneof=normal urgent critical"`
	TargetQuantity int        `json:"targetQuantity" validate:"min=0"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Location       string     `json:"location,omitempty" validate:"omitempty,max=200"`
	ContactInfo    string     `json:"contactInfo,omitempty" validate:"omitempty,max=200"`
}

// UpdateNeedRequest is a partial update. Nil fields are left untouched.
type UpdateNeedRequest struct {
	Title           *string     `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category        *string     `json:"category,omitempty" validate:"omitempty,max=50"`
	Priority        *Priority   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Urgency         *Urgency    `json:"urgency,omitempty" validate:"omitempty,oneof=normal urgent critical"`
	TargetQuantity  *int        `json:"targetQuantity,omitempty" validate:"omitempty,min=0"`
	CurrentQuantity *int        `json:"currentQuantity,omitempty" validate:"omitempty,min=0"`
	Status          *NeedStatus `json:"status,omitempty" validate:"omitempty,oneof=active completed cancelled"`
	Deadline        *time.Time  `json:"deadline,omitempty"`
	Location        *string     `json:"location,omitempty" validate:"omitempty,max=200"`
	ContactInfo     *string     `json:"contactInfo,omitempty" validate:"omitempty,max=200"`
}

// AcceptNeedRequest is a donor's pledge to fulfil part of a need
type AcceptNeedRequest struct {
	DonorID string `json:"donorId" validate:"required"`
}

// NeedFilter narrows need listings
type NeedFilter struct {
	NgoID  string
	Status NeedStatus
}

// Matches reports whether n passes the filter
func (f NeedFilter) Matches(n *Need) bool {
	if f.NgoID != "" && n.NgoID != f.NgoID {
		return false
	}
	if f.Status != "" && n.Status != f.Status {
		return false
	}
	return true
}
