package models

import (
	"time"

	"github.com/lib/pq"
)

// NGO is the public profile of an NGO account. Its ID is the owning NGO user's ID,
// so donations, needs and notifications all address an NGO by the same value.
// Keywords are never shown to donors; only the matcher reads them.
type NGO struct {
	ID          string         `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Category    string         `json:"category" bson:"category" gorm:"index"`
	Location    string         `json:"location" bson:"location"`
	Rating      float64        `json:"rating" bson:"rating"`
	Needs       pq.StringArray `json:"needs" bson:"needs" gorm:"type:text[]"`
	Keywords    pq.StringArray `json:"-" bson:"keywords" gorm:"type:text[]"`
	CreatedAt   time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updated_at"`
}

// UpsertNGORequest defines the request body for creating or replacing an NGO profile
type UpsertNGORequest struct {
	UserID      string   `json:"userId" validate:"required"`
	Name        string   `json:"name" validate:"required,min=2,max=150"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    string   `json:"category" validate:"required,max=50"`
	Location    string   `json:"location" validate:"required,max=200"`
	Rating      float64  `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Needs       []string `json:"needs,omitempty" validate:"omitempty,dive,max=100"`
}

// UpdateKeywordsRequest replaces the NGO's collection keywords
type UpdateKeywordsRequest struct {
	Keywords []string `json:"keywords" validate:"dive,max=100"`
}

// NGOFilter narrows NGO listings
type NGOFilter struct {
	Category string
	Query    string
}
