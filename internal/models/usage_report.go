package models

import "time"

// UsageReport documents how a delivered donation was used (MongoDB)
type UsageReport struct {
	ID                 string    `json:"id" bson:"_id"`
	NgoID              string    `json:"ngoId" bson:"ngo_id"`
	DonationID         string    `json:"donationId" bson:"donation_id"`
	Title              string    `json:"title" bson:"title"`
	Description        string    `json:"description" bson:"description"`
	BeneficiariesCount int       `json:"beneficiariesCount" bson:"beneficiaries_count"`
	Impact             string    `json:"impact,omitempty" bson:"impact,omitempty"`
	Images             []string  `json:"images,omitempty" bson:"images,omitempty"`
	Videos             []string  `json:"videos,omitempty" bson:"videos,omitempty"`
	Location           string    `json:"location,omitempty" bson:"location,omitempty"`
	Date               string    `json:"date,omitempty" bson:"date,omitempty"`
	CreatedAt          time.Time `json:"createdAt" bson:"created_at"`
}

// CreateUsageReportRequest defines the request body for filing a usage report
type CreateUsageReportRequest struct {
	NgoID              string   `json:"ngoId" validate:"required"`
	DonationID         string   `json:"donationId" validate:"required"`
	Title              string   `json:"title" validate:"required,max=200"`
	Description        string   `json:"description" validate:"required,max=5000"`
	BeneficiariesCount int      `json:"beneficiariesCount" validate:"min=0"`
	Impact             string   `json:"impact,omitempty" validate:"omitempty,max=2000"`
	Images             []string `json:"images,omitempty" validate:"omitempty,max=10"`
	Videos             []string `json:"videos,omitempty" validate:"omitempty,max=5,dive,url"`
	Location           string   `json:"location,omitempty" validate:"omitempty,max=200"`
	Date               string   `json:"date,omitempty"`
}

// UsageReportFilter narrows report listings
type UsageReportFilter struct {
	NgoID      string
	DonationID string
}

// Matches reports whether r passes the filter
func (f UsageReportFilter) Matches(r *UsageReport) bool {
	if f.NgoID != "" && r.NgoID != f.NgoID {
		return false
	}
	if f.DonationID != "" && r.DonationID != f.DonationID {
		return false
	}
	return true
}
