package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationType identifies why a notification was raised
type NotificationType string

const (
	NotificationDonationMatch   NotificationType = "donation_match"
	NotificationKeywordMatch    NotificationType = "keyword_match"
	NotificationRequestMatch    NotificationType = "request_match"
	NotificationRequestAccepted NotificationType = "request_accepted"
)

// Audience is the role a notification of this type is addressed to.
// Unknown types have no audience.
func (t NotificationType) Audience() Role {
	switch t {
	case NotificationDonationMatch, NotificationKeywordMatch, NotificationRequestAccepted:
		return RoleNGO
	case NotificationRequestMatch:
		return RoleDonor
	}
	return ""
}

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID        string            `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	UserID    string            `json:"userId" bson:"user_id" gorm:"size:36;index"`
	Type      NotificationType  `json:"type" bson:"type" gorm:"size:30;index"`
	Title     string            `json:"title" bson:"title"`
	Message   string            `json:"message" bson:"message"`
	Meta      datatypes.JSONMap `json:"meta" bson:"meta"`
	Read      bool              `json:"read" bson:"read" gorm:"default:false;index"`
	CreatedAt time.Time         `json:"createdAt" bson:"created_at" gorm:"index"`
}

// CreateNotificationRequest defines the request body for posting a notification directly
type CreateNotificationRequest struct {
	UserID  string                 `json:"userId" validate:"required"`
	Type    NotificationType       `json:"type" validate:"required,oneof=donation_match keyword_match request_match request_accepted"`
	Title   string                 `json:"title" validate:"required,max=200"`
	Message string                 `json:"message" validate:"max=1000"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}
