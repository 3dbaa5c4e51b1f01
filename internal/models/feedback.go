package models

import "time"

// Feedback is a public, append-only rating of the platform (PostgreSQL)
type Feedback struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"userId" bson:"user_id" gorm:"size:36;index"`
	UserName  string    `json:"userName" bson:"user_name"`
	Rating    int       `json:"rating" bson:"rating"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at" gorm:"index"`
}

// CreateFeedbackRequest defines the request body for submitting feedback
type CreateFeedbackRequest struct {
	UserID   string `json:"userId" validate:"required"`
	UserName string `json:"userName" validate:"required,max=100"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Text     string `json:"text" validate:"required,max=2000"`
}
