package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/shareity/backend/internal/models"
)

// Sender is the part of *messaging.Client the pusher needs
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Pusher delivers stored notifications through Cloud Messaging. Each user's
// devices subscribe to the topic returned by Topic.
type Pusher struct {
	sender Sender
}

// NewPusher creates a Pusher
func NewPusher(sender Sender) *Pusher {
	return &Pusher{sender: sender}
}

// Topic is the per-user topic a notification is published to
func Topic(userID string) string {
	return "user-" + userID
}

// Push publishes the notification to the recipient's topic
func (p *Pusher) Push(ctx context.Context, n *models.Notification) error {
	msg := &messaging.Message{
		Topic: Topic(n.UserID),
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: map[string]string{
			"notificationId": n.ID,
			"type":           string(n.Type),
		},
	}
	if _, err := p.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending push to %s: %w", msg.Topic, err)
	}
	return nil
}
