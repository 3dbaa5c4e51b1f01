package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shareity/backend/internal/matcher"
	"github.com/shareity/backend/internal/metrics"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/repositories"
	"github.com/shareity/backend/pkg/logging"
)

const pushTimeout = 5 * time.Second

// Pusher delivers a stored notification to the recipient's devices
type Pusher interface {
	Push(ctx context.Context, notification *models.Notification) error
}

// Notifier turns matcher intents into stored notifications and serves each user's feed
type Notifier struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	pusher        Pusher
	logger        zerolog.Logger
	now           func() time.Time

	pushes sync.WaitGroup
}

// NewNotifier creates a Notifier. pusher may be nil.
func NewNotifier(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, pusher Pusher, logger zerolog.Logger) *Notifier {
	return &Notifier{
		notifications: notifRepo,
		users:         userRepo,
		pusher:        pusher,
		logger:        logging.Component(logger, "notifier"),
		now:           time.Now,
	}
}

// Notify stores a notification for the intent's recipient. The recipient must
// exist and hold the role the notification type is addressed to.
func (n *Notifier) Notify(ctx context.Context, intent matcher.Intent) (*models.Notification, error) {
	audience := intent.Type.Audience()
	if audience == "" {
		return nil, fmt.Errorf("%w: unknown notification type %q", ErrValidationFailed, intent.Type)
	}
	if intent.UserID == "" {
		return nil, fmt.Errorf("%w: notification recipient is required", ErrValidationFailed)
	}
	recipient, err := n.users.GetUserByID(ctx, intent.UserID)
	if err != nil {
		return nil, notFound(err, "user", intent.UserID)
	}
	if recipient.Role != audience {
		return nil, fmt.Errorf("%w: %s notifications go to %s users, user %s is %s",
			ErrValidationFailed, intent.Type, audience, recipient.ID, recipient.Role)
	}

	meta := make(map[string]interface{}, len(intent.Meta))
	for k, v := range intent.Meta {
		meta[k] = v
	}
	notification := &models.Notification{
		UserID:    intent.UserID,
		Type:      intent.Type,
		Title:     intent.Title,
		Message:   intent.Message,
		Meta:      meta,
		Read:      false,
		CreatedAt: n.now().UTC(),
	}
	if err := n.notifications.CreateNotification(ctx, notification); err != nil {
		return nil, err
	}
	metrics.NotificationsCreated.WithLabelValues(string(notification.Type)).Inc()

	if n.pusher != nil {
		n.push(ctx, *notification)
	}
	return notification, nil
}

// push delivers the notification in the background so a slow push endpoint
// never holds up the caller
func (n *Notifier) push(ctx context.Context, notification models.Notification) {
	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
	n.pushes.Add(1)
	go func() {
		defer n.pushes.Done()
		defer cancel()
		if err := n.pusher.Push(pushCtx, &notification); err != nil {
			n.logger.Warn().Err(err).Str(logging.ID, notification.ID).Msg("push delivery failed")
		}
	}()
}

// Wait blocks until every in-flight push has finished or timed out
func (n *Notifier) Wait() {
	n.pushes.Wait()
}

// Dispatch notifies every intent, logging and skipping the ones that fail
func (n *Notifier) Dispatch(ctx context.Context, intents []matcher.Intent) []models.Notification {
	created := make([]models.Notification, 0, len(intents))
	for _, intent := range intents {
		notification, err := n.Notify(ctx, intent)
		if err != nil {
			metrics.NotificationsDropped.WithLabelValues(string(intent.Type)).Inc()
			n.logger.Warn().Err(err).
				Str(logging.USER, intent.UserID).
				Str("type", string(intent.Type)).
				Msg("dropping notification intent")
			continue
		}
		created = append(created, *notification)
	}
	return created
}

// ListFor returns the user's notifications, most recent first
func (n *Notifier) ListFor(ctx context.Context, userID string) ([]models.Notification, error) {
	return n.notifications.GetByRecipientID(ctx, userID)
}

// UnreadCount returns how many of the user's notifications are unread
func (n *Notifier) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return n.notifications.GetUnreadCount(ctx, userID)
}

// MarkRead flags a notification as read. Unknown IDs and already-read notifications are a no-op.
func (n *Notifier) MarkRead(ctx context.Context, id string) error {
	err := n.notifications.MarkAsRead(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}
