package repositories

import (
	"context"
	"errors"

	"github.com/shareity/backend/internal/models"
)

// ErrNotFound is returned by every implementation when a record does not exist
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// NGORepository defines the interface for NGO profile operations
type NGORepository interface {
	SaveNGO(ctx context.Context, ngo *models.NGO) error
	GetNGOByID(ctx context.Context, id string) (*models.NGO, error)
	GetNGOs(ctx context.Context, filter models.NGOFilter) ([]models.NGO, error)
}

// DonationRepository defines the interface for donation operations
type DonationRepository interface {
	CreateDonation(ctx context.Context, donation *models.Donation) error
	GetDonationByID(ctx context.Context, id string) (*models.Donation, error)
	GetDonations(ctx context.Context, filter models.DonationFilter) ([]models.Donation, error)
	UpdateDonation(ctx context.Context, donation *models.Donation) error
	DeleteDonation(ctx context.Context, id string) error
}

// NeedRepository defines the interface for NGO request operations
type NeedRepository interface {
	CreateNeed(ctx context.Context, need *models.Need) error
	GetNeedByID(ctx context.Context, id string) (*models.Need, error)
	GetNeeds(ctx context.Context, filter models.NeedFilter) ([]models.Need, error)
	UpdateNeed(ctx context.Context, need *models.Need) error
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetNotificationByID(ctx context.Context, id string) (*models.Notification, error)
	GetByRecipientID(ctx context.Context, userID string) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	GetAllNotifications(ctx context.Context) ([]models.Notification, error)
}

// UsageReportRepository defines the interface for usage report operations
type UsageReportRepository interface {
	CreateUsageReport(ctx context.Context, report *models.UsageReport) error
	GetUsageReports(ctx context.Context, filter models.UsageReportFilter) ([]models.UsageReport, error)
}

// FeedbackRepository defines the interface for feedback operations
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback *models.Feedback) error
	GetFeedbacks(ctx context.Context) ([]models.Feedback, error)
}

// Store bundles every repository the application depends on
type Store struct {
	Users         UserRepository
	NGOs          NGORepository
	Donations     DonationRepository
	Needs         NeedRepository
	Notifications NotificationRepository
	UsageReports  UsageReportRepository
	Feedbacks     FeedbackRepository
}
