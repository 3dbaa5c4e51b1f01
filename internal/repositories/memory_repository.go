package repositories

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shareity/backend/internal/models"
)

// NewMemoryStore returns a Store backed by process-resident collections.
// Collections keep most-recent-first order, the same order the API lists them in.
func NewMemoryStore() *Store {
	return &Store{
		Users:         &memoryUserRepository{},
		NGOs:          &memoryNGORepository{},
		Donations:     &memoryDonationRepository{},
		Needs:         &memoryNeedRepository{},
		Notifications: &memoryNotificationRepository{},
		UsageReports:  &memoryUsageReportRepository{},
		Feedbacks:     &memoryFeedbackRepository{},
	}
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

// --- users ---

type memoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func (r *memoryUserRepository) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = newID(user.ID)
	user.CreatedAt = stamp(user.CreatedAt)
	user.UpdatedAt = stamp(user.UpdatedAt)
	r.users = append(r.users, *user)
	return nil
}

func (r *memoryUserRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetUsers(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.User{}, r.users...), nil
}

func (r *memoryUserRepository) UpdateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return ErrNotFound
}

// --- ngos ---

type memoryNGORepository struct {
	mu   sync.RWMutex
	ngos []models.NGO
}

func cloneNGO(n models.NGO) models.NGO {
	n.Needs = slices.Clone(n.Needs)
	n.Keywords = slices.Clone(n.Keywords)
	return n
}

func (r *memoryNGORepository) SaveNGO(_ context.Context, ngo *models.NGO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ngo.ID = newID(ngo.ID)
	ngo.CreatedAt = stamp(ngo.CreatedAt)
	ngo.UpdatedAt = stamp(ngo.UpdatedAt)
	for i := range r.ngos {
		if r.ngos[i].ID == ngo.ID {
			r.ngos[i] = cloneNGO(*ngo)
			return nil
		}
	}
	r.ngos = append(r.ngos, cloneNGO(*ngo))
	return nil
}

func (r *memoryNGORepository) GetNGOByID(_ context.Context, id string) (*models.NGO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.ngos {
		if r.ngos[i].ID == id {
			n := cloneNGO(r.ngos[i])
			return &n, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryNGORepository) GetNGOs(_ context.Context, filter models.NGOFilter) ([]models.NGO, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(filter.Query)
	ngos := []models.NGO{}
	for _, n := range r.ngos {
		if filter.Category != "" && n.Category != filter.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(n.Name), q) &&
			!strings.Contains(strings.ToLower(n.Description), q) &&
			!strings.Contains(strings.ToLower(n.Location), q) {
			continue
		}
		ngos = append(ngos, cloneNGO(n))
	}
	return ngos, nil
}

// --- donations ---

type memoryDonationRepository struct {
	mu        sync.RWMutex
	donations []models.Donation
}

func cloneDonation(d models.Donation) models.Donation {
	d.Items = slices.Clone(d.Items)
	d.Images = slices.Clone(d.Images)
	return d
}

func (r *memoryDonationRepository) CreateDonation(_ context.Context, donation *models.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	donation.ID = newID(donation.ID)
	donation.CreatedAt = stamp(donation.CreatedAt)
	donation.UpdatedAt = stamp(donation.UpdatedAt)
	r.donations = slices.Insert(r.donations, 0, cloneDonation(*donation))
	return nil
}

func (r *memoryDonationRepository) GetDonationByID(_ context.Context, id string) (*models.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.donations {
		if r.donations[i].ID == id {
			d := cloneDonation(r.donations[i])
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryDonationRepository) GetDonations(_ context.Context, filter models.DonationFilter) ([]models.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	donations := []models.Donation{}
	for i := range r.donations {
		if filter.Matches(&r.donations[i]) {
			donations = append(donations, cloneDonation(r.donations[i]))
		}
	}
	return donations, nil
}

func (r *memoryDonationRepository) UpdateDonation(_ context.Context, donation *models.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.donations {
		if r.donations[i].ID == donation.ID {
			r.donations[i] = cloneDonation(*donation)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryDonationRepository) DeleteDonation(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.donations {
		if r.donations[i].ID == id {
			r.donations = slices.Delete(r.donations, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

// --- needs ---

type memoryNeedRepository struct {
	mu    sync.RWMutex
	needs []models.Need
}

func (r *memoryNeedRepository) CreateNeed(_ context.Context, need *models.Need) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	need.ID = newID(need.ID)
	need.CreatedAt = stamp(need.CreatedAt)
	need.UpdatedAt = stamp(need.UpdatedAt)
	r.needs = slices.Insert(r.needs, 0, *need)
	return nil
}

func (r *memoryNeedRepository) GetNeedByID(_ context.Context, id string) (*models.Need, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.needs {
		if r.needs[i].ID == id {
			n := r.needs[i]
			return &n, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryNeedRepository) GetNeeds(_ context.Context, filter models.NeedFilter) ([]models.Need, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needs := []models.Need{}
	for i := range r.needs {
		if filter.Matches(&r.needs[i]) {
			needs = append(needs, r.needs[i])
		}
	}
	return needs, nil
}

func (r *memoryNeedRepository) UpdateNeed(_ context.Context, need *models.Need) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.needs {
		if r.needs[i].ID == need.ID {
			r.needs[i] = *need
			return nil
		}
	}
	return ErrNotFound
}

// --- notifications ---

type memoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []models.Notification
}

func (r *memoryNotificationRepository) CreateNotification(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = newID(notification.ID)
	notification.CreatedAt = stamp(notification.CreatedAt)
	r.notifications = slices.Insert(r.notifications, 0, *notification)
	return nil
}

func (r *memoryNotificationRepository) GetNotificationByID(_ context.Context, id string) (*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			n := r.notifications[i]
			return &n, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryNotificationRepository) GetByRecipientID(_ context.Context, userID string) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notifications := []models.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	return notifications, nil
}

func (r *memoryNotificationRepository) GetUnreadCount(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memoryNotificationRepository) MarkAsRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryNotificationRepository) GetAllNotifications(_ context.Context) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Notification{}, r.notifications...), nil
}

// --- usage reports ---

type memoryUsageReportRepository struct {
	mu      sync.RWMutex
	reports []models.UsageReport
}

func (r *memoryUsageReportRepository) CreateUsageReport(_ context.Context, report *models.UsageReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.ID = newID(report.ID)
	report.CreatedAt = stamp(report.CreatedAt)
	r.reports = slices.Insert(r.reports, 0, *report)
	return nil
}

func (r *memoryUsageReportRepository) GetUsageReports(_ context.Context, filter models.UsageReportFilter) ([]models.UsageReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reports := []models.UsageReport{}
	for i := range r.reports {
		if filter.Matches(&r.reports[i]) {
			reports = append(reports, r.reports[i])
		}
	}
	return reports, nil
}

// --- feedback ---

type memoryFeedbackRepository struct {
	mu        sync.RWMutex
	feedbacks []models.Feedback
}

func (r *memoryFeedbackRepository) CreateFeedback(_ context.Context, feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	feedback.ID = newID(feedback.ID)
	feedback.CreatedAt = stamp(feedback.CreatedAt)
	r.feedbacks = slices.Insert(r.feedbacks, 0, *feedback)
	return nil
}

func (r *memoryFeedbackRepository) GetFeedbacks(_ context.Context) ([]models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Feedback{}, r.feedbacks...), nil
}
