package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/repositories"
)

type fixture struct {
	store     *repositories.Store
	pusher    *recordingPusher
	notifier  *Notifier
	donations *DonationService
	needs     *NeedService
}

type recordingPusher struct {
	mu     sync.Mutex
	pushed []models.Notification
	err    error
	block  chan struct{}
}

func (p *recordingPusher) Push(ctx context.Context, n *models.Notification) error {
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, *n)
	return p.err
}

func (p *recordingPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pushed)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repositories.NewMemoryStore()
	pusher := &recordingPusher{}
	notifier := NewNotifier(store.Notifications, store.Users, pusher, zerolog.Nop())
	return &fixture{
		store:     store,
		pusher:    pusher,
		notifier:  notifier,
		donations: NewDonationService(store, notifier, zerolog.Nop()),
		needs:     NewNeedService(store, notifier, zerolog.Nop()),
	}
}

func (f *fixture) user(t *testing.T, id string, role models.Role) {
	t.Helper()
	err := f.store.Users.CreateUser(context.Background(), &models.User{
		ID: id, Email: id + "@example.org", Role: role, Name: id,
	})
	if err != nil {
		t.Fatalf("creating user %s: %v", id, err)
	}
}

func (f *fixture) ngo(t *testing.T, id, category string, keywords ...string) {
	t.Helper()
	f.user(t, id, models.RoleNGO)
	err := f.store.NGOs.SaveNGO(context.Background(), &models.NGO{
		ID: id, Name: id, Category: category, Keywords: keywords,
	})
	if err != nil {
		t.Fatalf("saving ngo %s: %v", id, err)
	}
}

func (f *fixture) notificationsFor(t *testing.T, userID string) []models.Notification {
	t.Helper()
	list, err := f.notifier.ListFor(context.Background(), userID)
	if err != nil {
		t.Fatalf("listing notifications: %v", err)
	}
	return list
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}
