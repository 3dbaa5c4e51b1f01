package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shareity/backend/internal/matcher"
	"github.com/shareity/backend/internal/models"
)

func TestNotifyStoresUnreadNotification(t *testing.T) {
	f := newFixture(t)
	f.ngo(t, "ngo-1", "clothing")
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f.notifier.now = func() time.Time { return fixed }

	n, err := f.notifier.Notify(context.Background(), matcher.Intent{
		UserID:  "ngo-1",
		Type:    models.NotificationDonationMatch,
		Title:   "New donation may match your needs",
		Message: "Winter Jacket",
		Meta:    map[string]interface{}{"donationId": "d1"},
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if n.ID == "" || n.Read || !n.CreatedAt.Equal(fixed) {
		t.Errorf("unexpected notification: %+v", n)
	}
	if n.Meta["donationId"] != "d1" {
		t.Errorf("meta lost: %+v", n.Meta)
	}
	f.notifier.Wait()
	if len(f.pusher.pushed) != 1 || f.pusher.pushed[0].ID != n.ID {
		t.Errorf("expected the notification to be pushed once, got %+v", f.pusher.pushed)
	}
}

func TestNotifyRejectsWrongAudience(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)

	_, err := f.notifier.Notify(context.Background(), matcher.Intent{
		UserID: "donor-1",
		Type:   models.NotificationKeywordMatch,
		Title:  "New donation matches your collection keywords",
	})
	assertErrorIs(t, err, ErrValidationFailed)
	if got := f.notificationsFor(t, "donor-1"); len(got) != 0 {
		t.Errorf("nothing should be stored, got %d", len(got))
	}
}

func TestNotifyUnknownRecipient(t *testing.T) {
	f := newFixture(t)
	_, err := f.notifier.Notify(context.Background(), matcher.Intent{
		UserID: "ghost",
		Type:   models.NotificationRequestMatch,
		Title:  "x",
	})
	assertErrorIs(t, err, ErrNotFound)
}

func TestNotifyUnknownType(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	_, err := f.notifier.Notify(context.Background(), matcher.Intent{UserID: "donor-1", Type: "gossip"})
	assertErrorIs(t, err, ErrValidationFailed)
}

func TestNotifySurvivesPushFailure(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.pusher.err = errors.New("fcm unavailable")

	if _, err := f.notifier.Notify(context.Background(), matcher.Intent{
		UserID: "donor-1", Type: models.NotificationRequestMatch, Title: "x",
	}); err != nil {
		t.Fatalf("push failures must not fail notify: %v", err)
	}
	if got := f.notificationsFor(t, "donor-1"); len(got) != 1 {
		t.Errorf("expected the notification to be stored, got %d", len(got))
	}
}

func TestDispatchSkipsFailures(t *testing.T) {
	f := newFixture(t)
	f.ngo(t, "ngo-1", "food")

	created := f.notifier.Dispatch(context.Background(), []matcher.Intent{
		{UserID: "ghost", Type: models.NotificationDonationMatch, Title: "a"},
		{UserID: "ngo-1", Type: models.NotificationDonationMatch, Title: "b"},
		{UserID: "ngo-1", Type: models.NotificationRequestMatch, Title: "c"},
	})
	if len(created) != 1 || created[0].Title != "b" {
		t.Errorf("expected only the valid intent to be stored, got %+v", created)
	}
}

func TestListForIsMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.user(t, "donor-2", models.RoleDonor)

	for _, intent := range []matcher.Intent{
		{UserID: "donor-1", Type: models.NotificationRequestMatch, Title: "first"},
		{UserID: "donor-2", Type: models.NotificationRequestMatch, Title: "other"},
		{UserID: "donor-1", Type: models.NotificationRequestMatch, Title: "second"},
	} {
		if _, err := f.notifier.Notify(context.Background(), intent); err != nil {
			t.Fatalf("notify: %v", err)
		}
	}

	list := f.notificationsFor(t, "donor-1")
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	if list[0].Title != "second" || list[1].Title != "first" {
		t.Errorf("unexpected order: %q, %q", list[0].Title, list[1].Title)
	}
	if got := f.notificationsFor(t, "nobody"); got == nil || len(got) != 0 {
		t.Errorf("unknown users get an empty list, got %#v", got)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	ctx := context.Background()

	n, err := f.notifier.Notify(ctx, matcher.Intent{UserID: "donor-1", Type: models.NotificationRequestMatch, Title: "x"})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if count, _ := f.notifier.UnreadCount(ctx, "donor-1"); count != 1 {
		t.Errorf("expected 1 unread, got %d", count)
	}

	for i := 0; i < 2; i++ {
		if err := f.notifier.MarkRead(ctx, n.ID); err != nil {
			t.Fatalf("mark read #%d: %v", i+1, err)
		}
	}
	if err := f.notifier.MarkRead(ctx, "no-such-id"); err != nil {
		t.Errorf("unknown ids are a no-op, got %v", err)
	}

	list := f.notificationsFor(t, "donor-1")
	if len(list) != 1 || !list[0].Read {
		t.Errorf("expected a single read notification, got %+v", list)
	}
	if count, _ := f.notifier.UnreadCount(ctx, "donor-1"); count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}
}
