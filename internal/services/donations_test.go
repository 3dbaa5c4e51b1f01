package services

import (
	"context"
	"testing"
	"time"

	"github.com/shareity/backend/internal/matcher"
	"github.com/shareity/backend/internal/models"
)

func jacketDonation(donorID string) models.CreateDonationRequest {
	return models.CreateDonationRequest{
		DonorID: donorID,
		Items:   []models.DonationItem{{Name: "Winter Jacket", Category: "clothing", Quantity: 2}},
	}
}

func TestCreateDonationNotifiesMatchingNGOs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "donor-1", models.RoleDonor)
	f.ngo(t, "ngo-7", "shelter")
	f.ngo(t, "ngo-8", "education", "jacket")
	if _, err := f.needs.Create(ctx, models.CreateNeedRequest{NgoID: "ngo-7", Title: "Coats", Category: "clothing", TargetQuantity: 10}); err != nil {
		t.Fatalf("creating need: %v", err)
	}

	donation, err := f.donations.Create(ctx, jacketDonation("donor-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if donation.Status != models.DonationPending || donation.ID == "" {
		t.Errorf("unexpected donation: %+v", donation)
	}

	got7 := f.notificationsFor(t, "ngo-7")
	if len(got7) != 1 || got7[0].Type != models.NotificationDonationMatch {
		t.Fatalf("ngo-7 should get one donation_match, got %+v", got7)
	}
	got8 := f.notificationsFor(t, "ngo-8")
	if len(got8) != 1 || got8[0].Type != models.NotificationKeywordMatch {
		t.Errorf("ngo-8 should get one keyword_match, got %+v", got8)
	}
	if got7[0].Meta["donationId"] != donation.ID {
		t.Errorf("meta should reference the donation: %+v", got7[0].Meta)
	}
}

func TestCreateDonationSurvivesMatcherPanic(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.donations.match = func(*models.Donation, []models.Need, matcher.KeywordRegistry) []matcher.Intent {
		panic("boom")
	}

	donation, err := f.donations.Create(context.Background(), jacketDonation("donor-1"))
	if err != nil {
		t.Fatalf("matching failures must not fail create: %v", err)
	}
	if _, err := f.donations.Get(context.Background(), donation.ID); err != nil {
		t.Errorf("donation should be stored: %v", err)
	}
}

func TestCreateDonationValidation(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	ctx := context.Background()

	_, err := f.donations.Create(ctx, models.CreateDonationRequest{DonorID: "donor-1"})
	assertErrorIs(t, err, ErrValidationFailed)

	_, err = f.donations.Create(ctx, models.CreateDonationRequest{
		DonorID: "donor-1",
		Items:   []models.DonationItem{{Name: "Rice", Quantity: 0}},
	})
	assertErrorIs(t, err, ErrValidationFailed)

	_, err = f.donations.Create(ctx, jacketDonation("ghost"))
	assertErrorIs(t, err, ErrNotFound)
}

func TestCreateDonationRequiresDonorRole(t *testing.T) {
	f := newFixture(t)
	f.ngo(t, "ngo-2", "clothing")
	ctx := context.Background()

	_, err := f.donations.Create(ctx, jacketDonation("ngo-2"))
	assertErrorIs(t, err, ErrValidationFailed)

	all, _ := f.donations.List(ctx, models.DonationFilter{})
	if len(all) != 0 {
		t.Errorf("nothing should be stored, got %+v", all)
	}
}

func TestCreateDonationDoesNotWaitForPush(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.ngo(t, "ngo-1", "education", "jacket")
	f.ngo(t, "ngo-2", "shelter", "winter")
	release := make(chan struct{})
	f.pusher.block = release

	start := time.Now()
	if _, err := f.donations.Create(context.Background(), jacketDonation("donor-1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if took := time.Since(start); took > time.Second {
		t.Errorf("create waited %s on push delivery", took)
	}
	if got := f.notificationsFor(t, "ngo-1"); len(got) != 1 {
		t.Errorf("notification should be stored before the push completes, got %d", len(got))
	}

	close(release)
	f.notifier.Wait()
	if pushed := f.pusher.count(); pushed != 2 {
		t.Errorf("expected 2 pushes, got %d", pushed)
	}
}

func TestDonationStatusTransitions(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.ngo(t, "ngo-1", "clothing")
	ctx := context.Background()
	d, err := f.donations.Create(ctx, jacketDonation("donor-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.donations.UpdateStatus(ctx, d.ID, models.DonationPending)
	assertErrorIs(t, err, ErrInvalidTransition)

	if _, err := f.donations.SchedulePickup(ctx, d.ID, models.SchedulePickupRequest{NgoID: "ngo-1", PickupDate: "d", PickupTime: "t"}); err != nil {
		t.Fatalf("pending -> in_transit: %v", err)
	}
	_, err = f.donations.UpdateStatus(ctx, d.ID, models.DonationInTransit)
	assertErrorIs(t, err, ErrInvalidTransition)
	_, err = f.donations.UpdateStatus(ctx, d.ID, models.DonationPending)
	assertErrorIs(t, err, ErrInvalidTransition)

	updated, err := f.donations.UpdateStatus(ctx, d.ID, models.DonationDelivered)
	if err != nil {
		t.Fatalf("in_transit -> delivered: %v", err)
	}
	if updated.Status != models.DonationDelivered {
		t.Errorf("expected delivered, got %s", updated.Status)
	}

	for _, status := range []models.DonationStatus{models.DonationPending, models.DonationInTransit, models.DonationDelivered} {
		_, err = f.donations.UpdateStatus(ctx, d.ID, status)
		assertErrorIs(t, err, ErrInvalidTransition)
	}

	_, err = f.donations.UpdateStatus(ctx, d.ID, "lost")
	assertErrorIs(t, err, ErrValidationFailed)
	_, err = f.donations.UpdateStatus(ctx, "missing", models.DonationDelivered)
	assertErrorIs(t, err, ErrNotFound)
}

func TestPendingCanJumpToDelivered(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.ngo(t, "ngo-1", "clothing")
	ctx := context.Background()
	req := jacketDonation("donor-1")
	req.NgoID = "ngo-1"
	d, _ := f.donations.Create(ctx, req)

	if _, err := f.donations.UpdateStatus(ctx, d.ID, models.DonationDelivered); err != nil {
		t.Errorf("forward jumps are allowed: %v", err)
	}
}

func TestUnassignedDonationStaysPending(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.ngo(t, "ngo-1", "clothing")
	ctx := context.Background()
	d, _ := f.donations.Create(ctx, jacketDonation("donor-1"))

	for _, status := range []models.DonationStatus{models.DonationInTransit, models.DonationDelivered} {
		_, err := f.donations.UpdateStatus(ctx, d.ID, status)
		assertErrorIs(t, err, ErrPreconditionFailed)
	}
	stored, _ := f.donations.Get(ctx, d.ID)
	if stored.Status != models.DonationPending {
		t.Fatalf("a rejected update must not move the donation, got %s", stored.Status)
	}

	if _, err := f.donations.SchedulePickup(ctx, d.ID, models.SchedulePickupRequest{NgoID: "ngo-1", PickupDate: "d", PickupTime: "t"}); err != nil {
		t.Errorf("pickup can still be scheduled: %v", err)
	}
}

func TestSchedulePickup(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.ngo(t, "ngo-1", "food")
	f.ngo(t, "ngo-2", "food")
	ctx := context.Background()
	d, _ := f.donations.Create(ctx, jacketDonation("donor-1"))

	req := models.SchedulePickupRequest{NgoID: "ngo-1", PickupDate: "2024-05-01", PickupTime: "10:00"}
	scheduled, err := f.donations.SchedulePickup(ctx, d.ID, req)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if scheduled.NgoID != "ngo-1" || scheduled.Status != models.DonationInTransit ||
		scheduled.PickupDate != "2024-05-01" || scheduled.PickupTime != "10:00" {
		t.Errorf("unexpected donation after scheduling: %+v", scheduled)
	}

	_, err = f.donations.SchedulePickup(ctx, d.ID, models.SchedulePickupRequest{NgoID: "ngo-2", PickupDate: "2024-05-02", PickupTime: "11:00"})
	assertErrorIs(t, err, ErrPreconditionFailed)

	stored, _ := f.donations.Get(ctx, d.ID)
	if stored.NgoID != "ngo-1" {
		t.Errorf("a failed schedule must not reassign the donation, got %s", stored.NgoID)
	}

	_, err = f.donations.SchedulePickup(ctx, "missing", req)
	assertErrorIs(t, err, ErrNotFound)
}

func TestSchedulePickupRespectsPreassignedNGO(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.ngo(t, "ngo-1", "food")
	f.ngo(t, "ngo-2", "food")
	ctx := context.Background()

	req := jacketDonation("donor-1")
	req.NgoID = "ngo-1"
	d, err := f.donations.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.donations.SchedulePickup(ctx, d.ID, models.SchedulePickupRequest{NgoID: "ngo-2", PickupDate: "2024-05-01", PickupTime: "10:00"})
	assertErrorIs(t, err, ErrPreconditionFailed)

	if _, err := f.donations.SchedulePickup(ctx, d.ID, models.SchedulePickupRequest{NgoID: "ngo-1", PickupDate: "2024-05-01", PickupTime: "10:00"}); err != nil {
		t.Errorf("the assigned NGO may schedule: %v", err)
	}
}

func TestEditAndDeleteArePendingOnly(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.ngo(t, "ngo-1", "clothing")
	ctx := context.Background()
	d, _ := f.donations.Create(ctx, jacketDonation("donor-1"))

	notes := "ring the bell"
	edited, err := f.donations.Edit(ctx, d.ID, models.UpdateDonationRequest{Notes: &notes})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Notes != notes || len(edited.Items) != 1 {
		t.Errorf("edit should only touch the patched fields: %+v", edited)
	}

	if _, err := f.donations.SchedulePickup(ctx, d.ID, models.SchedulePickupRequest{NgoID: "ngo-1", PickupDate: "d", PickupTime: "t"}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	_, err = f.donations.Edit(ctx, d.ID, models.UpdateDonationRequest{Notes: &notes})
	assertErrorIs(t, err, ErrPreconditionFailed)

	// once picked up, a donation can no longer be withdrawn. Deleting used to
	// succeed in any status; in_transit and delivered donations are now kept.
	assertErrorIs(t, f.donations.Delete(ctx, d.ID), ErrPreconditionFailed)

	other, _ := f.donations.Create(ctx, jacketDonation("donor-1"))
	if err := f.donations.Delete(ctx, other.ID); err != nil {
		t.Fatalf("delete pending: %v", err)
	}
	_, err = f.donations.Get(ctx, other.ID)
	assertErrorIs(t, err, ErrNotFound)
	assertErrorIs(t, f.donations.Delete(ctx, other.ID), ErrNotFound)
}

func TestListDonationsFilters(t *testing.T) {
	f := newFixture(t)
	f.user(t, "donor-1", models.RoleDonor)
	f.user(t, "donor-2", models.RoleDonor)
	f.ngo(t, "ngo-1", "food")
	ctx := context.Background()

	a, _ := f.donations.Create(ctx, jacketDonation("donor-1"))
	b, _ := f.donations.Create(ctx, jacketDonation("donor-2"))
	if _, err := f.donations.SchedulePickup(ctx, a.ID, models.SchedulePickupRequest{NgoID: "ngo-1", PickupDate: "d", PickupTime: "t"}); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	mine, _ := f.donations.List(ctx, models.DonationFilter{DonorID: "donor-1"})
	if len(mine) != 1 || mine[0].ID != a.ID {
		t.Errorf("donor filter: %+v", mine)
	}
	open, _ := f.donations.List(ctx, models.DonationFilter{Unassigned: true})
	if len(open) != 1 || open[0].ID != b.ID {
		t.Errorf("unassigned filter: %+v", open)
	}
	all, _ := f.donations.List(ctx, models.DonationFilter{})
	if len(all) != 2 || all[0].ID != b.ID {
		t.Errorf("expected newest first: %+v", all)
	}
}
