package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shareity/backend/internal/matcher"
	"github.com/shareity/backend/internal/metrics"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/repositories"
	"github.com/shareity/backend/pkg/logging"
)

// DonationService manages the donation lifecycle: pending -> in_transit -> delivered.
// Only pending donations may be edited, deleted or scheduled for pickup.
type DonationService struct {
	store    *repositories.Store
	notifier *Notifier
	logger   zerolog.Logger
	now      func() time.Time

	match func(*models.Donation, []models.Need, matcher.KeywordRegistry) []matcher.Intent
}

// NewDonationService creates a DonationService
func NewDonationService(store *repositories.Store, notifier *Notifier, logger zerolog.Logger) *DonationService {
	return &DonationService{
		store:    store,
		notifier: notifier,
		logger:   logging.Component(logger, "donations"),
		now:      time.Now,
		match:    matcher.DonationCreated,
	}
}

// Create stores a new pending donation, then notifies NGOs whose active needs
// or keywords match it. Matching failures never fail the create.
func (s *DonationService) Create(ctx context.Context, req models.CreateDonationRequest) (*models.Donation, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	donor, err := s.store.Users.GetUserByID(ctx, req.DonorID)
	if err != nil {
		return nil, notFound(err, "donor", req.DonorID)
	}
	if donor.Role != models.RoleDonor {
		return nil, fmt.Errorf("%w: user %s is not a donor", ErrValidationFailed, req.DonorID)
	}
	if req.NgoID != "" {
		if err := s.checkNGO(ctx, req.NgoID); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	donation := &models.Donation{
		DonorID:        req.DonorID,
		NgoID:          req.NgoID,
		Items:          req.Items,
		Images:         req.Images,
		Status:         models.DonationPending,
		PickupLocation: req.PickupLocation,
		PickupDate:     req.PickupDate,
		PickupTime:     req.PickupTime,
		ContactPhone:   req.ContactPhone,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Donations.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}
	metrics.DonationTransitions.WithLabelValues(string(models.DonationPending)).Inc()
	s.logger.Info().Str(logging.ID, donation.ID).Str("donor", donation.DonorID).Msg("donation created")

	s.notifyMatches(ctx, donation)
	return donation, nil
}

func (s *DonationService) notifyMatches(ctx context.Context, donation *models.Donation) {
	defer func() {
		if r := recover(); r != nil {
			metrics.MatcherFailures.WithLabelValues("donation").Inc()
			s.logger.Error().Interface("panic", r).Str(logging.ID, donation.ID).Msg("donation matching aborted")
		}
	}()

	needs, err := s.store.Needs.GetNeeds(ctx, models.NeedFilter{Status: models.NeedActive})
	if err != nil {
		metrics.MatcherFailures.WithLabelValues("donation").Inc()
		s.logger.Error().Err(err).Str(logging.ID, donation.ID).Msg("loading active needs for matching")
		return
	}
	ngos, err := s.store.NGOs.GetNGOs(ctx, models.NGOFilter{})
	if err != nil {
		metrics.MatcherFailures.WithLabelValues("donation").Inc()
		s.logger.Error().Err(err).Str(logging.ID, donation.ID).Msg("loading keyword registry for matching")
		return
	}

	intents := s.match(donation, needs, matcher.NewKeywordRegistry(ngos))
	for _, intent := range intents {
		metrics.MatcherIntents.WithLabelValues(string(intent.Type)).Inc()
	}
	s.notifier.Dispatch(ctx, intents)
}

// Get returns a donation by ID
func (s *DonationService) Get(ctx context.Context, id string) (*models.Donation, error) {
	donation, err := s.store.Donations.GetDonationByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "donation", id)
	}
	return donation, nil
}

// List returns donations matching the filter, newest first
func (s *DonationService) List(ctx context.Context, filter models.DonationFilter) ([]models.Donation, error) {
	return s.store.Donations.GetDonations(ctx, filter)
}

// Edit applies a partial update to a pending donation
func (s *DonationService) Edit(ctx context.Context, id string, patch models.UpdateDonationRequest) (*models.Donation, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	donation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation.Status != models.DonationPending {
		return nil, fmt.Errorf("%w: donation %s is %s, only pending donations can be edited", ErrPreconditionFailed, id, donation.Status)
	}

	if patch.Items != nil {
		donation.Items = patch.Items
	}
	if patch.Images != nil {
		donation.Images = patch.Images
	}
	if patch.PickupLocation != nil {
		donation.PickupLocation = *patch.PickupLocation
	}
	if patch.PickupDate != nil {
		donation.PickupDate = *patch.PickupDate
	}
	if patch.PickupTime != nil {
		donation.PickupTime = *patch.PickupTime
	}
	if patch.ContactPhone != nil {
		donation.ContactPhone = *patch.ContactPhone
	}
	if patch.Notes != nil {
		donation.Notes = *patch.Notes
	}
	donation.UpdatedAt = s.now().UTC()

	if err := s.store.Donations.UpdateDonation(ctx, donation); err != nil {
		return nil, notFound(err, "donation", id)
	}
	return donation, nil
}

// Delete removes a pending donation
func (s *DonationService) Delete(ctx context.Context, id string) error {
	donation, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if donation.Status != models.DonationPending {
		return fmt.Errorf("%w: donation %s is %s, only pending donations can be deleted", ErrPreconditionFailed, id, donation.Status)
	}
	if err := s.store.Donations.DeleteDonation(ctx, id); err != nil {
		return notFound(err, "donation", id)
	}
	s.logger.Info().Str(logging.ID, id).Msg("donation deleted")
	return nil
}

// SchedulePickup assigns the NGO and pickup slot and moves the donation to in_transit.
// The donation must be pending and either unassigned or pre-assigned to the same NGO.
func (s *DonationService) SchedulePickup(ctx context.Context, id string, req models.SchedulePickupRequest) (*models.Donation, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	donation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation.Status != models.DonationPending {
		return nil, fmt.Errorf("%w: donation %s is already %s", ErrPreconditionFailed, id, donation.Status)
	}
	if donation.NgoID != "" && donation.NgoID != req.NgoID {
		return nil, fmt.Errorf("%w: donation %s is already assigned to NGO %s", ErrPreconditionFailed, id, donation.NgoID)
	}
	if err := s.checkNGO(ctx, req.NgoID); err != nil {
		return nil, err
	}

	donation.NgoID = req.NgoID
	donation.PickupDate = req.PickupDate
	donation.PickupTime = req.PickupTime
	donation.Status = models.DonationInTransit
	donation.UpdatedAt = s.now().UTC()
	if err := s.store.Donations.UpdateDonation(ctx, donation); err != nil {
		return nil, notFound(err, "donation", id)
	}
	metrics.DonationTransitions.WithLabelValues(string(models.DonationInTransit)).Inc()
	s.logger.Info().Str(logging.ID, id).Str("ngo", req.NgoID).Msg("pickup scheduled")
	return donation, nil
}

// UpdateStatus moves a donation forward along pending -> in_transit -> delivered.
// Staying in place or moving backwards is an invalid transition. A donation
// with no NGO assigned cannot leave pending; SchedulePickup assigns one.
func (s *DonationService) UpdateStatus(ctx context.Context, id string, status models.DonationStatus) (*models.Donation, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown donation status %q", ErrValidationFailed, status)
	}
	donation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if status.Rank() <= donation.Status.Rank() {
		return nil, fmt.Errorf("%w: donation %s cannot move from %s to %s", ErrInvalidTransition, id, donation.Status, status)
	}
	if donation.NgoID == "" {
		return nil, fmt.Errorf("%w: donation %s has no NGO assigned, schedule a pickup first", ErrPreconditionFailed, id)
	}

	donation.Status = status
	donation.UpdatedAt = s.now().UTC()
	if err := s.store.Donations.UpdateDonation(ctx, donation); err != nil {
		return nil, notFound(err, "donation", id)
	}
	metrics.DonationTransitions.WithLabelValues(string(status)).Inc()
	s.logger.Info().Str(logging.ID, id).Str("status", string(status)).Msg("donation status updated")
	return donation, nil
}

// checkNGO verifies that id names an existing NGO user
func (s *DonationService) checkNGO(ctx context.Context, id string) error {
	user, err := s.store.Users.GetUserByID(ctx, id)
	if err != nil {
		return notFound(err, "ngo", id)
	}
	if user.Role != models.RoleNGO {
		return fmt.Errorf("%w: user %s is not an NGO", ErrValidationFailed, id)
	}
	return nil
}
