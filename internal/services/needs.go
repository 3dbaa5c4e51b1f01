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

// NeedService manages NGO requests and notifies donors whose pending donations match them
type NeedService struct {
	store    *repositories.Store
	notifier *Notifier
	logger   zerolog.Logger
	now      func() time.Time

	match func(*models.Need, []models.Donation) []matcher.Intent
}

// NewNeedService creates a NeedService
func NewNeedService(store *repositories.Store, notifier *Notifier, logger zerolog.Logger) *NeedService {
	return &NeedService{
		store:    store,
		notifier: notifier,
		logger:   logging.Component(logger, "needs"),
		now:      time.Now,
		match:    matcher.RequestCreated,
	}
}

// Create stores a new active need with nothing collected yet, then notifies
// donors with matching pending donations. Matching failures never fail the create.
func (s *NeedService) Create(ctx context.Context, req models.CreateNeedRequest) (*models.Need, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	ngo, err := s.store.Users.GetUserByID(ctx, req.NgoID)
	if err != nil {
		return nil, notFound(err, "ngo", req.NgoID)
	}
	if ngo.Role != models.RoleNGO {
		return nil, fmt.Errorf("%w: user %s is not an NGO", ErrValidationFailed, req.NgoID)
	}

	now := s.now().UTC()
	need := &models.Need{
		NgoID:           req.NgoID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Priority:        req.Priority,
		Urgency:         req.Urgency,
		TargetQuantity:  req.TargetQuantity,
		CurrentQuantity: 0,
		Status:          models.NeedActive,
		Deadline:        req.Deadline,
		Location:        req.Location,
		ContactInfo:     req.ContactInfo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if need.Priority == "" {
		need.Priority = models.PriorityMedium
	}
	if need.Urgency == "" {
		need.Urgency = models.UrgencyNormal
	}
	if err := s.store.Needs.CreateNeed(ctx, need); err != nil {
		return nil, err
	}
	s.logger.Info().Str(logging.ID, need.ID).Str("ngo", need.NgoID).Msg("need created")

	s.notifyMatches(ctx, need)
	return need, nil
}

func (s *NeedService) notifyMatches(ctx context.Context, need *models.Need) {
	defer func() {
		if r := recover(); r != nil {
			metrics.MatcherFailures.WithLabelValues("request").Inc()
			s.logger.Error().Interface("panic", r).Str(logging.ID, need.ID).Msg("request matching aborted")
		}
	}()

	donations, err := s.store.Donations.GetDonations(ctx, models.DonationFilter{Status: models.DonationPending})
	if err != nil {
		metrics.MatcherFailures.WithLabelValues("request").Inc()
		s.logger.Error().Err(err).Str(logging.ID, need.ID).Msg("loading pending donations for matching")
		return
	}

	intents := s.match(need, donations)
	for _, intent := range intents {
		metrics.MatcherIntents.WithLabelValues(string(intent.Type)).Inc()
	}
	s.notifier.Dispatch(ctx, intents)
}

// Get returns a need by ID
func (s *NeedService) Get(ctx context.Context, id string) (*models.Need, error) {
	need, err := s.store.Needs.GetNeedByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "request", id)
	}
	return need, nil
}

// List returns needs matching the filter, newest first
func (s *NeedService) List(ctx context.Context, filter models.NeedFilter) ([]models.Need, error) {
	return s.store.Needs.GetNeeds(ctx, filter)
}

// Update merges the patch into the need. currentQuantity may never exceed targetQuantity.
func (s *NeedService) Update(ctx context.Context, id string, patch models.UpdateNeedRequest) (*models.Need, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	need, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		need.Title = *patch.Title
	}
	if patch.Description != nil {
		need.Description = *patch.Description
	}
	if patch.Category != nil {
		need.Category = *patch.Category
	}
	if patch.Priority != nil {
		need.Priority = *patch.Priority
	}
	if patch.Urgency != nil {
		need.Urgency = *patch.Urgency
	}
	if patch.TargetQuantity != nil {
		need.TargetQuantity = *patch.TargetQuantity
	}
	if patch.CurrentQuantity != nil {
		need.CurrentQuantity = *patch.CurrentQuantity
	}
	if patch.Status != nil {
		need.Status = *patch.Status
	}
	if patch.Deadline != nil {
		need.Deadline = patch.Deadline
	}
	if patch.Location != nil {
		need.Location = *patch.Location
	}
	if patch.ContactInfo != nil {
		need.ContactInfo = *patch.ContactInfo
	}
	if need.CurrentQuantity > need.TargetQuantity {
		return nil, fmt.Errorf("%w: currentQuantity %d exceeds targetQuantity %d",
			ErrValidationFailed, need.CurrentQuantity, need.TargetQuantity)
	}
	need.UpdatedAt = s.now().UTC()

	if err := s.store.Needs.UpdateNeed(ctx, need); err != nil {
		return nil, notFound(err, "request", id)
	}
	return need, nil
}

// Accept records a donor's pledge by notifying the NGO that owns the need
func (s *NeedService) Accept(ctx context.Context, id string, req models.AcceptNeedRequest) (*models.Notification, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	need, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	donor, err := s.store.Users.GetUserByID(ctx, req.DonorID)
	if err != nil {
		return nil, notFound(err, "donor", req.DonorID)
	}
	if donor.Role != models.RoleDonor {
		return nil, fmt.Errorf("%w: user %s is not a donor", ErrValidationFailed, req.DonorID)
	}
	if need.Status != models.NeedActive {
		return nil, fmt.Errorf("%w: request %s is %s", ErrPreconditionFailed, id, need.Status)
	}
	return s.notifier.Notify(ctx, matcher.Accepted(need, donor.ID))
}
