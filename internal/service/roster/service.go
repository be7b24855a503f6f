package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/config"
	"github.com/minatoh/spa-desk/internal/model"
	"github.com/minatoh/spa-desk/internal/repository"
	apperrors "github.com/minatoh/spa-desk/pkg/errors"
	"github.com/minatoh/spa-desk/pkg/logger"
)

// Service manages the therapist roster: hiring, edits and status changes.
// Commission and rating edits are validated before any mutation; a rejected
// edit leaves the record untouched.
type Service struct {
	therapists repository.TherapistRepository
	catalog    repository.ServiceRepository
	logger     *logger.Logger
	cfg        config.FrontDeskConfig
}

func NewService(therapists repository.TherapistRepository, catalog repository.ServiceRepository, log *logger.Logger, cfg config.FrontDeskConfig) *Service {
	return &Service{therapists: therapists, catalog: catalog, logger: log, cfg: cfg}
}

func validateCommission(rate float64) error {
	if rate < 0 || rate > 100 {
		return apperrors.InvalidCommissionRate(rate)
	}
	return nil
}

func validateRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return apperrors.InvalidRating(rating)
	}
	return nil
}

func (s *Service) resolveServiceIDs(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, apperrors.BadRequest("at least one service capability is required", nil)
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, apperrors.BadRequest(fmt.Sprintf("invalid service id %q", value), err)
		}
		if _, err := s.catalog.Get(ctx, id); err != nil {
			if apperrors.CodeOf(err) == apperrors.ErrNotFound {
				return nil, apperrors.InvalidService(value)
			}
			return nil, fmt.Errorf("failed to look up service: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Service) CreateTherapist(ctx context.Context, req *model.CreateTherapistRequest) (*model.Therapist, error) {
	if err := validateCommission(req.CommissionRate); err != nil {
		return nil, err
	}
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	serviceIDs, err := s.resolveServiceIDs(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	therapist := &model.Therapist{
		Name:           req.Name,
		Gender:         model.Gender(req.Gender),
		Status:         model.TherapistStatusAvailable,
		CommissionRate: req.CommissionRate,
		Rating:         req.Rating,
		ServiceIDs:     serviceIDs,
	}
	if err := s.therapists.Create(ctx, therapist); err != nil {
		return nil, fmt.Errorf("failed to create therapist: %w", err)
	}

	s.logger.Info("therapist added", "therapist_id", therapist.ID.String(), "name", therapist.Name)
	return therapist, nil
}

func (s *Service) UpdateTherapist(ctx context.Context, id uuid.UUID, req *model.UpdateTherapistRequest) (*model.Therapist, error) {
	therapist, err := s.therapists.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}

	if req.CommissionRate != nil {
		if err := validateCommission(*req.CommissionRate); err != nil {
			return nil, err
		}
		therapist.CommissionRate = *req.CommissionRate
	}
	if req.Rating != nil {
		if err := validateRating(*req.Rating); err != nil {
			return nil, err
		}
		therapist.Rating = *req.Rating
	}
	if req.ServiceIDs != nil {
		serviceIDs, err := s.resolveServiceIDs(ctx, req.ServiceIDs)
		if err != nil {
			return nil, err
		}
		therapist.ServiceIDs = serviceIDs
	}
	if req.Name != nil {
		therapist.Name = *req.Name
	}
	if req.Gender != nil {
		therapist.Gender = model.Gender(*req.Gender)
	}

	if err := s.therapists.Update(ctx, therapist); err != nil {
		return nil, fmt.Errorf("failed to update therapist: %w", err)
	}
	return therapist, nil
}

// SetStatus transitions a therapist between statuses while holding the
// ServiceEndTime invariant: present iff busy or break.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, req *model.SetStatusRequest, now time.Time) (*model.Therapist, error) {
	therapist, err := s.therapists.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}

	status := model.TherapistStatus(req.Status)
	switch status {
	case model.TherapistStatusBusy, model.TherapistStatusBreak:
		if req.EndsInMinutes <= 0 {
			return nil, apperrors.BadRequest("ends_in_minutes is required for busy and break", nil)
		}
		end := now.Add(time.Duration(req.EndsInMinutes) * time.Minute)
		therapist.ServiceEndTime = &end
	default:
		therapist.ServiceEndTime = nil
		therapist.CurrentClientID = nil
		therapist.NextClientID = nil
	}
	therapist.Status = status

	if err := s.therapists.Update(ctx, therapist); err != nil {
		return nil, fmt.Errorf("failed to update therapist: %w", err)
	}
	return therapist, nil
}

// SetCommission is the management-only commission edit used by the priority
// view.
func (s *Service) SetCommission(ctx context.Context, id uuid.UUID, rate float64) (*model.Therapist, error) {
	if err := validateCommission(rate); err != nil {
		return nil, err
	}

	therapist, err := s.therapists.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}
	therapist.CommissionRate = rate

	if err := s.therapists.Update(ctx, therapist); err != nil {
		return nil, fmt.Errorf("failed to update therapist: %w", err)
	}
	s.logger.Info("commission rate updated", "therapist_id", id.String(), "rate", rate)
	return therapist, nil
}

func (s *Service) GetTherapist(ctx context.Context, id uuid.UUID) (*model.Therapist, error) {
	therapist, err := s.therapists.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}
	return therapist, nil
}

func (s *Service) ListTherapists(ctx context.Context) ([]*model.Therapist, error) {
	therapists, err := s.therapists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	return therapists, nil
}

func (s *Service) DeleteTherapist(ctx context.Context, id uuid.UUID) error {
	therapist, err := s.therapists.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get therapist: %w", err)
	}
	if therapist.Status == model.TherapistStatusBusy {
		return apperrors.BadRequest("cannot remove a therapist with a service in progress", nil)
	}
	if err := s.therapists.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete therapist: %w", err)
	}
	return nil
}
