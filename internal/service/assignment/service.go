package assignment

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
	"github.com/minatoh/spa-desk/pkg/messaging"
	"github.com/minatoh/spa-desk/pkg/metrics"
)

// Candidate pairs a ranked therapist with their start estimate.
type Candidate struct {
	Therapist *model.Therapist `json:"therapist"`
	Estimate  Estimate         `json:"estimate"`
}

// CandidateList is the ranked answer to "who should take this request".
// NoneAvailableNow means every candidate carries a delay; the list is still
// usable for a deliberate delayed assignment.
type CandidateList struct {
	Candidates       []Candidate `json:"candidates"`
	NoneAvailableNow bool        `json:"none_available_now"`
}

// Result is the structured outcome emitted to the UI sink on a confirmed
// assignment. The core never produces display strings.
type Result struct {
	TherapistID    uuid.UUID `json:"therapist_id"`
	ClientID       uuid.UUID `json:"client_id"`
	EstimatedStart time.Time `json:"estimated_start"`
	DelayMinutes   int       `json:"delay_minutes"`
}

// queueRemover is the slice of the queue service the assignment lifecycle
// needs: queue ordering stays owned by the queue package.
type queueRemover interface {
	Dequeue(ctx context.Context, clientID uuid.UUID, now time.Time) error
}

type Service struct {
	therapists repository.TherapistRepository
	clients    repository.ClientRepository
	catalog    repository.ServiceRepository
	queue      queueRemover
	publisher  messaging.Publisher
	metrics    *metrics.Metrics
	logger     *logger.Logger
	cfg        config.FrontDeskConfig
}

func NewService(
	therapists repository.TherapistRepository,
	clients repository.ClientRepository,
	catalog repository.ServiceRepository,
	queue queueRemover,
	publisher messaging.Publisher,
	m *metrics.Metrics,
	log *logger.Logger,
	cfg config.FrontDeskConfig,
) *Service {
	return &Service{
		therapists: therapists,
		clients:    clients,
		catalog:    catalog,
		queue:      queue,
		publisher:  publisher,
		metrics:    m,
		logger:     log,
		cfg:        cfg,
	}
}

func (s *Service) escortBuffer() time.Duration {
	return time.Duration(s.cfg.EscortBufferMinutes) * time.Minute
}

// Candidates validates the service, filters the roster and returns the ranked
// candidate list with start estimates attached. Read-only.
func (s *Service) Candidates(ctx context.Context, serviceID uuid.UUID, pref model.GenderPreference, now time.Time) (*CandidateList, error) {
	if serviceID != uuid.Nil {
		if _, err := s.catalog.Get(ctx, serviceID); err != nil {
			if apperrors.CodeOf(err) == apperrors.ErrNotFound {
				return nil, apperrors.InvalidService(serviceID.String())
			}
			return nil, fmt.Errorf("failed to look up service: %w", err)
		}
	}

	roster, err := s.therapists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}

	eligible := QualifiedEver(roster, serviceID, pref)

	// A therapist already holding a delayed assignment cannot take another.
	open := make([]*model.Therapist, 0, len(eligible))
	for _, t := range eligible {
		if t.NextClientID == nil {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return nil, apperrors.NoEligibleTherapist()
	}

	list := &CandidateList{NoneAvailableNow: true}
	for _, t := range Rank(open, SortAuto) {
		estimate := s.estimate(t, now)
		if estimate.DelayMinutes == 0 && !estimate.Unavailable {
			list.NoneAvailableNow = false
		}
		list.Candidates = append(list.Candidates, Candidate{Therapist: t, Estimate: estimate})
	}
	return list, nil
}

func (s *Service) estimate(t *model.Therapist, now time.Time) Estimate {
	estimate := EstimateStart(t, now, s.escortBuffer())
	if estimate.Inconsistent {
		s.logger.Warn("therapist occupied without service end time, treating as available",
			"therapist_id", t.ID.String(), "status", string(t.Status))
	}
	return estimate
}

// Assign confirms an operator-chosen therapist for a waiting client. The
// client leaves the queue and both records are mutated; on any validation
// failure nothing changes.
func (s *Service) Assign(ctx context.Context, clientID, therapistID uuid.UUID, now time.Time) (*Result, error) {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client.Status != model.ClientStatusWaiting {
		return nil, apperrors.BadRequest(fmt.Sprintf("client is %s, not waiting", client.Status), nil)
	}

	therapist, err := s.therapists.Get(ctx, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}
	if therapist.Status == model.TherapistStatusOffline {
		s.metrics.AssignmentFailures.WithLabelValues("offline").Inc()
		return nil, apperrors.BadRequest("therapist is offline", nil)
	}
	if !therapist.CanPerform(client.Service.ID) {
		s.metrics.AssignmentFailures.WithLabelValues("not_qualified").Inc()
		return nil, apperrors.BadRequest("therapist is not qualified for the requested service", nil)
	}
	if !therapist.MatchesPreference(client.PreferredGender) {
		s.metrics.AssignmentFailures.WithLabelValues("preference").Inc()
		return nil, apperrors.BadRequest("therapist does not match the client's gender preference", nil)
	}
	if therapist.NextClientID != nil {
		s.metrics.AssignmentFailures.WithLabelValues("delayed_pending").Inc()
		return nil, apperrors.BadRequest("therapist already has a delayed assignment pending", nil)
	}

	estimate := s.estimate(therapist, now)

	start := estimate.Start
	end := start.Add(time.Duration(client.Service.Duration) * time.Minute)

	if therapist.CurrentClientID != nil {
		// Delayed assignment: the client in service keeps the therapist's
		// current window, the new client queues in the pending slot until
		// Complete promotes it.
		therapist.NextClientID = &client.ID
	} else {
		therapist.Status = model.TherapistStatusBusy
		therapist.CurrentClientID = &client.ID
		therapist.ServiceEndTime = &end
	}

	client.Status = model.ClientStatusInService
	client.AssignedTherapist = &therapist.ID
	client.StartedAt = &start

	if err := s.therapists.Update(ctx, therapist); err != nil {
		return nil, fmt.Errorf("failed to update therapist: %w", err)
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	if err := s.queue.Dequeue(ctx, client.ID, now); err != nil {
		return nil, fmt.Errorf("failed to remove client from queue: %w", err)
	}

	result := &Result{
		TherapistID:    therapist.ID,
		ClientID:       client.ID,
		EstimatedStart: start,
		DelayMinutes:   estimate.DelayMinutes,
	}

	s.metrics.AssignmentsTotal.WithLabelValues(string(client.Type)).Inc()
	s.metrics.AssignmentDelay.Observe(float64(estimate.DelayMinutes))
	s.publisher.Publish(ctx, messaging.EventAssignmentCreated, result)

	return result, nil
}

// AutoAssign picks the top immediately-available candidate for a waiting
// client and confirms it.
func (s *Service) AutoAssign(ctx context.Context, clientID uuid.UUID, now time.Time) (*Result, error) {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client.Status != model.ClientStatusWaiting {
		return nil, apperrors.BadRequest(fmt.Sprintf("client is %s, not waiting", client.Status), nil)
	}

	list, err := s.Candidates(ctx, client.Service.ID, client.PreferredGender, now)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			s.metrics.AssignmentFailures.WithLabelValues(failureReason(appErr.Code)).Inc()
		}
		return nil, err
	}
	if list.NoneAvailableNow {
		s.metrics.AssignmentFailures.WithLabelValues("none_available").Inc()
		return nil, apperrors.NoneAvailableNow()
	}

	return s.Assign(ctx, clientID, list.Candidates[0].Therapist.ID, now)
}

// Complete finishes the service of the client the therapist is actually
// serving and advances the day counters. A pending delayed assignment is
// promoted into the freed slot; otherwise the therapist becomes available.
func (s *Service) Complete(ctx context.Context, therapistID uuid.UUID, now time.Time) error {
	therapist, err := s.therapists.Get(ctx, therapistID)
	if err != nil {
		return fmt.Errorf("failed to get therapist: %w", err)
	}
	if therapist.Status != model.TherapistStatusBusy || therapist.CurrentClientID == nil {
		return apperrors.BadRequest("therapist has no service in progress", nil)
	}

	client, err := s.clients.Get(ctx, *therapist.CurrentClientID)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	client.Status = model.ClientStatusCompleted
	client.CompletedAt = &now

	// Payout is the therapist's rate applied to the snapshotted price.
	commission := client.Service.Price * therapist.CommissionRate / 100

	therapist.LastServedTime = &now
	therapist.TodayServes++
	therapist.TotalServes++
	therapist.TodayCommission += commission

	if err := s.clients.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	if therapist.NextClientID != nil {
		next, err := s.clients.Get(ctx, *therapist.NextClientID)
		if err != nil {
			return fmt.Errorf("failed to get delayed-assignment client: %w", err)
		}
		// The handover re-anchors the window on the actual completion time,
		// not on the estimate made when the delayed assignment was confirmed.
		start := now.Add(s.escortBuffer())
		end := start.Add(time.Duration(next.Service.Duration) * time.Minute)
		next.StartedAt = &start
		if err := s.clients.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to update delayed-assignment client: %w", err)
		}
		therapist.CurrentClientID = &next.ID
		therapist.NextClientID = nil
		therapist.ServiceEndTime = &end
	} else {
		therapist.Status = model.TherapistStatusAvailable
		therapist.CurrentClientID = nil
		therapist.ServiceEndTime = nil
	}

	if err := s.therapists.Update(ctx, therapist); err != nil {
		return fmt.Errorf("failed to update therapist: %w", err)
	}

	s.metrics.ServesComplete.Inc()
	s.publisher.Publish(ctx, messaging.EventAssignmentCompleted, map[string]interface{}{
		"therapist_id": therapist.ID,
		"client_id":    client.ID,
		"commission":   commission,
	})
	return nil
}

// NoShow abandons a waiting client. No therapist state is touched.
func (s *Service) NoShow(ctx context.Context, clientID uuid.UUID, now time.Time) error {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}
	if client.Status != model.ClientStatusWaiting {
		return apperrors.BadRequest(fmt.Sprintf("client is %s, not waiting", client.Status), nil)
	}

	client.Status = model.ClientStatusNoShow
	if err := s.clients.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if err := s.queue.Dequeue(ctx, client.ID, now); err != nil {
		return fmt.Errorf("failed to remove client from queue: %w", err)
	}

	s.publisher.Publish(ctx, messaging.EventClientNoShow, map[string]interface{}{
		"client_id": client.ID,
	})
	return nil
}

func failureReason(code apperrors.ErrorCode) string {
	switch code {
	case apperrors.ErrInvalidService:
		return "invalid_service"
	case apperrors.ErrNoEligibleTherapist:
		return "no_eligible"
	case apperrors.ErrNoneAvailableNow:
		return "none_available"
	}
	return "other"
}
