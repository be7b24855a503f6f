package queue

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

// Service owns the waiting list. Nothing else may assign or renumber
// priorities; positions among waiting clients are always contiguous from 1.
type Service struct {
	clients   repository.ClientRepository
	catalog   repository.ServiceRepository
	publisher messaging.Publisher
	metrics   *metrics.Metrics
	logger    *logger.Logger
	cfg       config.FrontDeskConfig
}

func NewService(
	clients repository.ClientRepository,
	catalog repository.ServiceRepository,
	publisher messaging.Publisher,
	m *metrics.Metrics,
	log *logger.Logger,
	cfg config.FrontDeskConfig,
) *Service {
	return &Service{
		clients:   clients,
		catalog:   catalog,
		publisher: publisher,
		metrics:   m,
		logger:    log,
		cfg:       cfg,
	}
}

func (s *Service) lateThreshold() time.Duration {
	return time.Duration(s.cfg.LateThresholdMinutes) * time.Minute
}

// IsLate reports whether a booked client has overshot the late threshold.
// Walk-ins have no scheduled time and are never late.
func IsLate(client *model.Client, now time.Time, threshold time.Duration) bool {
	return client.ScheduledTime != nil && now.Sub(*client.ScheduledTime) > threshold
}

// WaitTime is the whole minutes a client has been waiting, derived on read.
func WaitTime(client *model.Client, now time.Time) int {
	minutes := int(now.Sub(client.WaitingSince) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// CheckIn creates a walk-in or booking client and appends it to the queue.
// A full queue rejects the check-in outright.
func (s *Service) CheckIn(ctx context.Context, req *model.CheckInRequest, now time.Time) (*model.Client, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid service id", err)
	}

	service, err := s.catalog.Get(ctx, serviceID)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrNotFound {
			return nil, apperrors.InvalidService(req.ServiceID)
		}
		return nil, fmt.Errorf("failed to look up service: %w", err)
	}

	waiting, err := s.clients.ListWaiting(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting clients: %w", err)
	}
	if len(waiting) >= s.cfg.MaxQueueSize {
		s.metrics.QueueRejected.Inc()
		return nil, apperrors.QueueFull(s.cfg.MaxQueueSize)
	}

	intakeType := model.IntakeWalkIn
	if req.ScheduledTime != nil {
		intakeType = model.IntakeBooking
	}
	pref := model.GenderPreference(req.PreferredGender)
	if pref == "" {
		pref = model.PreferAny
	}

	client := &model.Client{
		Name:            req.Name,
		Phone:           req.Phone,
		Gender:          model.Gender(req.Gender),
		PreferredGender: pref,
		Service:         *service, // snapshot; catalog edits only affect future intakes
		Status:          model.ClientStatusWaiting,
		Type:            intakeType,
		WaitingSince:    now,
		ScheduledTime:   req.ScheduledTime,
		Priority:        len(waiting) + 1,
		Notes:           req.Notes,
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if s.cfg.AutoPromoteLate {
		reordered, err := s.promoteLate(ctx, append(waiting, client), now)
		if err != nil {
			return nil, err
		}
		for i, c := range reordered {
			if c.ID == client.ID {
				client.Priority = i + 1
				break
			}
		}
	}

	s.metrics.QueueSize.Set(float64(len(waiting) + 1))
	s.publisher.Publish(ctx, messaging.EventClientCheckedIn, map[string]interface{}{
		"client_id": client.ID,
		"type":      client.Type,
		"position":  client.Priority,
	})
	return client, nil
}

// Entries returns the queue projection: contiguous positions, derived wait
// times and lateness. Read-only; the stored order is never touched, so the
// UI can poll it freely.
func (s *Service) Entries(ctx context.Context, now time.Time) ([]model.QueueEntry, error) {
	waiting, err := s.clients.ListWaiting(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting clients: %w", err)
	}

	entries := make([]model.QueueEntry, 0, len(waiting))
	for i, client := range waiting {
		entries = append(entries, model.QueueEntry{
			ClientID: client.ID,
			Client:   client,
			Position: i + 1,
			WaitTime: WaitTime(client, now),
			IsLate:   IsLate(client, now, s.lateThreshold()),
		})
	}
	s.metrics.QueueSize.Set(float64(len(entries)))
	return entries, nil
}

// PromoteLate moves late bookings ahead of everyone else and persists the new
// order, then returns the resulting queue. It is the explicit counterpart of
// the promotion that runs on check-in when auto-promotion is enabled.
func (s *Service) PromoteLate(ctx context.Context, now time.Time) ([]model.QueueEntry, error) {
	waiting, err := s.clients.ListWaiting(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting clients: %w", err)
	}
	if _, err := s.promoteLate(ctx, waiting, now); err != nil {
		return nil, err
	}
	return s.Entries(ctx, now)
}

// promoteLate stable-partitions the waiting list with late clients first and
// persists the renumbering only when the order actually changed.
func (s *Service) promoteLate(ctx context.Context, waiting []*model.Client, now time.Time) ([]*model.Client, error) {
	var late, onTime []*model.Client
	for _, client := range waiting {
		if IsLate(client, now, s.lateThreshold()) {
			late = append(late, client)
		} else {
			onTime = append(onTime, client)
		}
	}
	if len(late) == 0 {
		return waiting, nil
	}

	reordered := append(late, onTime...)
	changed := false
	for i, client := range reordered {
		if client.ID != waiting[i].ID {
			changed = true
			break
		}
	}
	if !changed {
		return waiting, nil
	}

	if err := s.renumber(ctx, reordered); err != nil {
		return nil, err
	}
	s.metrics.QueuePromoted.Inc()
	s.publisher.Publish(ctx, messaging.EventQueuePromoted, map[string]interface{}{
		"late_clients": len(late),
	})
	return reordered, nil
}

// Reorder moves a waiting client to a new 1-based position and renumbers the
// whole queue in one atomic step.
func (s *Service) Reorder(ctx context.Context, clientID uuid.UUID, newPosition int) error {
	waiting, err := s.clients.ListWaiting(ctx)
	if err != nil {
		return fmt.Errorf("failed to list waiting clients: %w", err)
	}

	idx := -1
	for i, client := range waiting {
		if client.ID == clientID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperrors.NotFound("queue entry", nil)
	}

	if newPosition < 1 {
		newPosition = 1
	}
	if newPosition > len(waiting) {
		newPosition = len(waiting)
	}

	moved := waiting[idx]
	rest := append(append([]*model.Client(nil), waiting[:idx]...), waiting[idx+1:]...)
	reordered := make([]*model.Client, 0, len(waiting))
	reordered = append(reordered, rest[:newPosition-1]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[newPosition-1:]...)

	if err := s.renumber(ctx, reordered); err != nil {
		return err
	}
	s.publisher.Publish(ctx, messaging.EventQueueReordered, map[string]interface{}{
		"client_id": clientID,
		"position":  newPosition,
	})
	return nil
}

// Dequeue removes a client from the queue (assignment, no-show or cancel)
// and closes the gap. Callers change the client's status out of waiting
// first; an unknown client is an error.
func (s *Service) Dequeue(ctx context.Context, clientID uuid.UUID, now time.Time) error {
	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	waiting, err := s.clients.ListWaiting(ctx)
	if err != nil {
		return fmt.Errorf("failed to list waiting clients: %w", err)
	}

	remaining := make([]*model.Client, 0, len(waiting))
	for _, c := range waiting {
		if c.ID != clientID {
			remaining = append(remaining, c)
		}
	}

	if err := s.renumber(ctx, remaining); err != nil {
		return err
	}
	s.metrics.QueueSize.Set(float64(len(remaining)))
	s.metrics.QueueWaitTime.Observe(float64(WaitTime(client, now)))
	return nil
}

func (s *Service) renumber(ctx context.Context, ordered []*model.Client) error {
	priorities := make(map[uuid.UUID]int, len(ordered))
	for i, client := range ordered {
		priorities[client.ID] = i + 1
	}
	if len(priorities) == 0 {
		return nil
	}
	if err := s.clients.UpdatePriorities(ctx, priorities); err != nil {
		return fmt.Errorf("failed to renumber queue: %w", err)
	}
	return nil
}
