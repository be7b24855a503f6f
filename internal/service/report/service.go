package report

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/minatoh/spa-desk/internal/model"
	"github.com/minatoh/spa-desk/internal/repository"
)

// Service derives daily reports from completed assignments. Nothing is
// stored; a short-lived cache keeps repeated dashboard polls cheap.
type Service struct {
	clients    repository.ClientRepository
	therapists repository.TherapistRepository
	cache      *gocache.Cache
}

func NewService(clients repository.ClientRepository, therapists repository.TherapistRepository) *Service {
	return &Service{
		clients:    clients,
		therapists: therapists,
		cache:      gocache.New(30*time.Second, time.Minute),
	}
}

// Daily aggregates the business day containing the given time. Revenue is
// the sum of snapshotted service prices; commission is the therapist's rate
// applied to each snapshotted price.
func (s *Service) Daily(ctx context.Context, day time.Time) (*model.DailyReport, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	cacheKey := fmt.Sprintf("daily:%s", dayStart.Format("2006-01-02"))
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*model.DailyReport), nil
	}

	completed, err := s.clients.ListCompletedBetween(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to list completed clients: %w", err)
	}
	roster, err := s.therapists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}

	byTherapist := make(map[string]*model.TherapistReport)
	report := &model.DailyReport{Date: dayStart}

	for _, therapist := range roster {
		byTherapist[therapist.ID.String()] = &model.TherapistReport{
			TherapistID:   therapist.ID,
			TherapistName: therapist.Name,
			Rating:        therapist.Rating,
		}
	}

	rates := make(map[string]float64, len(roster))
	for _, therapist := range roster {
		rates[therapist.ID.String()] = therapist.CommissionRate
	}

	for _, client := range completed {
		report.TotalClients++
		report.TotalRevenue += client.Service.Price

		if client.AssignedTherapist == nil {
			continue
		}
		key := client.AssignedTherapist.String()
		entry, ok := byTherapist[key]
		if !ok {
			// Therapist removed after serving; still counts toward totals.
			entry = &model.TherapistReport{TherapistID: *client.AssignedTherapist}
			byTherapist[key] = entry
		}
		commission := client.Service.Price * rates[key] / 100
		entry.Serves++
		entry.Revenue += client.Service.Price
		entry.Commission += commission
		report.TotalCommissions += commission
	}

	for _, therapist := range roster {
		report.TherapistReports = append(report.TherapistReports, *byTherapist[therapist.ID.String()])
	}

	s.cache.Set(cacheKey, report, gocache.DefaultExpiration)
	return report, nil
}

// Summary is the dashboard status breakdown, always computed fresh.
func (s *Service) Summary(ctx context.Context) (*model.StatusSummary, error) {
	roster, err := s.therapists.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	waiting, err := s.clients.ListWaiting(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting clients: %w", err)
	}

	summary := &model.StatusSummary{Waiting: len(waiting)}
	for _, therapist := range roster {
		switch therapist.Status {
		case model.TherapistStatusAvailable:
			summary.Available++
		case model.TherapistStatusBusy:
			summary.Busy++
		case model.TherapistStatusBreak:
			summary.OnBreak++
		case model.TherapistStatusOffline:
			summary.Offline++
		}
	}
	return summary, nil
}
