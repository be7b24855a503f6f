package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/model"
	"github.com/minatoh/spa-desk/internal/repository"
)

// Service manages the service catalog. Live assignments hold snapshots, so
// edits here only affect future intakes.
type Service struct {
	services repository.ServiceRepository
}

func NewService(services repository.ServiceRepository) *Service {
	return &Service{services: services}
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	service := &model.Service{
		Name:       req.Name,
		Category:   model.ServiceCategory(req.Category),
		Duration:   req.Duration,
		Price:      req.Price,
		Commission: req.Commission,
	}
	if err := s.services.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	service, err := s.services.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Category != nil {
		service.Category = model.ServiceCategory(*req.Category)
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Commission != nil {
		service.Commission = *req.Commission
	}

	if err := s.services.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	service, err := s.services.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}
