package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/model"
	apperrors "github.com/minatoh/spa-desk/pkg/errors"
)

type ServiceRepository struct {
	store *Store
}

func (r *ServiceRepository) Create(_ context.Context, service *model.Service) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	service.CreatedAt = time.Now()
	service.UpdatedAt = service.CreatedAt

	r.store.services[service.ID] = copyService(service)
	r.store.serviceOrder = append(r.store.serviceOrder, service.ID)
	return nil
}

func (r *ServiceRepository) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	service, ok := r.store.services[id]
	if !ok {
		return nil, apperrors.NotFound("service", nil)
	}
	return copyService(service), nil
}

func (r *ServiceRepository) Update(_ context.Context, service *model.Service) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.services[service.ID]; !ok {
		return apperrors.NotFound("service", nil)
	}
	service.UpdatedAt = time.Now()
	r.store.services[service.ID] = copyService(service)
	return nil
}

func (r *ServiceRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.services[id]; !ok {
		return apperrors.NotFound("service", nil)
	}
	delete(r.store.services, id)
	r.store.serviceOrder = removeID(r.store.serviceOrder, id)
	return nil
}

func (r *ServiceRepository) List(_ context.Context) ([]*model.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	services := make([]*model.Service, 0, len(r.store.serviceOrder))
	for _, id := range r.store.serviceOrder {
		services = append(services, copyService(r.store.services[id]))
	}
	return services, nil
}
