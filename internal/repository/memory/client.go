package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/model"
	apperrors "github.com/minatoh/spa-desk/pkg/errors"
)

type ClientRepository struct {
	store *Store
}

func (r *ClientRepository) Create(_ context.Context, client *model.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	r.store.clients[client.ID] = copyClient(client)
	r.store.clientOrder = append(r.store.clientOrder, client.ID)
	return nil
}

func (r *ClientRepository) Get(_ context.Context, id uuid.UUID) (*model.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	client, ok := r.store.clients[id]
	if !ok {
		return nil, apperrors.NotFound("client", nil)
	}
	return copyClient(client), nil
}

func (r *ClientRepository) Update(_ context.Context, client *model.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.clients[client.ID]; !ok {
		return apperrors.NotFound("client", nil)
	}
	client.UpdatedAt = time.Now()
	r.store.clients[client.ID] = copyClient(client)
	return nil
}

func (r *ClientRepository) ListWaiting(_ context.Context) ([]*model.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var waiting []*model.Client
	for _, id := range r.store.clientOrder {
		if client := r.store.clients[id]; client.Status == model.ClientStatusWaiting {
			waiting = append(waiting, copyClient(client))
		}
	}
	sort.SliceStable(waiting, func(i, j int) bool {
		return waiting[i].Priority < waiting[j].Priority
	})
	return waiting, nil
}

func (r *ClientRepository) ListCompletedBetween(_ context.Context, from, to time.Time) ([]*model.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var completed []*model.Client
	for _, id := range r.store.clientOrder {
		client := r.store.clients[id]
		if client.Status != model.ClientStatusCompleted || client.CompletedAt == nil {
			continue
		}
		if client.CompletedAt.Before(from) || !client.CompletedAt.Before(to) {
			continue
		}
		completed = append(completed, copyClient(client))
	}
	return completed, nil
}

func (r *ClientRepository) UpdatePriorities(_ context.Context, priorities map[uuid.UUID]int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id := range priorities {
		if _, ok := r.store.clients[id]; !ok {
			return apperrors.NotFound("client", nil)
		}
	}
	now := time.Now()
	for id, priority := range priorities {
		client := r.store.clients[id]
		client.Priority = priority
		client.UpdatedAt = now
	}
	return nil
}
