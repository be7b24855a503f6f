package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/model"
)

type (
	TherapistRepository interface {
		Create(ctx context.Context, therapist *model.Therapist) error
		Get(ctx context.Context, id uuid.UUID) (*model.Therapist, error)
		Update(ctx context.Context, therapist *model.Therapist) error
		Delete(ctx context.Context, id uuid.UUID) error
		// List returns every therapist in creation order.
		List(ctx context.Context) ([]*model.Therapist, error)
	}

	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
		Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
		Update(ctx context.Context, client *model.Client) error
		// ListWaiting returns waiting clients in ascending priority order.
		ListWaiting(ctx context.Context) ([]*model.Client, error)
		// ListCompletedBetween returns clients completed in [from, to).
		ListCompletedBetween(ctx context.Context, from, to time.Time) ([]*model.Client, error)
		// UpdatePriorities renumbers waiting clients in one atomic step; no
		// observer may see a partial renumbering.
		UpdatePriorities(ctx context.Context, priorities map[uuid.UUID]int) error
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Service, error)
	}
)
