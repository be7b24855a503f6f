package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/model"
	apperrors "github.com/minatoh/spa-desk/pkg/errors"
)

type TherapistRepository struct {
	store *Store
}

func (r *TherapistRepository) Create(_ context.Context, therapist *model.Therapist) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if therapist.ID == uuid.Nil {
		therapist.ID = uuid.New()
	}
	therapist.CreatedAt = time.Now()
	therapist.UpdatedAt = therapist.CreatedAt

	r.store.therapists[therapist.ID] = copyTherapist(therapist)
	r.store.therapistOrder = append(r.store.therapistOrder, therapist.ID)
	return nil
}

func (r *TherapistRepository) Get(_ context.Context, id uuid.UUID) (*model.Therapist, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	therapist, ok := r.store.therapists[id]
	if !ok {
		return nil, apperrors.NotFound("therapist", nil)
	}
	return copyTherapist(therapist), nil
}

func (r *TherapistRepository) Update(_ context.Context, therapist *model.Therapist) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.therapists[therapist.ID]; !ok {
		return apperrors.NotFound("therapist", nil)
	}
	therapist.UpdatedAt = time.Now()
	r.store.therapists[therapist.ID] = copyTherapist(therapist)
	return nil
}

func (r *TherapistRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.therapists[id]; !ok {
		return apperrors.NotFound("therapist", nil)
	}
	delete(r.store.therapists, id)
	r.store.therapistOrder = removeID(r.store.therapistOrder, id)
	return nil
}

func (r *TherapistRepository) List(_ context.Context) ([]*model.Therapist, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	therapists := make([]*model.Therapist, 0, len(r.store.therapistOrder))
	for _, id := range r.store.therapistOrder {
		therapists = append(therapists, copyTherapist(r.store.therapists[id]))
	}
	return therapists, nil
}
