package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/model"
)

// Store is the in-memory backing store used by a single front-desk session.
// All repositories returned by a Store share one lock; every read hands out
// copies so callers cannot mutate authoritative state behind the lock.
type Store struct {
	mu sync.RWMutex

	therapists     map[uuid.UUID]*model.Therapist
	therapistOrder []uuid.UUID

	clients     map[uuid.UUID]*model.Client
	clientOrder []uuid.UUID

	services     map[uuid.UUID]*model.Service
	serviceOrder []uuid.UUID
}

func NewStore() *Store {
	return &Store{
		therapists: make(map[uuid.UUID]*model.Therapist),
		clients:    make(map[uuid.UUID]*model.Client),
		services:   make(map[uuid.UUID]*model.Service),
	}
}

func (s *Store) Therapists() *TherapistRepository {
	return &TherapistRepository{store: s}
}

func (s *Store) Clients() *ClientRepository {
	return &ClientRepository{store: s}
}

func (s *Store) Services() *ServiceRepository {
	return &ServiceRepository{store: s}
}

func copyTherapist(t *model.Therapist) *model.Therapist {
	c := *t
	c.ServiceIDs = append([]uuid.UUID(nil), t.ServiceIDs...)
	if t.CurrentClientID != nil {
		id := *t.CurrentClientID
		c.CurrentClientID = &id
	}
	if t.NextClientID != nil {
		id := *t.NextClientID
		c.NextClientID = &id
	}
	if t.ServiceEndTime != nil {
		end := *t.ServiceEndTime
		c.ServiceEndTime = &end
	}
	if t.LastServedTime != nil {
		last := *t.LastServedTime
		c.LastServedTime = &last
	}
	return &c
}

func copyClient(cl *model.Client) *model.Client {
	c := *cl
	if cl.AssignedTherapist != nil {
		id := *cl.AssignedTherapist
		c.AssignedTherapist = &id
	}
	if cl.ScheduledTime != nil {
		t := *cl.ScheduledTime
		c.ScheduledTime = &t
	}
	if cl.StartedAt != nil {
		t := *cl.StartedAt
		c.StartedAt = &t
	}
	if cl.CompletedAt != nil {
		t := *cl.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func copyService(svc *model.Service) *model.Service {
	c := *svc
	return &c
}

func removeID(order []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, existing := range order {
		if existing == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
