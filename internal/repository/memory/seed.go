package memory

import (
	"context"
	"fmt"

	"github.com/minatoh/spa-desk/internal/model"
)

type seedService struct {
	name       string
	category   model.ServiceCategory
	duration   int
	price      float64
	commission float64
}

type seedTherapist struct {
	name       string
	gender     model.Gender
	commission float64
	rating     float64
	services   []int // indexes into the seed catalog
}

var seedCatalog = []seedService{
	{"Swedish Massage", model.ServiceCategoryMassage, 60, 80, 40},
	{"Deep Tissue Massage", model.ServiceCategoryMassage, 90, 120, 45},
	{"Hot Stone Massage", model.ServiceCategoryMassage, 75, 100, 42},
	{"Thai Massage", model.ServiceCategoryMassage, 60, 85, 40},
	{"Aromatherapy Massage", model.ServiceCategoryMassage, 60, 90, 43},
	{"Facial Treatment", model.ServiceCategoryFacial, 45, 75, 38},
	{"Body Scrub", model.ServiceCategoryBodyTreatment, 30, 50, 35},
	{"Couples Massage", model.ServiceCategoryMassage, 90, 180, 50},
}

var seedRoster = []seedTherapist{
	{"Sarah Chen", model.GenderFemale, 45, 4.9, []int{0, 1, 2, 3, 4}},
	{"Michael Ross", model.GenderMale, 42, 4.7, []int{0, 1, 3, 7}},
	{"Lily Wang", model.GenderFemale, 43, 4.8, []int{5, 6}},
	{"James Park", model.GenderMale, 40, 4.6, []int{0, 3, 4}},
	{"Emma Thompson", model.GenderFemale, 44, 4.9, []int{0, 2, 4, 5, 6}},
	{"David Kim", model.GenderMale, 41, 4.5, []int{0, 1, 7}},
}

// Seed loads a small default catalog and roster for demo installs.
func Seed(ctx context.Context, store *Store) error {
	services := store.Services()
	catalog := make([]*model.Service, 0, len(seedCatalog))
	for _, s := range seedCatalog {
		service := &model.Service{
			Name:       s.name,
			Category:   s.category,
			Duration:   s.duration,
			Price:      s.price,
			Commission: s.commission,
		}
		if err := services.Create(ctx, service); err != nil {
			return fmt.Errorf("failed to seed service %s: %w", s.name, err)
		}
		catalog = append(catalog, service)
	}

	therapists := store.Therapists()
	for _, t := range seedRoster {
		therapist := &model.Therapist{
			Name:           t.name,
			Gender:         t.gender,
			Status:         model.TherapistStatusAvailable,
			CommissionRate: t.commission,
			Rating:         t.rating,
		}
		for _, idx := range t.services {
			therapist.ServiceIDs = append(therapist.ServiceIDs, catalog[idx].ID)
		}
		if err := therapists.Create(ctx, therapist); err != nil {
			return fmt.Errorf("failed to seed therapist %s: %w", t.name, err)
		}
	}
	return nil
}
