package assignment

import (
	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/model"
)

// QualifiedEver returns the therapists who could ever serve the request:
// qualified for the service (uuid.Nil means any service), matching the gender
// preference, and not offline. The input order is preserved and the input
// slice is never mutated.
func QualifiedEver(therapists []*model.Therapist, serviceID uuid.UUID, pref model.GenderPreference) []*model.Therapist {
	var eligible []*model.Therapist
	for _, t := range therapists {
		if t.Status == model.TherapistStatusOffline {
			continue
		}
		if serviceID != uuid.Nil && !t.CanPerform(serviceID) {
			continue
		}
		if !t.MatchesPreference(pref) {
			continue
		}
		eligible = append(eligible, t)
	}
	return eligible
}

// AssignableNow narrows QualifiedEver to therapists who can start
// immediately. The two predicates are deliberately separate; callers must
// not substitute one for the other.
func AssignableNow(therapists []*model.Therapist, serviceID uuid.UUID, pref model.GenderPreference) []*model.Therapist {
	var assignable []*model.Therapist
	for _, t := range QualifiedEver(therapists, serviceID, pref) {
		if t.Status == model.TherapistStatusAvailable {
			assignable = append(assignable, t)
		}
	}
	return assignable
}
