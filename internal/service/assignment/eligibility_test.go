package assignment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/minatoh/spa-desk/internal/model"
)

func newTherapist(name string, gender model.Gender, status model.TherapistStatus, services ...uuid.UUID) *model.Therapist {
	t := &model.Therapist{
		Name:       name,
		Gender:     gender,
		Status:     status,
		ServiceIDs: services,
	}
	t.ID = uuid.New()
	return t
}

func TestQualifiedEver(t *testing.T) {
	massage := uuid.New()
	facial := uuid.New()

	available := newTherapist("Ava", model.GenderFemale, model.TherapistStatusAvailable, massage)
	busy := newTherapist("Ben", model.GenderMale, model.TherapistStatusBusy, massage, facial)
	onBreak := newTherapist("Cleo", model.GenderFemale, model.TherapistStatusBreak, massage)
	offline := newTherapist("Dan", model.GenderMale, model.TherapistStatusOffline, massage)
	unqualified := newTherapist("Eve", model.GenderFemale, model.TherapistStatusAvailable, facial)

	roster := []*model.Therapist{available, busy, onBreak, offline, unqualified}

	eligible := QualifiedEver(roster, massage, model.PreferAny)

	// Busy and on-break staff stay eligible; offline and unqualified do not.
	assert.Equal(t, []*model.Therapist{available, busy, onBreak}, eligible)
}

func TestQualifiedEverGenderPreference(t *testing.T) {
	massage := uuid.New()
	female := newTherapist("Ava", model.GenderFemale, model.TherapistStatusAvailable, massage)
	male := newTherapist("Ben", model.GenderMale, model.TherapistStatusAvailable, massage)
	roster := []*model.Therapist{female, male}

	assert.Equal(t, []*model.Therapist{female}, QualifiedEver(roster, massage, model.PreferFemale))
	assert.Equal(t, []*model.Therapist{male}, QualifiedEver(roster, massage, model.PreferMale))
	assert.Len(t, QualifiedEver(roster, massage, model.PreferAny), 2)
	assert.Len(t, QualifiedEver(roster, massage, ""), 2)
}

func TestQualifiedEverAnyService(t *testing.T) {
	massage := uuid.New()
	a := newTherapist("Ava", model.GenderFemale, model.TherapistStatusAvailable, massage)
	b := newTherapist("Ben", model.GenderMale, model.TherapistStatusBusy)

	// uuid.Nil skips the qualification check entirely.
	assert.Len(t, QualifiedEver([]*model.Therapist{a, b}, uuid.Nil, model.PreferAny), 2)
}

func TestAssignableNowNarrowsToAvailable(t *testing.T) {
	massage := uuid.New()
	available := newTherapist("Ava", model.GenderFemale, model.TherapistStatusAvailable, massage)
	busy := newTherapist("Ben", model.GenderMale, model.TherapistStatusBusy, massage)
	onBreak := newTherapist("Cleo", model.GenderFemale, model.TherapistStatusBreak, massage)

	roster := []*model.Therapist{busy, available, onBreak}

	assignable := AssignableNow(roster, massage, model.PreferAny)
	assert.Equal(t, []*model.Therapist{available}, assignable)

	// The broader predicate still sees all three.
	assert.Len(t, QualifiedEver(roster, massage, model.PreferAny), 3)
}

func TestEligibilityDoesNotMutateInput(t *testing.T) {
	massage := uuid.New()
	roster := []*model.Therapist{
		newTherapist("Ava", model.GenderFemale, model.TherapistStatusOffline, massage),
		newTherapist("Ben", model.GenderMale, model.TherapistStatusAvailable, massage),
	}

	QualifiedEver(roster, massage, model.PreferAny)

	assert.Equal(t, "Ava", roster[0].Name)
	assert.Equal(t, "Ben", roster[1].Name)
}
