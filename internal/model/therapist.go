package model

import (
	"time"

	"github.com/google/uuid"
)

type TherapistStatus string

const (
	TherapistStatusAvailable TherapistStatus = "available"
	TherapistStatusBusy      TherapistStatus = "busy"
	TherapistStatusBreak     TherapistStatus = "break"
	TherapistStatusOffline   TherapistStatus = "offline"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// GenderPreference is a client-side preference; "any" places no restriction.
type GenderPreference string

const (
	PreferMale   GenderPreference = "male"
	PreferFemale GenderPreference = "female"
	PreferAny    GenderPreference = "any"
)

// Therapist is a staff member. ServiceEndTime is set iff status is busy or
// break; available and offline therapists never carry one. NextClientID holds
// at most one delayed assignment waiting for the current service to finish.
type Therapist struct {
	Base
	Name            string          `db:"name" json:"name"`
	Gender          Gender          `db:"gender" json:"gender"`
	Status          TherapistStatus `db:"status" json:"status"`
	CommissionRate  float64         `db:"commission_rate" json:"commission_rate"` // percentage
	TotalServes     int             `db:"total_serves" json:"total_serves"`
	TodayServes     int             `db:"today_serves" json:"today_serves"`
	TodayCommission float64         `db:"today_commission" json:"today_commission"`
	Rating          float64         `db:"rating" json:"rating"`
	ServiceIDs      []uuid.UUID     `db:"-" json:"service_ids"`
	CurrentClientID *uuid.UUID      `db:"current_client_id" json:"current_client_id,omitempty"`
	NextClientID    *uuid.UUID      `db:"next_client_id" json:"next_client_id,omitempty"`
	ServiceEndTime  *time.Time      `db:"service_end_time" json:"service_end_time,omitempty"`
	LastServedTime  *time.Time      `db:"last_served_time" json:"last_served_time,omitempty"`
}

// CanPerform reports whether the therapist is qualified for the service.
func (t *Therapist) CanPerform(serviceID uuid.UUID) bool {
	for _, id := range t.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Occupied reports whether the therapist is in a state that carries a
// ServiceEndTime.
func (t *Therapist) Occupied() bool {
	return t.Status == TherapistStatusBusy || t.Status == TherapistStatusBreak
}

// MatchesPreference reports whether the therapist satisfies a gender
// preference. An empty preference is treated as "any".
func (t *Therapist) MatchesPreference(pref GenderPreference) bool {
	return pref == "" || pref == PreferAny || Gender(pref) == t.Gender
}

type CreateTherapistRequest struct {
	Name           string   `json:"name" binding:"required"`
	Gender         string   `json:"gender" binding:"required,oneof=male female"`
	CommissionRate float64  `json:"commission_rate"`
	Rating         float64  `json:"rating"`
	ServiceIDs     []string `json:"service_ids" binding:"required,min=1"`
}

type UpdateTherapistRequest struct {
	Name           *string  `json:"name"`
	Gender         *string  `json:"gender" binding:"omitempty,oneof=male female"`
	CommissionRate *float64 `json:"commission_rate"`
	Rating         *float64 `json:"rating"`
	ServiceIDs     []string `json:"service_ids"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available busy break offline"`
	// Minutes until the busy/break window ends; required for those statuses.
	EndsInMinutes int `json:"ends_in_minutes" binding:"omitempty,gt=0"`
}

type SetCommissionRequest struct {
	CommissionRate float64 `json:"commission_rate"`
}
