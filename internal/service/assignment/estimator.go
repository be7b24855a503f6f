package assignment

import (
	"time"

	"github.com/minatoh/spa-desk/internal/model"
)

// Estimate is the earliest moment a therapist can start a new service.
type Estimate struct {
	Start        time.Time `json:"start"`
	DelayMinutes int       `json:"delay_minutes"`
	// Unavailable marks an offline therapist; Start and DelayMinutes carry no
	// meaning when it is set.
	Unavailable bool `json:"unavailable,omitempty"`
	// Inconsistent marks a busy/break therapist with no service end time. The
	// estimate falls back to "available now" but the condition must be
	// surfaced, not treated as correct.
	Inconsistent bool `json:"inconsistent,omitempty"`
}

// EstimateStart computes when the therapist can take a new client. Occupied
// therapists get their current window end plus the escort buffer.
func EstimateStart(t *model.Therapist, now time.Time, escortBuffer time.Duration) Estimate {
	switch t.Status {
	case model.TherapistStatusAvailable:
		return Estimate{Start: now}
	case model.TherapistStatusOffline:
		return Estimate{Unavailable: true}
	}

	if t.ServiceEndTime == nil {
		return Estimate{Start: now, Inconsistent: true}
	}

	start := t.ServiceEndTime.Add(escortBuffer)
	delay := int((start.Sub(now) + time.Minute - 1) / time.Minute)
	if delay < 0 {
		delay = 0
		start = now
	}
	return Estimate{Start: start, DelayMinutes: delay}
}
