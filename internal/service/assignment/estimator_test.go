package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minatoh/spa-desk/internal/model"
)

const escortBuffer = 12 * time.Minute

func TestEstimateStartAvailable(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	therapist := newTherapist("Ava", model.GenderFemale, model.TherapistStatusAvailable)

	estimate := EstimateStart(therapist, now, escortBuffer)

	assert.Equal(t, now, estimate.Start)
	assert.Zero(t, estimate.DelayMinutes)
	assert.False(t, estimate.Unavailable)
	assert.False(t, estimate.Inconsistent)
}

func TestEstimateStartBusy(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	end := now.Add(25 * time.Minute)
	therapist := newTherapist("Ben", model.GenderMale, model.TherapistStatusBusy)
	therapist.ServiceEndTime = &end

	estimate := EstimateStart(therapist, now, escortBuffer)

	// 25 minutes remaining plus the 12 minute escort buffer.
	assert.Equal(t, end.Add(escortBuffer), estimate.Start)
	assert.Equal(t, 37, estimate.DelayMinutes)
	assert.False(t, estimate.Inconsistent)
}

func TestEstimateStartDelayRoundsUp(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	end := now.Add(30*time.Second - escortBuffer)
	therapist := newTherapist("Ben", model.GenderMale, model.TherapistStatusBreak)
	therapist.ServiceEndTime = &end

	estimate := EstimateStart(therapist, now, escortBuffer)

	// 30 seconds of residual delay still counts as one minute.
	assert.Equal(t, 1, estimate.DelayMinutes)
}

func TestEstimateStartStaleEndTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	end := now.Add(-time.Hour)
	therapist := newTherapist("Ben", model.GenderMale, model.TherapistStatusBusy)
	therapist.ServiceEndTime = &end

	estimate := EstimateStart(therapist, now, escortBuffer)

	// A window that already elapsed never produces a negative delay.
	assert.Equal(t, now, estimate.Start)
	assert.Zero(t, estimate.DelayMinutes)
}

func TestEstimateStartOffline(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	therapist := newTherapist("Dan", model.GenderMale, model.TherapistStatusOffline)

	estimate := EstimateStart(therapist, now, escortBuffer)

	assert.True(t, estimate.Unavailable)
}

func TestEstimateStartMissingEndTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

	for _, status := range []model.TherapistStatus{model.TherapistStatusBusy, model.TherapistStatusBreak} {
		therapist := newTherapist("Cleo", model.GenderFemale, status)

		estimate := EstimateStart(therapist, now, escortBuffer)

		assert.True(t, estimate.Inconsistent, "status %s", status)
		assert.Equal(t, now, estimate.Start)
		assert.Zero(t, estimate.DelayMinutes)
	}
}
