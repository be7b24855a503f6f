package model

import (
	"time"

	"github.com/google/uuid"
)

type ClientStatus string

const (
	ClientStatusWaiting   ClientStatus = "waiting"
	ClientStatusInService ClientStatus = "in-service"
	ClientStatusCompleted ClientStatus = "completed"
	ClientStatusNoShow    ClientStatus = "no-show"
)

type IntakeType string

const (
	IntakeWalkIn  IntakeType = "walk-in"
	IntakeBooking IntakeType = "booking"
)

// Client is an intake record. Service holds a snapshot of the catalog entry
// taken at check-in. Priority is owned by the queue service: unique and
// contiguous among waiting clients, lower served sooner.
type Client struct {
	Base
	Name              string           `db:"name" json:"name,omitempty"`
	Phone             string           `db:"phone" json:"phone,omitempty"`
	Gender            Gender           `db:"gender" json:"gender,omitempty"`
	PreferredGender   GenderPreference `db:"preferred_gender" json:"preferred_gender"`
	Service           Service          `db:"-" json:"service"`
	Status            ClientStatus     `db:"status" json:"status"`
	Type              IntakeType       `db:"type" json:"type"`
	AssignedTherapist *uuid.UUID       `db:"assigned_therapist" json:"assigned_therapist,omitempty"`
	WaitingSince      time.Time        `db:"waiting_since" json:"waiting_since"`
	ScheduledTime     *time.Time       `db:"scheduled_time" json:"scheduled_time,omitempty"`
	StartedAt         *time.Time       `db:"started_at" json:"started_at,omitempty"`
	CompletedAt       *time.Time       `db:"completed_at" json:"completed_at,omitempty"`
	Priority          int              `db:"priority" json:"priority"`
	Notes             string           `db:"notes" json:"notes,omitempty"`
}

type CheckInRequest struct {
	Name            string     `json:"name"`
	Phone           string     `json:"phone" binding:"omitempty,phone"`
	Gender          string     `json:"gender" binding:"omitempty,oneof=male female"`
	PreferredGender string     `json:"preferred_gender" binding:"omitempty,oneof=male female any"`
	ServiceID       string     `json:"service_id" binding:"required,uuid"`
	ScheduledTime   *time.Time `json:"scheduled_time"`
	Notes           string     `json:"notes"`
}
