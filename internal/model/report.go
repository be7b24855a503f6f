package model

import (
	"time"

	"github.com/google/uuid"
)

type TherapistReport struct {
	TherapistID   uuid.UUID `json:"therapist_id"`
	TherapistName string    `json:"therapist_name"`
	Serves        int       `json:"serves"`
	Revenue       float64   `json:"revenue"`
	Commission    float64   `json:"commission"`
	Rating        float64   `json:"rating"`
}

type DailyReport struct {
	Date             time.Time         `json:"date"`
	TotalClients     int               `json:"total_clients"`
	TotalRevenue     float64           `json:"total_revenue"`
	TotalCommissions float64           `json:"total_commissions"`
	TherapistReports []TherapistReport `json:"therapist_reports"`
}

// StatusSummary is the dashboard headcount breakdown.
type StatusSummary struct {
	Available int `json:"available"`
	Busy      int `json:"busy"`
	OnBreak   int `json:"on_break"`
	Offline   int `json:"offline"`
	Waiting   int `json:"waiting"`
}
