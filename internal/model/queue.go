package model

import "github.com/google/uuid"

// QueueEntry is a read-model projection over a waiting client. Position is
// 1-based and contiguous; WaitTime and IsLate are recomputed on every
// observation, never stored.
type QueueEntry struct {
	ClientID uuid.UUID `json:"client_id"`
	Client   *Client   `json:"client"`
	Position int       `json:"position"`
	WaitTime int       `json:"wait_time"` // in minutes
	IsLate   bool      `json:"is_late"`
}

type ReorderRequest struct {
	Position int `json:"position" binding:"required,gte=1"`
}
