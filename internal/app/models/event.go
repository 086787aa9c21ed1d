package models

import "time"

type BundleEvent struct {
	Event      string    `json:"event"`
	BundleID   string    `json:"bundle_id"`
	BundleType string    `json:"bundle_type,omitempty"`
	EntryCount int       `json:"entry_count,omitempty"`
	Digest     string    `json:"digest,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
