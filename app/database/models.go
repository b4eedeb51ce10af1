package database

import (
	"time"
)

// Channel is a notification channel record mirrored from the channel
// configuration files.
type Channel struct {
	ID        string // Configuration channel identifier derived from filename
	Name      string
	Frequency string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Delivery is one digest delivery record. The raw summary payload is kept
// alongside the job metadata so a queued delivery can be rendered at send
// time.
type Delivery struct {
	ID             string // Database UUID
	ChannelID      string
	SubscriptionID string
	RecipientEmail string
	SearchQuery    string
	Frequency      string
	EventID        string
	SearchID       string
	GeneratedAt    *time.Time
	Triggers       []string // Requested job triggers, stored as JSON
	SummaryPayload []byte
	UnsubscribeURL string
	ManageURL      string
	Status         string // queued, sent, failed
	Subject        string
	LastError      string
	Attempts       int
	CreatedAt      time.Time
	SentAt         *time.Time
}

const (
	DeliveryStatusQueued = "queued"
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// DeliveryStats summarizes delivery records by status.
type DeliveryStats struct {
	Queued int
	Sent   int
	Failed int
}
