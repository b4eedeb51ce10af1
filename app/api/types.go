package api

import (
	"encoding/json"
	"time"

	"github.com/webstatus/digestmail/app/channels"
	"github.com/webstatus/digestmail/app/database"
	"github.com/webstatus/digestmail/app/digest"
	"github.com/webstatus/digestmail/app/mailer"
	"github.com/webstatus/digestmail/app/tasks"
)

type Handler struct {
	channelRepo  database.ChannelRepository
	deliveryRepo database.DeliveryRepository
	configCache  *channels.ConfigCache
	renderer     *digest.Renderer
	sender       mailer.Sender
	scheduler    tasks.TaskSchedulerInterface
}

// SubmitJobRequest is the payload for queueing a digest delivery. Summary is
// the raw event summary JSON, kept opaque here and decoded at render time.
type SubmitJobRequest struct {
	ChannelID      string          `json:"channel_id" binding:"required"`
	RecipientEmail string          `json:"recipient_email" binding:"required,email"`
	SubscriptionID string          `json:"subscription_id"`
	SearchQuery    string          `json:"search_query"`
	Frequency      string          `json:"frequency"`
	EventID        string          `json:"event_id"`
	SearchID       string          `json:"search_id"`
	GeneratedAt    *time.Time      `json:"generated_at"`
	Triggers       []string        `json:"triggers"`
	Summary        json.RawMessage `json:"summary" binding:"required"`
	UnsubscribeURL string          `json:"unsubscribe_url"`
	ManageURL      string          `json:"manage_url"`
}

// PreviewJobRequest renders a digest without persisting or sending anything.
type PreviewJobRequest struct {
	SearchQuery    string          `json:"search_query"`
	Frequency      string          `json:"frequency"`
	GeneratedAt    *time.Time      `json:"generated_at"`
	Triggers       []string        `json:"triggers"`
	Summary        json.RawMessage `json:"summary" binding:"required"`
	UnsubscribeURL string          `json:"unsubscribe_url"`
	ManageURL      string          `json:"manage_url"`
}
