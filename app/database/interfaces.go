package database

import (
	"time"
)

type ChannelRepository interface {
	UpsertChannel(channel Channel) error
	GetChannel(channelID string) (*Channel, error)
	GetChannelCount() (int, error)
}

type DeliveryRepository interface {
	InsertDelivery(delivery Delivery) error
	GetDelivery(deliveryID string) (*Delivery, error)

	// GetStaleQueuedDeliveries returns queued deliveries created before
	// olderThan, for crash-recovery requeueing.
	GetStaleQueuedDeliveries(olderThan time.Time, limit int) ([]Delivery, error)

	MarkDeliverySent(deliveryID, subject string) error
	MarkDeliveryFailed(deliveryID, errorMsg string) error

	GetDeliveryStats() (DeliveryStats, error)
	DeleteDeliveriesBefore(cutoff time.Time) (int64, error)
}
