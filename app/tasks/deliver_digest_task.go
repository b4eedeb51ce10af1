package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/webstatus/digestmail/app/channels"
	"github.com/webstatus/digestmail/app/database"
	"github.com/webstatus/digestmail/app/digest"
	"github.com/webstatus/digestmail/app/mailer"
)

type DeliverDigestTask struct {
	Task
	configCache  *channels.ConfigCache
	deliveryRepo database.DeliveryRepository
	renderer     *digest.Renderer
	sender       mailer.Sender
}

func NewDeliverDigestTask(deliveryID string, configCache *channels.ConfigCache, deliveryRepo database.DeliveryRepository, renderer *digest.Renderer, sender mailer.Sender) *DeliverDigestTask {
	return &DeliverDigestTask{
		Task:         NewTask(TaskTypeDeliverDigest, deliveryID),
		configCache:  configCache,
		deliveryRepo: deliveryRepo,
		renderer:     renderer,
		sender:       sender,
	}
}

func (t *DeliverDigestTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	delivery, err := t.deliveryRepo.GetDelivery(t.Ref)
	if err != nil {
		return fmt.Errorf("failed to load delivery: %w", err)
	}
	if delivery == nil {
		slog.Warn("Delivery not found, skipping", "delivery", t.Ref)
		return nil
	}
	if delivery.Status == database.DeliveryStatusSent {
		slog.Debug("Delivery already sent, skipping", "delivery", t.Ref)
		return nil
	}

	job := t.buildJob(delivery)

	subject, body, err := t.renderer.Run(job)
	if err != nil {
		if markErr := t.deliveryRepo.MarkDeliveryFailed(delivery.ID, err.Error()); markErr != nil {
			slog.Error("Failed to record delivery failure", "delivery", delivery.ID, "error", markErr)
		}
		return fmt.Errorf("failed to render digest: %w", err)
	}

	if err := t.sender.Send(ctx, delivery.RecipientEmail, subject, body); err != nil {
		if markErr := t.deliveryRepo.MarkDeliveryFailed(delivery.ID, err.Error()); markErr != nil {
			slog.Error("Failed to record delivery failure", "delivery", delivery.ID, "error", markErr)
		}
		return fmt.Errorf("failed to send digest email: %w", err)
	}

	if err := t.deliveryRepo.MarkDeliverySent(delivery.ID, subject); err != nil {
		return fmt.Errorf("failed to mark delivery sent: %w", err)
	}

	slog.Info("Task completed",
		"type", "DeliverDigest",
		"delivery", delivery.ID,
		"recipient", delivery.RecipientEmail,
		"duration", t.GetDuration())

	return nil
}

// buildJob converts a stored delivery into a render job. A delivery without
// its own triggers inherits the default triggers of its channel.
func (t *DeliverDigestTask) buildJob(delivery *database.Delivery) digest.Job {
	triggers := make([]digest.JobTrigger, 0, len(delivery.Triggers))
	for _, trigger := range delivery.Triggers {
		triggers = append(triggers, digest.JobTrigger(trigger))
	}

	frequency := delivery.Frequency

	if channelConfig, err := t.configCache.GetConfig(delivery.ChannelID); err == nil {
		if len(triggers) == 0 {
			triggers = append(triggers, channelConfig.Triggers...)
		}
		if frequency == "" {
			frequency = channelConfig.Frequency
		}
	}

	return digest.Job{
		ID:             delivery.ID,
		RecipientEmail: delivery.RecipientEmail,
		SubscriptionID: delivery.SubscriptionID,
		ChannelID:      delivery.ChannelID,
		SearchQuery:    delivery.SearchQuery,
		Frequency:      frequency,
		EventID:        delivery.EventID,
		SearchID:       delivery.SearchID,
		GeneratedAt:    delivery.GeneratedAt,
		Triggers:       triggers,
		SummaryPayload: delivery.SummaryPayload,
		UnsubscribeURL: delivery.UnsubscribeURL,
		ManageURL:      delivery.ManageURL,
	}
}
