package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/webstatus/digestmail/app/database"
)

type PruneDeliveriesTask struct {
	Task
	deliveryRepo  database.DeliveryRepository
	retentionDays int
}

func NewPruneDeliveriesTask(deliveryRepo database.DeliveryRepository, retentionDays int) *PruneDeliveriesTask {
	return &PruneDeliveriesTask{
		Task:          NewTask(TaskTypePruneDeliveries, "retention"),
		deliveryRepo:  deliveryRepo,
		retentionDays: retentionDays,
	}
}

func (t *PruneDeliveriesTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -t.retentionDays)

	deleted, err := t.deliveryRepo.DeleteDeliveriesBefore(cutoff)
	if err != nil {
		slog.Error("Task failed", "type", "PruneDeliveries", "error", err)
		return fmt.Errorf("failed to prune old deliveries: %w", err)
	}

	if deleted > 0 {
		slog.Info("Task completed",
			"type", "PruneDeliveries",
			"deleted", deleted,
			"cutoff", cutoff.Format(time.RFC3339),
			"duration", t.GetDuration())
	}

	return nil
}
