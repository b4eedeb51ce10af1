package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/webstatus/digestmail/app/channels"
	"github.com/webstatus/digestmail/app/database"
)

type SyncChannelConfigTask struct {
	Task
	ChannelConfig *channels.Config
	channelRepo   database.ChannelRepository
}

func NewSyncChannelConfigTask(channelConfig *channels.Config, channelRepo database.ChannelRepository) *SyncChannelConfigTask {
	return &SyncChannelConfigTask{
		Task:          NewTask(TaskTypeSyncChannelConfig, channelConfig.ID),
		ChannelConfig: channelConfig,
		channelRepo:   channelRepo,
	}
}

func (t *SyncChannelConfigTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := t.channelRepo.UpsertChannel(database.Channel{
		ID:        t.ChannelConfig.ID,
		Name:      t.ChannelConfig.Name,
		Frequency: t.ChannelConfig.Frequency,
		Enabled:   t.ChannelConfig.Settings.Enabled,
	})
	if err != nil {
		slog.Error("Task failed", "type", "SyncChannelConfig", "channel", t.ChannelConfig.ID, "error", err)
		return fmt.Errorf("failed to sync channel config to database: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncChannelConfig",
		"channel", t.ChannelConfig.ID,
		"duration", t.GetDuration())

	return nil
}
