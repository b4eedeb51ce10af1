package database

import (
	"database/sql"
	"fmt"
	"time"
)

// SQLChannelRepository handles database operations for channels
type SQLChannelRepository struct {
	db *DB
}

var _ ChannelRepository = (*SQLChannelRepository)(nil)

func NewChannelRepository(db *DB) *SQLChannelRepository {
	return &SQLChannelRepository{db: db}
}

// UpsertChannel inserts or updates a channel mirrored from configuration
func (r *SQLChannelRepository) UpsertChannel(channel Channel) error {
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO channels (id, name, frequency, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			frequency = excluded.frequency,
			enabled = excluded.enabled,
			updated_at = excluded.updated_at
	`, channel.ID, channel.Name, channel.Frequency, channel.Enabled, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert channel: %w", err)
	}

	return nil
}

func (r *SQLChannelRepository) GetChannel(channelID string) (*Channel, error) {
	var channel Channel

	err := r.db.QueryRow(`
		SELECT id, name, frequency, enabled, created_at, updated_at
		FROM channels
		WHERE id = ?
	`, channelID).Scan(&channel.ID, &channel.Name, &channel.Frequency, &channel.Enabled, &channel.CreatedAt, &channel.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	return &channel, nil
}

func (r *SQLChannelRepository) GetChannelCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM channels`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count channels: %w", err)
	}
	return count, nil
}
