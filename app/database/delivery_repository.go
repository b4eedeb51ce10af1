package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLDeliveryRepository handles database operations for digest deliveries
type SQLDeliveryRepository struct {
	db *DB
}

var _ DeliveryRepository = (*SQLDeliveryRepository)(nil)

func NewDeliveryRepository(db *DB) *SQLDeliveryRepository {
	return &SQLDeliveryRepository{db: db}
}

func (r *SQLDeliveryRepository) InsertDelivery(delivery Delivery) error {
	triggers, err := json.Marshal(delivery.Triggers)
	if err != nil {
		return fmt.Errorf("failed to encode triggers: %w", err)
	}

	createdAt := delivery.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.Exec(`
		INSERT INTO deliveries (
			id, channel_id, subscription_id, recipient_email,
			search_query, frequency, event_id, search_id, generated_at,
			triggers, summary_payload, unsubscribe_url, manage_url,
			status, subject, last_error, attempts, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, delivery.ID, delivery.ChannelID, delivery.SubscriptionID, delivery.RecipientEmail,
		delivery.SearchQuery, delivery.Frequency, delivery.EventID, delivery.SearchID, delivery.GeneratedAt,
		string(triggers), delivery.SummaryPayload, delivery.UnsubscribeURL, delivery.ManageURL,
		DeliveryStatusQueued, "", "", 0, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert delivery: %w", err)
	}

	return nil
}

func (r *SQLDeliveryRepository) GetDelivery(deliveryID string) (*Delivery, error) {
	row := r.db.QueryRow(`
		SELECT id, channel_id, subscription_id, recipient_email,
			search_query, frequency, event_id, search_id, generated_at,
			triggers, summary_payload, unsubscribe_url, manage_url,
			status, subject, last_error, attempts, created_at, sent_at
		FROM deliveries
		WHERE id = ?
	`, deliveryID)

	delivery, err := scanDelivery(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}

	return delivery, nil
}

func (r *SQLDeliveryRepository) GetStaleQueuedDeliveries(olderThan time.Time, limit int) ([]Delivery, error) {
	rows, err := r.db.Query(`
		SELECT id, channel_id, subscription_id, recipient_email,
			search_query, frequency, event_id, search_id, generated_at,
			triggers, summary_payload, unsubscribe_url, manage_url,
			status, subject, last_error, attempts, created_at, sent_at
		FROM deliveries
		WHERE status = ? AND created_at < ?
		ORDER BY created_at
		LIMIT ?
	`, DeliveryStatusQueued, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query queued deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []Delivery
	for rows.Next() {
		delivery, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, *delivery)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deliveries: %w", err)
	}

	return deliveries, nil
}

func (r *SQLDeliveryRepository) MarkDeliverySent(deliveryID, subject string) error {
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		UPDATE deliveries
		SET status = ?, subject = ?, last_error = '', attempts = attempts + 1, sent_at = ?
		WHERE id = ?
	`, DeliveryStatusSent, subject, now, deliveryID)
	if err != nil {
		return fmt.Errorf("failed to mark delivery sent: %w", err)
	}

	return nil
}

func (r *SQLDeliveryRepository) MarkDeliveryFailed(deliveryID, errorMsg string) error {
	_, err := r.db.Exec(`
		UPDATE deliveries
		SET status = ?, last_error = ?, attempts = attempts + 1
		WHERE id = ?
	`, DeliveryStatusFailed, errorMsg, deliveryID)
	if err != nil {
		return fmt.Errorf("failed to mark delivery failed: %w", err)
	}

	return nil
}

func (r *SQLDeliveryRepository) GetDeliveryStats() (DeliveryStats, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM deliveries GROUP BY status`)
	if err != nil {
		return DeliveryStats{}, fmt.Errorf("failed to query delivery stats: %w", err)
	}
	defer rows.Close()

	var stats DeliveryStats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return DeliveryStats{}, fmt.Errorf("failed to scan delivery stats: %w", err)
		}
		switch status {
		case DeliveryStatusQueued:
			stats.Queued = count
		case DeliveryStatusSent:
			stats.Sent = count
		case DeliveryStatusFailed:
			stats.Failed = count
		}
	}
	if err := rows.Err(); err != nil {
		return DeliveryStats{}, fmt.Errorf("failed to iterate delivery stats: %w", err)
	}

	return stats, nil
}

func (r *SQLDeliveryRepository) DeleteDeliveriesBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM deliveries WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old deliveries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted deliveries: %w", err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDelivery(row rowScanner) (*Delivery, error) {
	var delivery Delivery
	var generatedAt sql.NullTime
	var sentAt sql.NullTime
	var triggers string

	err := row.Scan(&delivery.ID, &delivery.ChannelID, &delivery.SubscriptionID, &delivery.RecipientEmail,
		&delivery.SearchQuery, &delivery.Frequency, &delivery.EventID, &delivery.SearchID, &generatedAt,
		&triggers, &delivery.SummaryPayload, &delivery.UnsubscribeURL, &delivery.ManageURL,
		&delivery.Status, &delivery.Subject, &delivery.LastError, &delivery.Attempts, &delivery.CreatedAt, &sentAt)
	if err != nil {
		return nil, err
	}

	if generatedAt.Valid {
		delivery.GeneratedAt = &generatedAt.Time
	}
	if sentAt.Valid {
		delivery.SentAt = &sentAt.Time
	}
	if triggers != "" {
		if err := json.Unmarshal([]byte(triggers), &delivery.Triggers); err != nil {
			return nil, fmt.Errorf("failed to decode triggers: %w", err)
		}
	}

	return &delivery, nil
}
