package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeSyncChannelConfig TaskType = "sync_channel_config"
	TaskTypeDeliverDigest     TaskType = "deliver_digest"
	TaskTypePruneDeliveries   TaskType = "prune_deliveries"
)

const (
	DefaultMaxRetries = 3
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetRef() string
	GetRetryCount() int
	GetMaxRetries() int
	IncrementRetryCount()
	CanRetry() bool
	Start()
	GetDuration() time.Duration
}

// Task carries the bookkeeping shared by all task types. Ref identifies the
// subject of the task, a channel ID or a delivery ID depending on the type.
type Task struct {
	ID         string
	Type       TaskType
	Ref        string
	RetryCount int
	MaxRetries int
	StartedAt  *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetRef() string {
	return t.Ref
}

func (t *Task) GetRetryCount() int {
	return t.RetryCount
}

func (t *Task) GetMaxRetries() int {
	return t.MaxRetries
}

func (t *Task) IncrementRetryCount() {
	t.RetryCount++
}

func (t *Task) CanRetry() bool {
	return t.RetryCount < t.MaxRetries
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, ref string) Task {
	return Task{
		ID:         uuid.NewString(),
		Type:       taskType,
		Ref:        ref,
		RetryCount: 0,
		MaxRetries: DefaultMaxRetries,
	}
}
