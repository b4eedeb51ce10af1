package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/webstatus/digestmail/app/cfg"
	"github.com/webstatus/digestmail/app/channels"
	"github.com/webstatus/digestmail/app/database"
	"github.com/webstatus/digestmail/app/digest"
	"github.com/webstatus/digestmail/app/mailer"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// staleDeliveryAge is how long a delivery may sit queued before the
// scheduler requeues it. Covers deliveries orphaned by a crash between
// enqueue and send.
const staleDeliveryAge = 5 * time.Minute

const staleDeliveryBatchSize = 100

type Scheduler struct {
	channelRepo   database.ChannelRepository
	deliveryRepo  database.DeliveryRepository
	configCache   *channels.ConfigCache
	renderer      *digest.Renderer
	sender        mailer.Sender
	interval      time.Duration
	workerCount   int
	retentionDays int
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	taskQueue     chan TaskInterface
}

func NewScheduler(configCache *channels.ConfigCache, channelRepo database.ChannelRepository,
	deliveryRepo database.DeliveryRepository, renderer *digest.Renderer, sender mailer.Sender) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		channelRepo:   channelRepo,
		deliveryRepo:  deliveryRepo,
		configCache:   configCache,
		renderer:      renderer,
		sender:        sender,
		interval:      time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:   cfg.WorkerCount,
		retentionDays: cfg.RetentionDays,
		ctx:           ctx,
		cancel:        cancel,
		taskQueue:     make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	channelConfigs := s.configCache.GetConfigs()
	if len(channelConfigs) == 0 {
		slog.Debug("No channel configurations found")
		return
	}

	slog.Debug("Syncing channel configurations", "count", len(channelConfigs))

	for _, channelConfig := range channelConfigs {
		syncTask := NewSyncChannelConfigTask(channelConfig, s.channelRepo)
		if err := s.EnqueueTask(syncTask); err != nil {
			slog.Warn("Failed to enqueue SyncChannelConfigTask", "channel", channelConfig.ID, "error", err)
		}
	}

	s.enqueueStaleDeliveries()
}

func (s *Scheduler) enqueueTasks() {
	s.enqueueStaleDeliveries()

	if s.retentionDays > 0 {
		pruneTask := NewPruneDeliveriesTask(s.deliveryRepo, s.retentionDays)
		if err := s.EnqueueTask(pruneTask); err != nil {
			slog.Warn("Failed to enqueue PruneDeliveriesTask", "error", err)
		}
	}
}

func (s *Scheduler) enqueueStaleDeliveries() {
	olderThan := time.Now().UTC().Add(-staleDeliveryAge)

	deliveries, err := s.deliveryRepo.GetStaleQueuedDeliveries(olderThan, staleDeliveryBatchSize)
	if err != nil {
		slog.Warn("Failed to query stale queued deliveries", "error", err)
		return
	}
	if len(deliveries) == 0 {
		return
	}

	slog.Debug("Requeueing stale deliveries", "count", len(deliveries))

	for _, delivery := range deliveries {
		deliverTask := NewDeliverDigestTask(delivery.ID, s.configCache, s.deliveryRepo, s.renderer, s.sender)
		if err := s.EnqueueTask(deliverTask); err != nil {
			slog.Warn("Failed to enqueue DeliverDigestTask", "delivery", delivery.ID, "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "ref", task.GetRef(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
