package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// Example usage:
//
//	scheduler := NewScheduler(configCache, channelRepo, deliveryRepo, renderer, sender)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewDeliverDigestTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
