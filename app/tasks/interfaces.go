package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// Example usage:
//
//	scheduler := NewScheduler(linkRepo, parser)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewPurgeCacheTask(linkRepo))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
