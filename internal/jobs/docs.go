// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order service.
//
// # Available Jobs
//
// 1. PendingOrderSweepJob - Runs every minute to re-announce orders that have
// waited in Pending longer than the configured threshold, so restaurant owners
// who were disconnected when the order arrived still get notified.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepHandler, 5*time.Minute, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; a failed start
// surfaces as an error from StartAll.
package jobs
