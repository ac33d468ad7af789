// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// for the periodic reconciliation the marketplace needs.
//
// # Available Jobs
//
// 1. StaleOrderJob - Runs hourly to cancel POSTED orders that attracted no
// carrier within the configured time-to-live
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cancelStaleOrdersHandler, ttl, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick; a failed run never
// leaves partial cancellations because the sweep commits in one transaction.
package jobs
