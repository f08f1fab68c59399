// Package jobs provides scheduled background tasks for the workflow service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations.
//
// # Available Jobs
//
// 1. NotificationDispatchJob - Runs every five seconds to deliver pending
// outbox notifications and mark them sent
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatchNotificationsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed dispatch run is logged and retried on the next tick; notifications
// that could not be delivered remain pending in the outbox.
package jobs
