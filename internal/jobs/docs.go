// Package jobs provides scheduled background tasks for the delivery platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around active deliveries and stock health.
//
// # Available Jobs
//
// 1. DroneTelemetryJob - Runs every five seconds to publish simulated location
// updates for orders in transit
// 2. LowStockReportJob - Runs every minute to re-announce products still at or
// below their reorder threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(telemetryJob, lowStockJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job ticks log failures and carry on; a transient database error must not
// stop the schedule. Failed job starts stop any already running jobs.
package jobs
