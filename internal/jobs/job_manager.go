package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	telemetryJob *DroneTelemetryJob
	lowStockJob  *LowStockReportJob
}

// NewJobManager creates a job manager over the given jobs.
func NewJobManager(telemetryJob *DroneTelemetryJob, lowStockJob *LowStockReportJob) *JobManager {
	return &JobManager{
		telemetryJob: telemetryJob,
		lowStockJob:  lowStockJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.telemetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start drone telemetry job: %w", err)
	}

	if err := jm.lowStockJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.telemetryJob.Stop()
		return fmt.Errorf("failed to start low stock report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.telemetryJob.Stop()
	jm.lowStockJob.Stop()
}
