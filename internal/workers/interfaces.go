// Package workers runs the background jobs of the sync client.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers in a unified way.
package workers

import "context"

// Worker is a background job.
//
// Run starts the job and returns once it is running; the job keeps going
// until ctx is cancelled or Stop is called. Stop blocks until the job has
// finished its current iteration.
//
//	w := workers.NewSyncWorker(job, state, time.Minute)
//	w.Run(ctx)
//	defer w.Stop()
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
