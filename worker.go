package qsearch

import (
	"context"
	"time"

	"github.com/theapemachine/errnie"
)

// Worker executes Grover runs handed to it by the pool, one at a time.
type Worker struct {
	pool *Pool
	jobs chan Job
}

func (w *Worker) run(ctx context.Context) {
	for {
		// Offer ourselves to the manager, then wait for the job it hands back.
		select {
		case <-ctx.Done():
			return
		case w.pool.workers <- w.jobs:
		}

		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			w.processJob(job)
		}
	}
}

/*
processJob builds a fresh Grover for the job so no two runs ever share a
register or a random stream. Validation failures are delivered as they are;
nothing here is retried because every failure is a function of the input.
The manager has already counted the job's bytes as in flight; they are
released here once the run is done.
*/
func (w *Worker) processJob(job Job) {
	result, err := w.execute(job)

	w.pool.metrics.recordJobExecution(
		job.StartTime, amplitudeBytes(job.Qubits), job.Shots, err == nil,
	)

	if err != nil {
		errnie.Info("Worker - job %s failed: %v", job.ID, err)
	}

	job.result <- Outcome{
		JobID:    job.ID,
		Result:   result,
		Err:      err,
		Duration: time.Since(job.StartTime),
	}
	close(job.result)
}

func (w *Worker) execute(job Job) (*Result, error) {
	grover, err := NewGrover(
		job.Qubits,
		job.Targets,
		WithConfig(w.pool.config),
		WithEntropy(NewEntropy(job.Seed, job.Stream)),
	)
	if err != nil {
		return nil, err
	}

	return grover.Run(job.Shots)
}
