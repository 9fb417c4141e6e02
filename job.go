package qsearch

import "time"

// Job is one independent Grover run submitted to a Pool.
type Job struct {
	ID        string
	Qubits    int
	Targets   []int
	Shots     int
	Seed      uint64
	Stream    uint64
	StartTime time.Time

	result chan Outcome
}

// JobOption is a function type for configuring jobs
type JobOption func(*Job)

// WithID replaces the generated job ID.
func WithID(id string) JobOption {
	return func(j *Job) {
		j.ID = id
	}
}

// WithShots sets the number of measurement shots for the run.
func WithShots(shots int) JobOption {
	return func(j *Job) {
		j.Shots = shots
	}
}

// WithSeed fixes the seed of the run's random stream.
func WithSeed(seed uint64) JobOption {
	return func(j *Job) {
		j.Seed = seed
	}
}

// Outcome is delivered once per job on the channel returned by Pool.Schedule.
type Outcome struct {
	JobID    string
	Result   *Result
	Err      error
	Duration time.Duration
}

// amplitudeBytes is the memory a run of this width holds: 2^n complex128 values.
func amplitudeBytes(qubits int) int64 {
	if qubits < 1 || qubits > MaxQubits {
		return 0
	}
	return int64(16) << qubits
}
