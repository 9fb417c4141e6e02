package qsearch

/*
Regulator gates dispatch in a Pool. Before a job is handed to a worker the pool
lets every regulator Observe the current metrics; while any of them reports
Limit the job waits. Renormalize is called once the limit has cleared.
*/
type Regulator interface {
	// Observe updates the regulator's view of the pool.
	Observe(metrics *Metrics)

	// Limit reports whether dispatch should be held back.
	Limit() bool

	// Renormalize resets any transient state after a period of limiting.
	Renormalize()
}
