package qsearch

import "sync"

/*
MemoryGovernor holds back dispatch while the amplitude buffers of in-flight
runs exceed a byte budget. A 24-qubit register alone is 256MiB, so a few wide
runs in parallel are enough to exhaust a machine.

The governor never limits an idle pool, so a single run larger than the budget
still makes progress.
*/
type MemoryGovernor struct {
	mu       sync.RWMutex
	budget   int64
	inFlight int64
	peak     int64
}

// NewMemoryGovernor creates a governor for the given byte budget.
func NewMemoryGovernor(budget int64) *MemoryGovernor {
	return &MemoryGovernor{budget: budget}
}

func (mg *MemoryGovernor) Observe(metrics *Metrics) {
	metrics.mu.RLock()
	inFlight := metrics.InFlightBytes
	metrics.mu.RUnlock()

	mg.mu.Lock()
	defer mg.mu.Unlock()

	mg.inFlight = inFlight
	mg.peak = max(mg.peak, inFlight)
}

func (mg *MemoryGovernor) Limit() bool {
	mg.mu.RLock()
	defer mg.mu.RUnlock()

	return mg.budget > 0 && mg.inFlight > 0 && mg.inFlight >= mg.budget
}

func (mg *MemoryGovernor) Renormalize() {
	mg.mu.Lock()
	defer mg.mu.Unlock()

	mg.peak = mg.inFlight
}

// Usage returns the last observed in-flight bytes and the peak since the last renormalize.
func (mg *MemoryGovernor) Usage() (inFlight, peak int64) {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	return mg.inFlight, mg.peak
}
