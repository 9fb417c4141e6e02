package qsearch

import (
	"sort"
	"sync"
	"time"
)

type Metrics struct {
	mu            sync.RWMutex
	WorkerCount   int
	JobQueueSize  int
	ActiveWorkers int
	InFlightBytes int64
	TotalJobTime  time.Duration
	JobCount      int64
	FailureCount  int64
	ShotCount     int64
	Throttled     int64

	AverageJobLatency time.Duration
	P95JobLatency     time.Duration
	P99JobLatency     time.Duration
	JobSuccessRate    float64

	// Sliding window of recent run latencies for percentiles.
	latencies  []time.Duration
	windowSize int
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies:  make([]time.Duration, 0, 1000),
		windowSize: 1000,
	}
}

func (m *Metrics) recordDispatch(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InFlightBytes += bytes
	m.ActiveWorkers++
}

// releaseDispatch undoes recordDispatch for a job that never reached a worker.
func (m *Metrics) releaseDispatch(bytes int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InFlightBytes -= bytes
	m.ActiveWorkers--
}

func (m *Metrics) recordJobExecution(startTime time.Time, bytes int64, shots int, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.InFlightBytes -= bytes
	m.ActiveWorkers--
	m.TotalJobTime += duration
	m.JobCount++

	if success {
		m.ShotCount += int64(shots)
	} else {
		m.FailureCount++
	}

	m.JobSuccessRate = float64(m.JobCount-m.FailureCount) / float64(m.JobCount)
	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) recordThrottle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Throttled++
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageJobLatency = m.TotalJobTime / time.Duration(m.JobCount)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}

	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	last := len(sorted) - 1
	m.P95JobLatency = sorted[min(int(float64(len(sorted))*0.95), last)]
	m.P99JobLatency = sorted[min(int(float64(len(sorted))*0.99), last)]
}

// ExportMetrics returns a flat snapshot suitable for logging.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"worker_count":   m.WorkerCount,
		"queue_size":     m.JobQueueSize,
		"active_workers": m.ActiveWorkers,
		"inflight_bytes": m.InFlightBytes,
		"job_count":      m.JobCount,
		"failure_count":  m.FailureCount,
		"shot_count":     m.ShotCount,
		"throttled":      m.Throttled,
		"success_rate":   m.JobSuccessRate,
		"avg_latency":    m.AverageJobLatency.Milliseconds(),
		"p95_latency":    m.P95JobLatency.Milliseconds(),
		"p99_latency":    m.P99JobLatency.Milliseconds(),
	}
}
