package qsearch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// Pool runs independent Grover searches on a fixed set of workers.
type Pool struct {
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	workers    chan chan Job
	jobs       chan Job
	metrics    *Metrics
	regulators []Regulator
	workerMu   sync.Mutex
	workerList []*Worker
	config     *Config
	sequence   atomic.Uint64
	closeOnce  sync.Once

	// closeMu orders enqueues against the final drain in Close.
	closeMu sync.RWMutex
	closed  bool
}

/*
NewPool starts cfg.Workers workers. A nil config uses NewConfig. When no
regulators are given the pool installs a MemoryGovernor for cfg.MemoryBudget.
*/
func NewPool(ctx context.Context, cfg *Config, regulators ...Regulator) *Pool {
	if cfg == nil {
		cfg = NewConfig()
	}

	if len(regulators) == 0 {
		regulators = []Regulator{NewMemoryGovernor(cfg.MemoryBudget)}
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:        ctx,
		cancel:     cancel,
		jobs:       make(chan Job, cfg.Workers*10),
		workers:    make(chan chan Job, cfg.Workers),
		metrics:    NewMetrics(),
		regulators: regulators,
		workerList: make([]*Worker, 0, cfg.Workers),
		config:     cfg,
	}

	for i := 0; i < cfg.Workers; i++ {
		p.startWorker()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.manage()
	}()

	return p
}

/*
Schedule queues a Grover run and returns a channel that receives exactly one
Outcome and is then closed. Shots default to the configured count and the seed
to the configured seed; every job draws from its own stream regardless.
*/
func (p *Pool) Schedule(qubits int, targets []int, opts ...JobOption) chan Outcome {
	job := Job{
		ID:        uuid.NewString(),
		Qubits:    qubits,
		Targets:   append([]int(nil), targets...),
		Shots:     p.config.Shots,
		Seed:      p.config.Seed,
		Stream:    p.sequence.Add(1),
		StartTime: time.Now(),
		result:    make(chan Outcome, 1),
	}

	for _, opt := range opts {
		opt(&job)
	}

	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if p.closed {
		p.fail(job, context.Canceled)
		return job.result
	}

	if err := p.ctx.Err(); err != nil {
		p.fail(job, err)
		return job.result
	}

	ctx, cancel := context.WithTimeout(p.ctx, p.schedulingTimeout())
	defer cancel()

	select {
	case p.jobs <- job:
		p.metrics.mu.Lock()
		p.metrics.JobQueueSize = len(p.jobs)
		p.metrics.mu.Unlock()
	case <-ctx.Done():
		p.fail(job, fmt.Errorf("job scheduling timeout: %w", ctx.Err()))
	}

	return job.result
}

// Metrics exposes the live pool metrics.
func (p *Pool) Metrics() *Metrics {
	return p.metrics
}

/*
manage hands queued jobs to idle workers. A job's register bytes count as in
flight from the moment it is admitted, so the next admit already sees them;
the worker releases them when the run finishes.
*/
func (p *Pool) manage() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobs:
			if !p.admit() {
				p.fail(job, p.ctx.Err())
				return
			}

			bytes := amplitudeBytes(job.Qubits)
			p.metrics.recordDispatch(bytes)

			select {
			case <-p.ctx.Done():
				p.metrics.releaseDispatch(bytes)
				p.fail(job, p.ctx.Err())
				return
			case workerChan := <-p.workers:
				select {
				case workerChan <- job:
				case <-p.ctx.Done():
					p.metrics.releaseDispatch(bytes)
					p.fail(job, p.ctx.Err())
					return
				}
			}
		}
	}
}

/*
admit blocks while any regulator limits dispatch. It returns false only when
the pool is shutting down.
*/
func (p *Pool) admit() bool {
	throttled := false

	for {
		limited := false
		for _, regulator := range p.regulators {
			regulator.Observe(p.metrics)
			if regulator.Limit() {
				limited = true
			}
		}

		if !limited {
			if throttled {
				for _, regulator := range p.regulators {
					regulator.Renormalize()
				}
			}
			return true
		}

		if !throttled {
			throttled = true
			p.metrics.recordThrottle()
		}

		select {
		case <-p.ctx.Done():
			return false
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func (p *Pool) startWorker() {
	worker := &Worker{
		pool: p,
		jobs: make(chan Job),
	}

	p.workerMu.Lock()
	p.workerList = append(p.workerList, worker)
	p.workerMu.Unlock()

	p.metrics.mu.Lock()
	p.metrics.WorkerCount++
	p.metrics.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run(p.ctx)
	}()
}

func (p *Pool) fail(job Job, err error) {
	job.result <- Outcome{
		JobID:    job.ID,
		Err:      err,
		Duration: time.Since(job.StartTime),
	}
	close(job.result)
}

func (p *Pool) schedulingTimeout() time.Duration {
	if p.config.SchedulingTimeout > 0 {
		return p.config.SchedulingTimeout
	}
	return 5 * time.Second
}

/*
Close stops the workers, waits for in-flight runs to finish and fails any job
still queued with context.Canceled. Close is safe to call more than once.
*/
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.closeOnce.Do(func() {
		// Cancel first so a Schedule blocked on a full queue lets go of closeMu.
		p.cancel()

		p.closeMu.Lock()
		p.closed = true
		p.closeMu.Unlock()

		p.wg.Wait()

		for {
			select {
			case job := <-p.jobs:
				p.fail(job, context.Canceled)
			default:
				errnie.Info("Pool closed - %v", p.metrics.ExportMetrics())
				return
			}
		}
	})
}
