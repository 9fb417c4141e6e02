package qsearch

import (
	"fmt"
	"math"

	"github.com/theapemachine/errnie"
)

// Phase is the lifecycle position of a Grover run.
type Phase int

const (
	Uninitialized Phase = iota
	Superposed
	Iterating
	Measured
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Superposed:
		return "superposed"
	case Iterating:
		return "iterating"
	case Measured:
		return "measured"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

/*
Grover drives one search over an n-qubit register:

	Uninitialized → Superposed → Iterating(k) → Measured

Each transition has its own method so callers can inspect the register in
between; Run performs all of them. A Grover owns its register exclusively and
is not safe for concurrent use. Independent runs share nothing and can execute
in parallel (see Pool).
*/
type Grover struct {
	qubits     int
	targets    []int
	iterations int
	completed  int
	phase      Phase
	register   *Register
	oracle     Operator
	diffuser   Operator
	sampler    *Sampler
	config     *Config
}

// GroverOption configures a Grover run at construction.
type GroverOption func(*Grover)

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) GroverOption {
	return func(g *Grover) {
		g.config = cfg
	}
}

// WithEntropy sets the random source used for measurement.
func WithEntropy(entropy Entropy) GroverOption {
	return func(g *Grover) {
		g.sampler = NewSampler(entropy)
	}
}

/*
WithIterations overrides the computed iteration count. Values below 1 are
ignored.
*/
func WithIterations(k int) GroverOption {
	return func(g *Grover) {
		if k >= 1 {
			g.iterations = k
		}
	}
}

/*
NewGrover validates the inputs and builds the oracle and diffuser. The target
set is copied, sorted and deduplicated; the caller's slice is not retained.
*/
func NewGrover(qubits int, targets []int, opts ...GroverOption) (*Grover, error) {
	g := &Grover{phase: Uninitialized}

	for _, opt := range opts {
		opt(g)
	}

	if g.config == nil {
		g.config = NewConfig()
	}

	if err := validateQubits(qubits, g.config.MaxQubits); err != nil {
		return nil, err
	}

	if len(targets) == 0 {
		return nil, ErrEmptyTargetSet
	}

	marked, err := normalizeTargets(qubits, targets)
	if err != nil {
		return nil, err
	}

	register, err := NewRegister(qubits)
	if err != nil {
		return nil, err
	}

	oracle, err := BuildOracle(qubits, marked)
	if err != nil {
		return nil, err
	}

	diffuser, err := BuildDiffuser(qubits)
	if err != nil {
		return nil, err
	}

	g.qubits = qubits
	g.targets = marked
	g.register = register
	g.oracle = oracle
	g.diffuser = diffuser

	if g.iterations == 0 {
		g.iterations = Iterations(qubits, len(marked))
	}

	if g.sampler == nil {
		g.sampler = defaultSampler(g.config.Seed, qubits)
	}

	errnie.Info(
		"NewGrover - qubits %d, targets %v, iterations %d",
		qubits, marked, g.iterations,
	)

	return g, nil
}

/*
Iterations returns the number of oracle+diffuser rounds for m marked states
out of 2^n. Each round rotates the state by 2θ with sin θ = √(m/N), so the
success probability sin²((2k+1)θ) peaks at k = π/(4θ) − 1/2. The result is
that value rounded to the nearest integer (halves away from zero), and never
less than 1.

For N=4, m=1 this gives exactly 1 round and certainty; for N=8, m=1 it gives
2 rounds. The common shortcut round(π/4·√(N/m)) picks a different count in
the cases below, each time with a lower success probability:

	n  m   here  shortcut  P(here)  P(shortcut)
	2  1   1     2         1.0000   0.2500
	4  3   1     2         0.9492   0.6160
	7  1   8     9         0.9956   0.9878

Elsewhere, e.g. n=3 m=1, n=4 m=1 and n=10 m=1, the two agree.
*/
func Iterations(qubits, marked int) int {
	if marked < 1 {
		return 1
	}

	size := float64(int(1) << qubits)
	theta := math.Asin(math.Sqrt(math.Min(1, float64(marked)/size)))
	k := int(math.Round(math.Pi/(4*theta) - 0.5))

	return max(k, 1)
}

/*
defaultSampler seeds from the configured seed with the width as stream. A zero
seed means none was configured, so the sampler draws a random seed instead of
repeating the same samples for every run of that width.
*/
func defaultSampler(seed uint64, qubits int) *Sampler {
	if seed == 0 {
		return NewSampler(nil)
	}

	return NewSampler(NewEntropy(seed, uint64(qubits)))
}

// Superpose applies H to every qubit, spreading the mass evenly over all 2^n states.
func (g *Grover) Superpose() error {
	if g.phase != Uninitialized {
		return fmt.Errorf("%w: superpose from %s", ErrPhase, g.phase)
	}

	g.register.Apply(HadamardAll(g.qubits))

	if err := g.register.CheckNorm("superpose", g.config.Tolerance); err != nil {
		return err
	}

	g.phase = Superposed
	return nil
}

/*
Iterate applies oracle then diffuser, k times. The order within a round is
fixed. The norm is checked after every round; drift is reported as an
InvariantError.
*/
func (g *Grover) Iterate() error {
	if g.phase != Superposed {
		return fmt.Errorf("%w: iterate from %s", ErrPhase, g.phase)
	}

	g.phase = Iterating

	for g.completed < g.iterations {
		g.register.Apply(g.oracle, g.diffuser)
		g.completed++

		stage := fmt.Sprintf("iteration %d", g.completed)
		if err := g.register.CheckNorm(stage, g.config.Tolerance); err != nil {
			errnie.Debug("Grover.Iterate - %s\n%s", err, g.register.Dump())
			return err
		}

		errnie.Debug(
			"Grover.Iterate - round %d/%d, success %.6f",
			g.completed, g.iterations, g.SuccessProbability(),
		)
	}

	return nil
}

// Measure samples the final state. A single shot collapses the register.
func (g *Grover) Measure(shots int) (*Result, error) {
	if g.phase != Iterating || g.completed != g.iterations {
		return nil, fmt.Errorf("%w: measure from %s", ErrPhase, g.phase)
	}

	success := g.SuccessProbability()

	counts, err := g.sampler.Sample(g.register, shots)
	if err != nil {
		return nil, err
	}

	g.phase = Measured

	return &Result{
		Qubits:             g.qubits,
		Targets:            g.Targets(),
		Iterations:         g.iterations,
		Shots:              shots,
		Counts:             counts,
		SuccessProbability: success,
	}, nil
}

// Run drives every transition and returns the measurement.
func (g *Grover) Run(shots int) (*Result, error) {
	if err := g.Superpose(); err != nil {
		return nil, err
	}

	if err := g.Iterate(); err != nil {
		return nil, err
	}

	return g.Measure(shots)
}

// SuccessProbability is the current probability mass on the marked states.
func (g *Grover) SuccessProbability() float64 {
	var total float64
	for _, target := range g.targets {
		total += g.register.Probability(target)
	}
	return total
}

// Phase returns the lifecycle position of the run.
func (g *Grover) Phase() Phase {
	return g.phase
}

// Iterations returns the number of rounds this run applies.
func (g *Grover) Iterations() int {
	return g.iterations
}

// Targets returns a copy of the normalised target set.
func (g *Grover) Targets() []int {
	out := make([]int, len(g.targets))
	copy(out, g.targets)
	return out
}

// Register exposes the state for inspection. Mutating it breaks the run.
func (g *Grover) Register() *Register {
	return g.register
}

// Result is the outcome of a measured Grover run.
type Result struct {
	Qubits             int
	Targets            []int
	Iterations         int
	Shots              int
	Counts             Counts
	SuccessProbability float64
}

// Hits counts the shots that landed on a marked state.
func (r *Result) Hits() int {
	var hits int
	for _, target := range r.Targets {
		hits += r.Counts[target]
	}
	return hits
}

// Histogram keys the counts by MSB-first bit pattern of width Qubits.
func (r *Result) Histogram() map[string]int {
	return r.Counts.Bitstrings(r.Qubits)
}
