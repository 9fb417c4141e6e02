package qsearch

import (
	"fmt"
	"iter"
	"math"
	"math/cmplx"

	"github.com/davecgh/go-spew/spew"
)

// MaxQubits caps the register width. A register holds 2^n complex128
// amplitudes, so 24 qubits is 256MiB of state.
const MaxQubits = 24

// DefaultTolerance bounds the allowed drift of total probability mass.
const DefaultTolerance = 1e-6

/*
Register is the amplitude vector of an n-qubit system. Bit i of a basis index
is the state of qubit i. A Register is owned by exactly one run and is not safe
for concurrent mutation.
*/
type Register struct {
	qubits     int
	amplitudes []complex128
}

/*
NewRegister allocates a register of n qubits with all amplitude mass on |0…0⟩.
*/
func NewRegister(qubits int) (*Register, error) {
	if err := validateQubits(qubits, MaxQubits); err != nil {
		return nil, err
	}

	amplitudes := make([]complex128, 1<<qubits)
	amplitudes[0] = 1 + 0i

	return &Register{
		qubits:     qubits,
		amplitudes: amplitudes,
	}, nil
}

func validateQubits(qubits, limit int) error {
	if limit > MaxQubits {
		limit = MaxQubits
	}

	if qubits < 1 || qubits > limit {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSize, qubits, limit)
	}

	return nil
}

// Qubits returns the register width.
func (r *Register) Qubits() int {
	return r.qubits
}

// Size returns the number of basis states, 2^n.
func (r *Register) Size() int {
	return len(r.amplitudes)
}

// Apply runs the operators against the register in the given order.
func (r *Register) Apply(ops ...Operator) {
	for _, op := range ops {
		op.Apply(r)
	}
}

// Amplitude returns the amplitude of a single basis state.
func (r *Register) Amplitude(index int) complex128 {
	return r.amplitudes[index]
}

// Amplitudes returns a copy of the state vector.
func (r *Register) Amplitudes() []complex128 {
	out := make([]complex128, len(r.amplitudes))
	copy(out, r.amplitudes)
	return out
}

/*
Probabilities yields (index, |amplitude|²) for every basis state in index
order. It reads the register lazily and never mutates it, so the register
must not be changed while the sequence is being consumed.
*/
func (r *Register) Probabilities() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i, amplitude := range r.amplitudes {
			if !yield(i, probability(amplitude)) {
				return
			}
		}
	}
}

// Probability returns |amplitude|² for a single basis state.
func (r *Register) Probability(index int) float64 {
	return probability(r.amplitudes[index])
}

// Norm returns the total probability mass of the register.
func (r *Register) Norm() float64 {
	var total float64
	for _, amplitude := range r.amplitudes {
		total += probability(amplitude)
	}
	return total
}

// CheckNorm returns an InvariantError when the mass drifts more than tol from 1.
func (r *Register) CheckNorm(stage string, tol float64) error {
	norm := r.Norm()

	if math.Abs(norm-1) > tol {
		return &InvariantError{Stage: stage, Norm: norm, Tol: tol}
	}

	return nil
}

/*
Collapse overwrites the register with the basis state index, amplitude 1.
This is the destructive half of a single-shot measurement.
*/
func (r *Register) Collapse(index int) {
	clear(r.amplitudes)
	r.amplitudes[index] = 1 + 0i
}

// Clone returns an independent copy of the register.
func (r *Register) Clone() *Register {
	return &Register{
		qubits:     r.qubits,
		amplitudes: r.Amplitudes(),
	}
}

// Dump renders the raw state vector for debug output.
func (r *Register) Dump() string {
	return spew.Sdump(r.amplitudes)
}

func probability(amplitude complex128) float64 {
	magnitude := cmplx.Abs(amplitude)
	return magnitude * magnitude
}

// Bitstring renders index as a fixed-width bit pattern, qubit n-1 leftmost.
func Bitstring(index, width int) string {
	return fmt.Sprintf("%0*b", width, index)
}
