package qsearch

import (
	"fmt"
	"math"
)

/*
Operator is a unitary acting on a Register in place. Operators are immutable
once built and no implementation does more than one O(2^n) pass over the
amplitude vector.
*/
type Operator interface {
	Apply(r *Register)
}

var invSqrt2 = complex(1/math.Sqrt2, 0)

// Hadamard applies H = 1/√2 · [[1, 1], [1, -1]] to a single qubit.
type Hadamard struct {
	Qubit int
}

func (h Hadamard) Apply(r *Register) {
	bit := qubitMask(r, h.Qubit)

	for i := range r.amplitudes {
		if i&bit != 0 {
			continue
		}

		j := i | bit
		alpha, beta := r.amplitudes[i], r.amplitudes[j]
		r.amplitudes[i] = (alpha + beta) * invSqrt2
		r.amplitudes[j] = (alpha - beta) * invSqrt2
	}
}

// PauliX flips a single qubit by swapping every amplitude pair it separates.
type PauliX struct {
	Qubit int
}

func (x PauliX) Apply(r *Register) {
	bit := qubitMask(r, x.Qubit)

	for i := range r.amplitudes {
		if i&bit != 0 {
			continue
		}

		j := i | bit
		r.amplitudes[i], r.amplitudes[j] = r.amplitudes[j], r.amplitudes[i]
	}
}

/*
ControlledZ negates the amplitude of every basis state in which all listed
qubits are 1. The gate is symmetric in its qubits, so there is no separate
target: a single entry is a plain Z, all qubits is the n-qubit MCZ.
*/
type ControlledZ struct {
	Controls []int
}

func (cz ControlledZ) Apply(r *Register) {
	mask := 0
	for _, q := range cz.Controls {
		mask |= qubitMask(r, q)
	}

	for i := range r.amplitudes {
		if i&mask == mask {
			r.amplitudes[i] = -r.amplitudes[i]
		}
	}
}

/*
PhaseFlip negates the amplitudes at the listed basis indices and nothing else.
It touches only those entries, so its cost is O(len(Indices)) however wide the
register is. Indices must be distinct; a repeated index is flipped back.
*/
type PhaseFlip struct {
	Indices []int
}

func (pf PhaseFlip) Apply(r *Register) {
	for _, i := range pf.Indices {
		if i < 0 || i >= len(r.amplitudes) {
			panic(fmt.Sprintf("qsearch: index %d outside %d-qubit register", i, r.qubits))
		}
		r.amplitudes[i] = -r.amplitudes[i]
	}
}

// GlobalPhase multiplies every amplitude by -1.
type GlobalPhase struct{}

func (GlobalPhase) Apply(r *Register) {
	for i := range r.amplitudes {
		r.amplitudes[i] = -r.amplitudes[i]
	}
}

// Sequence applies its operators in order. Order matters; it is never rearranged.
type Sequence []Operator

func (s Sequence) Apply(r *Register) {
	for _, op := range s {
		op.Apply(r)
	}
}

// HadamardAll returns H on every qubit of an n-qubit register.
func HadamardAll(qubits int) Sequence {
	seq := make(Sequence, qubits)
	for q := range qubits {
		seq[q] = Hadamard{Qubit: q}
	}
	return seq
}

// PauliXMask returns X on every qubit whose bit is set in mask.
func PauliXMask(qubits, mask int) Sequence {
	seq := make(Sequence, 0, qubits)
	for q := range qubits {
		if mask&(1<<q) != 0 {
			seq = append(seq, PauliX{Qubit: q})
		}
	}
	return seq
}

// allQubits lists 0..n-1.
func allQubits(qubits int) []int {
	out := make([]int, qubits)
	for q := range out {
		out[q] = q
	}
	return out
}

// qubitMask panics on a qubit the register does not have; builders validate first.
func qubitMask(r *Register, qubit int) int {
	if qubit < 0 || qubit >= r.qubits {
		panic(fmt.Sprintf("qsearch: qubit %d outside %d-qubit register", qubit, r.qubits))
	}
	return 1 << qubit
}
