package qsearch

import (
	"fmt"

	"golang.org/x/exp/slices"
)

/*
BuildOracle returns the phase oracle for the given marked states: it negates
the amplitude of every index in targets and leaves all other amplitudes alone.

The oracle is a single PhaseFlip over the sorted, deduplicated targets, so one
application costs O(|targets|) and never more than one pass over the vector.
Marking |t⟩ with the circuit identity X·MCZ·X per target would cost
O(|targets|·n·2^n) instead, which approaches O(n·4^n) for dense target sets.
Duplicate targets are marked once.
*/
func BuildOracle(qubits int, targets []int) (Operator, error) {
	if err := validateQubits(qubits, MaxQubits); err != nil {
		return nil, err
	}

	marked, err := normalizeTargets(qubits, targets)
	if err != nil {
		return nil, err
	}

	return PhaseFlip{Indices: marked}, nil
}

// normalizeTargets validates range, then returns a sorted, duplicate-free copy.
func normalizeTargets(qubits int, targets []int) ([]int, error) {
	size := 1 << qubits

	for _, target := range targets {
		if target < 0 || target >= size {
			return nil, fmt.Errorf(
				"%w: %d (want 0..%d)", ErrInvalidTarget, target, size-1,
			)
		}
	}

	out := slices.Clone(targets)
	slices.Sort(out)
	return slices.Compact(out), nil
}
