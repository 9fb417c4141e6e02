package qsearch

/*
BuildDiffuser returns the inversion-about-the-mean operator 2|s⟩⟨s| − I for
an n-qubit register, where |s⟩ is the uniform superposition.

It follows H⊗ⁿ · (2|0⟩⟨0| − I) · H⊗ⁿ. The middle term is built as an X layer,
an n-qubit controlled Z and another X layer, which gives I − 2|0⟩⟨0|; the
trailing GlobalPhase supplies the missing −1 so the operator is exact rather
than correct only up to global phase.
*/
func BuildDiffuser(qubits int) (Operator, error) {
	if err := validateQubits(qubits, MaxQubits); err != nil {
		return nil, err
	}

	all := 1<<qubits - 1

	return Sequence{
		HadamardAll(qubits),
		PauliXMask(qubits, all),
		ControlledZ{Controls: allQubits(qubits)},
		PauliXMask(qubits, all),
		HadamardAll(qubits),
		GlobalPhase{},
	}, nil
}
