package qsearch

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// scale is deliberately non-unitary so the norm check has something to catch.
type scale complex128

func (s scale) Apply(r *Register) {
	for i := range r.amplitudes {
		r.amplitudes[i] *= complex128(s)
	}
}

func TestNewRegister(t *testing.T) {
	Convey("Given a qubit count", t, func() {
		Convey("When it is within range", func() {
			reg, err := NewRegister(3)

			Convey("It should start on |000⟩", func() {
				So(err, ShouldBeNil)
				So(reg.Qubits(), ShouldEqual, 3)
				So(reg.Size(), ShouldEqual, 8)
				So(reg.Amplitude(0), ShouldEqual, complex(1, 0))

				for i := 1; i < reg.Size(); i++ {
					So(reg.Amplitude(i), ShouldEqual, complex(0, 0))
				}

				So(reg.Norm(), ShouldEqual, 1.0)
			})
		})

		Convey("When it is out of range", func() {
			for _, n := range []int{-1, 0, MaxQubits + 1} {
				reg, err := NewRegister(n)
				So(reg, ShouldBeNil)
				So(errors.Is(err, ErrInvalidSize), ShouldBeTrue)
			}
		})
	})
}

func TestRegisterProbabilities(t *testing.T) {
	Convey("Given a register in uniform superposition", t, func() {
		reg, _ := NewRegister(2)
		reg.Apply(HadamardAll(2))
		before := reg.Amplitudes()

		Convey("It should yield one probability per basis state", func() {
			seen := 0
			for i, p := range reg.Probabilities() {
				So(i, ShouldEqual, seen)
				So(p, ShouldAlmostEqual, 0.25, 1e-12)
				seen++
			}
			So(seen, ShouldEqual, 4)
		})

		Convey("It should stop when the consumer stops", func() {
			seen := 0
			for range reg.Probabilities() {
				seen++
				if seen == 2 {
					break
				}
			}
			So(seen, ShouldEqual, 2)
		})

		Convey("It should not mutate the register", func() {
			for range reg.Probabilities() {
			}
			So(reg.Amplitudes(), ShouldResemble, before)
		})
	})
}

func TestRegisterCollapseAndClone(t *testing.T) {
	Convey("Given a superposed register", t, func() {
		reg, _ := NewRegister(3)
		reg.Apply(HadamardAll(3))

		Convey("A clone should be independent", func() {
			clone := reg.Clone()
			clone.Collapse(5)

			So(clone.Probability(5), ShouldEqual, 1.0)
			So(reg.Probability(5), ShouldAlmostEqual, 0.125, 1e-12)
		})

		Convey("Collapse should leave a single basis state", func() {
			reg.Collapse(6)

			for i, p := range reg.Probabilities() {
				if i == 6 {
					So(p, ShouldEqual, 1.0)
				} else {
					So(p, ShouldEqual, 0.0)
				}
			}
		})

		Convey("Dump should render the amplitudes", func() {
			So(reg.Dump(), ShouldContainSubstring, "complex128")
		})
	})
}

func TestRegisterCheckNorm(t *testing.T) {
	Convey("Given a register", t, func() {
		reg, _ := NewRegister(2)
		reg.Apply(HadamardAll(2))

		Convey("A unitary should keep the norm within tolerance", func() {
			So(reg.CheckNorm("hadamard", DefaultTolerance), ShouldBeNil)
		})

		Convey("A non-unitary operator should be reported as an invariant violation", func() {
			reg.Apply(scale(2))
			err := reg.CheckNorm("scale", DefaultTolerance)

			var invariant *InvariantError
			So(errors.As(err, &invariant), ShouldBeTrue)
			So(invariant.Stage, ShouldEqual, "scale")
			So(invariant.Norm, ShouldAlmostEqual, 4.0, 1e-9)
			So(err.Error(), ShouldContainSubstring, "invariant violated at scale")
		})
	})
}

func TestBitstring(t *testing.T) {
	Convey("Given basis indices", t, func() {
		Convey("Qubit 0 should be the rightmost character", func() {
			So(Bitstring(1, 3), ShouldEqual, "001")
			So(Bitstring(4, 3), ShouldEqual, "100")
			So(Bitstring(6, 4), ShouldEqual, "0110")
			So(Bitstring(0, 1), ShouldEqual, "0")
		})
	})
}
