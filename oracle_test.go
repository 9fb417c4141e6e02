package qsearch

import (
	"errors"
	"math/cmplx"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func innerProduct(a, b []complex128) complex128 {
	var sum complex128
	for i := range a {
		sum += cmplx.Conj(a[i]) * b[i]
	}
	return sum
}

func TestBuildOracle(t *testing.T) {
	Convey("Given a three qubit register in uniform superposition", t, func() {
		reg, _ := NewRegister(3)
		reg.Apply(HadamardAll(3))
		before := reg.Amplitudes()

		Convey("When marking a set of targets", func() {
			targets := []int{1, 6}
			oracle, err := BuildOracle(3, targets)
			So(err, ShouldBeNil)

			reg.Apply(oracle)
			after := reg.Amplitudes()

			Convey("It should negate exactly the targets", func() {
				for i := range after {
					if i == 1 || i == 6 {
						So(real(after[i]), ShouldAlmostEqual, -real(before[i]), 1e-12)
					} else {
						So(real(after[i]), ShouldAlmostEqual, real(before[i]), 1e-12)
					}
					So(imag(after[i]), ShouldAlmostEqual, 0, 1e-12)
				}
			})

			Convey("The overlap should drop by twice the marked mass", func() {
				overlap := innerProduct(before, after)
				So(real(overlap), ShouldAlmostEqual, 1-2*(2.0/8), 1e-12)
				So(imag(overlap), ShouldAlmostEqual, 0, 1e-12)
			})

			Convey("It should not change any probability", func() {
				for i, p := range reg.Probabilities() {
					So(p, ShouldAlmostEqual, probability(before[i]), 1e-12)
				}
			})
		})

		Convey("When every basis state is a target", func() {
			oracle, _ := BuildOracle(3, []int{0, 1, 2, 3, 4, 5, 6, 7})
			reg.Apply(oracle)

			Convey("It should act as a global phase", func() {
				So(real(innerProduct(before, reg.Amplitudes())), ShouldAlmostEqual, -1, 1e-12)
			})
		})

		Convey("When a target is repeated", func() {
			oracle, _ := BuildOracle(3, []int{3, 3, 3})
			reg.Apply(oracle)

			Convey("It should be marked once", func() {
				So(real(reg.Amplitude(3)), ShouldAlmostEqual, -real(before[3]), 1e-12)
			})
		})
	})

	Convey("Given a dense target set on a wider register", t, func() {
		const qubits = 12
		size := 1 << qubits

		targets := make([]int, 0, size-1)
		for i := range size {
			if i != 1234 {
				targets = append(targets, i)
			}
		}

		oracle, err := BuildOracle(qubits, targets)
		So(err, ShouldBeNil)

		Convey("It should be one flip over the marked indices", func() {
			flip, ok := oracle.(PhaseFlip)
			So(ok, ShouldBeTrue)
			So(len(flip.Indices), ShouldEqual, size-1)
		})

		Convey("It should negate everything but the unmarked state", func() {
			reg, _ := NewRegister(qubits)
			reg.Apply(HadamardAll(qubits))
			before := reg.Amplitudes()

			reg.Apply(oracle)

			for i, amplitude := range reg.Amplitudes() {
				want := -real(before[i])
				if i == 1234 {
					want = real(before[i])
				}
				So(real(amplitude), ShouldAlmostEqual, want, 1e-12)
			}
		})
	})

	Convey("Given invalid inputs", t, func() {
		Convey("A target outside the register should be rejected", func() {
			for _, target := range []int{-1, 8, 100} {
				oracle, err := BuildOracle(3, []int{0, target})
				So(oracle, ShouldBeNil)
				So(errors.Is(err, ErrInvalidTarget), ShouldBeTrue)
			}
		})

		Convey("A bad width should be rejected", func() {
			_, err := BuildOracle(0, []int{0})
			So(errors.Is(err, ErrInvalidSize), ShouldBeTrue)
		})
	})
}

func TestNormalizeTargets(t *testing.T) {
	Convey("Given an unsorted target list with duplicates", t, func() {
		input := []int{5, 1, 5, 3}
		out, err := normalizeTargets(3, input)

		Convey("It should return a sorted set and leave the input alone", func() {
			So(err, ShouldBeNil)
			So(out, ShouldResemble, []int{1, 3, 5})
			So(input, ShouldResemble, []int{5, 1, 5, 3})
		})
	})
}
