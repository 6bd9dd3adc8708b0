package biquad

import (
	"math"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// twoTapAverage is a simple FIR lowpass: y[n] = 0.5*x[n] + 0.5*x[n-1].
func twoTapAverage() Coefficients {
	return Coefficients{B0: 0.5, B1: 0.5}
}

func TestProcessSampleHandTraced(t *testing.T) {
	// DF-II-T traced by hand for an impulse input.
	//
	// n=0: y=0.25, d0=0.5+0.05=0.55, d1=0.25-0.01=0.24
	// n=1: y=0.55, d0=0.11+0.24=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.07-0.022=0.048, d1=-0.014
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})

	want := []float64{0.25, 0.55, 0.35}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessSamplePassthrough(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})
	for i, x := range []float64{1, 0, -1, 0.5, 0.25} {
		if y := s.ProcessSample(x); !almostEqual(y, x, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSamplePureDelay(t *testing.T) {
	// B1=1 alone delays the input by one sample.
	s := NewSection(Coefficients{B1: 1})
	input := []float64{1, 2, 3, 4, 5}
	want := []float64{0, 1, 2, 3, 4}
	for i, x := range input {
		if y := s.ProcessSample(x); !almostEqual(y, want[i], eps) {
			t.Fatalf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestProcessBlockMatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}

	// Odd length exercises the unrolled loop's tail sample.
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1}

	s1 := NewSection(c)
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(c)
	block := make([]float64, len(input))
	copy(block, input)
	s2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Fatalf("sample %d: ProcessBlock=%.15f, ProcessSample=%.15f", i, block[i], ref[i])
		}
	}
}

func TestProcessBlockToMatchesSampleAndPreservesSrc(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	orig := make([]float64, len(input))
	copy(orig, input)

	s1 := NewSection(c)
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(c)
	dst := make([]float64, len(input))
	s2.ProcessBlockTo(dst, input)

	for i := range dst {
		if !almostEqual(dst[i], ref[i], eps) {
			t.Fatalf("sample %d: ProcessBlockTo=%.15f, ProcessSample=%.15f", i, dst[i], ref[i])
		}
		if input[i] != orig[i] {
			t.Fatalf("src modified at index %d", i)
		}
	}
}

func TestResetClearsState(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)
	s.ProcessSample(1)
	s.ProcessSample(0.5)
	s.Reset()

	// From zero state the impulse response must repeat exactly.
	if y := s.ProcessSample(1); !almostEqual(y, 0.25, eps) {
		t.Fatalf("after Reset: got %v, want 0.25", y)
	}
}

func TestStableSectionDecays(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)
	s.ProcessSample(1)

	var last float64
	for range 10000 {
		last = s.ProcessSample(0)
	}
	if math.Abs(last) > 1e-100 {
		t.Fatalf("impulse response did not decay: %v", last)
	}
}

func TestTwoTapAverageStep(t *testing.T) {
	s := NewSection(twoTapAverage())
	want := []float64{0.5, 1, 1, 1}
	for i, w := range want {
		if y := s.ProcessSample(1); !almostEqual(y, w, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, y, w)
		}
	}
}
