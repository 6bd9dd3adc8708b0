package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestNewChainCounts(t *testing.T) {
	c := NewChain([]Coefficients{{B0: 1}, {B0: 1}})
	if c.NumSections() != 2 {
		t.Fatalf("NumSections() = %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("Order() = %d, want 4", c.Order())
	}
	if c.Gain() != 1 {
		t.Fatalf("Gain() = %v, want 1", c.Gain())
	}
}

func TestChainCascadeMatchesManual(t *testing.T) {
	a := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	b := Coefficients{B0: 0.5, B1: 0.5}

	chain := NewChain([]Coefficients{a, b})
	sa := NewSection(a)
	sb := NewSection(b)

	for i, x := range []float64{1, 0.5, -0.3, 0.7, 0} {
		want := sb.ProcessSample(sa.ProcessSample(x))
		if got := chain.ProcessSample(x); !almostEqual(got, want, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestChainGainScalesInput(t *testing.T) {
	chain := NewChain([]Coefficients{{B0: 1}}, WithGain(0.5))
	if y := chain.ProcessSample(1); !almostEqual(y, 0.5, eps) {
		t.Fatalf("got %v, want 0.5", y)
	}
}

func TestApplyMatchesProcessSample(t *testing.T) {
	coeffs := []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.5, B1: 0.5},
	}
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2}
	orig := make([]float64, len(input))
	copy(orig, input)

	ref := NewChain(coeffs)
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	chain := NewChain(coeffs)
	got := chain.Apply(input)

	if len(got) != len(input) {
		t.Fatalf("len = %d, want %d", len(got), len(input))
	}
	for i := range got {
		if !almostEqual(got[i], want[i], eps) {
			t.Fatalf("sample %d: Apply=%.15f, ProcessSample=%.15f", i, got[i], want[i])
		}
		if input[i] != orig[i] {
			t.Fatalf("Apply modified src at index %d", i)
		}
	}
}

func TestApplyIsRepeatable(t *testing.T) {
	coeffs := []Coefficients{{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}}
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1}

	chain := NewChain(coeffs)
	first := chain.Apply(input)
	second := chain.Apply(input)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs between runs: %v != %v", i, first[i], second[i])
		}
	}
}

func TestApplyWithGain(t *testing.T) {
	chain := NewChain([]Coefficients{{B0: 1}}, WithGain(2))
	got := chain.Apply([]float64{1, -0.5})
	if !almostEqual(got[0], 2, eps) || !almostEqual(got[1], -1, eps) {
		t.Fatalf("got %v, want [2 -1]", got)
	}
}

func TestApplyEmptyChainCopies(t *testing.T) {
	chain := NewChain(nil)
	in := []float64{1, 2, 3}
	got := chain.Apply(in)
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], in[i])
		}
	}
	got[0] = 99
	if in[0] != 1 {
		t.Fatalf("Apply shares backing buffer with src")
	}
}

func TestImpulseResponsePassthrough(t *testing.T) {
	chain := NewChain([]Coefficients{{B0: 1}})
	ir := chain.ImpulseResponse(4)
	want := []float64{1, 0, 0, 0}
	for i := range want {
		if !almostEqual(ir[i], want[i], eps) {
			t.Fatalf("ir[%d] = %v, want %v", i, ir[i], want[i])
		}
	}
}

func TestResponseMatchesMagnitudeSquared(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	for _, f := range []float64{0, 100, 1000, 10000, 22050} {
		h := cmplx.Abs(c.Response(f, 44100))
		m := math.Sqrt(c.MagnitudeSquared(f, 44100))
		if !almostEqual(h, m, 1e-9) {
			t.Fatalf("f=%v: |Response|=%v, sqrt(MagnitudeSquared)=%v", f, h, m)
		}
	}
}

func TestTwoTapAverageResponseEdges(t *testing.T) {
	// y[n] = 0.5*x[n] + 0.5*x[n-1]: unity at DC, null at Nyquist.
	chain := NewChain([]Coefficients{twoTapAverage()})

	if g := cmplx.Abs(chain.Response(0, 48000)); !almostEqual(g, 1, 1e-12) {
		t.Fatalf("DC gain = %v, want 1", g)
	}
	if g := cmplx.Abs(chain.Response(24000, 48000)); g > 1e-12 {
		t.Fatalf("Nyquist gain = %v, want 0", g)
	}
}
