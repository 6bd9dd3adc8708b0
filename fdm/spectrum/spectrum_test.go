package spectrum

import (
	"errors"
	"math"
	"testing"
)

// binSine returns n samples of a sine with amplitude amp that completes
// exactly cycle periods in the block, landing on bin "cycle".
func binSine(amp float64, cycle, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*float64(cycle)*float64(i)/float64(n))
	}

	return out
}

func TestAnalyzeBinCountEven(t *testing.T) {
	s, err := Analyze(make([]float64, 1024), 44100)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if s.Bins() != 512 {
		t.Fatalf("Bins() = %d, want 512", s.Bins())
	}
	if len(s.Freqs) != 512 {
		t.Fatalf("len(Freqs) = %d, want 512", len(s.Freqs))
	}
}

func TestAnalyzeBinCountOdd(t *testing.T) {
	s, err := Analyze(make([]float64, 1001), 44100)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if s.Bins() != 500 {
		t.Fatalf("Bins() = %d, want 500", s.Bins())
	}
}

func TestAnalyzeBinSpacing(t *testing.T) {
	cases := []struct {
		n    int
		rate int
	}{
		{1024, 44100}, // power of two
		{1000, 48000}, // arbitrary length
	}
	for _, tc := range cases {
		s, err := Analyze(make([]float64, tc.n), tc.rate)
		if err != nil {
			t.Fatalf("Analyze(n=%d) error = %v", tc.n, err)
		}

		want := float64(tc.rate) / float64(tc.n)
		if got := s.Resolution(); math.Abs(got-want) > 1e-9 {
			t.Fatalf("n=%d: Resolution() = %v, want %v", tc.n, got, want)
		}
		if s.Freqs[0] != 0 {
			t.Fatalf("n=%d: Freqs[0] = %v, want 0", tc.n, s.Freqs[0])
		}
		if got := s.Freqs[3]; math.Abs(got-3*want) > 1e-9 {
			t.Fatalf("n=%d: Freqs[3] = %v, want %v", tc.n, got, 3*want)
		}
	}
}

func TestAnalyzeTonePowerOfTwo(t *testing.T) {
	const (
		n     = 1024
		cycle = 100
		amp   = 0.5
	)

	s, err := Analyze(binSine(amp, cycle, n), 44100)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := s.Mags[cycle]; math.Abs(got-amp/2) > 1e-9 {
		t.Fatalf("tone bin magnitude = %v, want %v", got, amp/2)
	}
	if bin, _ := s.Peak(); bin != cycle {
		t.Fatalf("Peak() bin = %d, want %d", bin, cycle)
	}
	// Away from the tone the spectrum is numerically silent.
	if leak := s.Mags[cycle+10]; leak > 1e-9 {
		t.Fatalf("leakage at bin %d: %v", cycle+10, leak)
	}
}

func TestAnalyzeToneArbitraryLength(t *testing.T) {
	const (
		n     = 900
		cycle = 45
		amp   = 0.8
	)

	s, err := Analyze(binSine(amp, cycle, n), 48000)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got := s.Mags[cycle]; math.Abs(got-amp/2) > 1e-9 {
		t.Fatalf("tone bin magnitude = %v, want %v", got, amp/2)
	}
	if bin, freq := s.Peak(); bin != cycle || math.Abs(freq-float64(cycle)*48000.0/n) > 1e-9 {
		t.Fatalf("Peak() = (%d, %v), want bin %d", bin, freq, cycle)
	}
}

func TestAnalyzeDC(t *testing.T) {
	x := make([]float64, 256)
	for i := range x {
		x[i] = 0.25
	}

	s, err := Analyze(x, 8000)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got := s.Mags[0]; math.Abs(got-0.25) > 1e-12 {
		t.Fatalf("DC bin = %v, want 0.25", got)
	}
}

func TestAnalyzeDoesNotModifyInput(t *testing.T) {
	x := binSine(1, 3, 64)
	orig := make([]float64, len(x))
	copy(orig, x)

	if _, err := Analyze(x, 8000); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	for i := range x {
		if x[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(nil, 44100); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty input: error = %v, want ErrEmpty", err)
	}
	if _, err := Analyze([]float64{1, 2}, 0); !errors.Is(err, ErrRate) {
		t.Fatalf("zero rate: error = %v, want ErrRate", err)
	}
}

func TestPathsAgreeOnTone(t *testing.T) {
	// The same tone analyzed at a power-of-two and a nearby arbitrary
	// length must report the same amplitude at the tone bin.
	const amp = 0.6

	pow2, err := Analyze(binSine(amp, 32, 512), 44100)
	if err != nil {
		t.Fatalf("Analyze(512) error = %v", err)
	}
	arb, err := Analyze(binSine(amp, 32, 500), 44100)
	if err != nil {
		t.Fatalf("Analyze(500) error = %v", err)
	}

	if d := math.Abs(pow2.Mags[32] - arb.Mags[32]); d > 1e-9 {
		t.Fatalf("tone magnitude differs between paths by %v", d)
	}
}
