package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT bin without computing the full spectrum,
// which is all the tone measurements in this module need. The analyzer is
// stateful: Power and Magnitude reflect every sample processed since the
// last Reset.
//
// Spectral leakage applies as with any rectangular-window DFT: the target
// frequency should complete close to an integer number of cycles within the
// processed block for an accurate reading.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	count      int
}

// NewGoertzel creates a Goertzel analyzer for frequency (Hz) at sampleRate.
// frequency must lie in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrRate, sampleRate)
	}
	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("spectrum: goertzel frequency must be in [0, rate/2]: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
	g.count = 0
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.count += len(input)
}

// Power returns |X[k]|^2 of the target bin over the processed samples.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X[k]| of the target bin over the processed samples.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Amplitude estimates the peak amplitude of a sine at the target frequency:
// 2*|X[k]|/N. Exact when the tone completes integer cycles in the block.
func (g *Goertzel) Amplitude() float64 {
	if g.count == 0 {
		return 0
	}

	return 2 * g.Magnitude() / float64(g.count)
}

// ToneLevel measures the amplitude of a single frequency component of x in
// one shot. It is the Goertzel equivalent of reading one Analyze bin.
func ToneLevel(x []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(x)

	return g.Amplitude(), nil
}
