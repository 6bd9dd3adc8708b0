package signal

import (
	"fmt"
	"math"
)

// Sine returns n samples of amplitude*sin(2*pi*freqHz*t) at the given rate,
// with t starting at 0.
func Sine(freqHz, amplitude float64, n, rate int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", n)
	}

	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrRate, rate)
	}

	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / float64(rate)

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// Carrier returns n samples of cos(2*pi*freqHz*t) at the given rate, the
// mixing waveform used for modulation and coherent demodulation. The time
// axis starts at 0, so modulator and demodulator stay phase-aligned.
func Carrier(freqHz float64, n, rate int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / float64(rate)

	for i := range out {
		out[i] = math.Cos(step * float64(i))
	}

	return out
}

// StereoTone returns a two-tone stereo source with leftHz on the left
// channel and rightHz on the right, both at the given amplitude.
func StereoTone(leftHz, rightHz, amplitude, duration float64, rate int, name string) (Stereo, error) {
	if duration <= 0 {
		return Stereo{}, fmt.Errorf("signal: tone duration must be > 0: %f", duration)
	}

	if rate <= 0 {
		return Stereo{}, fmt.Errorf("%w: %d", ErrRate, rate)
	}

	n := int(duration * float64(rate))

	left, err := Sine(leftHz, amplitude, n, rate)
	if err != nil {
		return Stereo{}, err
	}

	right, err := Sine(rightHz, amplitude, n, rate)
	if err != nil {
		return Stereo{}, err
	}

	return Stereo{Left: left, Right: right, Rate: rate, Name: name}, nil
}
