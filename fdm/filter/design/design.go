package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdm/fdm/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

var (
	// ErrSampleRate reports a non-positive or non-finite sample rate.
	ErrSampleRate = errors.New("design: sample rate must be > 0")
	// ErrCutoff reports a cutoff outside the open interval (0, Nyquist).
	ErrCutoff = errors.New("design: cutoff must lie strictly between 0 and Nyquist")
	// ErrOrder reports a filter order below 1.
	ErrOrder = errors.New("design: order must be >= 1")
	// ErrBandEdges reports band edges that are not strictly increasing.
	ErrBandEdges = errors.New("design: band edges must satisfy low < high")
)

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
// A non-positive q falls back to 1/sqrt(2).
func Lowpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2), nil
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
// A non-positive q falls back to 1/sqrt(2).
func Highpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2), nil
}

func normalizedW0(freq, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, fmt.Errorf("%w: %v Hz at %v Hz", ErrCutoff, freq, sampleRate)
	}

	return 2 * math.Pi * freq / sampleRate, nil
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
