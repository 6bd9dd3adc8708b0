package mux

import (
	"errors"
	"fmt"
)

// Channels is the number of baseband channels a Plan carries.
const Channels = 4

var (
	// ErrWorkingRate indicates a non-positive working sample rate.
	ErrWorkingRate = errors.New("mux: working rate must be > 0")
	// ErrCarrierFreq indicates a non-positive carrier frequency.
	ErrCarrierFreq = errors.New("mux: carrier frequency must be > 0")
	// ErrHalfWidth indicates a non-positive band half width.
	ErrHalfWidth = errors.New("mux: half width must be > 0")
	// ErrRecoveryCutoff indicates a non-positive recovery cutoff.
	ErrRecoveryCutoff = errors.New("mux: recovery cutoff must be > 0")
	// ErrBandOverlap indicates two carrier bands that share spectrum.
	ErrBandOverlap = errors.New("mux: carrier bands overlap")
	// ErrBandBeyondNyquist indicates a band edge at or above the working
	// Nyquist frequency.
	ErrBandBeyondNyquist = errors.New("mux: carrier band exceeds working Nyquist")
	// ErrRateMismatch indicates a signal whose rate differs from the plan.
	ErrRateMismatch = errors.New("mux: sample rate differs from plan")
	// ErrChannelLength indicates channels of unequal length.
	ErrChannelLength = errors.New("mux: channels must share one length")
)

// Carrier assigns one channel its slice of the working-rate spectrum.
type Carrier struct {
	// FreqHz is the carrier center frequency.
	FreqHz float64
	// HalfWidthHz is half the occupied bandwidth around FreqHz.
	HalfWidthHz float64
	// RecoveryCutoffHz is the demodulation low-pass cutoff that keeps the
	// recovered baseband and rejects the double-frequency image.
	RecoveryCutoffHz float64
}

// Band returns the occupied interval [FreqHz-HalfWidthHz, FreqHz+HalfWidthHz].
func (c Carrier) Band() (low, high float64) {
	return c.FreqHz - c.HalfWidthHz, c.FreqHz + c.HalfWidthHz
}

// Plan fixes the working sample rate and the carrier assignment for all
// four channels.
type Plan struct {
	WorkingRate int
	Carriers    [Channels]Carrier
}

// DefaultPlan spaces the four carriers across a 192 kHz working spectrum.
// Adjacent bands touch at most at their edges and the top band stays below
// the working Nyquist.
func DefaultPlan() Plan {
	return Plan{
		WorkingRate: 192000,
		Carriers: [Channels]Carrier{
			{FreqHz: 10000, HalfWidthHz: 4000, RecoveryCutoffHz: 2500},
			{FreqHz: 25000, HalfWidthHz: 6000, RecoveryCutoffHz: 5500},
			{FreqHz: 45000, HalfWidthHz: 10000, RecoveryCutoffHz: 10500},
			{FreqHz: 70000, HalfWidthHz: 15000, RecoveryCutoffHz: 15000},
		},
	}
}

// Validate checks the plan geometry: positive rate and carrier parameters,
// pairwise disjoint bands (touching edges are allowed) and every band edge
// strictly below the working Nyquist.
func (p Plan) Validate() error {
	if p.WorkingRate <= 0 {
		return fmt.Errorf("%w: got %d", ErrWorkingRate, p.WorkingRate)
	}
	nyquist := float64(p.WorkingRate) / 2
	for i, c := range p.Carriers {
		if c.FreqHz <= 0 {
			return fmt.Errorf("%w: carrier %d at %g Hz", ErrCarrierFreq, i, c.FreqHz)
		}
		if c.HalfWidthHz <= 0 {
			return fmt.Errorf("%w: carrier %d with %g Hz", ErrHalfWidth, i, c.HalfWidthHz)
		}
		if c.RecoveryCutoffHz <= 0 {
			return fmt.Errorf("%w: carrier %d with %g Hz", ErrRecoveryCutoff, i, c.RecoveryCutoffHz)
		}
		if _, high := c.Band(); high >= nyquist {
			return fmt.Errorf("%w: carrier %d reaches %g Hz, Nyquist is %g Hz",
				ErrBandBeyondNyquist, i, high, nyquist)
		}
	}
	for i := 0; i < Channels; i++ {
		lowI, highI := p.Carriers[i].Band()
		for j := i + 1; j < Channels; j++ {
			lowJ, highJ := p.Carriers[j].Band()
			if lowJ < highI && lowI < highJ {
				return fmt.Errorf("%w: carriers %d and %d", ErrBandOverlap, i, j)
			}
		}
	}
	return nil
}
