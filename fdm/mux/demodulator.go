package mux

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-fdm/fdm/filter/biquad"
	"github.com/cwbudde/algo-fdm/fdm/filter/design"
	"github.com/cwbudde/algo-fdm/fdm/resample"
	"github.com/cwbudde/algo-fdm/fdm/signal"
	"github.com/cwbudde/algo-vecmath"
)

// isolationOrder is the Butterworth order of both the band isolation and
// the recovery low-pass stage.
const isolationOrder = 4

// edgeMarginHz keeps isolation band edges away from DC and from the
// working Nyquist, where the bilinear designs degenerate.
const edgeMarginHz = 100

// Demodulator recovers the four baseband channels from a composite. A
// Demodulator is safe for concurrent use.
type Demodulator struct {
	plan       Plan
	targetRate int
	conv       *resample.Converter
	isolation  [Channels][]biquad.Coefficients
	recovery   [Channels][]biquad.Coefficients
}

// NewDemodulator validates the plan and designs the per-carrier isolation
// and recovery filters for the given target rate.
func NewDemodulator(plan Plan, targetRate int, opts ...resample.Option) (*Demodulator, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	conv, err := resample.New(plan.WorkingRate, targetRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("mux: target conversion: %w", err)
	}

	d := &Demodulator{plan: plan, targetRate: targetRate, conv: conv}
	workRate := float64(plan.WorkingRate)
	nyquist := workRate / 2
	for i, c := range plan.Carriers {
		low, high := c.Band()
		low = math.Max(low, edgeMarginHz)
		high = math.Min(high, nyquist-edgeMarginHz)
		d.isolation[i], err = design.ButterworthBand(low, high, isolationOrder, workRate)
		if err != nil {
			return nil, fmt.Errorf("mux: carrier %d isolation: %w", i, err)
		}
		d.recovery[i], err = design.ButterworthLP(c.RecoveryCutoffHz, isolationOrder, workRate)
		if err != nil {
			return nil, fmt.Errorf("mux: carrier %d recovery: %w", i, err)
		}
	}
	return d, nil
}

// Plan returns the carrier plan the demodulator was built with.
func (d *Demodulator) Plan() Plan { return d.plan }

// TargetRate returns the baseband sample rate the demodulator emits.
func (d *Demodulator) TargetRate() int { return d.targetRate }

// Demodulate recovers the four channels from a composite at the working
// rate. Per carrier it isolates the band, mixes by 2*cos back to baseband,
// low-passes at the recovery cutoff, decimates to the target rate and
// peak-normalizes unless silent.
func (d *Demodulator) Demodulate(composite signal.Signal) ([Channels]signal.Signal, error) {
	var out [Channels]signal.Signal
	if err := composite.Validate(); err != nil {
		return out, fmt.Errorf("mux: composite: %w", err)
	}
	if composite.Rate != d.plan.WorkingRate {
		return out, fmt.Errorf("%w: composite at %d Hz, want %d Hz",
			ErrRateMismatch, composite.Rate, d.plan.WorkingRate)
	}

	var wg sync.WaitGroup
	for i := range d.plan.Carriers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			band := biquad.NewChain(d.isolation[i]).Apply(composite.Data)
			carrier := signal.Carrier(d.plan.Carriers[i].FreqHz, len(band), d.plan.WorkingRate)
			vecmath.MulBlockInPlace(band, carrier)
			vecmath.ScaleBlockInPlace(band, 2)
			base := biquad.NewChain(d.recovery[i]).Apply(band)
			rec := d.conv.Convert(base)
			if peak := signal.Peak(rec); peak > 0 {
				vecmath.ScaleBlockInPlace(rec, 1/peak)
			}
			out[i] = signal.Signal{
				Data:  rec,
				Rate:  d.targetRate,
				Label: fmt.Sprintf("recovered-%d", i),
			}
		}(i)
	}
	wg.Wait()
	return out, nil
}
