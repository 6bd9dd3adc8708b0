package mux

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-fdm/fdm/resample"
	"github.com/cwbudde/algo-fdm/fdm/signal"
	"github.com/cwbudde/algo-vecmath"
)

// Modulator stacks four baseband channels onto their carriers and sums
// them into one composite at the working rate. A Modulator is safe for
// concurrent use.
type Modulator struct {
	plan       Plan
	sourceRate int
	conv       *resample.Converter
}

// NewModulator validates the plan and prepares the source-to-working rate
// conversion.
func NewModulator(plan Plan, sourceRate int, opts ...resample.Option) (*Modulator, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	conv, err := resample.New(sourceRate, plan.WorkingRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("mux: source conversion: %w", err)
	}
	return &Modulator{plan: plan, sourceRate: sourceRate, conv: conv}, nil
}

// Plan returns the carrier plan the modulator was built with.
func (m *Modulator) Plan() Plan { return m.plan }

// SourceRate returns the baseband sample rate the modulator accepts.
func (m *Modulator) SourceRate() int { return m.sourceRate }

// Modulate raises each channel to the working rate, multiplies it by its
// carrier cosine and sums all four into a single composite, peak-normalized
// unless silent. Channels must share the modulator's source rate and one
// common length.
func (m *Modulator) Modulate(channels [Channels]signal.Signal) (signal.Signal, error) {
	for i, ch := range channels {
		if err := ch.Validate(); err != nil {
			return signal.Signal{}, fmt.Errorf("mux: channel %d: %w", i, err)
		}
		if ch.Rate != m.sourceRate {
			return signal.Signal{}, fmt.Errorf("%w: channel %d at %d Hz, want %d Hz",
				ErrRateMismatch, i, ch.Rate, m.sourceRate)
		}
		if ch.Len() != channels[0].Len() {
			return signal.Signal{}, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelLength, i, ch.Len(), channels[0].Len())
		}
	}

	var (
		shifted [Channels][]float64
		wg      sync.WaitGroup
	)
	for i := range channels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			up := m.conv.Convert(channels[i].Data)
			carrier := signal.Carrier(m.plan.Carriers[i].FreqHz, len(up), m.plan.WorkingRate)
			vecmath.MulBlockInPlace(up, carrier)
			shifted[i] = up
		}(i)
	}
	wg.Wait()

	sum := shifted[0]
	for i := 1; i < Channels; i++ {
		vecmath.AddBlockInPlace(sum, shifted[i])
	}
	if peak := signal.Peak(sum); peak > 0 {
		vecmath.ScaleBlockInPlace(sum, 1/peak)
	}
	return signal.Signal{Data: sum, Rate: m.plan.WorkingRate, Label: "composite"}, nil
}
