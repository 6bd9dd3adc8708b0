package bank

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-fdm/fdm/filter/biquad"
	"github.com/cwbudde/algo-fdm/fdm/filter/design"
	"github.com/cwbudde/algo-fdm/fdm/signal"
)

// Slots is the number of channel slots in the bank. The carrier plan
// downstream assigns one carrier per slot.
const Slots = 4

var (
	// ErrRate reports a non-positive bank sample rate.
	ErrRate = errors.New("bank: sample rate must be > 0")
	// ErrRateMismatch reports a channel whose rate differs from the bank's.
	ErrRateMismatch = errors.New("bank: channel rate differs from bank rate")
	// ErrKind reports an unknown filter kind in a slot spec.
	ErrKind = errors.New("bank: unknown filter kind")
)

// Kind selects the filter family of a slot.
type Kind int

const (
	// KindLowPass passes everything below HighHz.
	KindLowPass Kind = iota
	// KindBandPass passes the band between LowHz and HighHz.
	KindBandPass
	// KindHighPass passes everything above LowHz.
	KindHighPass
)

// String returns the conventional name of the filter family.
func (k Kind) String() string {
	switch k {
	case KindLowPass:
		return "low-pass"
	case KindBandPass:
		return "band-pass"
	case KindHighPass:
		return "high-pass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SlotSpec describes one slot's filter: the family, the passband edges in
// Hz (LowHz is unused for low-pass, HighHz for high-pass), the Butterworth
// order, and a human-readable account of what the slot keeps.
type SlotSpec struct {
	Kind        Kind
	LowHz       float64
	HighHz      float64
	Order       int
	Description string
}

// design returns the coefficient cascade realizing the slot at rate.
func (s SlotSpec) design(rate float64) ([]biquad.Coefficients, error) {
	switch s.Kind {
	case KindLowPass:
		return design.ButterworthLP(s.HighHz, s.Order, rate)
	case KindBandPass:
		return design.ButterworthBand(s.LowHz, s.HighHz, s.Order, rate)
	case KindHighPass:
		return design.ButterworthHP(s.LowHz, s.Order, rate)
	default:
		return nil, fmt.Errorf("%w: %d", ErrKind, int(s.Kind))
	}
}

// DefaultSlots returns the fixed four-slot layout: lows, mid/vocal band,
// high-mid presence band, and highs, all 4th-order Butterworth.
func DefaultSlots() [Slots]SlotSpec {
	return [Slots]SlotSpec{
		{Kind: KindLowPass, HighHz: 2000, Order: 4, Description: "isolates low-frequency content"},
		{Kind: KindBandPass, LowHz: 2000, HighHz: 5000, Order: 4, Description: "captures mid/vocal range"},
		{Kind: KindBandPass, LowHz: 5000, HighHz: 10000, Order: 4, Description: "captures high-mid presence"},
		{Kind: KindHighPass, LowHz: 10000, Order: 4, Description: "retains high-frequency detail"},
	}
}

// Bank is a four-slot filter bank fixed to one sample rate. Each slot's
// cascade is designed once at construction; Apply instantiates fresh filter
// state per call, so a Bank is safe for concurrent use.
type Bank struct {
	slots  [Slots]SlotSpec
	rate   int
	coeffs [Slots][]biquad.Coefficients
}

// New validates all four slot designs against rate and returns the bank.
// A cutoff at or above Nyquist surfaces here as a design error, before any
// audio moves.
func New(slots [Slots]SlotSpec, rate int) (*Bank, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrRate, rate)
	}

	b := &Bank{slots: slots, rate: rate}
	for i, s := range slots {
		coeffs, err := s.design(float64(rate))
		if err != nil {
			return nil, fmt.Errorf("bank: slot %d (%s): %w", i, s.Kind, err)
		}

		b.coeffs[i] = coeffs
	}

	return b, nil
}

// Apply filters each channel through its slot, concurrently, and returns
// the four filtered signals in slot order. Inputs keep their length and
// rate and are never modified.
func (b *Bank) Apply(channels [Slots]signal.Signal) ([Slots]signal.Signal, error) {
	var out [Slots]signal.Signal

	for i, ch := range channels {
		if err := ch.Validate(); err != nil {
			return out, fmt.Errorf("bank: slot %d: %w", i, err)
		}
		if ch.Rate != b.rate {
			return out, fmt.Errorf("%w: slot %d has %d Hz, bank has %d Hz", ErrRateMismatch, i, ch.Rate, b.rate)
		}
	}

	var wg sync.WaitGroup
	for i := range channels {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			chain := biquad.NewChain(b.coeffs[i])
			out[i] = signal.Signal{
				Data:  chain.Apply(channels[i].Data),
				Rate:  channels[i].Rate,
				Label: channels[i].Label,
			}
		}(i)
	}
	wg.Wait()

	return out, nil
}

// Slots returns the slot specifications the bank was built from.
func (b *Bank) Slots() [Slots]SlotSpec { return b.slots }

// Descriptions returns the human-readable passband description per slot.
func (b *Bank) Descriptions() [Slots]string {
	var out [Slots]string
	for i, s := range b.slots {
		out[i] = s.Description
	}

	return out
}

// Rate returns the sample rate the bank was designed for.
func (b *Bank) Rate() int { return b.rate }

// Response returns the slot cascade's magnitude response in dB at freqHz,
// for inspecting how a slot treats a given frequency.
func (b *Bank) Response(slot int, freqHz float64) float64 {
	return biquad.NewChain(b.coeffs[slot]).MagnitudeDB(freqHz, float64(b.rate))
}
