package pipeline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fdm/fdm/bank"
	"github.com/cwbudde/algo-fdm/fdm/mux"
	"github.com/cwbudde/algo-fdm/fdm/resample"
)

var (
	// ErrBadOrder indicates a channel order that is not a permutation of
	// the four slot indices.
	ErrBadOrder = errors.New("pipeline: order must be a permutation of the slot indices")
	// ErrTargetRate indicates a non-positive target sample rate.
	ErrTargetRate = errors.New("pipeline: target rate must be > 0")
)

// Config fixes the baseband rate, the per-slot filter layout and the
// carrier plan for one pipeline.
type Config struct {
	// TargetRate is the baseband sample rate both sources are brought to.
	TargetRate int
	// Slots is the filter layout applied to the four channels.
	Slots [bank.Slots]bank.SlotSpec
	// Plan assigns the carriers used for stacking and recovery.
	Plan mux.Plan
}

// DefaultConfig returns the standard layout: 44.1 kHz baseband, the
// default filter slots and the default carrier plan.
func DefaultConfig() Config {
	return Config{
		TargetRate: 44100,
		Slots:      bank.DefaultSlots(),
		Plan:       mux.DefaultPlan(),
	}
}

// Option adjusts pipeline construction.
type Option func(*settings)

type settings struct {
	resample []resample.Option
}

// WithResampleOptions forwards options to every rate converter the
// pipeline builds: source preparation, modulation and demodulation.
func WithResampleOptions(opts ...resample.Option) Option {
	return func(s *settings) {
		s.resample = append(s.resample, opts...)
	}
}

// checkOrder validates that order visits each of the four slots exactly
// once.
func checkOrder(order [bank.Slots]int) error {
	var seen [bank.Slots]bool
	for _, idx := range order {
		if idx < 0 || idx >= bank.Slots {
			return fmt.Errorf("%w: index %d out of range", ErrBadOrder, idx)
		}
		if seen[idx] {
			return fmt.Errorf("%w: index %d repeated", ErrBadOrder, idx)
		}
		seen[idx] = true
	}

	return nil
}
