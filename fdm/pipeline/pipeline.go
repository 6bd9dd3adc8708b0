package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-fdm/fdm/bank"
	"github.com/cwbudde/algo-fdm/fdm/mux"
	"github.com/cwbudde/algo-fdm/fdm/signal"
)

// Pipeline runs the full trip for one fixed configuration. Every filter
// and rate converter is designed at construction, so a Pipeline is safe
// for concurrent use.
type Pipeline struct {
	cfg   Config
	set   settings
	bank  *bank.Bank
	mod   *mux.Modulator
	demod *mux.Demodulator
}

// New validates the configuration and designs every stage up front.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if cfg.TargetRate <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrTargetRate, cfg.TargetRate)
	}

	var set settings
	for _, o := range opts {
		o(&set)
	}

	fb, err := bank.New(cfg.Slots, cfg.TargetRate)
	if err != nil {
		return nil, err
	}
	mod, err := mux.NewModulator(cfg.Plan, cfg.TargetRate, set.resample...)
	if err != nil {
		return nil, err
	}
	demod, err := mux.NewDemodulator(cfg.Plan, cfg.TargetRate, set.resample...)
	if err != nil {
		return nil, err
	}

	return &Pipeline{cfg: cfg, set: set, bank: fb, mod: mod, demod: demod}, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config { return p.cfg }

// Result collects the products of one run.
type Result struct {
	// Channels are the prepared baseband channels after reordering.
	Channels [bank.Slots]signal.Signal
	// Filtered are the slot-filtered channels fed to the modulator.
	Filtered [bank.Slots]signal.Signal
	// Descriptions name what each slot keeps, indexed like Filtered.
	Descriptions [bank.Slots]string
	// Composite is the stacked wideband signal at the working rate.
	Composite signal.Signal
	// Recovered are the demodulated channels at the target rate.
	Recovered [bank.Slots]signal.Signal
	// Carriers lists the carrier frequencies in slot order, in Hz.
	Carriers [bank.Slots]float64
}

// Run prepares both sources, reorders the four channels, applies the slot
// filters, stacks the filtered channels onto their carriers and recovers
// them again. order[i] selects which prepared channel slot i receives;
// any order that is not a permutation of the slot indices is rejected
// before processing.
func (p *Pipeline) Run(a, b signal.Stereo, order [bank.Slots]int) (*Result, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}
	prepared, err := p.PrepareChannels(a, b)
	if err != nil {
		return nil, err
	}

	var res Result
	for i, idx := range order {
		res.Channels[i] = prepared[idx]
	}
	res.Descriptions = p.bank.Descriptions()
	for i, c := range p.cfg.Plan.Carriers {
		res.Carriers[i] = c.FreqHz
	}

	res.Filtered, err = p.bank.Apply(res.Channels)
	if err != nil {
		return nil, err
	}
	res.Composite, err = p.mod.Modulate(res.Filtered)
	if err != nil {
		return nil, err
	}
	res.Recovered, err = p.demod.Demodulate(res.Composite)
	if err != nil {
		return nil, err
	}

	return &res, nil
}
