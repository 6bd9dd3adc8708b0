package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-fdm/fdm/bank"
	"github.com/cwbudde/algo-fdm/fdm/resample"
	"github.com/cwbudde/algo-fdm/fdm/signal"
)

// PrepareChannels turns two stereo sources into the four baseband
// channels. Each source is resampled to the target rate when needed, both
// are trimmed to the shorter common length and peak-normalized jointly
// across their two sides, then split in fixed order: source-1-left,
// source-1-right, source-2-left, source-2-right.
func (p *Pipeline) PrepareChannels(a, b signal.Stereo) ([bank.Slots]signal.Signal, error) {
	var out [bank.Slots]signal.Signal

	a, err := p.prepareSource(a, 1)
	if err != nil {
		return out, err
	}
	b, err = p.prepareSource(b, 2)
	if err != nil {
		return out, err
	}

	n := min(a.Len(), b.Len())
	a = a.Trimmed(n).Normalized()
	b = b.Trimmed(n).Normalized()

	chA := a.Channels()
	chB := b.Channels()
	out[0], out[1] = chA[0], chA[1]
	out[2], out[3] = chB[0], chB[1]

	return out, nil
}

func (p *Pipeline) prepareSource(s signal.Stereo, n int) (signal.Stereo, error) {
	if err := s.Validate(); err != nil {
		return signal.Stereo{}, fmt.Errorf("pipeline: source %d: %w", n, err)
	}
	if s.Rate == p.cfg.TargetRate {
		return s, nil
	}

	conv, err := resample.New(s.Rate, p.cfg.TargetRate, p.set.resample...)
	if err != nil {
		return signal.Stereo{}, fmt.Errorf("pipeline: source %d: %w", n, err)
	}

	return signal.Stereo{
		Left:  conv.Convert(s.Left),
		Right: conv.Convert(s.Right),
		Rate:  p.cfg.TargetRate,
		Name:  s.Name,
	}, nil
}
