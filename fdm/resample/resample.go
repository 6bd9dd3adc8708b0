package resample

import (
	"errors"
	"fmt"
)

var (
	// ErrRate reports a non-positive sample rate.
	ErrRate = errors.New("resample: sample rate must be > 0")
)

// Quality controls default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
	maxDen       int
}

// Option configures the converter.
type Option func(*config)

// WithQuality selects a predefined anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale overrides normalized cutoff scaling in range (0, 1].
// 1.0 equals the theoretical anti-aliasing cutoff.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// WithMaxDenominator caps the denominator when the rate ratio cannot be
// reduced exactly to a small fraction.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func defaultConfig() config {
	return config{
		quality: QualityBalanced,
		maxDen:  4096,
	}
}

func (c config) finalized() config {
	p := QualityProfile(c.quality)
	if c.tapsPerPhase <= 0 {
		c.tapsPerPhase = p.TapsPerPhase
	}

	if c.cutoffScale <= 0 || c.cutoffScale > 1 {
		c.cutoffScale = p.CutoffScale
	}

	if c.kaiserBeta <= 0 {
		c.kaiserBeta = p.KaiserBeta
	}

	if c.maxDen <= 0 {
		c.maxDen = 4096
	}

	return c
}

// Converter performs batch rational rate conversion between two fixed
// sample rates. A Converter is stateless across calls: every Convert is an
// independent forward pass, so one Converter is safe for concurrent use on
// unrelated buffers.
type Converter struct {
	inRate  int
	outRate int

	up   int
	down int

	quality Quality
	profile Profile

	taps   []float64
	phases [][]float64

	// center is the FIR group delay in upsampled-grid ticks; Convert
	// shifts its read position by this much to keep output aligned.
	center int
}

// New creates a converter from inRate to outRate (both Hz).
//
// When outRate/inRate reduces exactly to a fraction with a denominator
// within the configured cap, that exact ratio is used (44100 to 192000
// reduces to 640/147). Otherwise the closest continued-fraction
// approximation within the cap is taken.
func New(inRate, outRate int, opts ...Option) (*Converter, error) {
	if inRate <= 0 {
		return nil, fmt.Errorf("%w: in %d", ErrRate, inRate)
	}
	if outRate <= 0 {
		return nil, fmt.Errorf("%w: out %d", ErrRate, outRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg = cfg.finalized()

	up, down := reduceRatio(outRate, inRate, cfg.maxDen)

	c := &Converter{
		inRate:  inRate,
		outRate: outRate,
		up:      up,
		down:    down,
		quality: cfg.quality,
		profile: QualityProfile(cfg.quality),
	}
	if up == down {
		return c, nil
	}

	taps, phases, err := designPolyphaseFIR(up, down, cfg)
	if err != nil {
		return nil, err
	}

	c.taps = taps
	c.phases = phases
	c.center = (len(taps) - 1) / 2

	return c, nil
}

// Convert resamples src and returns exactly round(n*outRate/inRate)
// samples for n input samples. src is never modified. A 1:1 ratio
// returns an independent copy.
func (c *Converter) Convert(src []float64) []float64 {
	n := len(src)
	if n == 0 {
		return nil
	}

	if c.up == c.down {
		out := make([]float64, n)
		copy(out, src)

		return out
	}

	outLen := (n*c.up + c.down/2) / c.down
	out := make([]float64, outLen)

	for j := range out {
		m := c.center + j*c.down
		idx := m / c.up
		taps := c.phases[m%c.up]

		var y float64

		for k, t := range taps {
			i := idx - k
			if i < 0 {
				break
			}
			if i >= n {
				continue
			}

			y += t * src[i]
		}

		out[j] = y
	}

	return out
}

// OutputLen returns the output length Convert produces for n input samples.
func (c *Converter) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}
	if c.up == c.down {
		return n
	}

	return (n*c.up + c.down/2) / c.down
}

// Ratio returns the reduced up/down conversion factors.
func (c *Converter) Ratio() (up, down int) {
	return c.up, c.down
}

// Rates returns the input and output rates the converter was built for.
func (c *Converter) Rates() (inRate, outRate int) {
	return c.inRate, c.outRate
}

// Quality returns the configured quality mode.
func (c *Converter) Quality() Quality {
	return c.quality
}

// Prototype returns a copy of the underlying prototype FIR taps.
// It is empty for a 1:1 converter.
func (c *Converter) Prototype() []float64 {
	out := make([]float64, len(c.taps))
	copy(out, c.taps)

	return out
}

// reduceRatio reduces out/in, falling back to a continued-fraction
// approximation when the exact denominator exceeds maxDen.
func reduceRatio(out, in, maxDen int) (up, down int) {
	g := gcd(out, in)
	up, down = out/g, in/g

	if down <= maxDen {
		return up, down
	}

	return approximateRatio(float64(out)/float64(in), maxDen)
}
