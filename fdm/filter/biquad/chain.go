package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// Higher-order filters (the Butterworth designs in filter/design) are
// realized as one Chain per filter.
type Chain struct {
	sections []Section
	gain     float64
}

// chainConfig holds options for NewChain.
type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets an overall gain applied to the input before cascading.
// Default is 1.0 (unity gain).
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade from one or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{
		sections: make([]Section, len(coeffs)),
		gain:     cfg.gain,
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample cascades one input sample through all sections in order.
// If gain != 1, the input is scaled before the first section.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i, x := range buf {
			buf[i] = x * c.gain
		}
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Apply runs a single causal forward pass over src starting from zero state
// and returns the filtered result as a new slice of the same length.
// src is never modified and the chain state is left cleared, so the same
// Chain can be reused for independent buffers.
func (c *Chain) Apply(src []float64) []float64 {
	c.Reset()

	dst := make([]float64, len(src))
	if len(src) == 0 {
		return dst
	}

	switch {
	case c.gain != 1:
		for i, x := range src {
			dst[i] = x * c.gain
		}
		for i := range c.sections {
			c.sections[i].ProcessBlock(dst)
		}
	case len(c.sections) == 0:
		copy(dst, src)
	default:
		c.sections[0].ProcessBlockTo(dst, src)
		for i := 1; i < len(c.sections); i++ {
			c.sections[i].ProcessBlock(dst)
		}
	}

	c.Reset()

	return dst
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the total filter order (2 per biquad section).
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Gain returns the input gain applied before cascading.
func (c *Chain) Gain() float64 { return c.gain }
