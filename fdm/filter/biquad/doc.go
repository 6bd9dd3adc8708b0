// Package biquad implements second-order IIR filter sections (biquads) in
// Direct Form II Transposed, and cascades of such sections for higher-order
// filters.
//
// The package is oriented at batch processing: Chain.Apply runs a complete
// causal forward pass over a buffer starting from zero state, which is how
// the filter bank and the carrier demodulator use it. Streaming per-sample
// and in-place block processing are available for tests and incremental use.
package biquad
