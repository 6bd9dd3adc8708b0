// Package resample converts whole buffers between sample rates using a
// polyphase Kaiser-windowed FIR.
//
// The converter is batch-oriented: Convert maps an input of n samples to
// exactly round(n*outRate/inRate) output samples, compensating the FIR
// group delay so the output is time-aligned with the input. The pipeline
// uses it to move audio between the source rate and the working rate of
// the carrier multiplex, and back.
package resample
