// Package mux stacks four baseband channels onto one wideband composite by
// amplitude modulation and recovers them again.
//
// A Plan fixes the working sample rate and the four carrier assignments.
// Modulator raises each channel to the working rate, shifts it onto its
// carrier and sums the result into a single peak-normalized composite.
// Demodulator reverses the trip: it isolates each carrier band, mixes it
// back to baseband, low-passes, decimates to the original rate and
// normalizes.
package mux
