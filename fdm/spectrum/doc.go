// Package spectrum computes single-sided magnitude spectra of real signals.
//
// Analyze runs a DFT at the exact input length, never padding or truncating,
// so bin frequencies land at k*rate/N for the true N of the buffer.
// Power-of-two lengths take the algo-fft fast path; every other length runs
// on a gonum real FFT of the same size.
//
// The Goertzel analyzer complements Analyze for single-frequency amplitude
// measurements where a full spectrum would be wasted.
package spectrum
