// Package design computes biquad coefficients for the Butterworth filters
// used by the filter bank and the carrier demodulator.
//
// All designers validate their parameters and return an error instead of
// degenerate coefficients: cutoffs must lie strictly between 0 and Nyquist,
// band edges must be ordered, and the order must be at least 1.
package design
