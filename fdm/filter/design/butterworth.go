package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdm/fdm/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade of the given order.
//
// The result is a list of second-order sections; for odd orders the final
// section is first-order (B2=A2=0). The cascade is maximally flat in the
// passband and sits 3 dB down at freq.
func ButterworthLP(freq float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: %d", ErrOrder, order)
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		c, err := Lowpass(freq, butterworthQ(order, i), sampleRate)
		if err != nil {
			return nil, err
		}

		sections = append(sections, c)
	}

	if order%2 != 0 {
		c, err := firstOrderLP(freq, sampleRate)
		if err != nil {
			return nil, err
		}

		sections = append(sections, c)
	}

	return sections, nil
}

// ButterworthHP designs a highpass Butterworth cascade of the given order.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: %d", ErrOrder, order)
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		c, err := Highpass(freq, butterworthQ(order, i), sampleRate)
		if err != nil {
			return nil, err
		}

		sections = append(sections, c)
	}

	if order%2 != 0 {
		c, err := firstOrderHP(freq, sampleRate)
		if err != nil {
			return nil, err
		}

		sections = append(sections, c)
	}

	return sections, nil
}

// ButterworthBand designs a bandpass as a highpass cascade at low followed
// by a lowpass cascade at high, each of the given order. Both edges sit
// 3 dB down and the passband between them is maximally flat.
func ButterworthBand(low, high float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if low >= high {
		return nil, fmt.Errorf("%w: %v..%v Hz", ErrBandEdges, low, high)
	}

	hp, err := ButterworthHP(low, order, sampleRate)
	if err != nil {
		return nil, err
	}

	lp, err := ButterworthLP(high, order, sampleRate)
	if err != nil {
		return nil, err
	}

	return append(hp, lp...), nil
}

// butterworthQ returns the quality factor of the i-th biquad section of an
// order-N Butterworth filter, i in [0, N/2).
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	return 1 / (2 * math.Sin(theta))
}

// firstOrderLP designs the first-order lowpass tail used by odd orders.
func firstOrderLP(freq, sampleRate float64) (biquad.Coefficients, error) {
	if _, err := normalizedW0(freq, sampleRate); err != nil {
		return biquad.Coefficients{}, err
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}, nil
}

// firstOrderHP designs the first-order highpass tail used by odd orders.
func firstOrderHP(freq, sampleRate float64) (biquad.Coefficients, error) {
	if _, err := normalizedW0(freq, sampleRate); err != nil {
		return biquad.Coefficients{}, err
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}, nil
}
