package spectrum

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	// ErrEmpty reports an empty input buffer.
	ErrEmpty = errors.New("spectrum: empty input")
	// ErrRate reports a non-positive sample rate.
	ErrRate = errors.New("spectrum: sample rate must be > 0")
)

// Spectrum is a single-sided magnitude spectrum: bin k covers frequency
// Freqs[k] = k*rate/N with magnitude Mags[k] = |X[k]|/N, for k in
// [0, floor(N/2)). A pure sine of amplitude A therefore shows up as a bin
// of magnitude about A/2.
type Spectrum struct {
	Freqs []float64
	Mags  []float64
}

// Bins returns the number of frequency bins.
func (s Spectrum) Bins() int { return len(s.Mags) }

// Resolution returns the bin spacing in Hz.
func (s Spectrum) Resolution() float64 {
	if len(s.Freqs) < 2 {
		return 0
	}

	return s.Freqs[1] - s.Freqs[0]
}

// Peak returns the bin index and frequency of the largest magnitude.
func (s Spectrum) Peak() (bin int, freqHz float64) {
	for i, m := range s.Mags {
		if m > s.Mags[bin] {
			bin = i
		}
	}
	if len(s.Freqs) == 0 {
		return 0, 0
	}

	return bin, s.Freqs[bin]
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Analyze returns the single-sided magnitude spectrum of x at its exact
// length. The result has floor(len(x)/2) bins; the input is never padded.
// Analyze does not modify x.
func Analyze(x []float64, rate int) (Spectrum, error) {
	n := len(x)
	if n == 0 {
		return Spectrum{}, ErrEmpty
	}
	if rate <= 0 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrRate, rate)
	}

	half := n / 2
	freqs := make([]float64, half)
	mags := make([]float64, half)

	df := float64(rate) / float64(n)
	for k := range freqs {
		freqs[k] = float64(k) * df
	}
	if half == 0 {
		return Spectrum{Freqs: freqs, Mags: mags}, nil
	}

	re, im, buf := getScratch(half)
	defer putScratch(buf)

	if n&(n-1) == 0 {
		if err := forwardPow2(x, re, im); err != nil {
			return Spectrum{}, err
		}
	} else {
		forwardReal(x, re, im)
	}

	vecmath.Magnitude(mags, re, im)
	vecmath.ScaleBlockInPlace(mags, 1/float64(n))

	return Spectrum{Freqs: freqs, Mags: mags}, nil
}

// forwardPow2 transforms a power-of-two length input on an algo-fft plan
// and unpacks the first half of the bins.
func forwardPow2(x []float64, re, im []float64) error {
	plan, err := algofft.NewPlan64(len(x))
	if err != nil {
		return fmt.Errorf("spectrum: fft plan: %w", err)
	}

	data := make([]complex128, len(x))
	for i, v := range x {
		data[i] = complex(v, 0)
	}

	if err := plan.Forward(data, data); err != nil {
		return fmt.Errorf("spectrum: fft: %w", err)
	}

	for k := range re {
		re[k] = real(data[k])
		im[k] = imag(data[k])
	}

	return nil
}

// forwardReal transforms an arbitrary-length input with a gonum real FFT,
// which yields floor(N/2)+1 coefficients; the trailing Nyquist bin is
// dropped to keep the single-sided contract.
func forwardReal(x []float64, re, im []float64) {
	fft := fourier.NewFFT(len(x))
	coeffs := fft.Coefficients(nil, x)

	for k := range re {
		re[k] = real(coeffs[k])
		im[k] = imag(coeffs[k])
	}
}
