package signal

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmpty indicates an empty sample buffer.
	ErrEmpty = errors.New("signal: empty sample buffer")
	// ErrRate indicates a non-positive sample rate.
	ErrRate = errors.New("signal: sample rate must be > 0")
	// ErrChannelLength indicates stereo channels of unequal length.
	ErrChannelLength = errors.New("signal: stereo channel lengths differ")
)

// Signal is a finite mono sample sequence with an explicit sample rate.
type Signal struct {
	Data  []float64
	Rate  int // samples per second
	Label string
}

// New returns a validated Signal wrapping data without copying.
func New(data []float64, rate int, label string) (Signal, error) {
	s := Signal{Data: data, Rate: rate, Label: label}
	if err := s.Validate(); err != nil {
		return Signal{}, err
	}

	return s, nil
}

// Validate checks the buffer and rate invariants.
func (s Signal) Validate() error {
	if s.Rate <= 0 {
		return fmt.Errorf("%w: %d", ErrRate, s.Rate)
	}

	if len(s.Data) == 0 {
		return ErrEmpty
	}

	return nil
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Data) }

// Duration returns the signal length in seconds.
func (s Signal) Duration() float64 {
	if s.Rate <= 0 {
		return 0
	}

	return float64(len(s.Data)) / float64(s.Rate)
}

// Clone returns a deep copy.
func (s Signal) Clone() Signal {
	data := make([]float64, len(s.Data))
	copy(data, s.Data)

	return Signal{Data: data, Rate: s.Rate, Label: s.Label}
}

// Normalized returns a peak-normalized copy. Silent signals are returned
// as an unchanged copy; no division takes place.
func (s Signal) Normalized() Signal {
	return Signal{Data: Normalize(s.Data), Rate: s.Rate, Label: s.Label}
}

// Peak returns the maximum absolute sample value, 0 for empty input.
func Peak(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > peak {
			peak = av
		}
	}

	return peak
}

// Normalize returns a copy of data scaled so its peak magnitude is 1.
// An all-zero input is returned as an unchanged copy, never divided.
func Normalize(data []float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)

	peak := Peak(data)
	if peak == 0 {
		return out
	}

	scale := 1 / peak
	for i := range out {
		out[i] *= scale
	}

	return out
}

// Stereo is a decoded two-channel source with a shared sample rate.
type Stereo struct {
	Left  []float64
	Right []float64
	Rate  int
	Name  string
}

// Validate checks channel lengths and the rate invariant.
func (st Stereo) Validate() error {
	if st.Rate <= 0 {
		return fmt.Errorf("%w: %d", ErrRate, st.Rate)
	}

	if len(st.Left) == 0 || len(st.Right) == 0 {
		return ErrEmpty
	}

	if len(st.Left) != len(st.Right) {
		return fmt.Errorf("%w: left %d, right %d", ErrChannelLength, len(st.Left), len(st.Right))
	}

	return nil
}

// Len returns the per-channel sample count.
func (st Stereo) Len() int { return len(st.Left) }

// Trimmed returns a copy shortened to n samples per channel.
// If n is not shorter than the source, an unchanged copy is returned.
func (st Stereo) Trimmed(n int) Stereo {
	if n < 0 {
		n = 0
	}

	if n > st.Len() {
		n = st.Len()
	}

	left := make([]float64, n)
	right := make([]float64, n)
	copy(left, st.Left[:n])
	copy(right, st.Right[:n])

	return Stereo{Left: left, Right: right, Rate: st.Rate, Name: st.Name}
}

// Normalized returns a copy peak-normalized jointly across both channels,
// so the stereo balance is preserved. A silent source is returned unchanged.
func (st Stereo) Normalized() Stereo {
	out := Stereo{
		Left:  make([]float64, len(st.Left)),
		Right: make([]float64, len(st.Right)),
		Rate:  st.Rate,
		Name:  st.Name,
	}
	copy(out.Left, st.Left)
	copy(out.Right, st.Right)

	peak := math.Max(Peak(st.Left), Peak(st.Right))
	if peak == 0 {
		return out
	}

	scale := 1 / peak
	for i := range out.Left {
		out.Left[i] *= scale
	}

	for i := range out.Right {
		out.Right[i] *= scale
	}

	return out
}

// Channels splits the source into its left and right mono signals.
// The returned signals own fresh buffers.
func (st Stereo) Channels() [2]Signal {
	left := make([]float64, len(st.Left))
	right := make([]float64, len(st.Right))
	copy(left, st.Left)
	copy(right, st.Right)

	return [2]Signal{
		{Data: left, Rate: st.Rate, Label: st.Name + "-left"},
		{Data: right, Rate: st.Rate, Label: st.Name + "-right"},
	}
}
