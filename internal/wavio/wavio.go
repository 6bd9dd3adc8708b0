// Package wavio moves signals across the WAV file boundary: stereo sources
// in, mono results out. Samples are float64 in [-1, 1] on the inside and
// integer PCM on disk.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-fdm/fdm/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrInvalidWAV indicates a file the decoder cannot treat as WAV.
	ErrInvalidWAV = errors.New("wavio: not a valid WAV file")
	// ErrNotStereo indicates a source without exactly two channels.
	ErrNotStereo = errors.New("wavio: input must have exactly two channels")
	// ErrBitDepth indicates a PCM bit depth this package does not handle.
	ErrBitDepth = errors.New("wavio: unsupported bit depth")
)

// ReadStereo decodes a two-channel WAV file into a Stereo source with
// samples scaled to [-1, 1] by the file's bit depth. The source name is
// the file name without its extension.
func ReadStereo(path string) (signal.Stereo, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Stereo{}, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return signal.Stereo{}, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return signal.Stereo{}, fmt.Errorf("wavio: decode %s: %w", path, err)
	}
	if buf.Format.NumChannels != 2 {
		return signal.Stereo{}, fmt.Errorf("%w: %s has %d", ErrNotStereo, path, buf.Format.NumChannels)
	}
	scale, err := pcmScale(buf.SourceBitDepth)
	if err != nil {
		return signal.Stereo{}, fmt.Errorf("%w: %d bits in %s", ErrBitDepth, buf.SourceBitDepth, path)
	}

	frames := len(buf.Data) / 2
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left[i] = float64(buf.Data[2*i]) / scale
		right[i] = float64(buf.Data[2*i+1]) / scale
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return signal.Stereo{Left: left, Right: right, Rate: buf.Format.SampleRate, Name: name}, nil
}

// WriteMono encodes a signal as single-channel PCM WAV at the signal's
// rate.
func WriteMono(path string, s signal.Signal, bitDepth int) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	return writePCM(path, s.Rate, bitDepth, 1, s.Data)
}

// WriteStereo encodes a two-channel source as interleaved PCM WAV at the
// source's rate.
func WriteStereo(path string, s signal.Stereo, bitDepth int) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	frames := s.Len()
	interleaved := make([]float64, 2*frames)
	for i := 0; i < frames; i++ {
		interleaved[2*i] = s.Left[i]
		interleaved[2*i+1] = s.Right[i]
	}
	return writePCM(path, s.Rate, bitDepth, 2, interleaved)
}

// writePCM quantizes interleaved samples, clamped to [-1, 1], and writes
// one WAV file. On any encode failure the partial file is removed so it
// never looks like a result.
func writePCM(path string, rate, bitDepth, channels int, samples []float64) error {
	scale, err := pcmScale(bitDepth)
	if err != nil {
		return fmt.Errorf("%w: %d bits", ErrBitDepth, bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	enc := wav.NewEncoder(f, rate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}
	peak := scale - 1
	for i, v := range samples {
		buf.Data[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * peak))
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		os.Remove(path)
		return fmt.Errorf("wavio: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("wavio: finalize %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("wavio: close %s: %w", path, err)
	}

	return nil
}

// pcmScale returns the full-scale magnitude for a supported PCM depth.
func pcmScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return float64(int64(1) << (bitDepth - 1)), nil
	default:
		return 0, ErrBitDepth
	}
}
