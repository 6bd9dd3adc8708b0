package wavio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-fdm/fdm/signal"
	"github.com/cwbudde/algo-fdm/internal/testutil"
	"github.com/go-audio/wav"
)

func TestStereoRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone_pair.wav")

	left := testutil.DeterministicSine(440, 44100, 0.5, 4410)
	right := testutil.DeterministicSine(880, 44100, 0.25, 4410)
	src := signal.Stereo{Left: left, Right: right, Rate: 44100, Name: "pair"}
	if err := WriteStereo(path, src, 16); err != nil {
		t.Fatalf("WriteStereo() error = %v", err)
	}

	s, err := ReadStereo(path)
	if err != nil {
		t.Fatalf("ReadStereo() error = %v", err)
	}
	if s.Rate != 44100 {
		t.Fatalf("rate = %d, want 44100", s.Rate)
	}
	if s.Name != "tone_pair" {
		t.Fatalf("name = %q, want tone_pair", s.Name)
	}
	if s.Len() != 4410 {
		t.Fatalf("length = %d, want 4410", s.Len())
	}
	testutil.RequireSliceNearlyEqual(t, s.Left, left, 1e-3)
	testutil.RequireSliceNearlyEqual(t, s.Right, right, 1e-3)
}

func TestWriteStereoRejectsUnevenChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uneven.wav")

	src := signal.Stereo{Left: []float64{0.1, 0.2}, Right: []float64{0.1}, Rate: 44100}
	if err := WriteStereo(path, src, 16); !errors.Is(err, signal.ErrChannelLength) {
		t.Fatalf("WriteStereo() error = %v, want signal.ErrChannelLength", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("rejected write left a file behind")
	}
}

func TestReadStereoRejectsMono(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mono.wav")

	mono := signal.Signal{Data: testutil.DeterministicSine(440, 44100, 0.5, 1000), Rate: 44100}
	if err := WriteMono(path, mono, 16); err != nil {
		t.Fatalf("WriteMono() error = %v", err)
	}

	if _, err := ReadStereo(path); !errors.Is(err, ErrNotStereo) {
		t.Fatalf("ReadStereo() error = %v, want ErrNotStereo", err)
	}
}

func TestReadStereoMissingFile(t *testing.T) {
	if _, err := ReadStereo(filepath.Join(t.TempDir(), "absent.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ReadStereo() error = %v, want os.ErrNotExist", err)
	}
}

func TestReadStereoRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.wav")
	if err := os.WriteFile(path, []byte("definitely not riff data"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := ReadStereo(path); !errors.Is(err, ErrInvalidWAV) {
		t.Fatalf("ReadStereo() error = %v, want ErrInvalidWAV", err)
	}
}

func TestWriteMonoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	data := testutil.DeterministicSine(1000, 44100, 0.8, 4410)
	if err := WriteMono(path, signal.Signal{Data: data, Rate: 44100}, 16); err != nil {
		t.Fatalf("WriteMono() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatalf("written file is not valid WAV")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if buf.Format.NumChannels != 1 {
		t.Fatalf("channels = %d, want 1", buf.Format.NumChannels)
	}
	if buf.Format.SampleRate != 44100 {
		t.Fatalf("rate = %d, want 44100", buf.Format.SampleRate)
	}
	if len(buf.Data) != len(data) {
		t.Fatalf("samples = %d, want %d", len(buf.Data), len(data))
	}

	back := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		back[i] = float64(v) / 32768
	}
	testutil.RequireSliceNearlyEqual(t, back, data, 1e-3)
}

func TestWriteMonoClampsOverOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hot.wav")

	hot := signal.Signal{Data: []float64{2, -2, 0.5}, Rate: 44100}
	if err := WriteMono(path, hot, 16); err != nil {
		t.Fatalf("WriteMono() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if buf.Data[0] != 32767 || buf.Data[1] != -32767 {
		t.Fatalf("clamped samples = %d, %d, want 32767, -32767", buf.Data[0], buf.Data[1])
	}
}

func TestWriteMonoErrors(t *testing.T) {
	dir := t.TempDir()

	empty := signal.Signal{Rate: 44100}
	if err := WriteMono(filepath.Join(dir, "empty.wav"), empty, 16); !errors.Is(err, signal.ErrEmpty) {
		t.Fatalf("empty signal: error = %v, want signal.ErrEmpty", err)
	}

	ok := signal.Signal{Data: []float64{0.1}, Rate: 44100}
	if err := WriteMono(filepath.Join(dir, "depth.wav"), ok, 12); !errors.Is(err, ErrBitDepth) {
		t.Fatalf("bad depth: error = %v, want ErrBitDepth", err)
	}

	// The output path is a directory, so creation fails and no file is
	// left behind.
	if err := WriteMono(dir, ok, 16); err == nil {
		t.Fatalf("WriteMono() on a directory: want error")
	}
}
