package sampler

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV writes a 2s mono 16-bit stem: silence, then a 440Hz tone on
// [0.5, 1.5), then silence again.
func writeTestWAV(t *testing.T, path string) {
	t.Helper()

	const (
		rate = 8000
		amp  = 0.5
	)

	frames := 2 * rate
	data := make([]int, frames)
	for i := 0; i < frames; i++ {
		tm := float64(i) / rate
		if tm >= 0.5 && tm < 1.5 {
			data[i] = int(amp * 32767 * math.Sin(2*math.Pi*440*tm))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test WAV: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Failed to encode test WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to close encoder: %v", err)
	}
}

func TestWAVSourceLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stem.wav")
	writeTestWAV(t, path)

	src, err := NewWAVSource(path, 0.05)
	if err != nil {
		t.Fatalf("NewWAVSource failed: %v", err)
	}

	if d := src.Duration(); math.Abs(d-2.0) > 0.01 {
		t.Errorf("Duration() = %.3f, want ~2.0", d)
	}

	// RMS of a 0.5-amplitude sine is ~0.35
	if level := src.Level(1.0); level < 0.2 {
		t.Errorf("Level(1.0) = %.3f, expected a loud tone", level)
	}
	if level := src.Level(0.2); level > 0.01 {
		t.Errorf("Level(0.2) = %.3f, expected silence", level)
	}
	if level := src.Level(1.8); level > 0.01 {
		t.Errorf("Level(1.8) = %.3f, expected silence", level)
	}

	// Outside the known range
	if level := src.Level(-1); level != 0 {
		t.Errorf("Level(-1) = %.3f, want 0", level)
	}
	if level := src.Level(5); level != 0 {
		t.Errorf("Level(5) = %.3f, want 0", level)
	}
}

func TestWAVSourceLevelIsPure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stem.wav")
	writeTestWAV(t, path)

	src, err := NewWAVSource(path, 0.05)
	if err != nil {
		t.Fatalf("NewWAVSource failed: %v", err)
	}

	// Sampling order must not affect results
	first := src.Level(1.0)
	src.Level(0.1)
	src.Level(1.9)
	if again := src.Level(1.0); again != first {
		t.Errorf("Level(1.0) changed between calls: %.6f then %.6f", first, again)
	}
}

func TestNewWAVSourceMissingFile(t *testing.T) {
	if _, err := NewWAVSource(filepath.Join(t.TempDir(), "missing.wav"), 0.05); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestNewWAVSourceInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_audio.wav")
	if err := os.WriteFile(path, []byte("definitely not a wav"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewWAVSource(path, 0.05); err == nil {
		t.Error("Expected error for invalid file, got nil")
	}
}
