package sampler

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// WAVSource computes activity levels from a decoded WAV stem. Level is the
// root-mean-square amplitude of a short window centered on the requested
// time, over the mono mix of the stem, normalized to [0, 1].
type WAVSource struct {
	samples []float64 // mono mix, one value per frame
	rate    float64   // frames per second
	window  float64   // RMS window (seconds)
}

// NewWAVSource decodes a WAV file fully into memory. The whole stem is held
// as float64 frames so Level stays a pure in-memory computation.
func NewWAVSource(path string, window float64) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio stem: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("%s contains no audio data", path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	bitDepth := int(dec.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		mono[i] = sum / float64(channels) / scale
	}

	return &WAVSource{
		samples: mono,
		rate:    float64(buf.Format.SampleRate),
		window:  window,
	}, nil
}

// Level returns the RMS amplitude of the window centered on t
func (s *WAVSource) Level(t float64) float64 {
	if len(s.samples) == 0 || t < 0 || t > s.Duration() {
		return 0
	}

	lo := int((t - s.window/2) * s.rate)
	hi := int((t + s.window/2) * s.rate)
	if lo < 0 {
		lo = 0
	}
	if hi >= len(s.samples) {
		hi = len(s.samples) - 1
	}
	if hi < lo {
		return 0
	}

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += s.samples[i] * s.samples[i]
	}

	return math.Sqrt(sum / float64(hi-lo+1))
}

// Duration returns the stem length in seconds
func (s *WAVSource) Duration() float64 {
	return float64(len(s.samples)) / s.rate
}
