package sampler

import (
	"fmt"

	"github.com/ivlev/stagecam/internal/config"
)

// Source yields an actor's activity level over time. Level must be a pure
// function of the source and the time: no state is carried between calls, so
// sampling order is irrelevant and calls may run concurrently.
type Source interface {
	// Level returns the activity level at time t (seconds), >= 0.
	// Times outside the known range yield 0.
	Level(t float64) float64
	// Duration returns the extent of the source in seconds.
	Duration() float64
}

// NewSource creates the activity source declared by an actor's configuration
func NewSource(actor config.Actor, window float64) (Source, error) {
	switch {
	case actor.Audio != "":
		return NewWAVSource(actor.Audio, window)
	case len(actor.Intervals) > 0:
		return NewIntervalSource(actor.Intervals), nil
	default:
		return nil, fmt.Errorf("actor %q has no activity source", actor.ID)
	}
}

// IntervalSource is a declarative activity source: a list of constant-level
// spans. Level is the level of the first interval containing t (start
// inclusive, end exclusive) and 0 everywhere else.
type IntervalSource struct {
	intervals []config.Interval
}

// NewIntervalSource creates a source from declared activity intervals
func NewIntervalSource(intervals []config.Interval) *IntervalSource {
	ivs := make([]config.Interval, len(intervals))
	copy(ivs, intervals)
	return &IntervalSource{intervals: ivs}
}

func (s *IntervalSource) Level(t float64) float64 {
	for _, iv := range s.intervals {
		if t >= iv.Start && t < iv.End {
			return iv.Level
		}
	}
	return 0
}

func (s *IntervalSource) Duration() float64 {
	end := 0.0
	for _, iv := range s.intervals {
		if iv.End > end {
			end = iv.End
		}
	}
	return end
}
