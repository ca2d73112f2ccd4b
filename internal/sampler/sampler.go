package sampler

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/stagecam/internal/config"
	"github.com/ivlev/stagecam/internal/timeline"
)

type actorSource struct {
	id        string
	threshold float64
	source    Source
}

// Sampler answers "who is vocally active at time t" over a fixed set of
// actors. It holds one activity source per actor; both are immutable after
// construction, so sampling is safe to run from multiple goroutines.
type Sampler struct {
	actors []actorSource
}

// New builds a Sampler from the configured actors, opening every activity
// source up front so missing or broken stems fail at configuration time.
func New(cfg *config.Config) (*Sampler, error) {
	s := &Sampler{}
	for _, actor := range cfg.Actors {
		src, err := NewSource(actor, cfg.Window)
		if err != nil {
			return nil, fmt.Errorf("actor %q: %w", actor.ID, err)
		}
		s.actors = append(s.actors, actorSource{
			id:        actor.ID,
			threshold: actor.Threshold,
			source:    src,
		})
	}
	return s, nil
}

// ActiveAt returns the sorted set of actor ids whose level at t exceeds
// their threshold. Every actor is checked; there is no early exit.
func (s *Sampler) ActiveAt(t float64) []string {
	active := []string{}
	for _, a := range s.actors {
		if a.source.Level(t) > a.threshold {
			active = append(active, a.id)
		}
	}
	sort.Strings(active)
	return active
}

// MaxDuration returns the extent of the longest activity source
func (s *Sampler) MaxDuration() float64 {
	max := 0.0
	for _, a := range s.actors {
		if d := a.source.Duration(); d > max {
			max = d
		}
	}
	return max
}

// Grid samples the active actor set at t = 0, r, 2r, ... up to and including
// the first multiple of r at or past duration. Samples are computed in
// parallel (source levels are pure) but returned in time order. A
// non-positive duration or resolution yields no samples.
func (s *Sampler) Grid(duration, resolution float64, workers int) []timeline.Sample {
	if duration <= 0 || resolution <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	steps := int(math.Ceil(duration / resolution))
	samples := make([]timeline.Sample, steps+1)

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := 0; i <= steps; i++ {
		i := i
		g.Go(func() error {
			t := float64(i) * resolution
			samples[i] = timeline.Sample{Time: t, Actors: s.ActiveAt(t)}
			return nil
		})
	}
	// Sampling never fails; the group only bounds parallelism.
	_ = g.Wait()

	return samples
}
