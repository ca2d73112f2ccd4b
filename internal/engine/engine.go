package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ivlev/stagecam/internal/config"
	"github.com/ivlev/stagecam/internal/director"
	"github.com/ivlev/stagecam/internal/sampler"
	"github.com/ivlev/stagecam/internal/system"
	"github.com/ivlev/stagecam/internal/timeline"
)

// Project ties one configuration to the whole pipeline:
// sample -> build segments -> refine -> schedule shots.
type Project struct {
	Config   *config.Config
	Sampler  *sampler.Sampler
	Director *director.Director

	ShowStats bool
}

// Result is the outcome of a scheduling run plus the intermediate segment
// sequences, kept for inspection and reporting.
type Result struct {
	Duration float64
	Raw      []timeline.Segment
	Refined  []timeline.Segment
	ShotList *director.ShotList
}

// NewProject opens every activity source and wires the director. A zero seed
// falls back to the clock, so explicit seeds reproduce runs exactly.
func NewProject(cfg *config.Config) (*Project, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	smp, err := sampler.New(cfg)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &Project{
		Config:   cfg,
		Sampler:  smp,
		Director: director.New(cfg, rng),
	}, nil
}

// Run executes the pipeline once. A timeline with nothing to schedule (no
// positive duration) yields an empty shot list, not an error.
func (p *Project) Run() (*Result, error) {
	startTime := time.Now()

	duration := p.Config.Duration
	if duration <= 0 {
		duration = p.Sampler.MaxDuration()
	}

	res := &Result{
		Duration: duration,
		ShotList: &director.ShotList{Version: "1.0", Duration: duration, Shots: []director.Shot{}},
	}
	if duration <= 0 {
		fmt.Println("[!] Timeline duration is zero, nothing to schedule")
		return res, nil
	}

	workers := p.Config.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}

	samples := p.Sampler.Grid(duration, p.Config.Resolution, workers)
	sampleEnd := time.Now()

	res.Raw = timeline.BuildSegments(samples, duration)
	if err := timeline.Validate(res.Raw, duration); err != nil {
		return nil, fmt.Errorf("segment builder produced an invalid sequence: %w", err)
	}
	buildEnd := time.Now()

	refiner := &timeline.Refiner{
		MinDuration:      p.Config.MinSegment,
		SilenceTolerance: p.Config.SilenceTolerance,
	}
	res.Refined = refiner.Refine(res.Raw, duration)
	refineEnd := time.Now()

	res.ShotList = p.Director.Generate(res.Refined, duration)
	directEnd := time.Now()

	if p.ShowStats {
		report := fmt.Sprintf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Total Time: %.3fs\n"+
				"Sampling (%d points, %d workers): %.3fs\n"+
				"Segment Build: %.3fs\n"+
				"Refine: %.3fs\n"+
				"Shot Scheduling: %.3fs\n"+
				"Segments: %d raw -> %d refined | Shots: %d | Gaps: %d\n"+
				"----------------------------\n",
			directEnd.Sub(startTime).Seconds(),
			len(samples), workers, sampleEnd.Sub(startTime).Seconds(),
			buildEnd.Sub(sampleEnd).Seconds(),
			refineEnd.Sub(buildEnd).Seconds(),
			directEnd.Sub(refineEnd).Seconds(),
			len(res.Raw), len(res.Refined), len(res.ShotList.Shots), len(res.ShotList.Gaps),
		)
		fmt.Print(report)
	}

	return res, nil
}
