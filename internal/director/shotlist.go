package director

import "github.com/ivlev/stagecam/internal/timeline"

// ShotList is the complete output of a scheduling run: an ordered,
// non-overlapping list of camera shots covering [0, duration], plus any
// spans that could not be scheduled because no camera was eligible.
type ShotList struct {
	Version  string  `yaml:"version"`
	Duration float64 `yaml:"duration"` // total timeline duration in seconds
	Shots    []Shot  `yaml:"shots"`
	Gaps     []Gap   `yaml:"gaps,omitempty"`
}

// Shot assigns one camera to a sub-interval of a segment
type Shot struct {
	Start  float64       `yaml:"start"`
	End    float64       `yaml:"end"`
	Camera string        `yaml:"camera"`
	Kind   timeline.Kind `yaml:"kind"` // kind of the segment the shot was cut from
}

// Gap marks a span with no eligible cameras. Gaps are surfaced to the host,
// never treated as fatal.
type Gap struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}
