package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Camera shot-scale categories used by weighted selection
const (
	CategoryClose  = "close"
	CategoryMedium = "medium"
	CategoryWide   = "wide"
	CategoryOther  = "other"
)

// Config describes a whole scheduling project: the actors and their activity
// sources, the camera inventory, and the tuning parameters of the pipeline.
// Configuration is immutable during a scheduling run.
type Config struct {
	Version string `yaml:"version"`

	// Duration of the timeline in seconds. 0 means "derive from the
	// longest activity source".
	Duration float64 `yaml:"duration,omitempty"`

	Resolution       float64 `yaml:"resolution"`        // sampling step (seconds)
	Window           float64 `yaml:"window"`            // RMS window for audio sources (seconds)
	MinSegment       float64 `yaml:"min_segment"`       // minimum segment duration floor (seconds)
	SilenceTolerance float64 `yaml:"silence_tolerance"` // silent gaps shorter than this are absorbed (seconds)
	MinShot          float64 `yaml:"min_shot"`          // target shot duration (seconds)

	Weighted      bool     `yaml:"weighted"`       // weighted random selection; false = round-robin
	Weights       Weights  `yaml:"weights"`        // category weights for weighted selection
	Keywords      Keywords `yaml:"keywords"`       // name keywords used when a camera has no category
	MaxRepeat     int      `yaml:"max_repeat"`     // anti-repetition cap (consecutive shots per camera)
	Deterministic bool     `yaml:"deterministic"`  // disable randomness entirely
	Seed          int64    `yaml:"seed,omitempty"` // random seed; 0 = time-based

	Workers int `yaml:"workers,omitempty"` // sampling workers; 0 = auto

	StageCameras []string `yaml:"stage_cameras"`     // shared pool used for silent segments
	Cameras      []Camera `yaml:"cameras,omitempty"` // optional camera inventory with explicit categories
	Actors       []Actor  `yaml:"actors"`
	Groups       []Group  `yaml:"groups,omitempty"`
}

// Weights are the three shot-scale category weights. They are normalized at
// selection time, so only their ratio matters.
type Weights struct {
	Close  float64 `yaml:"close"`
	Medium float64 `yaml:"medium"`
	Wide   float64 `yaml:"wide"`
}

// Keywords map camera-name substrings to shot-scale categories for cameras
// configured without an explicit category.
type Keywords struct {
	Close  []string `yaml:"close,omitempty"`
	Medium []string `yaml:"medium,omitempty"`
	Wide   []string `yaml:"wide,omitempty"`
}

// Camera declares an entry of the camera inventory. Category is optional;
// cameras without one are classified by name keywords.
type Camera struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category,omitempty"`
}

// Interval declares a span of constant activity level for actors without an
// audio stem.
type Interval struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Level float64 `yaml:"level"`
}

// Actor binds an identifier to an activity source, an activity threshold and
// the camera pool eligible while the actor sings alone.
type Actor struct {
	ID        string     `yaml:"id"`
	Audio     string     `yaml:"audio,omitempty"`     // path to a WAV stem
	Intervals []Interval `yaml:"intervals,omitempty"` // declared activity, alternative to Audio
	Threshold float64    `yaml:"threshold"`
	Cameras   []string   `yaml:"cameras"`
}

// Group binds a set of actors (size >= 2) to the camera pool eligible while
// exactly (or at least) those actors are active together.
type Group struct {
	ID      string   `yaml:"id"`
	Members []string `yaml:"members"`
	Cameras []string `yaml:"cameras"`
}

// Default returns a Config with the documented defaults. Project files are
// decoded on top of it, so omitted tunables keep these values.
func Default() *Config {
	return &Config{
		Version:          "1.0",
		Resolution:       0.1,
		Window:           0.05,
		MinSegment:       1.0,
		SilenceTolerance: 0.5,
		MinShot:          2.0,
		Weighted:         true,
		Weights:          Weights{Close: 0.4, Medium: 0.4, Wide: 0.2},
		Keywords: Keywords{
			Close:  []string{"close", "cu", "tight"},
			Medium: []string{"medium", "mid", "ms"},
			Wide:   []string{"wide", "ws", "stage", "long"},
		},
		MaxRepeat: 2,
	}
}

// Load reads and validates a project file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project %s: %w", path, err)
	}

	return cfg, nil
}

// Write serializes a project config to a YAML file
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate fails fast on malformed parameters so errors surface at
// configuration time rather than deep in the pipeline.
func (c *Config) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %.3f", c.Duration)
	}
	if c.Resolution <= 0 {
		return fmt.Errorf("resolution must be positive, got %.3f", c.Resolution)
	}
	if c.Window <= 0 {
		return fmt.Errorf("window must be positive, got %.3f", c.Window)
	}
	if c.MinShot <= 0 {
		return fmt.Errorf("min_shot must be positive, got %.3f", c.MinShot)
	}
	if c.MinSegment < 0 {
		return fmt.Errorf("min_segment must not be negative, got %.3f", c.MinSegment)
	}
	if c.SilenceTolerance < 0 {
		return fmt.Errorf("silence_tolerance must not be negative, got %.3f", c.SilenceTolerance)
	}
	if c.MaxRepeat < 1 {
		return fmt.Errorf("max_repeat must be at least 1, got %d", c.MaxRepeat)
	}
	if c.Weights.Close < 0 || c.Weights.Medium < 0 || c.Weights.Wide < 0 {
		return fmt.Errorf("category weights must not be negative")
	}
	if c.Weighted && c.Weights.Close+c.Weights.Medium+c.Weights.Wide <= 0 {
		return fmt.Errorf("weighted selection requires at least one positive category weight")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	if err := c.validateCameras(); err != nil {
		return err
	}

	actorIDs := map[string]bool{}
	for i, a := range c.Actors {
		if a.ID == "" {
			return fmt.Errorf("actor %d has no id", i)
		}
		if actorIDs[a.ID] {
			return fmt.Errorf("duplicate actor id %q", a.ID)
		}
		actorIDs[a.ID] = true
		if a.Threshold < 0 {
			return fmt.Errorf("actor %q: threshold must not be negative", a.ID)
		}
		if a.Audio == "" && len(a.Intervals) == 0 {
			return fmt.Errorf("actor %q has neither an audio stem nor activity intervals", a.ID)
		}
		if a.Audio != "" && len(a.Intervals) > 0 {
			return fmt.Errorf("actor %q declares both an audio stem and activity intervals", a.ID)
		}
		for j, iv := range a.Intervals {
			if iv.End <= iv.Start {
				return fmt.Errorf("actor %q: interval %d has end <= start", a.ID, j)
			}
			if iv.Level < 0 {
				return fmt.Errorf("actor %q: interval %d has negative level", a.ID, j)
			}
		}
	}

	groupIDs := map[string]bool{}
	for i, g := range c.Groups {
		if g.ID == "" {
			return fmt.Errorf("group %d has no id", i)
		}
		if groupIDs[g.ID] {
			return fmt.Errorf("duplicate group id %q", g.ID)
		}
		groupIDs[g.ID] = true
		if len(g.Members) < 2 {
			return fmt.Errorf("group %q must have at least 2 members, got %d", g.ID, len(g.Members))
		}
		seen := map[string]bool{}
		for _, m := range g.Members {
			if !actorIDs[m] {
				return fmt.Errorf("group %q references unknown actor %q", g.ID, m)
			}
			if seen[m] {
				return fmt.Errorf("group %q lists actor %q twice", g.ID, m)
			}
			seen[m] = true
		}
	}

	return nil
}

func (c *Config) validateCameras() error {
	cameraIDs := map[string]bool{}
	for i, cam := range c.Cameras {
		if cam.ID == "" {
			return fmt.Errorf("camera %d has no id", i)
		}
		if cameraIDs[cam.ID] {
			return fmt.Errorf("duplicate camera id %q", cam.ID)
		}
		cameraIDs[cam.ID] = true
		switch cam.Category {
		case "", CategoryClose, CategoryMedium, CategoryWide, CategoryOther:
		default:
			return fmt.Errorf("camera %q has unknown category %q", cam.ID, cam.Category)
		}
	}
	return nil
}

// ActorByID looks up an actor in the configuration
func (c *Config) ActorByID(id string) (Actor, bool) {
	for _, a := range c.Actors {
		if a.ID == id {
			return a, true
		}
	}
	return Actor{}, false
}
