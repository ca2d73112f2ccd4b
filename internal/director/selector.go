package director

import (
	"math"
	"math/rand"
	"strings"

	"github.com/ivlev/stagecam/internal/config"
)

// weightGranularity is the number of replication slots the three category
// weights are distributed over when building the weighted candidate list.
const weightGranularity = 10

// State carries the selection history across one scheduling run: the last
// camera chosen and how many consecutive times it repeated. It is threaded
// through Pick explicitly so the selector itself stays stateless.
type State struct {
	Last        string
	Consecutive int
}

// Selector chooses one camera per shot from an eligible pool, either by
// weighted random draw over shot-scale categories or by round-robin, while
// capping consecutive repeats of the same camera.
type Selector struct {
	Weighted  bool
	Weights   config.Weights
	MaxRepeat int

	categories map[string]string // explicit per-camera categories
	keywords   config.Keywords
	rng        *rand.Rand
}

// NewSelector builds a Selector from the project configuration and an
// injectable random source
func NewSelector(cfg *config.Config, rng *rand.Rand) *Selector {
	categories := make(map[string]string, len(cfg.Cameras))
	for _, cam := range cfg.Cameras {
		if cam.Category != "" {
			categories[cam.ID] = cam.Category
		}
	}
	return &Selector{
		Weighted:   cfg.Weighted && !cfg.Deterministic,
		Weights:    cfg.Weights,
		MaxRepeat:  cfg.MaxRepeat,
		categories: categories,
		keywords:   cfg.Keywords,
		rng:        rng,
	}
}

// Pick chooses a camera from the pool and returns the updated selection
// state. A singleton pool short-circuits: repetition rules cannot apply when
// there is no alternative.
func (s *Selector) Pick(pool []string, st State) (string, State) {
	if len(pool) == 0 {
		return "", st
	}
	if len(pool) == 1 {
		camera := pool[0]
		if camera == st.Last {
			return camera, State{Last: camera, Consecutive: st.Consecutive + 1}
		}
		return camera, State{Last: camera}
	}

	var camera string
	if s.Weighted {
		camera = s.pickWeighted(pool)
	} else {
		camera = nextInPool(pool, st.Last)
	}

	if camera != st.Last {
		return camera, State{Last: camera}
	}

	st.Consecutive++
	if st.Consecutive >= s.MaxRepeat {
		camera = s.redraw(pool, st.Last)
		return camera, State{Last: camera}
	}
	return camera, State{Last: camera, Consecutive: st.Consecutive}
}

// pickWeighted draws uniformly from a candidate multiset where each camera is
// replicated according to its category's share of the weight granularity.
// Category "other" always contributes one slot, so the multiset is non-empty
// whenever the pool has an uncategorized camera; if every candidate's bucket
// rounds to zero the draw falls back to the plain pool.
func (s *Selector) pickWeighted(pool []string) string {
	total := s.Weights.Close + s.Weights.Medium + s.Weights.Wide
	if total <= 0 {
		total = 1
	}
	reps := map[string]int{
		config.CategoryClose:  int(math.Round(s.Weights.Close / total * weightGranularity)),
		config.CategoryMedium: int(math.Round(s.Weights.Medium / total * weightGranularity)),
		config.CategoryWide:   int(math.Round(s.Weights.Wide / total * weightGranularity)),
		config.CategoryOther:  1,
	}

	candidates := []string{}
	for _, camera := range pool {
		for i := 0; i < reps[s.categoryOf(camera)]; i++ {
			candidates = append(candidates, camera)
		}
	}
	if len(candidates) == 0 {
		return pool[s.rng.Intn(len(pool))]
	}

	return candidates[s.rng.Intn(len(candidates))]
}

// redraw picks uniformly from the pool excluding the over-repeated camera
func (s *Selector) redraw(pool []string, exclude string) string {
	rest := make([]string, 0, len(pool))
	for _, camera := range pool {
		if camera != exclude {
			rest = append(rest, camera)
		}
	}
	if len(rest) == 0 {
		return exclude
	}
	if s.rng == nil {
		return rest[0]
	}
	return rest[s.rng.Intn(len(rest))]
}

// categoryOf resolves a camera's shot-scale category: the explicit category
// from the inventory when configured, otherwise a keyword match on the name.
func (s *Selector) categoryOf(camera string) string {
	if cat, ok := s.categories[camera]; ok {
		return cat
	}

	name := strings.ToLower(camera)
	switch {
	case matchesAny(name, s.keywords.Close):
		return config.CategoryClose
	case matchesAny(name, s.keywords.Medium):
		return config.CategoryMedium
	case matchesAny(name, s.keywords.Wide):
		return config.CategoryWide
	default:
		return config.CategoryOther
	}
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(name, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// nextInPool returns the pool entry following last, wrapping around.
// An absent last starts at index 0.
func nextInPool(pool []string, last string) string {
	for i, camera := range pool {
		if camera == last {
			return pool[(i+1)%len(pool)]
		}
	}
	return pool[0]
}
