package director

import (
	"math"
	"math/rand"
	"sort"

	"github.com/ivlev/stagecam/internal/config"
	"github.com/ivlev/stagecam/internal/timeline"
)

// Director expands a refined segment sequence into an ordered camera shot
// list: each segment is cut into one or more shots bounded by the target
// shot duration, and a camera is selected for every shot from the pool its
// segment is eligible for.
type Director struct {
	MinShot float64 // target shot duration (seconds)

	cfg      *config.Config
	selector *Selector
}

// New creates a Director for one project. The random source drives camera
// selection and is injectable so runs can be reproduced from a seed.
func New(cfg *config.Config, rng *rand.Rand) *Director {
	return &Director{
		MinShot:  cfg.MinShot,
		cfg:      cfg,
		selector: NewSelector(cfg, rng),
	}
}

// Generate produces the shot list for a refined segment sequence. Selection
// state is threaded through the run in emission order. Segments without any
// eligible camera become gaps rather than errors.
func (d *Director) Generate(segments []timeline.Segment, duration float64) *ShotList {
	list := &ShotList{
		Version:  "1.0",
		Duration: duration,
		Shots:    []Shot{},
	}

	var st State
	for _, seg := range segments {
		pool := d.PoolFor(seg)
		if len(pool) == 0 {
			list.Gaps = append(list.Gaps, Gap{Start: seg.Start, End: seg.End})
			continue
		}

		for _, window := range d.scheduleShots(seg) {
			var camera string
			camera, st = d.selector.Pick(pool, st)
			list.Shots = append(list.Shots, Shot{
				Start:  window.start,
				End:    window.end,
				Camera: camera,
				Kind:   seg.Kind,
			})
		}
	}

	return list
}

// PoolFor resolves the camera pool a segment is eligible for:
// the shared stage pool for silence, the sole actor's pool for solos, and
// for groups the exact-member group, else the smallest superset group, else
// the union of the stage pool and every active actor's pool.
func (d *Director) PoolFor(seg timeline.Segment) []string {
	switch seg.Kind {
	case timeline.Silent:
		return dedup(d.cfg.StageCameras)
	case timeline.Solo:
		if actor, ok := d.cfg.ActorByID(seg.Actors[0]); ok {
			return dedup(actor.Cameras)
		}
		return nil
	default:
		return d.groupPool(seg.Actors)
	}
}

func (d *Director) groupPool(actors []string) []string {
	if g, ok := d.exactGroup(actors); ok {
		return dedup(g.Cameras)
	}
	if g, ok := d.smallestSuperset(actors); ok {
		return dedup(g.Cameras)
	}

	// Fallback: as long as the stage or any active actor has cameras, the
	// segment is never left without candidates.
	union := append([]string{}, d.cfg.StageCameras...)
	for _, id := range actors {
		if actor, ok := d.cfg.ActorByID(id); ok {
			union = append(union, actor.Cameras...)
		}
	}
	return dedup(union)
}

func (d *Director) exactGroup(actors []string) (config.Group, bool) {
	for _, g := range d.cfg.Groups {
		members := sortedCopy(g.Members)
		if timeline.SameActors(members, actors) {
			return g, true
		}
	}
	return config.Group{}, false
}

func (d *Director) smallestSuperset(actors []string) (config.Group, bool) {
	var best config.Group
	found := false
	for _, g := range d.cfg.Groups {
		if !containsAll(g.Members, actors) {
			continue
		}
		if !found || len(g.Members) < len(best.Members) {
			best = g
			found = true
		}
	}
	return best, found
}

type window struct {
	start, end float64
}

// scheduleShots tiles a segment with equal-width contiguous shots. The count
// grows with duration over the target shot length, but long segments are
// capped to proportionally fewer, longer shots instead of fragmenting.
func (d *Director) scheduleShots(seg timeline.Segment) []window {
	duration := seg.Duration()

	count := int(math.Floor(duration / d.MinShot))
	if count < 1 {
		count = 1
	}
	if duration > 3*d.MinShot {
		if max := int(math.Ceil(duration / (2 * d.MinShot))); count > max {
			count = max
		}
	}

	width := duration / float64(count)
	windows := make([]window, count)
	for i := 0; i < count; i++ {
		windows[i] = window{
			start: seg.Start + float64(i)*width,
			end:   seg.Start + float64(i+1)*width,
		}
	}
	// Close the last window at the exact segment end to keep the coverage
	// invariant free of accumulated float error.
	windows[count-1].end = seg.End

	return windows
}

func dedup(cameras []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, c := range cameras {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func sortedCopy(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}

func containsAll(members, actors []string) bool {
	set := map[string]bool{}
	for _, m := range members {
		set[m] = true
	}
	for _, a := range actors {
		if !set[a] {
			return false
		}
	}
	return true
}
