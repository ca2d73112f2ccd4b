package timeline

import "fmt"

// Refiner smooths a raw segment sequence: segments shorter than MinDuration
// are merged into neighbors, and silent gaps shorter than SilenceTolerance
// are reclassified as continuations of the surrounding activity. Every pass
// produces a new sequence; the input is never mutated.
type Refiner struct {
	MinDuration      float64 // floor below which a segment cannot stand alone (seconds)
	SilenceTolerance float64 // silent gaps shorter than this are absorbed (seconds)
}

// NewRefiner creates a Refiner with default smoothing settings
func NewRefiner() *Refiner {
	return &Refiner{
		MinDuration:      1.0,
		SilenceTolerance: 0.5,
	}
}

// Refine applies the minimum-duration merge, the silence-tolerance
// reclassification and a final coalesce. The output satisfies the same
// contiguity invariant as the input; a violation indicates a bug in the
// refiner itself and panics.
func (r *Refiner) Refine(segments []Segment, duration float64) []Segment {
	if len(segments) == 0 {
		return nil
	}

	refined := r.mergeShort(segments)
	refined = r.absorbSilence(refined)
	refined = Coalesce(refined)

	if err := Validate(refined, duration); err != nil {
		panic(fmt.Sprintf("timeline: refiner broke the contiguity invariant: %v", err))
	}

	return refined
}

// mergeShort walks the sequence left to right accumulating into a merge
// buffer. A buffer shorter than MinDuration absorbs an identically-typed
// neighbor outright; a buffer shorter than MinDuration/2 is too short to
// stand alone and absorbs the next segment regardless, taking on its kind
// and actor set.
func (r *Refiner) mergeShort(segments []Segment) []Segment {
	merged := []Segment{}
	buffer := segments[0]

	for _, next := range segments[1:] {
		switch {
		case buffer.Duration() < r.MinDuration && buffer.Kind == next.Kind && SameActors(buffer.Actors, next.Actors):
			buffer.End = next.End
		case buffer.Duration() < r.MinDuration/2:
			buffer.End = next.End
			buffer.Actors = next.Actors
			buffer.Kind = next.Kind
		default:
			merged = append(merged, buffer)
			buffer = next
		}
	}

	return append(merged, buffer)
}

// absorbSilence reclassifies silent segments shorter than SilenceTolerance
// as continuations of a non-silent neighbor, preferring the longer one.
// Ties, and the case where the following neighbor is itself silent, prefer
// the preceding neighbor. Time boundaries are left untouched.
func (r *Refiner) absorbSilence(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments)

	for i := range out {
		if out[i].Kind != Silent || out[i].Duration() >= r.SilenceTolerance {
			continue
		}

		var donor *Segment
		if i > 0 && out[i-1].Kind != Silent {
			donor = &out[i-1]
		}
		if i < len(out)-1 && out[i+1].Kind != Silent {
			if donor == nil || out[i+1].Duration() > donor.Duration() {
				donor = &out[i+1]
			}
		}
		if donor == nil {
			continue
		}

		out[i].Actors = donor.Actors
		out[i].Kind = donor.Kind
	}

	return out
}

// Coalesce merges immediately-adjacent segments whose kind and actor set are
// equal. Running it twice yields the same sequence as running it once.
func Coalesce(segments []Segment) []Segment {
	if len(segments) == 0 {
		return nil
	}

	coalesced := []Segment{segments[0]}
	for _, next := range segments[1:] {
		last := &coalesced[len(coalesced)-1]
		if last.Kind == next.Kind && SameActors(last.Actors, next.Actors) {
			last.End = next.End
			continue
		}
		coalesced = append(coalesced, next)
	}

	return coalesced
}
