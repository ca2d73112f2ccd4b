package timeline

import (
	"fmt"
	"math"
)

// Kind classifies a segment by how many actors are active in it
type Kind string

const (
	Silent Kind = "silent"
	Solo   Kind = "solo"
	Group  Kind = "group"
)

// boundaryEps is the tolerance used when comparing segment boundaries
const boundaryEps = 1e-9

// KindOf derives the segment kind from the number of active actors
func KindOf(activeCount int) Kind {
	switch {
	case activeCount == 0:
		return Silent
	case activeCount == 1:
		return Solo
	default:
		return Group
	}
}

// Segment is a maximal time interval with a constant set of active actors.
// Actors is kept sorted so set comparison is a plain slice comparison.
type Segment struct {
	Start  float64
	End    float64
	Actors []string
	Kind   Kind
}

// Duration returns the segment length in seconds
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// SameActors reports whether two sorted actor sets are equal
func SameActors(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Validate checks the contiguity invariant: segments are sorted, adjacent
// segments share boundaries, the sequence covers [0, duration] exactly, and
// every segment's kind agrees with its actor set cardinality.
func Validate(segments []Segment, duration float64) error {
	if duration <= 0 {
		if len(segments) != 0 {
			return fmt.Errorf("expected no segments for duration %.3f, got %d", duration, len(segments))
		}
		return nil
	}
	if len(segments) == 0 {
		return fmt.Errorf("no segments covering [0, %.3f]", duration)
	}
	if math.Abs(segments[0].Start) > boundaryEps {
		return fmt.Errorf("first segment starts at %.6f, want 0", segments[0].Start)
	}
	last := segments[len(segments)-1]
	if math.Abs(last.End-duration) > boundaryEps {
		return fmt.Errorf("last segment ends at %.6f, want %.6f", last.End, duration)
	}
	for i, seg := range segments {
		if seg.End-seg.Start <= 0 {
			return fmt.Errorf("segment %d has non-positive duration [%.6f, %.6f]", i, seg.Start, seg.End)
		}
		if seg.Kind != KindOf(len(seg.Actors)) {
			return fmt.Errorf("segment %d kind %q does not match %d active actors", i, seg.Kind, len(seg.Actors))
		}
		if i > 0 && math.Abs(seg.Start-segments[i-1].End) > boundaryEps {
			return fmt.Errorf("gap between segment %d (ends %.6f) and %d (starts %.6f)", i-1, segments[i-1].End, i, seg.Start)
		}
	}
	return nil
}
