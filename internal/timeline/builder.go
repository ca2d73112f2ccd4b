package timeline

// Sample is an instantaneous snapshot of the active actor set.
// Actors must be sorted; samples must be in time order.
type Sample struct {
	Time   float64
	Actors []string
}

// BuildSegments run-length encodes a sample stream into a contiguous segment
// sequence covering [0, duration]. The first sample opens the initial segment;
// every change of the active set closes the current segment at the sample time
// and opens a new one. The final open segment is closed at exactly duration.
// A non-positive duration or an empty stream yields no segments.
func BuildSegments(samples []Sample, duration float64) []Segment {
	if duration <= 0 || len(samples) == 0 {
		return nil
	}

	segments := []Segment{}
	current := Segment{
		Start:  0,
		Actors: samples[0].Actors,
		Kind:   KindOf(len(samples[0].Actors)),
	}

	for _, sample := range samples[1:] {
		if SameActors(sample.Actors, current.Actors) {
			continue
		}
		// The sampling grid may overshoot the timeline end by one step;
		// changes at or past the end have no observable effect.
		if sample.Time >= duration {
			break
		}
		current.End = sample.Time
		segments = append(segments, current)
		current = Segment{
			Start:  sample.Time,
			Actors: sample.Actors,
			Kind:   KindOf(len(sample.Actors)),
		}
	}

	current.End = duration
	segments = append(segments, current)

	return segments
}
