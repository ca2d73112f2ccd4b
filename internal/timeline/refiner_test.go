package timeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRefineForcedAbsorption(t *testing.T) {
	// Segments too short to stand alone (duration < minDuration/2) absorb
	// their successor and take on its kind and set.
	segments := []Segment{
		{Start: 0, End: 1, Actors: []string{}, Kind: Silent},
		{Start: 1, End: 2, Actors: []string{"a"}, Kind: Solo},
		{Start: 2, End: 10, Actors: []string{"a"}, Kind: Solo},
	}

	r := &Refiner{MinDuration: 3, SilenceTolerance: 0}
	refined := r.Refine(segments, 10)

	want := []Segment{
		{Start: 0, End: 10, Actors: []string{"a"}, Kind: Solo},
	}
	if diff := cmp.Diff(want, refined); diff != "" {
		t.Errorf("Refine mismatch (-want +got):\n%s", diff)
	}
}

func TestRefineSilenceAbsorbedByLongerNeighbor(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 5, Actors: []string{"a"}, Kind: Solo},
		{Start: 5, End: 5.4, Actors: []string{}, Kind: Silent},
		{Start: 5.4, End: 10, Actors: []string{"b"}, Kind: Solo},
	}

	r := &Refiner{MinDuration: 0, SilenceTolerance: 1}
	refined := r.Refine(segments, 10)

	// The 0.4s silent gap joins the longer neighbor: solo a (5s) over solo b (4.6s)
	want := []Segment{
		{Start: 0, End: 5.4, Actors: []string{"a"}, Kind: Solo},
		{Start: 5.4, End: 10, Actors: []string{"b"}, Kind: Solo},
	}
	if diff := cmp.Diff(want, refined); diff != "" {
		t.Errorf("Refine mismatch (-want +got):\n%s", diff)
	}
}

func TestRefineSilenceTieBreakPrefersBefore(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 4, Actors: []string{"a"}, Kind: Solo},
		{Start: 4, End: 4.5, Actors: []string{}, Kind: Silent},
		{Start: 4.5, End: 8.5, Actors: []string{"b"}, Kind: Solo},
	}

	r := &Refiner{MinDuration: 0, SilenceTolerance: 1}
	refined := r.Refine(segments, 8.5)

	want := []Segment{
		{Start: 0, End: 4.5, Actors: []string{"a"}, Kind: Solo},
		{Start: 4.5, End: 8.5, Actors: []string{"b"}, Kind: Solo},
	}
	if diff := cmp.Diff(want, refined); diff != "" {
		t.Errorf("Refine mismatch (-want +got):\n%s", diff)
	}
}

func TestRefineSilenceWithOnlySilentNeighborsUnchanged(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 3, Actors: []string{}, Kind: Silent},
		{Start: 3, End: 3.2, Actors: []string{}, Kind: Silent},
		{Start: 3.2, End: 6, Actors: []string{}, Kind: Silent},
	}

	r := &Refiner{MinDuration: 0, SilenceTolerance: 1}
	refined := r.Refine(segments, 6)

	// Nothing to absorb into; the coalesce just merges equal neighbors
	if len(refined) != 1 || refined[0].Kind != Silent {
		t.Errorf("Expected one silent segment, got %+v", refined)
	}
}

func TestRefineSingleNonSilentNeighbor(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 0.3, Actors: []string{}, Kind: Silent},
		{Start: 0.3, End: 10, Actors: []string{"a", "b"}, Kind: Group},
	}

	r := &Refiner{MinDuration: 0, SilenceTolerance: 1}
	refined := r.Refine(segments, 10)

	want := []Segment{
		{Start: 0, End: 10, Actors: []string{"a", "b"}, Kind: Group},
	}
	if diff := cmp.Diff(want, refined); diff != "" {
		t.Errorf("Refine mismatch (-want +got):\n%s", diff)
	}
}

func TestRefineNoOpAtZeroTunables(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2, Actors: []string{}, Kind: Silent},
		{Start: 2, End: 6, Actors: []string{"a"}, Kind: Solo},
		{Start: 6, End: 7, Actors: []string{"a", "b"}, Kind: Group},
		{Start: 7, End: 10, Actors: []string{}, Kind: Silent},
	}

	r := &Refiner{MinDuration: 0, SilenceTolerance: 0}
	refined := r.Refine(segments, 10)

	if diff := cmp.Diff(segments, refined); diff != "" {
		t.Errorf("Expected refiner to be a no-op (-want +got):\n%s", diff)
	}
}

func TestRefineKeepsInvariantOnMixedSequences(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 0.4, Actors: []string{"a"}, Kind: Solo},
		{Start: 0.4, End: 0.7, Actors: []string{}, Kind: Silent},
		{Start: 0.7, End: 4, Actors: []string{"a", "b"}, Kind: Group},
		{Start: 4, End: 4.2, Actors: []string{}, Kind: Silent},
		{Start: 4.2, End: 9, Actors: []string{"b"}, Kind: Solo},
		{Start: 9, End: 10, Actors: []string{}, Kind: Silent},
	}

	r := &Refiner{MinDuration: 1, SilenceTolerance: 0.5}
	refined := r.Refine(segments, 10)

	if err := Validate(refined, 10); err != nil {
		t.Fatalf("Refined sequence violates the contiguity invariant: %v", err)
	}
	for i, seg := range refined {
		t.Logf("Segment %d: [%.2f, %.2f) %s %v", i, seg.Start, seg.End, seg.Kind, seg.Actors)
	}
}

func TestCoalesceIdempotent(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 2, Actors: []string{"a"}, Kind: Solo},
		{Start: 2, End: 4, Actors: []string{"a"}, Kind: Solo},
		{Start: 4, End: 6, Actors: []string{}, Kind: Silent},
		{Start: 6, End: 8, Actors: []string{}, Kind: Silent},
		{Start: 8, End: 10, Actors: []string{"a"}, Kind: Solo},
	}

	once := Coalesce(segments)
	twice := Coalesce(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Coalesce is not idempotent (-once +twice):\n%s", diff)
	}
	if len(once) != 3 {
		t.Errorf("Expected 3 coalesced segments, got %d", len(once))
	}
}

func TestRefineEmptyInput(t *testing.T) {
	r := NewRefiner()
	if got := r.Refine(nil, 10); got != nil {
		t.Errorf("Expected nil for empty input, got %+v", got)
	}
}
