package pattern

import "testing"

func TestCloneEqualsAndIsolation(t *testing.T) {
	p := Of(Visual, "A", "B", "C")
	p.SetFinished()

	c := p.Clone()
	if !c.Equals(p) {
		t.Errorf("clone %v does not equal original %v", c, p)
	}

	c.SetNotFinished()
	c.Add("D")
	if p.Size() != 3 {
		t.Errorf("mutating clone changed original: %v", p)
	}
	if c.Equals(p) {
		t.Errorf("mutated clone still equals original")
	}
}

func TestEqualsRequiresModalityAndFinished(t *testing.T) {
	a := Of(Visual, "A", "B")
	b := Of(Verbal, "A", "B")
	if a.Equals(b) {
		t.Errorf("patterns of different modalities compare equal")
	}

	c := Of(Visual, "A", "B")
	c.SetFinished()
	if a.Equals(c) {
		t.Errorf("finished flag ignored by equality")
	}
	c.SetNotFinished()
	if !a.Equals(c) {
		t.Errorf("identical patterns compare unequal")
	}
}

func TestAddIgnoredWhenFinished(t *testing.T) {
	p := Of(Visual, "A")
	p.SetFinished()
	p.Add("B")
	if p.Size() != 1 {
		t.Errorf("Add extended a finished pattern: %v", p)
	}
}

func TestMatchesPrefixRules(t *testing.T) {
	tests := []struct {
		name string
		a, b *Pattern
		want bool
	}{
		{"open prefix matches longer", Of(Visual, "A"), Of(Visual, "A", "B"), true},
		{"open equal matches", Of(Visual, "A", "B"), Of(Visual, "A", "B"), true},
		{"open longer does not match shorter", Of(Visual, "A", "B"), Of(Visual, "A"), false},
		{"item mismatch", Of(Visual, "A", "C"), Of(Visual, "A", "B"), false},
		{"different modality", Of(Visual, "A"), Of(Verbal, "A"), false},
		{"empty open matches anything", New(Visual), Of(Visual, "A", "B"), true},
	}
	for _, tt := range tests {
		if got := tt.a.Matches(tt.b); got != tt.want {
			t.Errorf("%s: %v.Matches(%v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatchesFinished(t *testing.T) {
	closed := Of(Visual, "A", "B")
	closed.SetFinished()

	openLonger := Of(Visual, "A", "B", "C")
	if closed.Matches(openLonger) {
		t.Errorf("finished pattern matched a longer pattern")
	}

	sameOpen := Of(Visual, "A", "B")
	if closed.Matches(sameOpen) {
		t.Errorf("finished pattern matched an unfinished pattern")
	}

	sameClosed := Of(Visual, "A", "B")
	sameClosed.SetFinished()
	if !closed.Matches(sameClosed) {
		t.Errorf("finished pattern failed to match its finished equal")
	}
}

func TestRemovePositionalDifference(t *testing.T) {
	p := Of(Visual, "A", "B", "C")
	got := p.Remove(Of(Visual, "A"))
	if !got.Equals(Of(Visual, "B", "C")) {
		t.Errorf("remove prefix: got %v", got)
	}

	// from the first mismatch onwards everything is kept
	got = Of(Visual, "A", "B", "C").Remove(Of(Visual, "A", "X"))
	if !got.Equals(Of(Visual, "B", "C")) {
		t.Errorf("remove with mismatch: got %v", got)
	}

	// a mid-sequence match after a mismatch is still kept
	got = Of(Visual, "B", "A").Remove(Of(Visual, "A", "A"))
	if !got.Equals(Of(Visual, "B", "A")) {
		t.Errorf("remove after early mismatch: got %v", got)
	}
}

func TestRemoveClosurePropagation(t *testing.T) {
	closedAB := Of(Visual, "A", "B")
	closedAB.SetFinished()

	// non-empty result of a finished pattern stays finished
	got := closedAB.Remove(Of(Visual, "A"))
	if !got.IsFinished() {
		t.Errorf("non-empty difference of finished pattern is unfinished")
	}

	// empty difference against a finished pattern loses the marker
	closedA := Of(Visual, "A")
	closedA.SetFinished()
	got = closedA.Remove(closedA)
	if !got.IsEmpty() || got.IsFinished() {
		t.Errorf("remove(S,S) with S finished: got %v, want empty unfinished", got)
	}

	// empty difference against an unfinished pattern keeps it
	got = closedA.Remove(Of(Visual, "A"))
	if !got.IsEmpty() || !got.IsFinished() {
		t.Errorf("empty difference against unfinished pattern: got %v, want empty finished", got)
	}
}

func TestRemoveSelfDifference(t *testing.T) {
	open := Of(Visual, "A", "B")
	if got := open.Remove(open); !got.IsEmpty() || got.IsFinished() {
		t.Errorf("remove(S,S) open: got %v", got)
	}
}

func TestAppendClosure(t *testing.T) {
	a := Of(Visual, "A")
	a.SetFinished()
	b := Of(Visual, "B")

	// finished flag of the receiver is discarded
	got := a.Append(b)
	if got.IsFinished() {
		t.Errorf("append result finished although argument is not")
	}
	if !got.Equals(Of(Visual, "A", "B")) {
		t.Errorf("append items: got %v", got)
	}

	b.SetFinished()
	got = Of(Visual, "A").Append(b)
	if !got.IsFinished() {
		t.Errorf("append result unfinished although argument is finished")
	}
}

func TestFirstItem(t *testing.T) {
	p := Of(Visual, "A", "B")
	first := p.FirstItem()
	if first.Size() != 1 || first.Item(0) != "A" {
		t.Errorf("first item: got %v", first)
	}
	if !first.IsFinished() {
		t.Errorf("first item is not finished")
	}

	empty := New(Visual).FirstItem()
	if !empty.IsEmpty() || !empty.IsFinished() {
		t.Errorf("first item of empty pattern: got %v", empty)
	}
}

func TestIsSimilarTo(t *testing.T) {
	a := Of(Visual, "A", "B", "C")
	b := Of(Visual, "B", "C", "D")
	if !a.IsSimilarTo(b, 1) {
		t.Errorf("expected at least 1 shared item")
	}
	if a.IsSimilarTo(b, 3) {
		t.Errorf("expected fewer than 3 shared items")
	}

	// duplicate items are not double-counted
	aa := Of(Visual, "A", "A")
	single := Of(Visual, "A")
	if aa.IsSimilarTo(single, 2) {
		t.Errorf("matched the same item twice")
	}
}

func TestSortPreservesClosure(t *testing.T) {
	p := Of(Visual, "C", "A", "B")
	p.SetFinished()
	got := p.Sort(func(a, b Item) bool { return a < b })
	if !got.Equals(mustFinished(Of(Visual, "A", "B", "C"))) {
		t.Errorf("sort: got %v", got)
	}
	if p.Item(0) != "C" {
		t.Errorf("sort mutated the receiver: %v", p)
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	tests := []*Pattern{
		New(Visual),
		Of(Visual, "A", "B"),
		mustFinished(Of(Verbal, "A")),
		mustFinished(New(Action)),
	}
	for _, p := range tests {
		got, err := Parse(p.Modality(), p.String())
		if err != nil {
			t.Fatalf("parse %q: %v", p.String(), err)
		}
		if !got.Equals(p) {
			t.Errorf("round trip of %q: got %v", p.String(), got)
		}
	}
}

func TestParseRejectsMisplacedMarker(t *testing.T) {
	if _, err := Parse(Visual, "A $ B"); err == nil {
		t.Errorf("expected error for misplaced $")
	}
}

func mustFinished(p *Pattern) *Pattern {
	p.SetFinished()
	return p
}
