package model_test

import (
	"testing"
	"time"

	"github.com/Smileaty/chrest/internal/config"
	"github.com/Smileaty/chrest/internal/model"
	"github.com/Smileaty/chrest/internal/network"
	"github.com/Smileaty/chrest/internal/pattern"
)

func closed(items ...pattern.Item) *pattern.Pattern {
	p := pattern.Of(pattern.Visual, items...)
	p.SetFinished()
	return p
}

func TestNewCreatesOneRootPerModality(t *testing.T) {
	m := model.New(config.Default(), nil)

	seen := make(map[network.Ref]bool)
	for _, modality := range pattern.Modalities {
		root := m.RootFor(modality)
		if root == network.NilRef {
			t.Fatalf("no root for %s", modality)
		}
		if seen[root] {
			t.Errorf("modalities share root %d", root)
		}
		seen[root] = true

		nd := m.Network().Node(root)
		if !nd.Contents().IsEmpty() || !nd.Image().IsEmpty() {
			t.Errorf("%s root not empty: contents %v image %v", modality, nd.Contents(), nd.Image())
		}
	}
}

func TestRecogniseUnknownReturnsRoot(t *testing.T) {
	m := model.New(config.Default(), nil)
	got := m.Recognise(closed("A", "B"))
	if got != m.RootFor(pattern.Visual) {
		t.Errorf("recognise of unknown pattern returned %d, want the root", got)
	}
}

func TestRecogniseDescendsDeepest(t *testing.T) {
	m := model.New(config.Default(), nil)
	root := m.RootFor(pattern.Visual)

	a := m.LearnPrimitive(root, closed("A"))
	m.LearnPrimitive(root, closed("B"))
	ab, err := m.Discriminate(a, closed("A", "B"))
	if err != nil {
		t.Fatalf("discriminate: %v", err)
	}

	if got := m.Recognise(closed("A")); got != a {
		t.Errorf("recognise < A $ > = %d, want %d", got, a)
	}
	if got := m.Recognise(closed("A", "B")); got != ab {
		t.Errorf("recognise < A B $ > = %d, want %d", got, ab)
	}
	// the chunk link's test is finished, so it only passes complete patterns
	if got := m.Recognise(closed("A", "B", "C")); got != a {
		t.Errorf("recognise < A B C $ > = %d, want %d", got, a)
	}
}

func TestRecogniseDoesNotMixModalities(t *testing.T) {
	m := model.New(config.Default(), nil)
	m.LearnPrimitive(m.RootFor(pattern.Visual), closed("A"))

	verbal := pattern.Of(pattern.Verbal, "A")
	verbal.SetFinished()
	if got := m.Recognise(verbal); got != m.RootFor(pattern.Verbal) {
		t.Errorf("verbal pattern recognised in the visual network (node %d)", got)
	}
}

// TestRecogniseAndLearnConverges drives a full learning sequence for one
// compound pattern: two primitives, one chunk promotion, then three image
// extensions until the pattern is fully learned.
func TestRecogniseAndLearnConverges(t *testing.T) {
	cfg := config.Default()
	m := model.New(cfg, nil)
	target := closed("A", "B")

	for i := 0; i < 6; i++ {
		if _, err := m.RecogniseAndLearn(target); err != nil {
			t.Fatalf("presentation %d: %v", i+1, err)
		}
	}

	node := m.Recognise(target)
	image := m.Network().Node(node).Image()
	if !image.Equals(target) {
		t.Fatalf("after 6 presentations image = %v, want %v", image, target)
	}

	// three discriminations and three familiarisations were charged
	want := 3*cfg.Timing.DiscriminationTime + 3*cfg.Timing.FamiliarisationTime
	if m.Clock() != want {
		t.Errorf("clock = %v, want %v", m.Clock(), want)
	}

	// a fully learned pattern changes nothing further
	sizeBefore := m.Size(pattern.Visual)
	clockBefore := m.Clock()
	got, err := m.RecogniseAndLearn(target)
	if err != nil {
		t.Fatalf("extra presentation: %v", err)
	}
	if got != node {
		t.Errorf("extra presentation moved to node %d, want %d", got, node)
	}
	if m.Size(pattern.Visual) != sizeBefore || m.Clock() != clockBefore {
		t.Errorf("fully learned pattern still mutated the model")
	}
}

func TestAdvanceClockAccumulates(t *testing.T) {
	m := model.New(config.Default(), nil)
	m.AdvanceClock(3 * time.Second)
	m.AdvanceClock(2 * time.Second)
	if m.Clock() != 5*time.Second {
		t.Errorf("clock = %v, want 5s", m.Clock())
	}
}

func TestTimingFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Timing.DiscriminationTime = 7 * time.Second
	cfg.Timing.FamiliarisationTime = 3 * time.Second
	m := model.New(cfg, nil)

	if m.DiscriminationTime() != 7*time.Second {
		t.Errorf("discrimination time = %v", m.DiscriminationTime())
	}
	if m.FamiliarisationTime() != 3*time.Second {
		t.Errorf("familiarisation time = %v", m.FamiliarisationTime())
	}

	m.LearnPrimitive(m.RootFor(pattern.Visual), closed("A"))
	if m.Clock() != 7*time.Second {
		t.Errorf("clock = %v, want one discrimination charge", m.Clock())
	}
}
