package network

import (
	"errors"
	"fmt"
	"time"

	"github.com/Smileaty/chrest/internal/pattern"
)

// Environment supplies the capabilities the growth routines need from the
// model that owns the network: network-wide retrieval, the modality roots,
// and the simulated clock with its timing parameters. The network never
// depends on a concrete model type.
type Environment interface {
	// Recognise returns the deepest existing node matching the pattern
	// within its modality, descending by successively satisfied test
	// links. It must return at least the modality root.
	Recognise(p *pattern.Pattern) Ref

	// RootFor returns the root handle for a modality.
	RootFor(modality pattern.Modality) Ref

	// AdvanceClock charges simulated time for a completed operation.
	AdvanceClock(d time.Duration)

	DiscriminationTime() time.Duration
	FamiliarisationTime() time.Duration
}

// ErrDepthExceeded reports that a growth operation recursed past the
// defensive depth ceiling. The network is left valid; the operation that
// overflowed made no further mutation.
var ErrDepthExceeded = errors.New("network: growth recursion depth exceeded")

// maxGrowthDepth bounds recursive growth. Retrieval is iterative, so in
// practice growth nests only a couple of frames deep; the ceiling exists to
// turn a future unbounded recursion into a diagnosable error.
const maxGrowthDepth = 512

// LearnPrimitive creates a child of the given node holding precisely the
// given pattern: unfinished contents equal to its single item, image equal
// to the finished pattern itself. The pattern must contain exactly one item
// and be finished; violating that is a programming error and panics.
// Charges discrimination time.
func (n *Network) LearnPrimitive(env Environment, ref Ref, p *pattern.Pattern) Ref {
	if !p.IsFinished() || p.Size() != 1 {
		panic(fmt.Sprintf("network: LearnPrimitive requires a finished one-item pattern, got %v", p))
	}
	contents := p.Clone()
	contents.SetNotFinished()
	child := n.newNode(contents, p)
	n.Node(ref).addLink(contents, child.ref)
	env.AdvanceClock(env.DiscriminationTime())
	return child.ref
}

// addTest grows a new branch under parent: a test link keyed by the given
// pattern leading to a fresh child with an empty image. Charges
// discrimination time.
func (n *Network) addTest(env Environment, parent *Node, test *pattern.Pattern) Ref {
	child := n.newNode(parent.contents.Append(test), pattern.New(parent.contents.Modality()))
	parent.addLink(test, child.ref)
	env.AdvanceClock(env.DiscriminationTime())
	return child.ref
}

// extendImage appends new information to a node's image. Charges
// familiarisation time.
func (n *Network) extendImage(env Environment, nd *Node, newInformation *pattern.Pattern) Ref {
	nd.image = nd.image.Append(newInformation)
	env.AdvanceClock(env.FamiliarisationTime())
	return nd.ref
}

// Discriminate grows the network below the given node to separate its test
// path from the given pattern, returning the node that results (which is
// the given node itself when the pattern carries no new information).
func (n *Network) Discriminate(env Environment, ref Ref, p *pattern.Pattern) (Ref, error) {
	return n.discriminate(env, ref, p, 0)
}

func (n *Network) discriminate(env Environment, ref Ref, p *pattern.Pattern, depth int) (Ref, error) {
	if depth > maxGrowthDepth {
		return NilRef, ErrDepthExceeded
	}
	nd := n.Node(ref)
	newInformation := p.Remove(nd.contents)

	if newInformation.IsEmpty() {
		if newInformation.IsFinished() {
			// 1. the only new information is the end marker: branch on it
			return n.addTest(env, nd, newInformation), nil
		}
		// 2. nothing to make a new test with
		return ref, nil
	}

	retrieved := env.Recognise(newInformation)
	switch {
	case retrieved == env.RootFor(p.Modality()):
		// 3. not even a primitive was recognised: learn it at the root
		root := env.RootFor(newInformation.Modality())
		return n.LearnPrimitive(env, root, newInformation.FirstItem()), nil
	case n.Node(retrieved).image.IsEmpty():
		// 4. the chunk exists but has no content yet: grow its image instead
		return n.familiarise(env, retrieved, newInformation, depth+1)
	case n.Node(retrieved).image.Matches(newInformation):
		// 5. the chunk's image fits: promote it to a test
		return n.addTest(env, nd, n.Node(retrieved).image), nil
	default:
		// 6. mismatch: test on the first item only
		// NB: the first item is already in the network, since retrieval got past the root
		first := newInformation.FirstItem()
		first.SetNotFinished()
		return n.addTest(env, nd, first), nil
	}
}

// Familiarise extends the given node's image with new information from the
// given pattern, returning the node that results.
func (n *Network) Familiarise(env Environment, ref Ref, p *pattern.Pattern) (Ref, error) {
	return n.familiarise(env, ref, p, 0)
}

func (n *Network) familiarise(env Environment, ref Ref, p *pattern.Pattern, depth int) (Ref, error) {
	if depth > maxGrowthDepth {
		return NilRef, ErrDepthExceeded
	}
	nd := n.Node(ref)
	newInformation := p.Remove(nd.image)

	if newInformation.IsEmpty() {
		if newInformation.IsFinished() {
			// 1. append the end marker, closing the image
			return n.extendImage(env, nd, newInformation), nil
		}
		// 2. nothing to do
		return ref, nil
	}

	retrieved := env.Recognise(newInformation)
	switch {
	case retrieved == env.RootFor(p.Modality()):
		// 3. first item is an unknown primitive: learn it at the root
		return n.LearnPrimitive(env, env.RootFor(p.Modality()), newInformation.FirstItem()), nil
	case n.Node(retrieved).image.IsEmpty():
		// 4. chunk has no content: extend with the first item, which is a
		// known primitive because the new information sorted to that node
		first := newInformation.FirstItem()
		first.SetNotFinished()
		return n.extendImage(env, nd, first), nil
	case n.Node(retrieved).image.Matches(newInformation):
		// 5. extend with the chunk's image, forced to stay unfinished so
		// the image remains open to further extension
		toAdd := n.Node(retrieved).image.Clone()
		toAdd.SetNotFinished()
		return n.extendImage(env, nd, toAdd), nil
	default:
		// 6. mismatch: extend with the first item of the chunk's image only
		first := n.Node(retrieved).image.FirstItem()
		first.SetNotFinished()
		return n.extendImage(env, nd, first), nil
	}
}
