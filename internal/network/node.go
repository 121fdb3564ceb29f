// Package network implements the discrimination network: an arena of nodes
// joined by ordered test links, grown incrementally by discrimination and
// familiarisation learning. The whole network is held in memory; nodes are
// addressed by stable integer handles and are never removed.
package network

import (
	"fmt"

	"github.com/Smileaty/chrest/internal/pattern"
)

// Ref is a stable handle identifying a node within its network. Handles are
// assigned monotonically and are never reused.
type Ref int

// NilRef marks an absent node reference.
const NilRef Ref = -1

// Link pairs a test pattern with the child reached when a candidate pattern
// satisfies that test.
type Link struct {
	Test  *pattern.Pattern
	Child Ref
}

// Node is a vertex in the discrimination network. Its contents describe the
// test path that leads to it and are always kept unfinished so the path can
// be lengthened later; its image is the node's current best learned content.
type Node struct {
	ref        Ref
	contents   *pattern.Pattern
	image      *pattern.Pattern
	children   []Link
	followedBy Ref
	namedBy    Ref
}

// Ref returns the node's handle.
func (nd *Node) Ref() Ref { return nd.ref }

// Contents returns the test path leading to this node.
func (nd *Node) Contents() *pattern.Pattern { return nd.contents }

// Image returns the node's current learned content.
func (nd *Node) Image() *pattern.Pattern { return nd.image }

// Children returns the node's test links, most recently added first.
// The slice must not be modified.
func (nd *Node) Children() []Link { return nd.children }

// FollowedBy returns the associative follow reference, or NilRef.
func (nd *Node) FollowedBy() Ref { return nd.followedBy }

// SetFollowedBy sets the associative follow reference.
func (nd *Node) SetFollowedBy(ref Ref) { nd.followedBy = ref }

// NamedBy returns the associative naming reference, or NilRef.
func (nd *Node) NamedBy() Ref { return nd.namedBy }

// SetNamedBy sets the associative naming reference.
func (nd *Node) SetNamedBy(ref Ref) { nd.namedBy = ref }

// addLink registers a test link at the front of the child list, so the most
// recently added test is checked first during retrieval. Uniqueness of tests
// is the caller's responsibility; it is not enforced here.
func (nd *Node) addLink(test *pattern.Pattern, child Ref) {
	nd.children = append([]Link{{Test: test, Child: child}}, nd.children...)
}

// Network is an arena of nodes with one root per learned modality. Handle
// allocation is owned by the network, so independent networks can coexist.
// Growth is append-only: nodes and links are added, never removed.
type Network struct {
	nodes []*Node
	roots map[pattern.Modality]Ref
}

// New returns an empty network with no roots.
func New() *Network {
	return &Network{roots: make(map[pattern.Modality]Ref)}
}

// newNode allocates a node in the arena. Contents are cloned and forced
// unfinished; the image is taken as given.
func (n *Network) newNode(contents, image *pattern.Pattern) *Node {
	c := contents.Clone()
	c.SetNotFinished()
	nd := &Node{
		ref:        Ref(len(n.nodes)),
		contents:   c,
		image:      image,
		followedBy: NilRef,
		namedBy:    NilRef,
	}
	n.nodes = append(n.nodes, nd)
	return nd
}

// AddRoot creates the root node for a modality, with empty contents and
// image, and returns its handle. If the modality already has a root, the
// existing handle is returned.
func (n *Network) AddRoot(modality pattern.Modality) Ref {
	if ref, ok := n.roots[modality]; ok {
		return ref
	}
	root := n.newNode(pattern.New(modality), pattern.New(modality))
	n.roots[modality] = root.ref
	return root.ref
}

// Root returns the root handle for a modality, or NilRef if none exists.
func (n *Network) Root(modality pattern.Modality) Ref {
	if ref, ok := n.roots[modality]; ok {
		return ref
	}
	return NilRef
}

// Roots returns a copy of the modality-to-root mapping.
func (n *Network) Roots() map[pattern.Modality]Ref {
	roots := make(map[pattern.Modality]Ref, len(n.roots))
	for m, ref := range n.roots {
		roots[m] = ref
	}
	return roots
}

// Node returns the node for a handle, or nil if the handle is out of range.
func (n *Network) Node(ref Ref) *Node {
	if ref < 0 || int(ref) >= len(n.nodes) {
		return nil
	}
	return n.nodes[ref]
}

// Count returns the number of nodes in the arena. Handles are dense: every
// ref in [0, Count) addresses a node.
func (n *Network) Count() int { return len(n.nodes) }

// RestoreNode appends a node with an explicit handle during deserialization.
// Handles must arrive in order; contents are forced unfinished as usual.
func (n *Network) RestoreNode(ref Ref, contents, image *pattern.Pattern, followedBy, namedBy Ref) error {
	if int(ref) != len(n.nodes) {
		return fmt.Errorf("restore node %d: expected handle %d", ref, len(n.nodes))
	}
	nd := n.newNode(contents, image)
	nd.followedBy = followedBy
	nd.namedBy = namedBy
	return nil
}

// RestoreLink appends a test link at the back of a node's child list, so a
// deserialized network preserves its stored link order.
func (n *Network) RestoreLink(parent Ref, test *pattern.Pattern, child Ref) error {
	p := n.Node(parent)
	if p == nil {
		return fmt.Errorf("restore link: no node %d", parent)
	}
	if n.Node(child) == nil {
		return fmt.Errorf("restore link: no node %d", child)
	}
	p.children = append(p.children, Link{Test: test, Child: child})
	return nil
}

// RestoreRoot records the root handle for a modality during deserialization.
func (n *Network) RestoreRoot(modality pattern.Modality, ref Ref) error {
	if n.Node(ref) == nil {
		return fmt.Errorf("restore root %s: no node %d", modality, ref)
	}
	n.roots[modality] = ref
	return nil
}
