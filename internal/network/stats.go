package network

// Size returns the number of nodes at and below the given node. The count
// is recomputed on every call; nothing is cached, so there is no counter to
// invalidate as the network grows.
func (n *Network) Size(ref Ref) int {
	count := 1
	for _, link := range n.Node(ref).children {
		count += n.Size(link.Child)
	}
	return count
}

// AverageDepth returns the mean depth of the leaves below the given node,
// counting direct children as depth 1. A node with no children yields 0.
func (n *Network) AverageDepth(ref Ref) float64 {
	var depths []int
	for _, link := range n.Node(ref).children {
		n.findDepth(link.Child, 1, &depths)
	}
	if len(depths) == 0 {
		return 0.0
	}
	sum := 0
	for _, d := range depths {
		sum += d
	}
	return float64(sum) / float64(len(depths))
}

// findDepth records the depth of each leaf below the given node.
func (n *Network) findDepth(ref Ref, current int, depths *[]int) {
	nd := n.Node(ref)
	if len(nd.children) == 0 {
		*depths = append(*depths, current)
		return
	}
	for _, link := range nd.children {
		n.findDepth(link.Child, current+1, depths)
	}
}
