// Package visualization renders discrimination networks in various output
// formats.
package visualization

import (
	"fmt"
	"strings"

	"github.com/Smileaty/chrest/internal/network"
	"github.com/Smileaty/chrest/internal/pattern"
)

// Format specifies the output format for network rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// nodeColor distinguishes roots, chunks with learned content, and empty
// nodes still waiting for an image.
func nodeColor(net *network.Network, ref network.Ref) string {
	nd := net.Node(ref)
	switch {
	case nd.Contents().IsEmpty():
		return "goldenrod"
	case nd.Image().IsEmpty():
		return "lightgray"
	default:
		return "steelblue"
	}
}

// RenderDOT produces a Graphviz DOT representation of one modality's
// subnetwork.
func RenderDOT(net *network.Network, modality pattern.Modality) (string, error) {
	root := net.Root(modality)
	if root == network.NilRef {
		return "", fmt.Errorf("no root for modality %s", modality)
	}

	var b strings.Builder
	b.WriteString("digraph chrest {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")
	renderDOTNode(&b, net, root)
	b.WriteString("}\n")
	return b.String(), nil
}

func renderDOTNode(b *strings.Builder, net *network.Network, ref network.Ref) {
	nd := net.Node(ref)
	label := fmt.Sprintf("%d\\n%s", int(ref), truncate(nd.Image().String(), 40))
	fmt.Fprintf(b, "  %d [label=%q, fillcolor=%q];\n", int(ref), label, nodeColor(net, ref))

	for _, link := range nd.Children() {
		fmt.Fprintf(b, "  %d -> %d [label=%q];\n",
			int(ref), int(link.Child), truncate(link.Test.String(), 40))
		renderDOTNode(b, net, link.Child)
	}

	if followed := nd.FollowedBy(); followed != network.NilRef {
		fmt.Fprintf(b, "  %d -> %d [label=\"followed-by\", style=dashed];\n", int(ref), int(followed))
	}
	if named := nd.NamedBy(); named != network.NilRef {
		fmt.Fprintf(b, "  %d -> %d [label=\"named-by\", style=dotted];\n", int(ref), int(named))
	}
}

// RenderJSON produces a JSON-ready representation of one modality's
// subnetwork with nodes and links arrays.
func RenderJSON(net *network.Network, modality pattern.Modality) (map[string]interface{}, error) {
	root := net.Root(modality)
	if root == network.NilRef {
		return nil, fmt.Errorf("no root for modality %s", modality)
	}

	var (
		jsonNodes []map[string]interface{}
		jsonLinks []map[string]interface{}
	)
	var walk func(ref network.Ref)
	walk = func(ref network.Ref) {
		nd := net.Node(ref)
		entry := map[string]interface{}{
			"ref":      int(ref),
			"contents": nd.Contents().String(),
			"image":    nd.Image().String(),
		}
		if followed := nd.FollowedBy(); followed != network.NilRef {
			entry["followed_by"] = int(followed)
		}
		if named := nd.NamedBy(); named != network.NilRef {
			entry["named_by"] = int(named)
		}
		jsonNodes = append(jsonNodes, entry)

		for _, link := range nd.Children() {
			jsonLinks = append(jsonLinks, map[string]interface{}{
				"source": int(ref),
				"target": int(link.Child),
				"test":   link.Test.String(),
			})
			walk(link.Child)
		}
	}
	walk(root)

	return map[string]interface{}{
		"modality": string(modality),
		"nodes":    jsonNodes,
		"links":    jsonLinks,
	}, nil
}

// truncate shortens s to at most n runes, appending an ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
