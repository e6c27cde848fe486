package memory

import (
	"slices"

	"github.com/meikuraledutech/flow"
)

// graph is one immutable-once-published version of the flow.
// It implements flow.Tx while it is still private to an Update.
type graph struct {
	nodes     map[flow.NodeID]flow.Node
	nodeOrder []flow.NodeID
	edges     map[flow.EdgeID]flow.Edge
	edgeOrder []flow.EdgeID
}

func newGraph() *graph {
	return &graph{
		nodes: make(map[flow.NodeID]flow.Node),
		edges: make(map[flow.EdgeID]flow.Edge),
	}
}

func (g *graph) clone() *graph {
	c := &graph{
		nodes:     make(map[flow.NodeID]flow.Node, len(g.nodes)),
		nodeOrder: slices.Clone(g.nodeOrder),
		edges:     make(map[flow.EdgeID]flow.Edge, len(g.edges)),
		edgeOrder: slices.Clone(g.edgeOrder),
	}
	for id, n := range g.nodes {
		c.nodes[id] = n
	}
	for id, e := range g.edges {
		c.edges[id] = e
	}
	return c
}

// copyNode detaches the wait parameters so callers cannot mutate stored nodes.
func copyNode(n flow.Node) flow.Node {
	if n.Wait != nil {
		w := *n.Wait
		n.Wait = &w
	}
	return n
}
