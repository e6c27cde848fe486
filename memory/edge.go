package memory

import (
	"slices"

	"github.com/meikuraledutech/flow"
)

// AddEdge inserts the edge source → target.
// Both endpoints must exist, the pair must be new and the target may not be
// the start node.
func (g *graph) AddEdge(source, target flow.NodeID) (flow.EdgeID, error) {
	if _, ok := g.nodes[source]; !ok {
		return "", &flow.GraphError{Op: "AddEdge", NodeID: source, Err: flow.ErrUnknownNode}
	}
	t, ok := g.nodes[target]
	if !ok {
		return "", &flow.GraphError{Op: "AddEdge", NodeID: target, Err: flow.ErrUnknownNode}
	}
	if t.Kind == flow.KindStart {
		return "", &flow.GraphError{Op: "AddEdge", NodeID: target, Err: flow.ErrProtectedNode}
	}

	id := flow.MakeEdgeID(source, target)
	if _, ok := g.edges[id]; ok {
		return "", &flow.GraphError{Op: "AddEdge", EdgeID: id, Err: flow.ErrDuplicateEdge}
	}

	g.edges[id] = flow.Edge{
		ID:     id,
		Source: source,
		Target: target,
		Kind:   flow.EdgeKindFlow,
	}
	g.edgeOrder = append(g.edgeOrder, id)
	return id, nil
}

// RemoveEdge deletes an edge. Nodes are left untouched.
func (g *graph) RemoveEdge(id flow.EdgeID) error {
	if _, ok := g.edges[id]; !ok {
		return &flow.GraphError{Op: "RemoveEdge", EdgeID: id, Err: flow.ErrUnknownEdge}
	}
	delete(g.edges, id)
	g.edgeOrder = slices.DeleteFunc(g.edgeOrder, func(v flow.EdgeID) bool { return v == id })
	return nil
}
