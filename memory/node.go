package memory

import (
	"slices"

	"github.com/meikuraledutech/flow"
)

// AddNode inserts a node. Fails with ErrDuplicateID if the id is taken.
func (g *graph) AddNode(node flow.Node) error {
	if _, ok := g.nodes[node.ID]; ok {
		return &flow.GraphError{Op: "AddNode", NodeID: node.ID, Err: flow.ErrDuplicateID}
	}
	g.nodes[node.ID] = copyNode(node)
	g.nodeOrder = append(g.nodeOrder, node.ID)
	return nil
}

// Node fetches a node from the working copy.
func (g *graph) Node(id flow.NodeID) (flow.Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return flow.Node{}, false
	}
	return copyNode(n), true
}

// RemoveNode deletes a node and every edge whose source or target is the node.
// The start node is protected.
func (g *graph) RemoveNode(id flow.NodeID) error {
	n, ok := g.nodes[id]
	if !ok {
		return &flow.GraphError{Op: "RemoveNode", NodeID: id, Err: flow.ErrUnknownNode}
	}
	if n.Kind == flow.KindStart {
		return &flow.GraphError{Op: "RemoveNode", NodeID: id, Err: flow.ErrProtectedNode}
	}

	delete(g.nodes, id)
	g.nodeOrder = slices.DeleteFunc(g.nodeOrder, func(v flow.NodeID) bool { return v == id })

	g.edgeOrder = slices.DeleteFunc(g.edgeOrder, func(eid flow.EdgeID) bool {
		e := g.edges[eid]
		if e.Source == id || e.Target == id {
			delete(g.edges, eid)
			return true
		}
		return false
	})
	return nil
}

// MoveNodes sets node positions. Fails with ErrUnknownNode on the first
// missing node, leaving the working copy to be discarded by Update.
func (g *graph) MoveNodes(moves ...flow.NodeMove) error {
	for _, m := range moves {
		n, ok := g.nodes[m.ID]
		if !ok {
			return &flow.GraphError{Op: "MoveNodes", NodeID: m.ID, Err: flow.ErrUnknownNode}
		}
		n.Position = m.Position
		g.nodes[m.ID] = n
	}
	return nil
}
