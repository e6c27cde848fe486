// Package memory implements flow.Store in process memory.
package memory

import (
	"sync"
	"sync/atomic"

	"github.com/meikuraledutech/flow"
)

// Store implements flow.Store. Every update works on a private copy of the
// graph which replaces the published one only on success, so readers never
// observe half-applied changes.
type Store struct {
	mu  sync.Mutex // serializes writers
	cur atomic.Pointer[graph]
}

var _ flow.Store = (*Store)(nil)

// New creates an empty Store.
func New() *Store {
	s := &Store{}
	s.cur.Store(newGraph())
	return s
}

// Update runs fn against a copy of the graph and publishes the copy if fn
// returns nil. On error nothing changes.
func (s *Store) Update(fn func(tx flow.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur.Load().clone()
	if err := fn(next); err != nil {
		return err
	}
	s.cur.Store(next)
	return nil
}

// Snapshot returns a copy of the nodes and edges in insertion order.
func (s *Store) Snapshot() flow.Graph {
	g := s.cur.Load()

	out := flow.Graph{
		Nodes: make([]flow.Node, 0, len(g.nodeOrder)),
		Edges: make([]flow.Edge, 0, len(g.edgeOrder)),
	}
	for _, id := range g.nodeOrder {
		out.Nodes = append(out.Nodes, copyNode(g.nodes[id]))
	}
	for _, id := range g.edgeOrder {
		out.Edges = append(out.Edges, g.edges[id])
	}
	return out
}

// Node fetches a single node by its ID from the published graph.
func (s *Store) Node(id flow.NodeID) (flow.Node, bool) {
	n, ok := s.cur.Load().nodes[id]
	if !ok {
		return flow.Node{}, false
	}
	return copyNode(n), true
}

// AddNode inserts a single node.
func (s *Store) AddNode(node flow.Node) error {
	return s.Update(func(tx flow.Tx) error {
		return tx.AddNode(node)
	})
}

// AddEdge inserts the edge source → target and returns its ID.
func (s *Store) AddEdge(source, target flow.NodeID) (flow.EdgeID, error) {
	var id flow.EdgeID
	err := s.Update(func(tx flow.Tx) error {
		var err error
		id, err = tx.AddEdge(source, target)
		return err
	})
	return id, err
}

// RemoveNode deletes a node together with its edges.
func (s *Store) RemoveNode(id flow.NodeID) error {
	return s.Update(func(tx flow.Tx) error {
		return tx.RemoveNode(id)
	})
}

// RemoveEdge deletes an edge by its ID.
func (s *Store) RemoveEdge(id flow.EdgeID) error {
	return s.Update(func(tx flow.Tx) error {
		return tx.RemoveEdge(id)
	})
}

// MoveNodes updates node positions, all or none.
func (s *Store) MoveNodes(moves ...flow.NodeMove) error {
	return s.Update(func(tx flow.Tx) error {
		return tx.MoveNodes(moves...)
	})
}
