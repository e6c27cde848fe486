package flow

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID   = errors.New("flow: duplicate node id")
	ErrUnknownNode   = errors.New("flow: unknown node")
	ErrDuplicateEdge = errors.New("flow: duplicate edge")
	ErrUnknownEdge   = errors.New("flow: unknown edge")
	ErrProtectedNode = errors.New("flow: protected node")
)

// GraphError wraps a store failure with the operation and the ids involved.
type GraphError struct {
	Op     string // AddNode, AddEdge, RemoveNode, RemoveEdge, MoveNodes
	NodeID NodeID
	EdgeID EdgeID
	Err    error
}

func (e *GraphError) Error() string {
	switch {
	case e.EdgeID != "":
		return fmt.Sprintf("%s edge %s: %v", e.Op, e.EdgeID, e.Err)
	case e.NodeID != 0:
		return fmt.Sprintf("%s node %s: %v", e.Op, e.NodeID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GraphError) Unwrap() error {
	return e.Err
}

// Tx is the mutable view handed to Store.Update. Changes made through a Tx
// become visible only when the update function returns nil.
type Tx interface {
	AddNode(node Node) error
	AddEdge(source, target NodeID) (EdgeID, error)
	RemoveNode(id NodeID) error
	RemoveEdge(id EdgeID) error
	MoveNodes(moves ...NodeMove) error
	Node(id NodeID) (Node, bool)
}

// Store is the authoritative node and edge collection of one flow.
//
// Single-step methods behave like an Update containing only that step.
// Invariants enforced on every step:
//   - edges reference existing nodes
//   - one edge per ordered (source, target) pair
//   - the start node has no incoming edges and cannot be removed
type Store interface {
	AddNode(node Node) error
	AddEdge(source, target NodeID) (EdgeID, error)
	// RemoveNode deletes the node and every edge touching it.
	RemoveNode(id NodeID) error
	RemoveEdge(id EdgeID) error
	MoveNodes(moves ...NodeMove) error
	Node(id NodeID) (Node, bool)

	// Update applies fn atomically: all of its changes or none of them.
	Update(fn func(tx Tx) error) error
	Snapshot() Graph
}
