// Package flow models a campaign flow: a directed chain of outreach steps
// built by appending actions and waits after the current tail.
package flow

import "strconv"

// NodeID identifies a node for the lifetime of a flow. IDs are never reused.
type NodeID uint64

func (id NodeID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseNodeID parses the decimal form produced by NodeID.String.
func ParseNodeID(s string) (NodeID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return NodeID(v), nil
}

// EdgeID identifies an edge. It is derived from the ordered endpoint pair.
type EdgeID string

// MakeEdgeID returns the identifier of the edge source → target.
func MakeEdgeID(source, target NodeID) EdgeID {
	return EdgeID("e" + source.String() + "-" + target.String())
}

// StartID is the id of the start node seeded into every flow.
const StartID NodeID = 1

// Kind is the semantic role of a node.
type Kind string

const (
	KindStart       Kind = "start"
	KindAction      Kind = "action"
	KindWait        Kind = "wait"
	KindPlaceholder Kind = "placeholder-continue" // hosts the "add next action" affordance
	KindEnd         Kind = "end"
)

// ActionKind is one of the outreach steps offered by the action menu.
// ActionWait selects a timed wait instead of an outreach step.
type ActionKind string

const (
	ActionRequest ActionKind = "request"
	ActionMessage ActionKind = "message"
	ActionInMail  ActionKind = "inmail"
	ActionProfile ActionKind = "profile"
	ActionFollow  ActionKind = "follow"
	ActionPost    ActionKind = "post"
	ActionWait    ActionKind = "wait"
)

// ActionKinds lists the menu entries in display order.
var ActionKinds = []ActionKind{
	ActionRequest,
	ActionMessage,
	ActionInMail,
	ActionProfile,
	ActionFollow,
	ActionPost,
	ActionWait,
}

// Valid reports whether k is a known menu entry.
func (k ActionKind) Valid() bool {
	for _, known := range ActionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// WaitParams are the inputs of a wait step.
type WaitParams struct {
	Days int    `json:"days" validate:"min=1"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

// Position is a 2-D canvas coordinate owned by the rendering surface.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a vertex of the flow.
// Action is set for action nodes only, Wait for wait nodes only.
type Node struct {
	ID        NodeID      `json:"id"`
	Kind      Kind        `json:"kind"`
	Label     string      `json:"label"`
	Action    ActionKind  `json:"action,omitempty"`
	Wait      *WaitParams `json:"wait,omitempty"`
	Position  Position    `json:"position"`
	Draggable bool        `json:"draggable"`
}

// Deletable reports whether a user may delete the node.
func (n Node) Deletable() bool {
	switch n.Kind {
	case KindAction, KindWait, KindEnd:
		return true
	}
	return false
}

// HasAddAction reports whether the node hosts the "add next action" trigger.
func (n Node) HasAddAction() bool {
	return n.Kind == KindPlaceholder
}

// EdgeKind is the type of a connection. Only flow edges exist.
type EdgeKind string

const EdgeKindFlow EdgeKind = "flow"

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     EdgeID   `json:"id"`
	Source NodeID   `json:"source"`
	Target NodeID   `json:"target"`
	Kind   EdgeKind `json:"kind"`
}

// NodeMove is a position change reported by the rendering surface.
type NodeMove struct {
	ID       NodeID   `json:"id"`
	Position Position `json:"position"`
}

// Graph is a read-only view of the nodes and edges, in insertion order.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node returns the node with the given id.
func (g Graph) Node(id NodeID) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// InDegree counts the edges that end at id.
func (g Graph) InDegree(id NodeID) int {
	c := 0
	for _, e := range g.Edges {
		if e.Target == id {
			c++
		}
	}
	return c
}

// OutDegree counts the edges that start at id.
func (g Graph) OutDegree(id NodeID) int {
	c := 0
	for _, e := range g.Edges {
		if e.Source == id {
			c++
		}
	}
	return c
}

// State is the aggregate flow state: the graph plus the builder's cursor.
type State struct {
	Graph
	Tail   NodeID `json:"tail"`
	NextID NodeID `json:"next_id"`
	Closed bool   `json:"closed"`
}

func defaultPosition(id NodeID) Position {
	return Position{X: 250, Y: 100 + float64(id)*100}
}
