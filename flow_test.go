package flow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAllocator_Monotonic(t *testing.T) {
	a := NewIDAllocator(2)
	assert.Equal(t, NodeID(2), a.Peek())

	prev := NodeID(0)
	for range 100 {
		id := a.Next()
		assert.Greater(t, id, prev)
		prev = id
	}
	assert.Equal(t, NodeID(102), a.Peek())
}

func TestIDAllocator_ZeroValue(t *testing.T) {
	var a IDAllocator
	assert.Equal(t, NodeID(1), a.Peek())
	assert.Equal(t, NodeID(1), a.Next())
	assert.Equal(t, NodeID(2), a.Next())
}

func TestLabel(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Node{Kind: KindStart}, "Campaign Start"},
		{Node{Kind: KindAction, Action: ActionRequest}, "Send Connection Request"},
		{Node{Kind: KindAction, Action: ActionMessage}, "Send Message"},
		{Node{Kind: KindAction, Action: ActionInMail}, "InMail"},
		{Node{Kind: KindAction, Action: ActionProfile}, "View Profile"},
		{Node{Kind: KindAction, Action: ActionFollow}, "Follow"},
		{Node{Kind: KindAction, Action: ActionPost}, "Like Post"},
		{Node{Kind: KindAction, Action: "dance"}, "New Node"},
		{Node{Kind: KindWait, Wait: &WaitParams{Days: 1, Time: "08:00"}}, "1 Day at 08:00"},
		{Node{Kind: KindWait, Wait: &WaitParams{Days: 2, Time: "09:30"}}, "2 Days at 09:30"},
		{Node{Kind: KindEnd}, "End"},
		{Node{Kind: KindPlaceholder}, "+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.node))
	}
}

func TestActionKind_Valid(t *testing.T) {
	for _, k := range ActionKinds {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, ActionKind("email").Valid())
	assert.False(t, ActionKind("").Valid())
}

func TestNode_Capabilities(t *testing.T) {
	assert.False(t, Node{Kind: KindStart}.Deletable())
	assert.False(t, Node{Kind: KindPlaceholder}.Deletable())
	assert.True(t, Node{Kind: KindAction}.Deletable())
	assert.True(t, Node{Kind: KindWait}.Deletable())
	assert.True(t, Node{Kind: KindEnd}.Deletable())

	assert.True(t, Node{Kind: KindPlaceholder}.HasAddAction())
	assert.False(t, Node{Kind: KindAction}.HasAddAction())
}

func TestEdgeID(t *testing.T) {
	assert.Equal(t, EdgeID("e1-2"), MakeEdgeID(1, 2))
	assert.NotEqual(t, MakeEdgeID(1, 12), MakeEdgeID(11, 2))

	id, err := ParseNodeID("42")
	require.NoError(t, err)
	assert.Equal(t, NodeID(42), id)

	_, err = ParseNodeID("e1")
	assert.Error(t, err)
}

func TestGraphError(t *testing.T) {
	err := &GraphError{Op: "RemoveNode", NodeID: 1, Err: ErrProtectedNode}
	assert.True(t, errors.Is(err, ErrProtectedNode))
	assert.Equal(t, "RemoveNode node 1: flow: protected node", err.Error())

	err = &GraphError{Op: "RemoveEdge", EdgeID: "e1-2", Err: ErrUnknownEdge}
	assert.Equal(t, "RemoveEdge edge e1-2: flow: unknown edge", err.Error())
}

func TestNewView(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: 1, Kind: KindStart, Label: "Campaign Start"},
			{ID: 2, Kind: KindAction, Label: "Follow", Action: ActionFollow},
			{ID: 3, Kind: KindPlaceholder, Label: "+"},
		},
		Edges: []Edge{
			{ID: "e1-2", Source: 1, Target: 2, Kind: EdgeKindFlow},
		},
	}
	var deleted []EdgeID
	v := NewView(g, func(id EdgeID) error {
		deleted = append(deleted, id)
		return nil
	})

	require.Len(t, v.Nodes, 3)
	assert.Equal(t, "1", v.Nodes[0].ID)
	assert.False(t, v.Nodes[0].Deletable)
	assert.True(t, v.Nodes[1].Deletable)
	assert.True(t, v.Nodes[2].HasAddAction)

	require.Len(t, v.Edges, 1)
	assert.Equal(t, "e1-2", v.Edges[0].ID)
	assert.Equal(t, EdgeStyleCustom, v.Edges[0].Style)
	require.NoError(t, v.Edges[0].OnDeleteRequested("e1-2"))
	assert.Equal(t, []EdgeID{"e1-2"}, deleted)
}
