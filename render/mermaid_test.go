package render

import (
	"testing"

	"github.com/meikuraledutech/flow"
	"github.com/stretchr/testify/assert"
)

func TestMermaid(t *testing.T) {
	v := flow.View{
		Nodes: []flow.NodeView{
			{ID: "1", Kind: flow.KindStart, Label: "Campaign Start"},
			{ID: "2", Kind: flow.KindAction, Label: "Send Message"},
			{ID: "3", Kind: flow.KindPlaceholder, Label: "+"},
			{ID: "4", Kind: flow.KindWait, Label: "2 Days at 09:30"},
			{ID: "5", Kind: flow.KindEnd, Label: "End"},
		},
		Edges: []flow.EdgeView{
			{ID: "e1-2", Source: "1", Target: "2"},
			{ID: "e2-3", Source: "2", Target: "3"},
		},
	}

	want := `graph TD
    n1(("Campaign Start"))
    n2["Send Message"]
    n3(["+"])
    n4{{"2 Days at 09:30"}}
    n5((("End")))
    n1 -->|e1-2| n2
    n2 -->|e2-3| n3
`
	assert.Equal(t, want, Mermaid(v))
}

func TestMermaid_EscapesQuotes(t *testing.T) {
	v := flow.View{Nodes: []flow.NodeView{{ID: "9", Kind: flow.KindAction, Label: `say "hi"`}}}

	assert.Contains(t, Mermaid(v), `n9["say #quot;hi#quot;"]`)
}

func TestMermaid_Empty(t *testing.T) {
	assert.Equal(t, "graph TD\n", Mermaid(flow.View{}))
}
