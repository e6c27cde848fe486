package flow

// EdgeStyleCustom is the render style of flow edges: a curve carrying an
// inline delete button.
const EdgeStyleCustom = "custom"

// NodeView is what a rendering surface needs to draw one node.
type NodeView struct {
	ID           string   `json:"id"`
	Kind         Kind     `json:"kind"`
	Label        string   `json:"label"`
	Position     Position `json:"position"`
	Draggable    bool     `json:"draggable"`
	Deletable    bool     `json:"deletable"`
	HasAddAction bool     `json:"has_add_action"`
}

// EdgeView is what a rendering surface needs to draw one edge.
// OnDeleteRequested is bound to the builder that produced the view.
type EdgeView struct {
	ID                string             `json:"id"`
	Source            string             `json:"source"`
	Target            string             `json:"target"`
	Style             string             `json:"style"`
	Deletable         bool               `json:"deletable"`
	OnDeleteRequested func(EdgeID) error `json:"-"`
}

// View is a render-ready snapshot of a flow.
type View struct {
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// Surface renders views. Render is called after every committed mutation.
type Surface interface {
	Render(v View)
}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(v View)

func (f SurfaceFunc) Render(v View) {
	f(v)
}

// NewView converts a graph into its render form. onDelete may be nil.
func NewView(g Graph, onDelete func(EdgeID) error) View {
	v := View{
		Nodes: make([]NodeView, 0, len(g.Nodes)),
		Edges: make([]EdgeView, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		v.Nodes = append(v.Nodes, NodeView{
			ID:           n.ID.String(),
			Kind:         n.Kind,
			Label:        n.Label,
			Position:     n.Position,
			Draggable:    n.Draggable,
			Deletable:    n.Deletable(),
			HasAddAction: n.HasAddAction(),
		})
	}
	for _, e := range g.Edges {
		v.Edges = append(v.Edges, EdgeView{
			ID:                string(e.ID),
			Source:            e.Source.String(),
			Target:            e.Target.String(),
			Style:             EdgeStyleCustom,
			Deletable:         true,
			OnDeleteRequested: onDelete,
		})
	}
	return v
}
