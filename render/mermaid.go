// Package render draws flow views as text.
package render

import (
	"fmt"
	"strings"

	"github.com/meikuraledutech/flow"
)

// Mermaid produces Mermaid flowchart syntax for a view.
// Shapes follow the node kind:
//   - start: ((circle))
//   - wait: {{hexagon}}
//   - continuation: ([stadium]) holding the add trigger
//   - end: (((double circle)))
//   - action: [rectangle]
func Mermaid(v flow.View) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, n := range v.Nodes {
		opener, closer := "[", "]"
		switch n.Kind {
		case flow.KindStart:
			opener, closer = "((", "))"
		case flow.KindWait:
			opener, closer = "{{", "}}"
		case flow.KindPlaceholder:
			opener, closer = "([", "])"
		case flow.KindEnd:
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    n%s%s\"%s\"%s\n", n.ID, opener, escape(n.Label), closer)
	}

	for _, e := range v.Edges {
		fmt.Fprintf(&sb, "    n%s -->|%s| n%s\n", e.Source, e.ID, e.Target)
	}

	return sb.String()
}

// escape replaces characters that terminate a quoted Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
