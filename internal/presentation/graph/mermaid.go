// Package graph renders flow graphs as Mermaid flowchart syntax for
// documentation and builder previews.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quotedeck/flowkit/pkg/domain"
)

// Overlay contains dynamic session data to visualize on the graph.
type Overlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart (graph TD) from a flow.
// Semantic shapes:
//   - Start: ((Circle))
//   - Question: [/Parallelogram/]
//   - Action: [[Subroutine]]
//   - End: [Rectangle]
//
// Answer edges are labelled with the answer text; go_to_node jumps render as
// dashed arrows. Overlay styles (visited/current) are applied if provided.
func GenerateMermaid(flow *domain.Flow, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make([]string, 0, len(flow.Nodes))
	for id := range flow.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		node := flow.Nodes[id]
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch {
		case id == flow.StartNodeID:
			opener, closer = "((", "))"
		case node.Kind == domain.KindQuestion:
			opener, closer = "[/", "/]"
		case node.Kind == domain.KindAction:
			opener, closer = "[[", "]]"
		}

		label := id
		if node.Question != nil && node.Question.Text != "" {
			label = node.Question.Text
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(label), closer))

		if node.Question != nil {
			for _, a := range node.Question.Answers {
				if a.NextNodeID != "" {
					sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n",
						safeID, escapeLabel(a.Text), sanitizeMermaidID(a.NextNodeID)))
				}
				for _, act := range a.Actions {
					if act.Kind == domain.ActionGoToNode {
						sb.WriteString(fmt.Sprintf("    %s -.-> %s\n",
							safeID, sanitizeMermaidID(act.NextNodeID)))
					}
				}
			}
		}
		for _, act := range node.Actions {
			if act.Kind == domain.ActionGoToNode {
				sb.WriteString(fmt.Sprintf("    %s -.-> %s\n",
					safeID, sanitizeMermaidID(act.NextNodeID)))
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n")
		sb.WriteString("    classDef visited fill:#d4edda,stroke:#28a745\n")
		sb.WriteString("    classDef current fill:#fff3cd,stroke:#ffc107,stroke-width:3px\n")
		for _, id := range overlay.VisitedNodes {
			if id != overlay.CurrentNode {
				sb.WriteString(fmt.Sprintf("    class %s visited\n", sanitizeMermaidID(id)))
			}
		}
		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

// sanitizeMermaidID makes a node ID safe for Mermaid identifiers.
func sanitizeMermaidID(id string) string {
	replacer := strings.NewReplacer("/", "_", ".", "_", " ", "_", "-", "_")
	return replacer.Replace(id)
}

// escapeLabel strips characters that break Mermaid labels.
func escapeLabel(label string) string {
	return strings.NewReplacer("\"", "'", "\n", " ").Replace(label)
}
