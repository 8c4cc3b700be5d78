package graph

import (
	"fmt"
	"strings"
)

// mermaidFormatter formats include graphs as Mermaid.js flowcharts.
type mermaidFormatter struct{}

func (mermaidFormatter) Format(g includeGraph) string {
	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	for i, cycle := range g.Cycles {
		parts := append(append([]string(nil), cycle...), cycle[0])
		sb.WriteString(fmt.Sprintf("%%%% C%d: %s\n", i+1, strings.Join(parts, " -> ")))
	}

	// Mermaid node IDs can't have dots or special characters.
	nodeIDs := make(map[string]string, len(g.Nodes))
	for i, node := range g.Nodes {
		nodeIDs[node] = fmt.Sprintf("n%d", i)
	}

	for _, node := range g.Nodes {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[node], strings.ReplaceAll(node, `"`, "#quot;")))
	}

	for _, from := range g.Nodes {
		for _, to := range g.Edges[from] {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeIDs[from], nodeIDs[to]))
		}
	}

	for _, node := range g.Nodes {
		if g.Roots[node] {
			sb.WriteString(fmt.Sprintf("    style %s fill:#add8e6\n", nodeIDs[node]))
		}
	}

	return sb.String()
}
