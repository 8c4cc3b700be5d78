package graph

import (
	"fmt"
	"strings"
)

// dotFormatter formats include graphs as Graphviz DOT.
type dotFormatter struct{}

func (dotFormatter) Format(g includeGraph) string {
	var sb strings.Builder
	sb.WriteString("digraph includes {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")
	sb.WriteString("\n")

	for _, node := range g.Nodes {
		var attrs []string
		if g.Roots[node] {
			attrs = append(attrs, "style=filled", "fillcolor=lightblue")
		}
		if g.onCycle(node) {
			attrs = append(attrs, "color=red")
		}
		if len(attrs) == 0 {
			sb.WriteString(fmt.Sprintf("  %s;\n", quoteDOT(node)))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s [%s];\n", quoteDOT(node), strings.Join(attrs, ", ")))
	}

	sb.WriteString("\n")
	for _, from := range g.Nodes {
		for _, to := range g.Edges[from] {
			if g.inCycle(from, to) {
				sb.WriteString(fmt.Sprintf("  %s -> %s [color=red];\n", quoteDOT(from), quoteDOT(to)))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %s -> %s;\n", quoteDOT(from), quoteDOT(to)))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func quoteDOT(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
