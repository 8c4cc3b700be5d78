package graph

import (
	"sort"

	"github.com/LegacyCodeHQ/amalgam/collector"
	graphlib "github.com/dominikbraun/graph"
)

// includeGraph is a render-ready view of a collection result, keyed by
// display name.
type includeGraph struct {
	Nodes  []string
	Edges  map[string][]string
	Roots  map[string]bool
	Cycles [][]string
}

// inCycle reports whether both endpoints of an edge sit on the same cycle.
func (g includeGraph) inCycle(from, to string) bool {
	for _, cycle := range g.Cycles {
		var hasFrom, hasTo bool
		for _, node := range cycle {
			hasFrom = hasFrom || node == from
			hasTo = hasTo || node == to
		}
		if hasFrom && hasTo {
			return true
		}
	}
	return false
}

func (g includeGraph) onCycle(node string) bool {
	for _, cycle := range g.Cycles {
		for _, member := range cycle {
			if member == node {
				return true
			}
		}
	}
	return false
}

func newIncludeGraph(result *collector.Result) (includeGraph, error) {
	adjacency, err := result.Graph.AdjacencyMap()
	if err != nil {
		return includeGraph{}, err
	}

	paths := make([]string, 0, len(adjacency))
	for path := range adjacency {
		paths = append(paths, path)
	}
	names := nodeLabels(paths)

	g := includeGraph{
		Edges: make(map[string][]string, len(adjacency)),
		Roots: make(map[string]bool, len(result.Roots)),
	}

	for path, targets := range adjacency {
		from := names[path]
		g.Nodes = append(g.Nodes, from)
		for target := range targets {
			g.Edges[from] = append(g.Edges[from], names[target])
		}
		sort.Strings(g.Edges[from])
	}
	sort.Strings(g.Nodes)

	for _, root := range result.Roots {
		g.Roots[names[root]] = true
	}

	components, err := graphlib.StronglyConnectedComponents(result.Graph)
	if err != nil {
		return includeGraph{}, err
	}
	for _, component := range components {
		if len(component) < 2 {
			continue
		}
		cycle := make([]string, 0, len(component))
		for _, path := range component {
			cycle = append(cycle, names[path])
		}
		sort.Strings(cycle)
		g.Cycles = append(g.Cycles, cycle)
	}
	sort.Slice(g.Cycles, func(i, j int) bool {
		return g.Cycles[i][0] < g.Cycles[j][0]
	})

	return g, nil
}
