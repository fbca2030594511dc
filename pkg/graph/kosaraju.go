package graph

import (
	"math"

	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/samber/lo"
)

// RunKosaraju. runs kosaraju's algorithm to find strongly connected components (SCCs) of the graph.
// edges whose lower bound under opts is +Inf are not part of the graph for that query class,
// e.g. with a walk-only opts every transit edge is ignored.
func (g *Graph) RunKosaraju(opts *traverse.SearchOptions) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := da.Index(len(g.vertices))
	order := make([]da.Index, 0, n)
	visited := make([]bool, n)
	for v := da.Index(0); v < n; v++ {
		if !visited[v] {
			g.dfs(v, &order, visited, false, opts)
		}
	}

	lo.Reverse(order)

	// reset visited
	visited = make([]bool, n)
	sccs := make([]da.Index, n)
	numComponents := 0
	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]da.Index, 0, 10)
		g.dfs(v, &component, visited, true, opts)
		for _, node := range component {
			sccs[node] = da.Index(numComponents)
		}
		numComponents++
	}
	g.sccs = sccs
	return numComponents
}

func (g *Graph) dfs(v da.Index, output *[]da.Index, visited []bool, reversed bool,
	opts *traverse.SearchOptions) {
	visited[v] = true

	if !reversed {
		for _, e := range g.outEdges[v] {
			if math.IsInf(e.WeightLowerBound(opts), 1) {
				continue
			}
			head := e.GetToVertex().GetID()
			if !visited[head] {
				g.dfs(head, output, visited, reversed, opts)
			}
		}
	} else {
		for _, e := range g.inEdges[v] {
			if math.IsInf(e.WeightLowerBound(opts), 1) {
				continue
			}
			tail := e.GetFromVertex().GetID()
			if !visited[tail] {
				g.dfs(tail, output, visited, reversed, opts)
			}
		}
	}

	*output = append(*output, v)
}

// GetSCCOf. component id of v, INVALID_VERTEX_ID if RunKosaraju has not run since the last mutation.
func (g *Graph) GetSCCOf(v da.Index) da.Index {
	if g.sccs == nil || int(v) >= len(g.sccs) {
		return da.INVALID_VERTEX_ID
	}
	return g.sccs[v]
}

// StronglyConnected. true if u & v can reach each other. false also when the SCCs are not computed.
func (g *Graph) StronglyConnected(u, v da.Index) bool {
	su := g.GetSCCOf(u)
	return su != da.INVALID_VERTEX_ID && su == g.GetSCCOf(v)
}
