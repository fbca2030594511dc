package routing

import (
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
)

// Graph. what a search needs from the graph provider. accessors are called inside View only.
type Graph interface {
	GetVertex(id da.Index) *da.Vertex
	GetOutEdges(id da.Index) []traverse.Edge
	GetInEdges(id da.Index) []traverse.Edge
	NumberOfVertices() int
	View(fn func())
}

// incidentEdges. edges a search in the direction of opts expands from v.
func incidentEdges(g Graph, v da.Index, opts *traverse.SearchOptions) []traverse.Edge {
	if opts.ArriveBy {
		return g.GetInEdges(v)
	}
	return g.GetOutEdges(v)
}

// reverseIncidentEdges. edges of the opposite direction, used by lower bound searches from the target.
func reverseIncidentEdges(g Graph, v da.Index, opts *traverse.SearchOptions) []traverse.Edge {
	if opts.ArriveBy {
		return g.GetOutEdges(v)
	}
	return g.GetInEdges(v)
}
