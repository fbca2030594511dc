package traverse

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
)

// Edge. unit of traversal. every edge kind implements the same contract, the search driver never
// looks at concrete kinds.
type Edge interface {
	GetFromVertex() *da.Vertex
	GetToVertex() *da.Vertex
	GetMode() pkg.TraverseMode
	GetName() string
	// GetDistance in meter.
	GetDistance() float64
	GetGeometry() []geo.Coordinate

	// Traverse. exact cost transition, false if the edge can't be traversed from s0.
	Traverse(s0 State) (State, bool)
	// OptimisticTraverse. never rejects, resulting weight never exceeds the weight of Traverse.
	OptimisticTraverse(s0 State) State
	// WeightLowerBound. minimum weight any traversal of this edge adds under opts, +Inf if the
	// edge is unusable under opts.
	WeightLowerBound(opts *SearchOptions) float64
}

type baseEdge struct {
	from *da.Vertex
	to   *da.Vertex
}

func (e *baseEdge) GetFromVertex() *da.Vertex {
	return e.from
}

func (e *baseEdge) GetToVertex() *da.Vertex {
	return e.to
}

// GetGeometry. straight line between both endpoints.
func (e *baseEdge) GetGeometry() []geo.Coordinate {
	return []geo.Coordinate{e.from.GetCoordinate(), e.to.GetCoordinate()}
}

// transitEntryBound. lower bound of edge classes that only exist to get in & out of transit.
func transitEntryBound(opts *SearchOptions, bound float64) float64 {
	if !opts.TransitAllowed() {
		return pkg.INF_WEIGHT
	}
	return bound
}
