package traverse

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

// StreetEdge. directed street segment between two street vertices.
type StreetEdge struct {
	baseEdge
	length               float64 // meter
	highway              pkg.OsmHighwayType
	permission           pkg.TraverseModeSet
	wheelchairAccessible bool
	name                 string
}

// NewStreetEdge. permission defaults to what the highway class allows.
func NewStreetEdge(from, to *da.Vertex, length float64, highway pkg.OsmHighwayType, name string,
	wheelchairAccessible bool) *StreetEdge {
	return NewStreetEdgeWithPermission(from, to, length, highway, pkg.StreetPermission(highway), name,
		wheelchairAccessible)
}

func NewStreetEdgeWithPermission(from, to *da.Vertex, length float64, highway pkg.OsmHighwayType,
	permission pkg.TraverseModeSet, name string, wheelchairAccessible bool) *StreetEdge {
	return &StreetEdge{
		baseEdge:             baseEdge{from: from, to: to},
		length:               length,
		highway:              highway,
		permission:           permission,
		wheelchairAccessible: wheelchairAccessible,
		name:                 name,
	}
}

func (e *StreetEdge) GetMode() pkg.TraverseMode {
	return pkg.WALK
}

func (e *StreetEdge) GetName() string {
	return e.name
}

func (e *StreetEdge) GetDistance() float64 {
	return e.length
}

func (e *StreetEdge) GetLength() float64 {
	return e.length
}

func (e *StreetEdge) GetHighwayType() pkg.OsmHighwayType {
	return e.highway
}

func (e *StreetEdge) GetPermission() pkg.TraverseModeSet {
	return e.permission
}

func (e *StreetEdge) IsWheelchairAccessible() bool {
	return e.wheelchairAccessible
}

func (e *StreetEdge) Traverse(s0 State) (State, bool) {
	opts := s0.options
	mode := s0.NonTransitMode()
	if !e.permission.Contains(mode) {
		return State{}, false
	}
	if opts.Wheelchair && !e.wheelchairAccessible {
		return State{}, false
	}

	cf := opts.GetCostFunction()
	seconds := cf.GetTravelTime(e, mode, opts)

	s1 := s0.Edit(e)
	s1.IncrementTimeInSeconds(seconds)
	s1.IncrementWeight(cf.GetWeight(seconds, mode, opts))
	s1.SetBackMode(mode)
	return s1.MakeState()
}

func (e *StreetEdge) OptimisticTraverse(s0 State) State {
	opts := s0.options
	s1 := s0.Edit(e)
	maxSpeed := opts.MaxSpeed()
	if maxSpeed > 0 {
		s1.IncrementTimeInSeconds(util.CeilSeconds(e.length/maxSpeed, 0))
	}
	lowerBound := e.WeightLowerBound(opts)
	if math.IsInf(lowerBound, 1) {
		// not traversable under opts at all, any finite weight is optimistic
		lowerBound = 0
	}
	s1.IncrementWeight(lowerBound)
	s1.SetBackMode(s0.NonTransitMode())
	return s1.MakeOptimisticState()
}

func (e *StreetEdge) WeightLowerBound(opts *SearchOptions) float64 {
	return opts.GetCostFunction().GetLowerBoundWeight(e, opts)
}

func (e *StreetEdge) String() string {
	return fmt.Sprintf("StreetEdge(%s, %v -> %v, %.1fm)", e.name, e.from, e.to, e.length)
}
