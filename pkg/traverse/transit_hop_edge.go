package traverse

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

// TransitHopEdge. ride between two consecutive platforms of a route, fixed duration.
type TransitHopEdge struct {
	baseEdge
	mode                 pkg.TraverseMode
	duration             int64 // seconds
	routeName            string
	wheelchairAccessible bool
}

func NewTransitHopEdge(from, to *da.Vertex, mode pkg.TraverseMode, duration int64, routeName string,
	wheelchairAccessible bool) *TransitHopEdge {
	return &TransitHopEdge{
		baseEdge:             baseEdge{from: from, to: to},
		mode:                 mode,
		duration:             util.Max(1, duration),
		routeName:            routeName,
		wheelchairAccessible: wheelchairAccessible,
	}
}

func (e *TransitHopEdge) GetMode() pkg.TraverseMode {
	return e.mode
}

func (e *TransitHopEdge) GetName() string {
	return e.routeName
}

func (e *TransitHopEdge) GetDistance() float64 {
	return geo.PolylineLength(e.GetGeometry())
}

func (e *TransitHopEdge) GetDuration() int64 {
	return e.duration
}

func (e *TransitHopEdge) Traverse(s0 State) (State, bool) {
	opts := s0.options
	if !opts.TransitModes.Contains(e.mode) {
		return State{}, false
	}
	if opts.Wheelchair && !e.wheelchairAccessible {
		return State{}, false
	}

	s1 := s0.Edit(e)
	s1.IncrementTimeInSeconds(e.duration)
	s1.IncrementWeight(float64(e.duration))
	s1.SetBackMode(e.mode)
	return s1.MakeState()
}

func (e *TransitHopEdge) OptimisticTraverse(s0 State) State {
	s1 := s0.Edit(e)
	s1.IncrementTimeInSeconds(e.duration)
	s1.IncrementWeight(float64(e.duration))
	s1.SetBackMode(e.mode)
	return s1.MakeOptimisticState()
}

func (e *TransitHopEdge) WeightLowerBound(opts *SearchOptions) float64 {
	if !opts.TransitModes.Contains(e.mode) {
		return pkg.INF_WEIGHT
	}
	return float64(e.duration)
}

func (e *TransitHopEdge) String() string {
	return fmt.Sprintf("TransitHopEdge(%s %v, %v -> %v, %ds)", e.routeName, e.mode, e.from, e.to, e.duration)
}
