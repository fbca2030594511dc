package traverse

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
)

// StreetTransitLink. connects a street vertex with a transit stop, in either direction.
// the only edge where a car gets parked (or, in an arriveBy search, picked up again).
type StreetTransitLink struct {
	baseEdge
	transitStop          *da.Vertex
	wheelchairAccessible bool
}

// NewStreetToStopLink. link from the street network into transit stop.
func NewStreetToStopLink(street, stop *da.Vertex, wheelchairAccessible bool) *StreetTransitLink {
	return &StreetTransitLink{
		baseEdge:             baseEdge{from: street, to: stop},
		transitStop:          stop,
		wheelchairAccessible: wheelchairAccessible,
	}
}

// NewStopToStreetLink. link from transit stop back onto the street network.
func NewStopToStreetLink(stop, street *da.Vertex, wheelchairAccessible bool) *StreetTransitLink {
	return &StreetTransitLink{
		baseEdge:             baseEdge{from: stop, to: street},
		transitStop:          stop,
		wheelchairAccessible: wheelchairAccessible,
	}
}

func (e *StreetTransitLink) GetMode() pkg.TraverseMode {
	return pkg.LEG_SWITCH
}

func (e *StreetTransitLink) GetName() string {
	return "street transit link"
}

func (e *StreetTransitLink) GetDistance() float64 {
	return 0
}

func (e *StreetTransitLink) GetTransitStop() *da.Vertex {
	return e.transitStop
}

func (e *StreetTransitLink) IsWheelchairAccessible() bool {
	return e.wheelchairAccessible
}

// Traverse. transit modes are not checked here but at the pre-board edge, so stops stay reachable
// for street-only queries.
func (e *StreetTransitLink) Traverse(s0 State) (State, bool) {
	opts := s0.options
	if opts.Wheelchair && !e.wheelchairAccessible {
		return State{}, false
	}

	s1 := s0.Edit(e)
	switch {
	case s0.carParked:
		if opts.ArriveBy && s0.numBoardings > 0 {
			// searching backwards this is where the traveller parked before the first boarding
			s1.SetCarParked(false)
		}
	case s0.NonTransitMode().IsDriving():
		if opts.ArriveBy || !opts.CarParkingAllowed() {
			return State{}, false
		}
		// switches the non transit mode to WALK
		s1.SetCarParked(true)
	}

	streetToStopTime := e.transitStop.GetStreetToStopTime()
	s1.IncrementTimeInSeconds(streetToStopTime + pkg.STL_TRAVERSE_COST)
	s1.IncrementWeight(float64(pkg.STL_TRAVERSE_COST + streetToStopTime))
	s1.SetBackMode(pkg.LEG_SWITCH)
	return s1.MakeState()
}

func (e *StreetTransitLink) OptimisticTraverse(s0 State) State {
	s1 := s0.Edit(e)
	s1.IncrementWeight(pkg.STL_TRAVERSE_COST)
	s1.SetBackMode(pkg.LEG_SWITCH)
	return s1.MakeOptimisticState()
}

// WeightLowerBound. the lower bound search runs about 2x faster when it never reaches stops and
// therefore never considers boarding.
func (e *StreetTransitLink) WeightLowerBound(opts *SearchOptions) float64 {
	return transitEntryBound(opts, 0)
}

func (e *StreetTransitLink) String() string {
	return fmt.Sprintf("StreetTransitLink(%v -> %v)", e.from, e.to)
}
