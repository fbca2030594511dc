package traverse

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

// PreAlightEdge. platform -> transit stop, leaving a vehicle.
type PreAlightEdge struct {
	baseEdge
}

func NewPreAlightEdge(platform, stop *da.Vertex) *PreAlightEdge {
	return &PreAlightEdge{
		baseEdge: baseEdge{from: platform, to: stop},
	}
}

func (e *PreAlightEdge) GetMode() pkg.TraverseMode {
	return pkg.LEG_SWITCH
}

func (e *PreAlightEdge) GetName() string {
	return "pre-alight " + e.to.GetLabel()
}

func (e *PreAlightEdge) GetDistance() float64 {
	return 0
}

func (e *PreAlightEdge) Traverse(s0 State) (State, bool) {
	opts := s0.options
	if !opts.TransitAllowed() {
		return State{}, false
	}
	if opts.Wheelchair && !e.to.IsWheelchairBoarding() {
		return State{}, false
	}

	s1 := s0.Edit(e)
	if opts.ArriveBy {
		// searching backwards the vehicle is entered here
		s1.IncrementNumBoardings()
	}
	s1.IncrementTimeInSeconds(util.Max(1, opts.AlightSlack))
	s1.SetBackMode(pkg.LEG_SWITCH)
	return s1.MakeState()
}

func (e *PreAlightEdge) OptimisticTraverse(s0 State) State {
	s1 := s0.Edit(e)
	s1.SetBackMode(pkg.LEG_SWITCH)
	return s1.MakeOptimisticState()
}

func (e *PreAlightEdge) WeightLowerBound(opts *SearchOptions) float64 {
	return transitEntryBound(opts, 0)
}

func (e *PreAlightEdge) String() string {
	return fmt.Sprintf("PreAlightEdge(%v -> %v)", e.from, e.to)
}
