package traverse

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

// PreBoardEdge. transit stop -> platform, entering a vehicle.
type PreBoardEdge struct {
	baseEdge
}

func NewPreBoardEdge(stop, platform *da.Vertex) *PreBoardEdge {
	return &PreBoardEdge{
		baseEdge: baseEdge{from: stop, to: platform},
	}
}

func (e *PreBoardEdge) GetMode() pkg.TraverseMode {
	return pkg.LEG_SWITCH
}

func (e *PreBoardEdge) GetName() string {
	return "pre-board " + e.from.GetLabel()
}

func (e *PreBoardEdge) GetDistance() float64 {
	return 0
}

func (e *PreBoardEdge) Traverse(s0 State) (State, bool) {
	opts := s0.options
	if !opts.TransitAllowed() {
		return State{}, false
	}
	if opts.Wheelchair && !e.from.IsWheelchairBoarding() {
		return State{}, false
	}

	s1 := s0.Edit(e)
	// earlier vehicles in travel order. an arriveBy search already counted this one at pre-alight.
	transfers := int(s0.numBoardings)
	if opts.ArriveBy {
		transfers--
	} else {
		s1.IncrementNumBoardings()
	}

	s1.IncrementTimeInSeconds(util.Max(1, opts.BoardSlack))
	weight := opts.BoardCost
	if transfers > 0 {
		weight += opts.TransferPenalty
	}
	s1.IncrementWeight(weight)
	s1.SetBackMode(pkg.LEG_SWITCH)
	return s1.MakeState()
}

func (e *PreBoardEdge) OptimisticTraverse(s0 State) State {
	s1 := s0.Edit(e)
	s1.IncrementWeight(s0.options.BoardCost)
	s1.SetBackMode(pkg.LEG_SWITCH)
	return s1.MakeOptimisticState()
}

func (e *PreBoardEdge) WeightLowerBound(opts *SearchOptions) float64 {
	return transitEntryBound(opts, opts.BoardCost)
}

func (e *PreBoardEdge) String() string {
	return fmt.Sprintf("PreBoardEdge(%v -> %v)", e.from, e.to)
}
