package traverse

import (
	"math"
)

// EdgeLowerBound. tightest admissible weight of e known without a runtime state: the larger of
// WeightLowerBound and the optimistic weight. +Inf if e is unusable under opts.
func EdgeLowerBound(e Edge, opts *SearchOptions) float64 {
	lowerBound := e.WeightLowerBound(opts)
	if math.IsInf(lowerBound, 1) {
		return lowerBound
	}
	probe := NewState(e.GetFromVertex(), opts)
	if opts.ArriveBy {
		probe = NewState(e.GetToVertex(), opts)
	}
	optimistic := e.OptimisticTraverse(probe).GetWeight() - probe.GetWeight()
	return math.Max(lowerBound, optimistic)
}
