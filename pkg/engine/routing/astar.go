package routing

import (
	"context"
	"math"

	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"go.uber.org/zap"
)

const (
	checkCancelEvery = 1024
)

// boardingClass. how much of the boarding count still changes the future of a state.
// forward searches count at pre-board, the next boarding pays a transfer penalty iff one was made.
// arriveBy searches count at pre-alight, so one boarding is the vehicle being ridden (no penalty
// at its pre-board) while two or more means a transfer is still to be paid.
func boardingClass(s traverse.State) int {
	if s.IsArriveBy() {
		return util.Min(s.GetNumBoardings(), 2)
	}
	return util.Min(s.GetNumBoardings(), 1)
}

// labelKey. states at the same vertex with the same key have the same future, so only the lightest one is kept.
func labelKey(s traverse.State) int {
	key := int(s.GetVertex().GetID())<<3 | boardingClass(s)<<1
	if s.IsCarParked() {
		key |= 1
	}
	return key
}

// AStar. label-setting A* over traversal states. forward from the origin, or backward from the
// destination when the query is arriveBy. an AStar instance runs one search at a time.
type AStar struct {
	graph     Graph
	heuristic RemainingWeightHeuristic
	logger    *zap.Logger

	arena      *traverse.StateArena
	pq         *da.MinHeap[traverse.StateRef]
	bestWeight []float64

	numSettledStates int
	numPrunedEdges   int
}

func NewAStar(g Graph, heuristic RemainingWeightHeuristic, logger *zap.Logger) *AStar {
	return &AStar{
		graph:     g,
		heuristic: heuristic,
		logger:    logger,
		arena:     traverse.NewStateArena(1024),
		pq:        da.NewFourAryHeap[traverse.StateRef](),
	}
}

func (as *AStar) preallocate() {
	n := as.graph.NumberOfVertices() << 3
	if cap(as.bestWeight) < n {
		as.bestWeight = make([]float64, n)
	}
	as.bestWeight = as.bestWeight[:n]
	for i := range as.bestWeight {
		as.bestWeight[i] = math.Inf(1)
	}
	as.arena.Reset()
	as.pq.Clear()
	as.numSettledStates = 0
	as.numPrunedEdges = 0
}

// ShortestPath. lightest path from origin to destination under opts.
func (as *AStar) ShortestPath(ctx context.Context, opts *traverse.SearchOptions, origin,
	destination da.Index) (*GraphPath, error) {
	var (
		from, to *da.Vertex
	)
	as.graph.View(func() {
		from = as.graph.GetVertex(origin)
		to = as.graph.GetVertex(destination)
	})
	if from == nil {
		return nil, util.WrapErrorf(ErrInvalidVertex, util.ErrBadParamInput, "origin %d", origin)
	}
	if to == nil {
		return nil, util.WrapErrorf(ErrInvalidVertex, util.ErrBadParamInput, "destination %d", destination)
	}

	start, target := from, to
	if opts.ArriveBy {
		start, target = to, from
	}

	if err := as.heuristic.Initialize(ctx, opts, target); err != nil {
		return nil, err
	}

	var (
		goal  traverse.State
		found bool
		err   error
	)
	as.graph.View(func() {
		goal, found, err = as.search(ctx, opts, start, target)
	})
	if err != nil {
		return nil, err
	}

	as.logger.Debug("search done", zap.Uint32("origin", uint32(origin)),
		zap.Uint32("destination", uint32(destination)), zap.Bool("arriveBy", opts.ArriveBy),
		zap.Int("settled", as.numSettledStates), zap.Int("pruned", as.numPrunedEdges))
	if !found {
		return nil, util.WrapErrorf(ErrPathNotFound, util.ErrNotFound, "from %v to %v", from, to)
	}
	return NewGraphPath(as.arena.Path(goal.GetRef()), opts.ArriveBy), nil
}

func (as *AStar) search(ctx context.Context, opts *traverse.SearchOptions, start,
	target *da.Vertex) (traverse.State, bool, error) {
	as.preallocate()

	for _, s0 := range traverse.NewInitialStates(start, opts) {
		as.enqueue(s0)
	}

	for !as.pq.IsEmpty() {
		node, _ := as.pq.ExtractMin()
		s := as.arena.Get(node.GetItem())
		if da.Gt(s.GetWeight(), as.bestWeight[labelKey(s)]) {
			// stale, a lighter state with the same key was enqueued after this one
			continue
		}

		as.numSettledStates++
		if as.numSettledStates%checkCancelEvery == 0 && util.StopConcurrentOperation(ctx) {
			return traverse.State{}, false, util.WrapErrorf(ErrSearchCancelled, util.ErrInternalServerError,
				"search to %v after %d states", target, as.numSettledStates)
		}

		// an arriveBy car query still parked at the origin never had a car to start with
		if s.GetVertex() == target && !(opts.ArriveBy && s.IsCarParked()) {
			return s, true, nil
		}

		for _, e := range incidentEdges(as.graph, s.GetVertex().GetID(), opts) {
			if math.IsInf(e.WeightLowerBound(opts), 1) {
				// the whole edge class is unusable for this query
				as.numPrunedEdges++
				continue
			}
			s1, ok := e.Traverse(s)
			if !ok {
				continue
			}
			as.enqueue(s1)
		}
	}
	return traverse.State{}, false, nil
}

func (as *AStar) enqueue(s traverse.State) {
	key := labelKey(s)
	if !da.Lt(s.GetWeight(), as.bestWeight[key]) {
		return
	}
	h := as.heuristic.EstimateRemainingWeight(s)
	if math.IsInf(h, 1) {
		return
	}
	as.bestWeight[key] = s.GetWeight()
	s = as.arena.Add(s)
	as.pq.Insert(da.NewPriorityQueueNode(s.GetWeight()+h, s.GetRef()))
}

func (as *AStar) GetNumSettledStates() int {
	return as.numSettledStates
}

func (as *AStar) GetNumPrunedEdges() int {
	return as.numPrunedEdges
}

// GetStateArena. every state published by the last search.
func (as *AStar) GetStateArena() *traverse.StateArena {
	return as.arena
}
