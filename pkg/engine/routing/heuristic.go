package routing

import (
	"context"
	"math"
	"strings"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/lintang-b-s/navigatorx-transit/pkg/landmark"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RemainingWeightHeuristic. admissible estimate of the weight left between a state and the search target.
// +Inf means the target can't be reached from the state at all.
type RemainingWeightHeuristic interface {
	Initialize(ctx context.Context, opts *traverse.SearchOptions, target *da.Vertex) error
	EstimateRemainingWeight(s traverse.State) float64
}

type HeuristicType uint8

const (
	TRIVIAL HeuristicType = iota
	EUCLIDEAN
	LOWER_BOUND
	LANDMARK
)

func ParseHeuristicType(s string) (HeuristicType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trivial", "dijkstra":
		return TRIVIAL, true
	case "euclidean":
		return EUCLIDEAN, true
	case "lowerbound", "lower_bound":
		return LOWER_BOUND, true
	case "landmark", "alt":
		return LANDMARK, true
	default:
		return TRIVIAL, false
	}
}

func (h HeuristicType) String() string {
	switch h {
	case TRIVIAL:
		return "trivial"
	case EUCLIDEAN:
		return "euclidean"
	case LOWER_BOUND:
		return "lowerbound"
	case LANDMARK:
		return "landmark"
	default:
		return "unknown"
	}
}

// NewHeuristic. fresh, uninitialized heuristic of type h. LANDMARK needs precomputed landmarks,
// see NewHeuristicFactory, here it falls back to LOWER_BOUND.
func NewHeuristic(h HeuristicType, g Graph, logger *zap.Logger) RemainingWeightHeuristic {
	switch h {
	case EUCLIDEAN:
		return NewEuclideanHeuristic()
	case LOWER_BOUND, LANDMARK:
		return NewLowerBoundHeuristic(g, logger)
	default:
		return NewTrivialHeuristic()
	}
}

// HeuristicFactory. builds one heuristic per search, heuristics keep per-search state.
type HeuristicFactory func() RemainingWeightHeuristic

// NewHeuristicFactory. lm is only used by LANDMARK and may be nil.
func NewHeuristicFactory(h HeuristicType, g Graph, lm *landmark.Landmark, logger *zap.Logger) HeuristicFactory {
	if h == LANDMARK && lm != nil {
		return func() RemainingWeightHeuristic {
			return NewLandmarkHeuristic(g, lm, logger)
		}
	}
	return func() RemainingWeightHeuristic {
		return NewHeuristic(h, g, logger)
	}
}

// TrivialHeuristic. always 0, turns A* into dijkstra.
type TrivialHeuristic struct{}

func NewTrivialHeuristic() *TrivialHeuristic {
	return &TrivialHeuristic{}
}

func (h *TrivialHeuristic) Initialize(ctx context.Context, opts *traverse.SearchOptions, target *da.Vertex) error {
	return nil
}

func (h *TrivialHeuristic) EstimateRemainingWeight(s traverse.State) float64 {
	return 0
}

// EuclideanHeuristic. great-circle distance to the target at the fastest street speed of the query.
// assumes street edge lengths are never shorter than the straight line between their endpoints.
type EuclideanHeuristic struct {
	target   geo.Coordinate
	maxSpeed float64
	disabled bool
}

func NewEuclideanHeuristic() *EuclideanHeuristic {
	return &EuclideanHeuristic{}
}

func (h *EuclideanHeuristic) Initialize(ctx context.Context, opts *traverse.SearchOptions, target *da.Vertex) error {
	h.target = target.GetCoordinate()
	h.maxSpeed = opts.MaxSpeed()
	// transit speed is unbounded from the street network point of view
	h.disabled = opts.TransitAllowed() || h.maxSpeed <= 0
	return nil
}

func (h *EuclideanHeuristic) EstimateRemainingWeight(s traverse.State) float64 {
	if h.disabled {
		return 0
	}
	return geo.GreatCircleDistance(s.GetVertex().GetCoordinate(), h.target) / h.maxSpeed
}

// LowerBoundHeuristic. exact shortest distances to the target over edge lower bounds, computed by a
// dijkstra search from the target against the search direction. edges with a +Inf bound are never relaxed.
type LowerBoundHeuristic struct {
	graph  Graph
	logger *zap.Logger

	opts   *traverse.SearchOptions
	target *da.Vertex
	dist   []float64
}

func NewLowerBoundHeuristic(g Graph, logger *zap.Logger) *LowerBoundHeuristic {
	return &LowerBoundHeuristic{
		graph:  g,
		logger: logger,
	}
}

func (h *LowerBoundHeuristic) Initialize(ctx context.Context, opts *traverse.SearchOptions, target *da.Vertex) error {
	if h.dist != nil && h.opts == opts && h.target == target {
		return nil
	}

	var err error
	h.graph.View(func() {
		err = h.run(ctx, opts, target)
	})
	if err != nil {
		return err
	}
	h.opts = opts
	h.target = target
	return nil
}

func (h *LowerBoundHeuristic) run(ctx context.Context, opts *traverse.SearchOptions, target *da.Vertex) error {
	n := h.graph.NumberOfVertices()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = pkg.INF_WEIGHT
	}
	nodes := make([]*da.PriorityQueueNode[da.Index], n)

	pq := da.NewFourAryHeap[da.Index]()
	pq.Preallocate(n)
	dist[target.GetID()] = 0
	nodes[target.GetID()] = da.NewPriorityQueueNode(0, target.GetID())
	pq.Insert(nodes[target.GetID()])

	numSettled := 0
	for !pq.IsEmpty() {
		node, _ := pq.ExtractMin()
		u := node.GetItem()
		numSettled++
		if numSettled%checkCancelEvery == 0 && util.StopConcurrentOperation(ctx) {
			return util.WrapErrorf(ErrSearchCancelled, util.ErrInternalServerError, "lower bound search to %v", target)
		}

		for _, e := range reverseIncidentEdges(h.graph, u, opts) {
			w := traverse.EdgeLowerBound(e, opts)
			if math.IsInf(w, 1) {
				continue
			}
			v := e.GetFromVertex().GetID()
			if opts.ArriveBy {
				v = e.GetToVertex().GetID()
			}
			newDist := dist[u] + w
			if !da.Lt(newDist, dist[v]) {
				continue
			}
			dist[v] = newDist
			if nodes[v] == nil || nodes[v].GetPos() < 0 {
				nodes[v] = da.NewPriorityQueueNode(newDist, v)
				pq.Insert(nodes[v])
			} else if err := pq.DecreaseKey(nodes[v], newDist); err != nil {
				return util.WrapErrorf(err, util.ErrInternalServerError, "lower bound search to %v", target)
			}
		}
	}

	h.dist = dist
	h.logger.Debug("lower bound search done", zap.Uint32("target", uint32(target.GetID())),
		zap.Int("settled", numSettled))
	return nil
}

func (h *LowerBoundHeuristic) EstimateRemainingWeight(s traverse.State) float64 {
	return h.GetLowerBound(s.GetVertex().GetID())
}

// GetLowerBound. lower bound of the weight between v & the target.
// 0 for vertices added after the lower bound search.
func (h *LowerBoundHeuristic) GetLowerBound(v da.Index) float64 {
	if int(v) >= len(h.dist) {
		return 0
	}
	return h.dist[v]
}

// PrecomputeLowerBounds. initializes one LowerBoundHeuristic per target, at most limit at a time.
func PrecomputeLowerBounds(ctx context.Context, g Graph, opts *traverse.SearchOptions, targets []da.Index,
	limit int, logger *zap.Logger) (map[da.Index]*LowerBoundHeuristic, error) {
	vertices := make([]*da.Vertex, len(targets))
	g.View(func() {
		for i, t := range targets {
			vertices[i] = g.GetVertex(t)
		}
	})
	for i, v := range vertices {
		if v == nil {
			return nil, util.WrapErrorf(ErrInvalidVertex, util.ErrBadParamInput, "lower bound target %d", targets[i])
		}
	}

	heuristics := make([]*LowerBoundHeuristic, len(targets))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(util.Max(1, limit))
	for i, target := range vertices {
		i, target := i, target
		eg.Go(func() error {
			h := NewLowerBoundHeuristic(g, logger)
			if err := h.Initialize(egCtx, opts, target); err != nil {
				return err
			}
			heuristics[i] = h
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := make(map[da.Index]*LowerBoundHeuristic, len(targets))
	for i, t := range targets {
		result[t] = heuristics[i]
	}
	logger.Info("precomputed lower bound heuristics", zap.Int("targets", len(targets)))
	return result, nil
}
