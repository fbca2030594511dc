package routing

import (
	"context"

	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/landmark"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"go.uber.org/zap"
)

// LandmarkHeuristic. ALT lower bounds from precomputed landmark distances, O(k) per state.
// queries whose edge weights differ from the ones the landmarks were computed with use a
// LowerBoundHeuristic instead.
type LandmarkHeuristic struct {
	lm       *landmark.Landmark
	fallback *LowerBoundHeuristic
	logger   *zap.Logger

	target   da.Index
	arriveBy bool
	useALT   bool
}

func NewLandmarkHeuristic(g Graph, lm *landmark.Landmark, logger *zap.Logger) *LandmarkHeuristic {
	return &LandmarkHeuristic{
		lm:       lm,
		fallback: NewLowerBoundHeuristic(g, logger),
		logger:   logger,
	}
}

func (h *LandmarkHeuristic) Initialize(ctx context.Context, opts *traverse.SearchOptions, target *da.Vertex) error {
	h.target = target.GetID()
	h.arriveBy = opts.ArriveBy
	h.useALT = h.lm.Compatible(opts) && int(h.target) < h.lm.NumberOfVertices()
	if h.useALT {
		return nil
	}
	h.logger.Debug("landmarks were computed with other search options, using lower bound search",
		zap.Uint32("target", uint32(h.target)))
	return h.fallback.Initialize(ctx, opts, target)
}

func (h *LandmarkHeuristic) EstimateRemainingWeight(s traverse.State) float64 {
	if !h.useALT {
		return h.fallback.EstimateRemainingWeight(s)
	}
	u := s.GetVertex().GetID()
	if int(u) >= h.lm.NumberOfVertices() {
		// vertex added after preprocessing
		return 0
	}
	if h.arriveBy {
		// backward search, remaining weight is dist(target, u)
		return h.lm.FindTighestLowerBound(h.target, u)
	}
	return h.lm.FindTighestLowerBound(u, h.target)
}
