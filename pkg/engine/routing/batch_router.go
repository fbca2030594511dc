package routing

import (
	"context"

	"github.com/lintang-b-s/navigatorx-transit/pkg/concurrent"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"go.uber.org/zap"
)

type RouteRequest struct {
	Origin      da.Index
	Destination da.Index
	Options     *traverse.SearchOptions
}

type RouteResult struct {
	Request RouteRequest
	Path    *GraphPath
	Err     error
}

// BatchRouter. answers independent queries concurrently on one shared graph.
// every query gets its own AStar & heuristic, only the graph is shared.
type BatchRouter struct {
	graph        Graph
	newHeuristic HeuristicFactory
	numWorkers   int
	logger       *zap.Logger
}

func NewBatchRouter(g Graph, newHeuristic HeuristicFactory, numWorkers int, logger *zap.Logger) *BatchRouter {
	return &BatchRouter{
		graph:        g,
		newHeuristic: newHeuristic,
		numWorkers:   numWorkers,
		logger:       logger,
	}
}

// Route. results are in request order.
func (br *BatchRouter) Route(ctx context.Context, requests []RouteRequest) []RouteResult {
	results := concurrent.Run(ctx, br.numWorkers, requests, br.route)

	numFailed := 0
	for _, r := range results {
		if r.Err != nil {
			numFailed++
		}
	}
	br.logger.Info("batch routing done", zap.Int("requests", len(requests)), zap.Int("failed", numFailed))
	return results
}

func (br *BatchRouter) route(ctx context.Context, req RouteRequest) RouteResult {
	if err := ctx.Err(); err != nil {
		return RouteResult{Request: req, Err: err}
	}
	astar := NewAStar(br.graph, br.newHeuristic(), br.logger)
	path, err := astar.ShortestPath(ctx, req.Options, req.Origin, req.Destination)
	return RouteResult{Request: req, Path: path, Err: err}
}
