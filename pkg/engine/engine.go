package engine

import (
	"context"
	"errors"
	"os"

	"github.com/lintang-b-s/navigatorx-transit/pkg/config"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-transit/pkg/graph"
	"github.com/lintang-b-s/navigatorx-transit/pkg/landmark"
	"github.com/lintang-b-s/navigatorx-transit/pkg/logger"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"go.uber.org/zap"
)

// Engine. query entry point over one shared multimodal graph.
type Engine struct {
	graph        *graph.Graph
	cfg          config.RoutingConfig
	landmarks    *landmark.Landmark
	newHeuristic routing.HeuristicFactory
	batchRouter  *routing.BatchRouter
	logger       *zap.Logger
}

func NewEngine(g *graph.Graph, cfg config.RoutingConfig, logger *zap.Logger) *Engine {
	logger.Info("Starting multimodal query engine...", zap.Int("vertices", g.NumberOfVertices()),
		zap.Int("edges", g.NumberOfEdges()), zap.String("heuristic", cfg.Heuristic.String()),
		zap.Int("workers", cfg.NumWorkers))
	e := &Engine{
		graph:  g,
		cfg:    cfg,
		logger: logger,
	}
	e.setLandmarks(nil)
	return e
}

func (e *Engine) setLandmarks(lm *landmark.Landmark) {
	e.landmarks = lm
	e.newHeuristic = routing.NewHeuristicFactory(e.cfg.Heuristic, e.graph, lm, e.logger)
	e.batchRouter = routing.NewBatchRouter(e.graph, e.newHeuristic, e.cfg.NumWorkers, e.logger)
}

// PrepareLandmarks. loads the landmark file of the config, or computes landmarks for the edge weights of
// opts (and writes the file if one is configured). no-op unless the heuristic is LANDMARK.
// must run before queries are served & again after the graph changes.
func (e *Engine) PrepareLandmarks(ctx context.Context, opts *traverse.SearchOptions) error {
	if e.cfg.Heuristic != routing.LANDMARK {
		return nil
	}

	if e.cfg.LandmarkFile != "" {
		lm, err := landmark.ReadLandmark(e.cfg.LandmarkFile, opts)
		switch {
		case err == nil && lm.NumberOfVertices() == e.graph.NumberOfVertices():
			e.logger.Info("loaded landmarks", zap.String("file", e.cfg.LandmarkFile),
				zap.Int("numLandmarks", len(lm.GetLandmarks())))
			e.setLandmarks(lm)
			return nil
		case err == nil:
			e.logger.Warn("landmark file was built for another graph, recomputing",
				zap.String("file", e.cfg.LandmarkFile))
		case !errors.Is(err, os.ErrNotExist):
			return util.WrapErrorf(err, util.ErrInternalServerError, "read landmarks %s", e.cfg.LandmarkFile)
		}
	}

	lm := landmark.NewLandmark()
	if err := lm.PreprocessALT(ctx, e.cfg.NumLandmarks, e.graph, opts, e.logger); err != nil {
		return err
	}
	if e.cfg.LandmarkFile != "" {
		if err := lm.WriteLandmark(e.cfg.LandmarkFile); err != nil {
			return util.WrapErrorf(err, util.ErrInternalServerError, "write landmarks %s", e.cfg.LandmarkFile)
		}
	}
	e.setLandmarks(lm)
	return nil
}

func (e *Engine) GetLandmarks() *landmark.Landmark {
	return e.landmarks
}

// NewEngineFromConfig. reads config <configName> (see config.Load) and builds the logger & engine from it.
// the returned SearchOptions are the configured defaults for queries, landmarks are prepared for them.
func NewEngineFromConfig(ctx context.Context, g *graph.Graph, configName string,
	paths ...string) (*Engine, *traverse.SearchOptions, error) {
	cfg, err := config.Load(configName, paths...)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewWithLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	e := NewEngine(g, cfg.Routing, log)
	if err := e.PrepareLandmarks(ctx, cfg.Search); err != nil {
		return nil, nil, err
	}
	return e, cfg.Search, nil
}

func (e *Engine) GetGraph() *graph.Graph {
	return e.graph
}

// Route. lightest path between origin & destination under opts.
func (e *Engine) Route(ctx context.Context, opts *traverse.SearchOptions, origin,
	destination da.Index) (*routing.GraphPath, error) {
	astar := routing.NewAStar(e.graph, e.newHeuristic(), e.logger)
	path, err := astar.ShortestPath(ctx, opts, origin, destination)
	if err != nil {
		e.logger.Debug("route failed", zap.Uint32("origin", uint32(origin)),
			zap.Uint32("destination", uint32(destination)), zap.Error(err))
		return nil, err
	}
	return path, nil
}

func (e *Engine) RouteBatch(ctx context.Context, requests []routing.RouteRequest) []routing.RouteResult {
	return e.batchRouter.Route(ctx, requests)
}

// StreetConnectivity. recomputes the strongly connected components of the street-only graph, so
// StreetConnected can answer without a search. returns the number of components.
func (e *Engine) StreetConnectivity() int {
	opts := traverse.DefaultSearchOptions()
	opts.TransitModes = 0
	numComponents := e.graph.RunKosaraju(opts)
	e.logger.Info("computed street connectivity", zap.Int("components", numComponents))
	return numComponents
}

// StreetConnected. true if u & v reach each other by walking. StreetConnectivity must run first.
func (e *Engine) StreetConnected(u, v da.Index) bool {
	var connected bool
	e.graph.View(func() {
		connected = e.graph.StronglyConnected(u, v)
	})
	return connected
}
