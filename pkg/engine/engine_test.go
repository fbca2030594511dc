package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/config"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-transit/pkg/graph"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// street a <-> b, stop at b with a rail line to a second stop next to c. c is only reachable by rail.
func buildEngine(t *testing.T) (*Engine, []*da.Vertex) {
	return buildEngineWithConfig(t, config.RoutingConfig{Heuristic: routing.LOWER_BOUND, NumWorkers: 2})
}

func buildEngineWithConfig(t *testing.T, cfg config.RoutingConfig) (*Engine, []*da.Vertex) {
	g := graph.NewGraph(8)
	a := da.NewStreetVertex(0, "Tugu", -7.7829, 110.3671)
	b := da.NewStreetVertex(0, "Malioboro", -7.7925, 110.3658)
	c := da.NewStreetVertex(0, "Maguwo", -7.7840, 110.4370)
	stopB := da.NewTransitStop(0, "Stasiun Yogyakarta", -7.7893, 110.3633, 60, true)
	stopC := da.NewTransitStop(0, "Stasiun Maguwo", -7.7842, 110.4368, 60, true)
	platB := da.NewTransitPlatform(0, "Stasiun Yogyakarta 1", -7.7893, 110.3633, true)
	platC := da.NewTransitPlatform(0, "Stasiun Maguwo 1", -7.7842, 110.4368, true)
	vs := []*da.Vertex{a, b, c, stopB, stopC, platB, platC}
	for _, v := range vs {
		g.AddVertex(v)
	}
	require.NoError(t, g.AddEdges(
		traverse.NewStreetEdge(a, b, 1200, pkg.SECONDARY, "Jalan Margo Utomo", true),
		traverse.NewStreetEdge(b, a, 1200, pkg.SECONDARY, "Jalan Margo Utomo", true),
		traverse.NewStreetToStopLink(b, stopB, true),
		traverse.NewStopToStreetLink(stopC, c, true),
		traverse.NewPreBoardEdge(stopB, platB),
		traverse.NewTransitHopEdge(platB, platC, pkg.RAIL, 480, "Prameks", true),
		traverse.NewPreAlightEdge(platC, stopC),
	))

	return NewEngine(g, cfg, zap.NewNop()), vs
}

func TestEngineRoute(t *testing.T) {
	e, vs := buildEngine(t)
	a, c := vs[0], vs[2]

	path, err := e.Route(context.Background(), traverse.DefaultSearchOptions(), a.GetID(), c.GetID())
	require.NoError(t, err)
	legs := path.Legs()
	require.Len(t, legs, 2)
	assert.Equal(t, pkg.WALK, legs[0].Mode)
	assert.Equal(t, pkg.RAIL, legs[1].Mode)
	assert.Equal(t, "Prameks", legs[1].Edges[0].GetName())

	walkOnly := traverse.DefaultSearchOptions()
	walkOnly.TransitModes = 0
	_, err = e.Route(context.Background(), walkOnly, a.GetID(), c.GetID())
	assert.ErrorIs(t, err, routing.ErrPathNotFound)
	assert.Equal(t, util.ErrNotFound, util.ErrorCode(err))

	busOnly := traverse.DefaultSearchOptions()
	busOnly.TransitModes = pkg.NewTraverseModeSet(pkg.BUS)
	_, err = e.Route(context.Background(), busOnly, a.GetID(), c.GetID())
	assert.ErrorIs(t, err, routing.ErrPathNotFound)
}

func TestEngineRouteBatch(t *testing.T) {
	e, vs := buildEngine(t)
	opts := traverse.DefaultSearchOptions()

	results := e.RouteBatch(context.Background(), []routing.RouteRequest{
		{Origin: vs[0].GetID(), Destination: vs[2].GetID(), Options: opts},
		{Origin: vs[2].GetID(), Destination: vs[0].GetID(), Options: opts},
		{Origin: vs[1].GetID(), Destination: vs[0].GetID(), Options: opts},
	})
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, routing.ErrPathNotFound)
	require.NoError(t, results[2].Err)
	assert.Equal(t, vs[0], results[2].Path.GetEndVertex())
}

func TestEngineStreetConnectivity(t *testing.T) {
	e, vs := buildEngine(t)
	assert.False(t, e.StreetConnected(vs[0].GetID(), vs[1].GetID()))

	// {a, b} plus every other vertex on its own
	assert.Equal(t, 6, e.StreetConnectivity())
	assert.True(t, e.StreetConnected(vs[0].GetID(), vs[1].GetID()))
	assert.False(t, e.StreetConnected(vs[0].GetID(), vs[2].GetID()))
	assert.Equal(t, 7, e.GetGraph().NumberOfVertices())
}

func TestNewEngineFromConfig(t *testing.T) {
	g := graph.NewGraph(1)
	dir := t.TempDir()
	content := "log:\n  level: warn\nsearch:\n  wheelchair: true\nrouting:\n  heuristic: euclidean\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "engine.yaml"), []byte(content), 0o644))

	e, opts, err := NewEngineFromConfig(context.Background(), g, "engine", dir)
	require.NoError(t, err)
	assert.True(t, opts.Wheelchair)
	assert.Equal(t, routing.EUCLIDEAN, e.cfg.Heuristic)
	assert.Same(t, g, e.GetGraph())
}

func TestEngineLandmarks(t *testing.T) {
	landmarkFile := filepath.Join(t.TempDir(), "jogja.landmark")
	cfg := config.RoutingConfig{Heuristic: routing.LANDMARK, NumWorkers: 2, NumLandmarks: 3,
		LandmarkFile: landmarkFile}
	opts := traverse.DefaultSearchOptions()

	e, vs := buildEngineWithConfig(t, cfg)
	require.NoError(t, e.PrepareLandmarks(context.Background(), opts))
	require.NotNil(t, e.GetLandmarks())
	assert.FileExists(t, landmarkFile)

	reference, _ := buildEngine(t)
	for _, arriveBy := range []bool{false, true} {
		q := opts.Clone()
		q.ArriveBy = arriveBy
		want, err := reference.Route(context.Background(), q, vs[0].GetID(), vs[2].GetID())
		require.NoError(t, err)
		got, err := e.Route(context.Background(), q, vs[0].GetID(), vs[2].GetID())
		require.NoError(t, err)
		assert.InDelta(t, want.GetWeight(), got.GetWeight(), 1e-9, "arriveBy=%v", arriveBy)
	}

	// queries with other edge weights still get optimal paths
	slow := opts.Clone()
	slow.WalkSpeed = 0.5
	want, err := reference.Route(context.Background(), slow, vs[0].GetID(), vs[2].GetID())
	require.NoError(t, err)
	got, err := e.Route(context.Background(), slow, vs[0].GetID(), vs[2].GetID())
	require.NoError(t, err)
	assert.InDelta(t, want.GetWeight(), got.GetWeight(), 1e-9)

	// a second engine reads the persisted landmarks
	loaded, _ := buildEngineWithConfig(t, cfg)
	require.NoError(t, loaded.PrepareLandmarks(context.Background(), opts))
	assert.Equal(t, e.GetLandmarks().GetLandmarks(), loaded.GetLandmarks().GetLandmarks())

	results := loaded.RouteBatch(context.Background(), []routing.RouteRequest{
		{Origin: vs[0].GetID(), Destination: vs[2].GetID(), Options: opts},
	})
	require.NoError(t, results[0].Err)
	assert.Equal(t, vs[2], results[0].Path.GetEndVertex())
}

func TestPrepareLandmarksNoop(t *testing.T) {
	e, _ := buildEngine(t)
	require.NoError(t, e.PrepareLandmarks(context.Background(), traverse.DefaultSearchOptions()))
	assert.Nil(t, e.GetLandmarks())
}
