package traverse

import (
	"math"
	"testing"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	street    *da.Vertex
	street2   *da.Vertex
	stop      *da.Vertex
	stopNoWc  *da.Vertex
	platform  *da.Vertex
	platform2 *da.Vertex
	stop2     *da.Vertex
	road      *StreetEdge
	footway   *StreetEdge
	motorway  *StreetEdge
	enter     *StreetTransitLink
	enterNoWc *StreetTransitLink
	exit      *StreetTransitLink
	board     *PreBoardEdge
	boardNoWc *PreBoardEdge
	hop       *TransitHopEdge
	alight    *PreAlightEdge
}

func newFixture() fixture {
	f := fixture{}
	f.street = da.NewStreetVertex(0, "Jalan Malioboro", -7.7925, 110.3658)
	f.street2 = da.NewStreetVertex(1, "Jalan Mataram", -7.7935, 110.3668)
	f.stop = da.NewTransitStop(2, "Halte Malioboro", -7.7926, 110.3659, 30, true)
	f.stopNoWc = da.NewTransitStop(3, "Halte Tugu", -7.7830, 110.3670, 10, false)
	f.platform = da.NewTransitPlatform(4, "Halte Malioboro 1A", -7.7926, 110.3659, true)
	f.platform2 = da.NewTransitPlatform(5, "Halte Prambanan 1A", -7.7560, 110.4920, true)
	f.stop2 = da.NewTransitStop(6, "Halte Prambanan", -7.7560, 110.4920, 0, true)

	f.road = NewStreetEdge(f.street, f.street2, 150, pkg.RESIDENTIAL, "Jalan Malioboro", true)
	f.footway = NewStreetEdge(f.street, f.street2, 120, pkg.FOOTWAY, "gang", false)
	f.motorway = NewStreetEdge(f.street, f.street2, 2000, pkg.MOTORWAY, "tol", false)
	f.enter = NewStreetToStopLink(f.street, f.stop, true)
	f.enterNoWc = NewStreetToStopLink(f.street, f.stopNoWc, false)
	f.exit = NewStopToStreetLink(f.stop2, f.street2, true)
	f.board = NewPreBoardEdge(f.stop, f.platform)
	f.boardNoWc = NewPreBoardEdge(f.stopNoWc, f.platform)
	f.hop = NewTransitHopEdge(f.platform, f.platform2, pkg.BUS, 900, "Trans Jogja 1A", true)
	f.alight = NewPreAlightEdge(f.platform2, f.stop2)
	return f
}

func (f fixture) edges() []Edge {
	return []Edge{f.road, f.footway, f.motorway, f.enter, f.enterNoWc, f.exit, f.board, f.boardNoWc,
		f.hop, f.alight}
}

func walkOptions() *SearchOptions {
	return DefaultSearchOptions()
}

func carOptions(kissAndRide bool) *SearchOptions {
	opts := DefaultSearchOptions()
	opts.Mode = pkg.CAR
	opts.KissAndRide = kissAndRide
	return opts
}

func TestStreetTransitLinkScenarios(t *testing.T) {
	f := newFixture()

	t.Run("accessible walk query crossing a link with 30s street to stop time", func(t *testing.T) {
		opts := walkOptions()
		opts.Wheelchair = true
		s0 := NewState(f.street, opts)

		s1, ok := f.enter.Traverse(s0)
		require.True(t, ok)
		assert.Equal(t, 31.0, s1.GetWeight()-s0.GetWeight())
		assert.Equal(t, int64(31), s1.GetTime()-s0.GetTime())
		assert.Equal(t, pkg.LEG_SWITCH, s1.GetBackMode())
		assert.Equal(t, f.stop, s1.GetVertex())
		assert.False(t, s1.IsCarParked())
	})

	t.Run("car with kiss and ride parks at the link", func(t *testing.T) {
		s0 := NewState(f.street, carOptions(true))
		require.Equal(t, pkg.CAR, s0.NonTransitMode())

		s1, ok := f.enter.Traverse(s0)
		require.True(t, ok)
		assert.True(t, s1.IsCarParked())
		assert.Equal(t, pkg.WALK, s1.NonTransitMode())
		assert.Equal(t, 31.0, s1.GetWeight())
		assert.Equal(t, int64(31), s1.GetTime())
		assert.Equal(t, pkg.LEG_SWITCH, s1.GetBackMode())
	})

	t.Run("car without kiss and ride is unreachable", func(t *testing.T) {
		s0 := NewState(f.street, carOptions(false))
		_, ok := f.enter.Traverse(s0)
		assert.False(t, ok)
	})

	t.Run("park and ride also parks", func(t *testing.T) {
		opts := carOptions(false)
		opts.ParkAndRide = true
		s1, ok := f.enter.Traverse(NewState(f.street, opts))
		require.True(t, ok)
		assert.True(t, s1.IsCarParked())
	})

	t.Run("parked car crosses without changing the flag", func(t *testing.T) {
		s1, ok := f.enter.Traverse(NewState(f.street, carOptions(true)))
		require.True(t, ok)
		s2, ok := f.exit.Traverse(s1)
		require.True(t, ok)
		assert.True(t, s2.IsCarParked())
		assert.Equal(t, pkg.WALK, s2.NonTransitMode())
	})

	t.Run("source state is never modified", func(t *testing.T) {
		s0 := NewState(f.street, carOptions(true))
		before := s0
		_, ok := f.enter.Traverse(s0)
		require.True(t, ok)
		assert.Equal(t, before, s0)
	})
}

func TestStreetTransitLinkMetadata(t *testing.T) {
	f := newFixture()
	assert.Equal(t, pkg.LEG_SWITCH, f.enter.GetMode())
	assert.Equal(t, "street transit link", f.enter.GetName())
	assert.Equal(t, 0.0, f.enter.GetDistance())
	assert.Equal(t, f.stop, f.enter.GetTransitStop())
	assert.Equal(t, f.stop2, f.exit.GetTransitStop())
	assert.Equal(t, "StreetTransitLink(<street Jalan Malioboro> -> <stop Halte Malioboro>)", f.enter.String())
	assert.Len(t, f.enter.GetGeometry(), 2)
}

func TestTransitHopEdgeMetadata(t *testing.T) {
	f := newFixture()
	assert.Equal(t, pkg.BUS, f.hop.GetMode())
	assert.Equal(t, "Trans Jogja 1A", f.hop.GetName())
	assert.Equal(t, int64(900), f.hop.GetDuration())

	// malioboro to prambanan is roughly 14 km
	d := f.hop.GetDistance()
	assert.InDelta(t, geo.GreatCircleDistance(f.platform.GetCoordinate(), f.platform2.GetCoordinate()), d, 1e-6)
	assert.InDelta(t, 14500.0, d, 1000.0)
}

func TestAccessibilityEnforcement(t *testing.T) {
	f := newFixture()
	inaccessible := []Edge{f.footway, f.enterNoWc, f.boardNoWc,
		NewTransitHopEdge(f.platform, f.platform2, pkg.BUS, 600, "no lift", false)}

	for _, mode := range []pkg.TraverseMode{pkg.WALK, pkg.BICYCLE, pkg.CAR} {
		for _, parking := range []bool{false, true} {
			opts := DefaultSearchOptions()
			opts.Wheelchair = true
			opts.Mode = mode
			opts.KissAndRide = parking
			s0 := NewState(f.street, opts)
			for _, e := range inaccessible {
				_, ok := e.Traverse(s0)
				assert.False(t, ok, "%v must reject mode %v", e, mode)
			}
		}
	}
}

func TestStreetEdgePermissions(t *testing.T) {
	f := newFixture()

	testCases := []struct {
		name string
		edge *StreetEdge
		mode pkg.TraverseMode
		ok   bool
	}{
		{"walk on residential", f.road, pkg.WALK, true},
		{"car on residential", f.road, pkg.CAR, true},
		{"walk on footway", f.footway, pkg.WALK, true},
		{"car on footway", f.footway, pkg.CAR, false},
		{"bike on footway", f.footway, pkg.BICYCLE, false},
		{"walk on motorway", f.motorway, pkg.WALK, false},
		{"car on motorway", f.motorway, pkg.CAR, true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultSearchOptions()
			opts.Mode = tt.mode
			s1, ok := tt.edge.Traverse(NewState(f.street, opts))
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.mode, s1.GetBackMode())
			}
		})
	}
}

func TestStreetEdgeCost(t *testing.T) {
	f := newFixture()
	opts := DefaultSearchOptions()
	opts.WalkSpeed = 1.5
	opts.WalkReluctance = 2

	s1, ok := f.road.Traverse(NewState(f.street, opts))
	require.True(t, ok)
	assert.Equal(t, int64(100), s1.GetTime())
	assert.Equal(t, 200.0, s1.GetWeight())
	assert.Equal(t, f.street2, s1.GetVertex())
	assert.Equal(t, 100.0, f.road.WeightLowerBound(opts))

	opts.Mode = pkg.CAR
	opts.CarSpeed = 10
	s1, ok = f.road.Traverse(NewState(f.street, opts))
	require.True(t, ok)
	assert.Equal(t, int64(15), s1.GetTime())
	assert.Equal(t, 15.0, s1.GetWeight())
}

// stateSamples. reachable-looking states of many query shapes at every edge start.
func stateSamples(f fixture) []State {
	samples := make([]State, 0, 64)
	for _, mode := range []pkg.TraverseMode{pkg.WALK, pkg.BICYCLE, pkg.CAR} {
		for _, parking := range []bool{false, true} {
			for _, wheelchair := range []bool{false, true} {
				for _, transit := range []pkg.TraverseModeSet{0, pkg.ALL_TRANSIT_MODES} {
					opts := DefaultSearchOptions()
					opts.Mode = mode
					opts.KissAndRide = parking
					opts.Wheelchair = wheelchair
					opts.TransitModes = transit
					opts.TransferPenalty = 120
					for _, v := range []*da.Vertex{f.street, f.stop, f.platform, f.platform2, f.stop2} {
						s := NewState(v, opts)
						samples = append(samples, s)
						s.weight = 500
						s.time = 300
						s.numBoardings = 1
						samples = append(samples, s)
					}
				}
			}
		}
	}
	return samples
}

func TestTraversalProperties(t *testing.T) {
	f := newFixture()
	for _, e := range f.edges() {
		for _, s0 := range stateSamples(f) {
			if s0.GetVertex() != e.GetFromVertex() {
				continue
			}
			opts := s0.GetOptions()
			lowerBound := e.WeightLowerBound(opts)
			optimistic := e.OptimisticTraverse(s0)
			assert.False(t, math.IsInf(optimistic.GetWeight(), 0))

			s1, ok := e.Traverse(s0)
			if !ok {
				continue
			}
			delta := s1.GetWeight() - s0.GetWeight()
			// monotonicity
			assert.GreaterOrEqual(t, delta, 0.0, "%v", e)
			assert.Greater(t, s1.GetTime(), s0.GetTime(), "%v", e)
			// admissibility. +Inf classes are pruned by the driver before Traverse is ever called
			if !math.IsInf(lowerBound, 1) {
				assert.LessOrEqual(t, lowerBound, delta, "%v", e)
			}
			// optimistic dominance
			assert.LessOrEqual(t, optimistic.GetWeight(), s1.GetWeight(), "%v", e)
			assert.Equal(t, e, s1.GetBackEdge())
		}
	}
}

func TestTransitEntryPruning(t *testing.T) {
	f := newFixture()
	opts := DefaultSearchOptions()
	opts.TransitModes = 0

	for _, e := range []Edge{f.enter, f.exit, f.board, f.alight, f.hop} {
		assert.True(t, math.IsInf(e.WeightLowerBound(opts), 1), "%v", e)
	}
	assert.False(t, math.IsInf(f.road.WeightLowerBound(opts), 1))

	opts.TransitModes = pkg.NewTraverseModeSet(pkg.RAIL)
	assert.True(t, math.IsInf(f.hop.WeightLowerBound(opts), 1))
	assert.Equal(t, 0.0, f.enter.WeightLowerBound(opts))
	_, ok := f.hop.Traverse(NewState(f.platform, opts))
	assert.False(t, ok)
}

func TestBoardingAndTransferPenalty(t *testing.T) {
	f := newFixture()
	opts := DefaultSearchOptions()
	opts.BoardCost = 60
	opts.TransferPenalty = 300
	opts.BoardSlack = 45

	s1, ok := f.board.Traverse(NewState(f.stop, opts))
	require.True(t, ok)
	assert.Equal(t, 1, s1.GetNumBoardings())
	assert.Equal(t, 60.0, s1.GetWeight())
	assert.Equal(t, int64(45), s1.GetTime())

	s2, ok := f.hop.Traverse(s1)
	require.True(t, ok)
	assert.Equal(t, pkg.BUS, s2.GetBackMode())
	s3, ok := f.alight.Traverse(s2)
	require.True(t, ok)
	assert.Equal(t, 1, s3.GetNumBoardings())

	transfer := NewPreBoardEdge(f.stop2, f.platform2)
	s4, ok := transfer.Traverse(s3)
	require.True(t, ok)
	assert.Equal(t, 2, s4.GetNumBoardings())
	assert.Equal(t, 360.0, s4.GetWeight()-s3.GetWeight())
}

func TestArriveByParking(t *testing.T) {
	f := newFixture()
	opts := carOptions(true)
	opts.ArriveBy = true

	initial := NewInitialStates(f.street2, opts)
	require.Len(t, initial, 2)
	assert.True(t, initial[0].IsCarParked())
	assert.False(t, initial[1].IsCarParked())

	t.Run("walking from the destination stop keeps the car parked", func(t *testing.T) {
		s0 := NewState(f.street2, opts)
		s1, ok := f.exit.Traverse(s0)
		require.True(t, ok)
		assert.Equal(t, f.stop2, s1.GetVertex())
		assert.True(t, s1.IsCarParked())
		assert.Equal(t, int64(-1), s1.GetTime())
	})

	t.Run("driving state can't leave a car at a stop backwards", func(t *testing.T) {
		_, ok := f.exit.Traverse(initial[1])
		assert.False(t, ok)
	})

	t.Run("full reverse trip picks the car up at the origin stop", func(t *testing.T) {
		s, ok := f.exit.Traverse(NewState(f.street2, opts))
		require.True(t, ok)
		s, ok = f.alight.Traverse(s)
		require.True(t, ok)
		assert.Equal(t, 1, s.GetNumBoardings())
		s, ok = f.hop.Traverse(s)
		require.True(t, ok)
		s, ok = f.board.Traverse(s)
		require.True(t, ok)
		assert.Equal(t, f.stop, s.GetVertex())
		assert.Equal(t, opts.BoardCost+1+900, s.GetWeight())

		s, ok = f.enter.Traverse(s)
		require.True(t, ok)
		assert.Equal(t, f.street, s.GetVertex())
		assert.False(t, s.IsCarParked())
		assert.Equal(t, pkg.CAR, s.NonTransitMode())
		assert.Less(t, s.GetTime(), int64(0))
		assert.Equal(t, -s.GetTime(), s.GetElapsedTimeSeconds())
	})
}

func TestStateEditorDefects(t *testing.T) {
	f := newFixture()
	s0 := NewState(f.street, walkOptions())

	testCases := []struct {
		name string
		edit func(se *StateEditor)
	}{
		{"negative time", func(se *StateEditor) {
			se.IncrementTimeInSeconds(-1)
			se.SetBackMode(pkg.WALK)
		}},
		{"negative weight", func(se *StateEditor) {
			se.IncrementTimeInSeconds(1)
			se.IncrementWeight(-0.5)
			se.SetBackMode(pkg.WALK)
		}},
		{"nan weight", func(se *StateEditor) {
			se.IncrementTimeInSeconds(1)
			se.IncrementWeight(math.NaN())
			se.SetBackMode(pkg.WALK)
		}},
		{"infinite weight", func(se *StateEditor) {
			se.IncrementTimeInSeconds(1)
			se.IncrementWeight(math.Inf(1))
			se.SetBackMode(pkg.WALK)
		}},
		{"back mode twice", func(se *StateEditor) {
			se.IncrementTimeInSeconds(1)
			se.SetBackMode(pkg.WALK)
			se.SetBackMode(pkg.LEG_SWITCH)
		}},
		{"parked twice", func(se *StateEditor) {
			se.IncrementTimeInSeconds(1)
			se.SetCarParked(true)
			se.SetCarParked(false)
			se.SetBackMode(pkg.WALK)
		}},
		{"no back mode", func(se *StateEditor) {
			se.IncrementTimeInSeconds(1)
		}},
		{"no time progress", func(se *StateEditor) {
			se.IncrementWeight(1)
			se.SetBackMode(pkg.WALK)
		}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			se := s0.Edit(f.road)
			tt.edit(se)
			_, ok := se.MakeState()
			assert.False(t, ok)
		})
	}

	t.Run("editor is single use", func(t *testing.T) {
		se := s0.Edit(f.road)
		se.IncrementTimeInSeconds(5)
		se.SetBackMode(pkg.WALK)
		_, ok := se.MakeState()
		require.True(t, ok)
		_, ok = se.MakeState()
		assert.False(t, ok)
	})

	t.Run("optimistic state is made without time progress", func(t *testing.T) {
		se := s0.Edit(f.enter)
		se.IncrementWeight(1)
		se.SetBackMode(pkg.LEG_SWITCH)
		s1 := se.MakeOptimisticState()
		assert.Equal(t, int64(0), s1.GetTime())
		assert.Equal(t, 1.0, s1.GetWeight())
	})
}

func TestStateArenaPath(t *testing.T) {
	f := newFixture()
	arena := NewStateArena(8)
	s0 := arena.Add(NewState(f.street, walkOptions()))
	assert.True(t, s0.IsPublished())

	s1, ok := f.enter.Traverse(s0)
	require.True(t, ok)
	assert.False(t, s1.IsPublished())
	s1 = arena.Add(s1)
	s2, ok := f.board.Traverse(s1)
	require.True(t, ok)
	s2 = arena.Add(s2)

	assert.Equal(t, 3, arena.Len())
	path := arena.Path(s2.GetRef())
	require.Len(t, path, 3)
	assert.Equal(t, f.street, path[0].GetVertex())
	assert.Equal(t, f.stop, path[1].GetVertex())
	assert.Equal(t, f.platform, path[2].GetVertex())
	assert.Nil(t, path[0].GetBackEdge())
	assert.Equal(t, Edge(f.board), path[2].GetBackEdge())

	back, ok := arena.GetBackState(s2)
	require.True(t, ok)
	assert.Equal(t, s1.GetRef(), back.GetRef())
	_, ok = arena.GetBackState(s0)
	assert.False(t, ok)

	arena.Reset()
	assert.Equal(t, 0, arena.Len())
}

func TestSearchOptions(t *testing.T) {
	opts := DefaultSearchOptions()
	assert.True(t, opts.TransitAllowed())
	assert.False(t, opts.CarParkingAllowed())
	assert.Equal(t, pkg.NewTraverseModeSet(pkg.WALK), opts.UsableStreetModes())
	assert.Equal(t, pkg.DEFAULT_WALK_SPEED, opts.MaxSpeed())
	assert.True(t, opts.Allows(pkg.SUBWAY))
	assert.False(t, opts.Allows(pkg.CAR))

	car := carOptions(true)
	assert.True(t, car.UsableStreetModes().Contains(pkg.WALK))
	assert.True(t, car.UsableStreetModes().Contains(pkg.CAR))
	assert.Equal(t, pkg.DEFAULT_CAR_SPEED, car.MaxSpeed())
	assert.False(t, car.InitialCarParked())

	clone := car.Clone()
	clone.ArriveBy = true
	assert.True(t, clone.InitialCarParked())
	assert.False(t, car.ArriveBy)
	assert.NotNil(t, clone.GetCostFunction())
}

func BenchmarkStreetEdgeTraverse(b *testing.B) {
	f := newFixture()
	s0 := NewState(f.street, walkOptions())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.road.Traverse(s0)
	}
}

func BenchmarkStreetTransitLinkTraverse(b *testing.B) {
	f := newFixture()
	s0 := NewState(f.street, carOptions(true))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.enter.Traverse(s0)
	}
}

func TestEdgeLowerBound(t *testing.T) {
	f := newFixture()
	opts := DefaultSearchOptions()

	// optimistic weight of a link (structural cost) is tighter than its class bound of 0
	assert.Equal(t, float64(pkg.STL_TRAVERSE_COST), EdgeLowerBound(f.enter, opts))
	assert.Equal(t, opts.BoardCost, EdgeLowerBound(f.board, opts))
	assert.Equal(t, 900.0, EdgeLowerBound(f.hop, opts))
	assert.InDelta(t, 150/pkg.DEFAULT_WALK_SPEED, EdgeLowerBound(f.road, opts), 1e-9)

	arriveBy := opts.Clone()
	arriveBy.ArriveBy = true
	for _, e := range f.edges() {
		assert.Equal(t, EdgeLowerBound(e, opts), EdgeLowerBound(e, arriveBy), "%v", e)
	}

	opts.TransitModes = 0
	assert.True(t, math.IsInf(EdgeLowerBound(f.enter, opts), 1))
}
