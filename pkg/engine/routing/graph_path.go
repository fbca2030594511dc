package routing

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"github.com/samber/lo"
)

// step. one traversed edge in travel order.
type step struct {
	edge    traverse.Edge
	mode    pkg.TraverseMode
	seconds int64
}

// GraphPath. a found path in travel order (origin first), whatever the search direction was.
type GraphPath struct {
	states []traverse.State
	steps  []step
	weight float64
	time   int64
}

// NewGraphPath. states in search order, as returned by StateArena.Path.
func NewGraphPath(states []traverse.State, arriveBy bool) *GraphPath {
	steps := make([]step, 0, len(states))
	for i := 1; i < len(states); i++ {
		steps = append(steps, step{
			edge:    states[i].GetBackEdge(),
			mode:    states[i].GetBackMode(),
			seconds: util.Abs(states[i].GetTime() - states[i-1].GetTime()),
		})
	}

	last := states[len(states)-1]
	path := &GraphPath{
		states: states,
		steps:  steps,
		weight: last.GetWeight(),
		time:   last.GetElapsedTimeSeconds(),
	}
	if arriveBy {
		path.states = lo.Reverse(path.states)
		path.steps = lo.Reverse(path.steps)
	}
	return path
}

// GetStates. in travel order. for an arriveBy path the search ran backwards, so weights decrease along it.
func (p *GraphPath) GetStates() []traverse.State {
	return p.states
}

func (p *GraphPath) GetEdges() []traverse.Edge {
	return lo.Map(p.steps, func(s step, _ int) traverse.Edge {
		return s.edge
	})
}

func (p *GraphPath) GetWeight() float64 {
	return p.weight
}

// GetDuration in seconds.
func (p *GraphPath) GetDuration() int64 {
	return p.time
}

func (p *GraphPath) GetDistance() float64 {
	return lo.SumBy(p.steps, func(s step) float64 {
		return s.edge.GetDistance()
	})
}

func (p *GraphPath) GetStartVertex() *da.Vertex {
	return p.states[0].GetVertex()
}

func (p *GraphPath) GetEndVertex() *da.Vertex {
	return p.states[len(p.states)-1].GetVertex()
}

func (p *GraphPath) GetNumBoardings() int {
	return lo.MaxBy(p.states, func(a, b traverse.State) bool {
		return a.GetNumBoardings() > b.GetNumBoardings()
	}).GetNumBoardings()
}

// GetCoordinates. concatenated edge geometries, without repeating shared endpoints.
func (p *GraphPath) GetCoordinates() []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(p.steps)+1)
	for _, s := range p.steps {
		for _, c := range s.edge.GetGeometry() {
			if len(coords) > 0 && coords[len(coords)-1] == c {
				continue
			}
			coords = append(coords, c)
		}
	}
	if len(coords) == 0 {
		coords = append(coords, p.GetStartVertex().GetCoordinate())
	}
	return coords
}

func (p *GraphPath) Polyline() string {
	return geo.EncodePolyline(p.GetCoordinates())
}

// Leg. maximal run of edges travelled in the same mode.
type Leg struct {
	Mode     pkg.TraverseMode
	Edges    []traverse.Edge
	Distance float64 // meter
	Duration int64   // seconds
}

func (l Leg) GetFromVertex() *da.Vertex {
	return l.Edges[0].GetFromVertex()
}

func (l Leg) GetToVertex() *da.Vertex {
	return l.Edges[len(l.Edges)-1].GetToVertex()
}

// Legs. splits the path at LEG_SWITCH edges & mode changes. LEG_SWITCH edges belong to no leg.
func (p *GraphPath) Legs() []Leg {
	legs := make([]Leg, 0, 4)
	newLeg := true
	for _, s := range p.steps {
		if s.mode == pkg.LEG_SWITCH {
			newLeg = true
			continue
		}
		if newLeg || legs[len(legs)-1].Mode != s.mode {
			legs = append(legs, Leg{Mode: s.mode})
		}
		leg := &legs[len(legs)-1]
		leg.Edges = append(leg.Edges, s.edge)
		leg.Distance += s.edge.GetDistance()
		leg.Duration += s.seconds
		newLeg = false
	}
	return legs
}
