package graph

import (
	"errors"

	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"github.com/puzpuzpuz/xsync/v3"
)

var (
	ErrUnknownVertex = errors.New("edge endpoint is not a vertex of the graph")
)

// Graph. in-memory multimodal graph, street & transit vertices share one index space.
// topology is read-mostly: searches read inside View, AddVertex/AddEdge take the write lock.
type Graph struct {
	vertices []*da.Vertex
	outEdges [][]traverse.Edge
	inEdges  [][]traverse.Edge
	numEdges int

	sccs []da.Index

	mu *xsync.RBMutex
}

func NewGraph(vertexCapacity int) *Graph {
	return &Graph{
		vertices: make([]*da.Vertex, 0, vertexCapacity),
		outEdges: make([][]traverse.Edge, 0, vertexCapacity),
		inEdges:  make([][]traverse.Edge, 0, vertexCapacity),
		mu:       xsync.NewRBMutex(),
	}
}

// AddVertex. v gets the next free index as its id.
func (g *Graph) AddVertex(v *da.Vertex) da.Index {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := da.Index(len(g.vertices))
	v.SetId(id)
	g.vertices = append(g.vertices, v)
	g.outEdges = append(g.outEdges, make([]traverse.Edge, 0, 2))
	g.inEdges = append(g.inEdges, make([]traverse.Edge, 0, 2))
	g.sccs = nil
	return id
}

func (g *Graph) AddEdge(e traverse.Edge) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	from, to := e.GetFromVertex(), e.GetToVertex()
	if !g.contains(from) || !g.contains(to) {
		return util.WrapErrorf(ErrUnknownVertex, util.ErrBadParamInput, "AddEdge %v", e)
	}
	g.outEdges[from.GetID()] = append(g.outEdges[from.GetID()], e)
	g.inEdges[to.GetID()] = append(g.inEdges[to.GetID()], e)
	g.numEdges++
	g.sccs = nil
	return nil
}

// AddEdges. adds edges in order, stops at the first invalid one.
func (g *Graph) AddEdges(edges ...traverse.Edge) error {
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) contains(v *da.Vertex) bool {
	if v == nil {
		return false
	}
	id := v.GetID()
	return int(id) < len(g.vertices) && g.vertices[id] == v
}

// View. runs fn while holding a read lock, graph mutations wait until fn returns.
// accessors below don't lock by themselves, call them inside View when the graph may be mutated concurrently.
func (g *Graph) View(fn func()) {
	token := g.mu.RLock()
	defer g.mu.RUnlock(token)
	fn()
}

// GetVertex. nil if id is not a vertex of the graph.
func (g *Graph) GetVertex(id da.Index) *da.Vertex {
	if int(id) >= len(g.vertices) {
		return nil
	}
	return g.vertices[id]
}

func (g *Graph) GetOutEdges(id da.Index) []traverse.Edge {
	return g.outEdges[id]
}

func (g *Graph) GetInEdges(id da.Index) []traverse.Edge {
	return g.inEdges[id]
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

func (g *Graph) ForVertices(handle func(v *da.Vertex)) {
	for _, v := range g.vertices {
		handle(v)
	}
}
