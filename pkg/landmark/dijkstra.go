package landmark

import (
	"context"
	"math"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

const (
	checkCancelEvery = 1024
)

// Dijkstra one to all search over edge lower bound weights.
type Dijkstra struct {
	graph           Graph
	opts            *traverse.SearchOptions
	useReverseGraph bool

	dist      []float64
	heapNodes []*da.PriorityQueueNode[da.Index]
	pq        *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph Graph, opts *traverse.SearchOptions, useReverseGraph bool) *Dijkstra {
	n := graph.NumberOfVertices()
	return &Dijkstra{
		graph:           graph,
		opts:            opts,
		useReverseGraph: useReverseGraph,
		dist:            make([]float64, n),
		heapNodes:       make([]*da.PriorityQueueNode[da.Index], n),
		pq:              da.NewFourAryHeap[da.Index](),
	}
}

// ShortestPath. dist(s, v) for every v, or dist(v, s) on the reverse graph. unreachable vertices get INF_WEIGHT.
// must be called while the caller holds the graph read lock.
func (us *Dijkstra) ShortestPath(ctx context.Context, s da.Index) ([]float64, error) {
	for v := range us.dist {
		us.dist[v] = pkg.INF_WEIGHT
		us.heapNodes[v] = nil
	}
	us.pq.Clear()
	us.numSettledNodes = 0

	us.dist[s] = 0
	us.heapNodes[s] = da.NewPriorityQueueNode(0, s)
	us.pq.Insert(us.heapNodes[s])

	for !us.pq.IsEmpty() {
		node, _ := us.pq.ExtractMin()
		u := node.GetItem()
		us.numSettledNodes++
		if us.numSettledNodes%checkCancelEvery == 0 && util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		edges := us.graph.GetOutEdges(u)
		if us.useReverseGraph {
			edges = us.graph.GetInEdges(u)
		}
		for _, e := range edges {
			w := traverse.EdgeLowerBound(e, us.opts)
			if math.IsInf(w, 1) {
				continue
			}

			v := e.GetToVertex().GetID()
			if us.useReverseGraph {
				v = e.GetFromVertex().GetID()
			}

			newDist := us.dist[u] + w
			if !da.Lt(newDist, us.dist[v]) {
				continue
			}
			us.dist[v] = newDist
			if us.heapNodes[v] == nil || us.heapNodes[v].GetPos() < 0 {
				us.heapNodes[v] = da.NewPriorityQueueNode(newDist, v)
				us.pq.Insert(us.heapNodes[v])
			} else if err := us.pq.DecreaseKey(us.heapNodes[v], newDist); err != nil {
				return nil, err
			}
		}
	}

	sps := make([]float64, len(us.dist))
	copy(sps, us.dist)
	return sps, nil
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}
