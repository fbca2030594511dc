package landmark

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/lintang-b-s/navigatorx-transit/pkg/traverse"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MAX_LANDMARKS = 64
)

var (
	ErrTooManyLandmarks = errors.New("too many landmarks, the maximum number of landmarks is 64")
	ErrEmptyGraph       = errors.New("graph has no vertices")
	ErrMalformedFile    = errors.New("malformed landmark file")
)

// Graph read access needed by the landmark preprocessing.
type Graph interface {
	GetVertex(id da.Index) *da.Vertex
	GetOutEdges(v da.Index) []traverse.Edge
	GetInEdges(v da.Index) []traverse.Edge
	NumberOfVertices() int
	View(fn func())
}

type Landmark struct {
	lw        [][]float64 // distance from each landmarks to every vertices in graph
	vlw       [][]float64 // distance from all vertices to each landmarks
	landmarks []da.Index  // landmark vertex ids

	opts *traverse.SearchOptions // options the lower bound weights were computed with
}

func NewLandmark() *Landmark {
	return &Landmark{
		lw:        make([][]float64, 0),
		vlw:       make([][]float64, 0),
		landmarks: make([]da.Index, 0),
	}
}

/*
[1] Goldberg, A.V. and Harrelson, C. (2005) 'Computing the shortest path: A search meets graph theory', in Proceedings of the Sixteenth Annual ACM-SIAM Symposium on Discrete Algorithms. USA: Society for Industrial and Applied Mathematics (SODA '05), pp. 156–165.

planar landmark selection, section 7 of [1]: for every sector direction theta pick the vertex furthest along theta,
plus one landmark nearest to the bounding box center.
*/
func (lm *Landmark) SelectLandmarks(k int, g Graph) []*da.Vertex {
	n := g.NumberOfVertices()
	vs := make([]*da.Vertex, 0, n)
	for i := 0; i < n; i++ {
		vs = append(vs, g.GetVertex(da.Index(i)))
	}
	if n == 0 || k <= 0 {
		return []*da.Vertex{}
	}

	minLon, maxLon := math.MaxFloat64, -math.MaxFloat64
	minLat, maxLat := math.MaxFloat64, -math.MaxFloat64
	for _, v := range vs {
		minLon = math.Min(minLon, v.GetLon())
		maxLon = math.Max(maxLon, v.GetLon())
		minLat = math.Min(minLat, v.GetLat())
		maxLat = math.Max(maxLat, v.GetLat())
	}
	centerLat := (maxLat + minLat) / 2.0
	centerLon := (maxLon + minLon) / 2.0

	thetaDif := 360.0 / float64(k)
	selected := make(map[da.Index]struct{}, k+1)
	landmarks := make([]*da.Vertex, 0, k+1)

	theta := 0.0
	for i := 0; i < k; i++ {
		// O(k * VlogV)
		thetaRad := util.DegreeToRadians(theta)
		sint := math.Sin(thetaRad)
		cost := math.Cos(thetaRad)
		sort.SliceStable(vs, func(a, b int) bool {
			pa := vs[a].GetLon()*cost + vs[a].GetLat()*sint
			pb := vs[b].GetLon()*cost + vs[b].GetLat()*sint
			return pa < pb
		})

		// furthest vertex along theta that is not already a landmark
		for j := n - 1; j >= 0; j-- {
			if _, ok := selected[vs[j].GetID()]; !ok {
				selected[vs[j].GetID()] = struct{}{}
				landmarks = append(landmarks, vs[j])
				break
			}
		}
		theta += thetaDif
	}

	var midLandmark *da.Vertex
	minMidDist := math.MaxFloat64
	for _, v := range vs {
		dist := geo.CalculateHaversineDistance(v.GetLat(), v.GetLon(), centerLat, centerLon)
		if dist < minMidDist {
			minMidDist = dist
			midLandmark = v
		}
	}
	if _, ok := selected[midLandmark.GetID()]; !ok {
		landmarks = append(landmarks, midLandmark)
	}

	return landmarks
}

/*
[1] Goldberg, A.V. and Harrelson, C. (2005) 'Computing the shortest path: A search meets graph theory', in Proceedings of the Sixteenth Annual ACM-SIAM Symposium on Discrete Algorithms. USA: Society for Industrial and Applied Mathematics (SODA '05), pp. 156–165.

preprocessing phase of A*, landmark, and triangle inequality (ALT) described in [1], on edge lower bound weights of opts.

time complexity: O((n+m)logn * k), n=number of vertices,m=number of edges,k=number of landmarks
*/
func (lm *Landmark) PreprocessALT(ctx context.Context, k int, g Graph, opts *traverse.SearchOptions,
	logger *zap.Logger) error {
	if k > MAX_LANDMARKS {
		return util.WrapErrorf(ErrTooManyLandmarks, util.ErrBadParamInput, "k=%d", k)
	}

	var err error
	g.View(func() {
		err = lm.preprocess(ctx, k, g, opts, logger)
	})
	return err
}

func (lm *Landmark) preprocess(ctx context.Context, k int, g Graph, opts *traverse.SearchOptions,
	logger *zap.Logger) error {
	n := g.NumberOfVertices()
	if n == 0 {
		return util.WrapErrorf(ErrEmptyGraph, util.ErrBadParamInput, "preprocess landmarks")
	}

	logger.Info("computing landmarks....", zap.Int("k", k), zap.Int("numVertices", n))
	landmarks := lm.SelectLandmarks(k, g)
	numLandmarks := len(landmarks)

	lw := make([][]float64, numLandmarks)
	vlw := make([][]float64, n)
	for v := 0; v < n; v++ {
		vlw[v] = make([]float64, numLandmarks)
	}
	ids := make([]da.Index, numLandmarks)

	eg, egCtx := errgroup.WithContext(ctx)
	for i, landmark := range landmarks {
		il := i
		sid := landmark.GetID()
		ids[il] = sid

		eg.Go(func() error {
			sps, err := NewDijkstra(g, opts, false).ShortestPath(egCtx, sid) // O((n+m)logn)
			if err != nil {
				return err
			}
			lw[il] = sps
			return nil
		})

		eg.Go(func() error {
			sps, err := NewDijkstra(g, opts, true).ShortestPath(egCtx, sid)
			if err != nil {
				return err
			}
			// each goroutine owns column il
			for v := 0; v < n; v++ {
				vlw[v][il] = sps[v]
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "preprocess landmarks")
	}

	lm.lw = lw
	lm.vlw = vlw
	lm.landmarks = ids
	lm.opts = opts.Clone()
	logger.Info("done computing landmarks....", zap.Int("numLandmarks", numLandmarks))
	return nil
}

/*
[1] Goldberg, A.V. and Harrelson, C. (2005) 'Computing the shortest path: A search meets graph theory'.
[2] Bast, H. et al. (2016) "Route Planning in Transportation Networks," in L.
Kliemann and P. Sanders (eds.) Algorithm Engineering: Selected Results and
Surveys. Cham: Springer International Publishing, pp. 19–80. Available at:
https://doi.org/10.1007/978-3-319-49487-6_2.

tighest lower bound of dist(u, t) using the triangle inequality, section 6 in [1] or section 2.2 ALT in [2]
*/
func (lm *Landmark) FindTighestLowerBound(u, t da.Index) float64 {
	// O(k), k = number of landmarks
	tighestLowerBound := -math.MaxFloat64
	for i := 0; i < len(lm.landmarks); i++ {
		if lm.vlw[u][i] >= pkg.INF_WEIGHT || lm.lw[i][t] >= pkg.INF_WEIGHT ||
			lm.vlw[t][i] >= pkg.INF_WEIGHT || lm.lw[i][u] >= pkg.INF_WEIGHT {
			continue
		}
		lbOne := lm.vlw[u][i] - lm.vlw[t][i]
		lbTwo := lm.lw[i][t] - lm.lw[i][u]

		tighestLowerBound = math.Max(tighestLowerBound, math.Max(lbOne, lbTwo))
	}

	// pi(t) <= 0 for a feasible pi, so clamping at 0 keeps it feasible & admissible
	return math.Max(tighestLowerBound, 0)
}

// Compatible. whether the lower bounds were computed with edge weights identical to those of opts.
// search direction does not change edge lower bounds.
func (lm *Landmark) Compatible(opts *traverse.SearchOptions) bool {
	if lm.opts == nil || opts == nil {
		return false
	}
	a, b := *lm.opts, *opts
	a.ArriveBy, b.ArriveBy = false, false
	a.CostFunction, b.CostFunction = a.GetCostFunction(), b.GetCostFunction()
	return a == b
}

func (lm *Landmark) GetLandmarks() []da.Index {
	return lm.landmarks
}

func (lm *Landmark) GetOptions() *traverse.SearchOptions {
	return lm.opts
}

func (lm *Landmark) NumberOfVertices() int {
	return len(lm.vlw)
}

func (lm *Landmark) WriteLandmark(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	k := len(lm.landmarks)
	n := len(lm.vlw)
	fmt.Fprintf(w, "%d %d\n", k, n)

	for i := 0; i < k; i++ {
		fmt.Fprintf(w, "%d ", lm.landmarks[i])
		for v := 0; v < n; v++ {
			fmt.Fprintf(w, "%s", strconv.FormatFloat(lm.lw[i][v], 'f', -1, 64))
			if v < n-1 {
				fmt.Fprintf(w, " ")
			}
		}
		fmt.Fprintf(w, "\n")

		for v := 0; v < n; v++ {
			fmt.Fprintf(w, "%s", strconv.FormatFloat(lm.vlw[v][i], 'f', -1, 64))
			if v < n-1 {
				fmt.Fprintf(w, " ")
			}
		}
		fmt.Fprintf(w, "\n")
	}

	return w.Flush()
}

// ReadLandmark. opts must be the options the file was written with, the file itself does not store them.
func ReadLandmark(filename string, opts *traverse.SearchOptions) (*Landmark, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	ff := util.Fields(line)
	if len(ff) != 2 {
		return nil, util.WrapErrorf(ErrMalformedFile, util.ErrBadParamInput, "header %q", line)
	}
	k, err := strconv.Atoi(ff[0])
	if err != nil {
		return nil, err
	}
	n, err := da.ParseIndex(ff[1])
	if err != nil {
		return nil, err
	}

	landmarks := make([]da.Index, k)
	lw := make([][]float64, k)
	vlw := make([][]float64, n)
	for v := 0; v < int(n); v++ {
		vlw[v] = make([]float64, k)
	}

	for i := 0; i < k; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		ff := util.Fields(line)
		if len(ff) != int(n)+1 {
			return nil, util.WrapErrorf(ErrMalformedFile, util.ErrBadParamInput, "landmark %d: %d columns", i, len(ff))
		}

		landmarks[i], err = da.ParseIndex(ff[0])
		if err != nil {
			return nil, err
		}
		lw[i] = make([]float64, n)
		for j := 1; j < len(ff); j++ {
			lw[i][j-1], err = strconv.ParseFloat(ff[j], 64)
			if err != nil {
				return nil, err
			}
		}

		line, err = util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		ff = util.Fields(line)
		if len(ff) != int(n) {
			return nil, util.WrapErrorf(ErrMalformedFile, util.ErrBadParamInput, "landmark %d: %d columns", i, len(ff))
		}
		for v := 0; v < len(ff); v++ {
			vlw[v][i], err = strconv.ParseFloat(ff[v], 64)
			if err != nil {
				return nil, err
			}
		}
	}

	lm := NewLandmark()
	lm.lw = lw
	lm.vlw = vlw
	lm.landmarks = landmarks
	if opts != nil {
		lm.opts = opts.Clone()
	}
	return lm, nil
}
