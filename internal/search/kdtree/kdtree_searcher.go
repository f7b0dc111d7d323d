package kdtree

import (
	"errors"
	"fmt"
	"sort"

	spatial "gonum.org/v1/gonum/spatial/kdtree"

	"github.com/turecekt/scurv/internal/data"
)

// indexedPoint is a cloud point that remembers its cloud index, so query
// results can be mapped back to the original point ordering.
type indexedPoint struct {
	index  int
	coords [3]float64
}

func (p indexedPoint) Compare(c spatial.Comparable, d spatial.Dim) float64 {
	q := c.(indexedPoint)
	return p.coords[d] - q.coords[d]
}

func (p indexedPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance. The ordering of query
// results is the same as for the true distance.
func (p indexedPoint) Distance(c spatial.Comparable) float64 {
	q := c.(indexedPoint)
	var sum float64
	for i := range p.coords {
		d := p.coords[i] - q.coords[i]
		sum += d * d
	}
	return sum
}

// indexedPoints adapts a point slice to the gonum kd-tree interface.
type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) spatial.Comparable { return p[i] }
func (p indexedPoints) Len() int                       { return len(p) }
func (p indexedPoints) Pivot(d spatial.Dim) int {
	return plane{dim: d, points: p}.pivot()
}
func (p indexedPoints) Slice(start, end int) spatial.Interface { return p[start:end] }

// plane sorts indexedPoints along a single dimension.
type plane struct {
	dim    spatial.Dim
	points indexedPoints
}

func (p plane) Len() int { return len(p.points) }
func (p plane) Less(i, j int) bool {
	return p.points[i].coords[p.dim] < p.points[j].coords[p.dim]
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p plane) Slice(start, end int) spatial.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) pivot() int {
	return spatial.Partition(p, spatial.MedianOfMedians(p))
}

// Searcher is a kd-tree backed nearest neighbor searcher built on the
// gonum spatial index.
type Searcher struct {
	tree   *spatial.Tree
	coords [][3]float64
	built  bool
}

func NewSearcher() *Searcher {
	return &Searcher{}
}

func (s *Searcher) Build(cloud *data.PointCloud) error {
	if s.built {
		return errors.New("kd-tree already built")
	}
	if cloud == nil || cloud.Len() == 0 {
		return errors.New("cannot build a kd-tree over an empty cloud")
	}

	coords := make([][3]float64, cloud.Len())
	points := make(indexedPoints, cloud.Len())
	for i, p := range cloud.Points {
		coords[i] = [3]float64{p.X, p.Y, p.Z}
		points[i] = indexedPoint{index: i, coords: coords[i]}
	}

	s.tree = spatial.New(points, false)
	s.coords = coords
	s.built = true
	return nil
}

func (s *Searcher) IsBuilt() bool {
	return s.built
}

func (s *Searcher) NearestK(queryIndex int, k int) ([]int, error) {
	if !s.built {
		return nil, errors.New("kd-tree not built")
	}
	if queryIndex < 0 || queryIndex >= len(s.coords) {
		return nil, fmt.Errorf("query index %d out of range [0, %d)", queryIndex, len(s.coords))
	}
	if k < 1 || k > len(s.coords) {
		return nil, fmt.Errorf("cannot query %d neighbors from a cloud of %d points", k, len(s.coords))
	}

	keeper := spatial.NewNKeeper(k)
	s.tree.NearestSet(keeper, indexedPoint{index: queryIndex, coords: s.coords[queryIndex]})

	type hit struct {
		index int
		dist  float64
	}
	hits := make([]hit, 0, keeper.Len())
	for _, c := range keeper.Heap {
		if c.Comparable == nil {
			// sentinel left behind when fewer than k points exist
			continue
		}
		hits = append(hits, hit{index: c.Comparable.(indexedPoint).index, dist: c.Dist})
	}
	// nearest first; index as tiebreak keeps results deterministic
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].index < hits[j].index
	})

	indices := make([]int, len(hits))
	for i, h := range hits {
		indices[i] = h.index
	}
	return indices, nil
}

func (s *Searcher) Clear() {
	s.tree = nil
	s.coords = nil
	s.built = false
}
