package linear

import (
	"errors"
	"fmt"
	"sort"

	"github.com/turecekt/scurv/internal/data"
)

// Searcher is an exhaustive scan nearest neighbor searcher. It serves as
// the reference implementation for the kd-tree and as a selectable
// alternative for small clouds, where scanning beats building an index.
type Searcher struct {
	coords [][3]float64
	built  bool
}

func NewSearcher() *Searcher {
	return &Searcher{}
}

func (s *Searcher) Build(cloud *data.PointCloud) error {
	if s.built {
		return errors.New("linear searcher already built")
	}
	if cloud == nil || cloud.Len() == 0 {
		return errors.New("cannot build a searcher over an empty cloud")
	}
	coords := make([][3]float64, cloud.Len())
	for i, p := range cloud.Points {
		coords[i] = [3]float64{p.X, p.Y, p.Z}
	}
	s.coords = coords
	s.built = true
	return nil
}

func (s *Searcher) IsBuilt() bool {
	return s.built
}

func (s *Searcher) NearestK(queryIndex int, k int) ([]int, error) {
	if !s.built {
		return nil, errors.New("linear searcher not built")
	}
	if queryIndex < 0 || queryIndex >= len(s.coords) {
		return nil, fmt.Errorf("query index %d out of range [0, %d)", queryIndex, len(s.coords))
	}
	if k < 1 || k > len(s.coords) {
		return nil, fmt.Errorf("cannot query %d neighbors from a cloud of %d points", k, len(s.coords))
	}

	query := s.coords[queryIndex]
	type hit struct {
		index int
		dist  float64
	}
	hits := make([]hit, len(s.coords))
	for i, c := range s.coords {
		var sum float64
		for axis := 0; axis < 3; axis++ {
			d := c[axis] - query[axis]
			sum += d * d
		}
		hits[i] = hit{index: i, dist: sum}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].index < hits[j].index
	})

	indices := make([]int, k)
	for i := 0; i < k; i++ {
		indices[i] = hits[i].index
	}
	return indices, nil
}

func (s *Searcher) Clear() {
	s.coords = nil
	s.built = false
}
