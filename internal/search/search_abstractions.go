package search

import "github.com/turecekt/scurv/internal/data"

// ISearcher is a k nearest neighbor query structure over a point cloud.
// Implementations return indices into the cloud passed to Build, ordered
// nearest first under Euclidean distance. The query point itself may be
// part of the result set, at distance zero.
type ISearcher interface {
	// Builds the search structure over the given cloud
	Build(cloud *data.PointCloud) error
	IsBuilt() bool
	// NearestK returns the indices of the k points nearest to the point
	// at queryIndex in the built cloud
	NearestK(queryIndex int, k int) ([]int, error)
	// Clear drops the built structure so the searcher can be reused
	Clear()
}
