package std_search_manager

import (
	"github.com/golang/glog"

	"github.com/turecekt/scurv/internal/estimation"
	"github.com/turecekt/scurv/internal/search"
	"github.com/turecekt/scurv/internal/search/kdtree"
	"github.com/turecekt/scurv/internal/search/linear"
	"github.com/turecekt/scurv/pkg/search_manager"
)

type StandardSearchManager struct {
	options *estimation.Options
}

func NewSearchManager(opts *estimation.Options) search_manager.SearchManager {
	return &StandardSearchManager{options: opts}
}

// Returns a fresh neighbor search structure of the configured kind.
func (manager *StandardSearchManager) GetSearchAlgorithm() search.ISearcher {
	switch manager.options.Algorithm {
	case estimation.Linear:
		return linear.NewSearcher()
	case estimation.KdTree:
		return kdtree.NewSearcher()
	}
	glog.Fatal("unrecognized search algorithm: " + manager.options.Algorithm.String())
	return nil
}
