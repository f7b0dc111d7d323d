package search_manager

import "github.com/turecekt/scurv/internal/search"

type SearchManager interface {
	GetSearchAlgorithm() search.ISearcher
}
