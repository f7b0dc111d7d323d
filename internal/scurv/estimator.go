package scurv

import (
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/turecekt/scurv/internal/data"
	"github.com/turecekt/scurv/internal/search"
	"github.com/turecekt/scurv/internal/search/kdtree"
	"github.com/turecekt/scurv/internal/work"
)

// DefaultKSearch is the default neighborhood size used by the estimator.
const DefaultKSearch = 19

// The working copy of the input cloud is scale normalized into this range
// before any neighborhood is inspected, which makes the descriptor
// independent of the absolute scale of the input.
const (
	minNormalizedRange = 0.0
	maxNormalizedRange = 1.0
)

// SCurVEstimation computes the SCurV descriptor of a point cloud with
// surface normals. The bound cloud and normals are borrowed from the
// caller and never mutated; Compute works on a private scale normalized
// copy. A single instance must not run concurrent Compute calls.
type SCurVEstimation struct {
	k        int
	input    *data.PointCloud
	normals  *data.NormalCloud
	searcher search.ISearcher
}

// NewSCurVEstimation builds an estimator with the default neighbor count.
func NewSCurVEstimation() *SCurVEstimation {
	return &SCurVEstimation{k: DefaultKSearch}
}

// SetKSearch configures the number of nearest neighbors examined around
// each point. Values below 2 are rejected by Compute.
func (e *SCurVEstimation) SetKSearch(k int) {
	e.k = k
}

func (e *SCurVEstimation) GetKSearch() int {
	return e.k
}

// SetInputCloud binds the caller owned point cloud.
func (e *SCurVEstimation) SetInputCloud(cloud *data.PointCloud) {
	e.input = cloud
}

// SetInputNormals binds the surface normals, which must be index aligned
// with the input cloud.
func (e *SCurVEstimation) SetInputNormals(normals *data.NormalCloud) {
	e.normals = normals
}

// SetSearchMethod overrides the nearest neighbor search structure. When
// unset, Compute falls back to a kd-tree.
func (e *SCurVEstimation) SetSearchMethod(s search.ISearcher) {
	e.searcher = s
}

// Compute validates the bound inputs, classifies every point
// neighborhood and appends exactly one fixed length signature to output.
// On failure the output is left untouched; all preconditions are checked
// before any per point work starts.
func (e *SCurVEstimation) Compute(output *SignatureCloud) error {
	if err := e.validate(); err != nil {
		return err
	}

	working := e.input.Copy()
	if err := NormalizeScale(working, minNormalizedRange, maxNormalizedRange); err != nil {
		return err
	}

	searcher := e.searcher
	if searcher == nil {
		searcher = kdtree.NewSearcher()
	}
	searcher.Clear()
	if err := searcher.Build(working); err != nil {
		return err
	}

	results, err := e.classifyAll(working, searcher)
	if err != nil {
		return err
	}

	accumulator := NewDistributionAccumulator()
	for i := range results {
		if err := accumulator.Add(results[i]); err != nil {
			return err
		}
	}

	signature, err := buildSignature(accumulator)
	if err != nil {
		return err
	}
	output.Append(*signature)
	return nil
}

func (e *SCurVEstimation) validate() error {
	if e.input == nil || e.input.Len() == 0 {
		return fmt.Errorf("%w: no input cloud bound", ErrMissingInput)
	}
	if e.normals == nil || e.normals.Len() == 0 {
		return fmt.Errorf("%w: no input normals bound", ErrMissingInput)
	}
	if e.normals.Len() != e.input.Len() {
		return fmt.Errorf("%w: %d points but %d normals", ErrMissingInput, e.input.Len(), e.normals.Len())
	}
	if e.k < 2 {
		return fmt.Errorf("%w: k-search must be at least 2, got %d", ErrInvalidParameter, e.k)
	}
	if e.input.Len() < e.k {
		return fmt.Errorf("%w: cloud of %d points cannot provide %d neighbors", ErrInsufficientNeighbors, e.input.Len(), e.k)
	}
	return nil
}

// classifyAll fans the per point classification out over workers. Each
// result lands in its own index slot, so the outcome does not depend on
// scheduling order.
func (e *SCurVEstimation) classifyAll(cloud *data.PointCloud, searcher search.ISearcher) ([]PatchClassification, error) {
	n := cloud.Len()
	results := make([]PatchClassification, n)

	classify := func(index int) error {
		neighborIndices, err := searcher.NearestK(index, e.k)
		if err != nil {
			return err
		}
		neighbors := make([]data.Point, len(neighborIndices))
		neighborNormals := make([]data.Normal, len(neighborIndices))
		for i, j := range neighborIndices {
			neighbors[i] = cloud.Points[j]
			neighborNormals[i] = e.normals.Normals[j]
		}
		results[index] = ClassifyPatch(cloud.Points[index], e.normals.Normals[index], neighbors, neighborNormals)
		return nil
	}

	numConsumers := runtime.NumCPU()
	workChannel := make(chan *work.WorkUnit, numConsumers*4)
	errorChannel := make(chan error, numConsumers)

	var producerWaitGroup sync.WaitGroup
	var consumerWaitGroup sync.WaitGroup

	producerWaitGroup.Add(1)
	go work.NewStandardProducer(n).Produce(workChannel, &producerWaitGroup)

	for i := 0; i < numConsumers; i++ {
		consumerWaitGroup.Add(1)
		go work.NewStandardConsumer(classify).Consume(workChannel, errorChannel, &consumerWaitGroup)
	}

	consumerWaitGroup.Wait()
	// unblock the producer in case every consumer quit on an error
	for range workChannel {
	}
	producerWaitGroup.Wait()

	close(errorChannel)
	for err := range errorChannel {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// buildSignature smooths each category distribution with a PCHIP and
// resamples it at uniform positions into the signature layout.
func buildSignature(accumulator *DistributionAccumulator) (*SCurVSignature210, error) {
	positions := floats.Span(make([]float64, SamplesPerCategory), minNormalizedRange, maxNormalizedRange)

	var signature SCurVSignature210
	for category := 0; category < NumCategories; category++ {
		x, f := accumulator.ControlPoints(CurvatureCategory(category))
		d, err := SplinePchip(x, f)
		if err != nil {
			return nil, err
		}

		segment := 0
		for s, xi := range positions {
			for segment < len(x)-2 && xi > x[segment+1] {
				segment++
			}
			value, err := HermiteInterpolate(
				HermitePoint{X: x[segment], F: f[segment], D: d[segment]},
				HermitePoint{X: x[segment+1], F: f[segment+1], D: d[segment+1]},
				xi,
			)
			if err != nil {
				return nil, err
			}
			signature.Histogram[category*SamplesPerCategory+s] = value
		}
	}
	return &signature, nil
}
