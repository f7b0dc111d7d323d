package scurv

// The patch projection produced by ClassifyPatch lives in this fixed
// domain regardless of the cloud extent, which makes histograms from
// different clouds directly comparable.
const (
	projectionLow  = -1.0
	projectionHigh = 1.0
)

// DistributionAccumulator aggregates patch classifications over a whole
// cloud into per category coarse histograms of the normalized projection
// value. It is not safe for concurrent use; parallel workers accumulate
// into private instances merged afterwards in index order.
type DistributionAccumulator struct {
	counts [NumCategories][CoarseBins]float64
	total  int
}

func NewDistributionAccumulator() *DistributionAccumulator {
	return &DistributionAccumulator{}
}

// Add records one classified patch.
func (a *DistributionAccumulator) Add(c PatchClassification) error {
	u, err := NormalizedValue(c.Projection, projectionLow, projectionHigh)
	if err != nil {
		return err
	}
	bin := int(u * CoarseBins)
	if bin < 0 {
		bin = 0
	}
	if bin >= CoarseBins {
		bin = CoarseBins - 1
	}
	a.counts[c.Category][bin]++
	a.total++
	return nil
}

// Merge folds the counts of other into a. When combining partial
// accumulators from parallel workers, merge them in a fixed order so the
// result is reproducible.
func (a *DistributionAccumulator) Merge(other *DistributionAccumulator) {
	for c := range a.counts {
		for b := range a.counts[c] {
			a.counts[c][b] += other.counts[c][b]
		}
	}
	a.total += other.total
}

// Total returns the number of patches recorded so far.
func (a *DistributionAccumulator) Total() int {
	return a.total
}

// ControlPoints returns the empirical cumulative distribution of the
// given category as spline control points over [0, 1]. The mass is
// normalized by the total patch count across all categories, so each
// category curve tops out at that category's share of the cloud.
func (a *DistributionAccumulator) ControlPoints(category CurvatureCategory) (x, f []float64) {
	x = make([]float64, CoarseBins+1)
	f = make([]float64, CoarseBins+1)
	var cumulative float64
	for b := 0; b < CoarseBins; b++ {
		cumulative += a.counts[category][b]
		x[b+1] = float64(b+1) / CoarseBins
		if a.total > 0 {
			f[b+1] = cumulative / float64(a.total)
		}
	}
	return x, f
}
