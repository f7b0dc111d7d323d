package scurv

import (
	"fmt"
	"math"

	"github.com/turecekt/scurv/internal/data"
)

// minExtent is the smallest cloud extent that scale normalization accepts.
const minExtent = 1e-12

// NormalizedValue maps x onto its unit position within [low, high].
func NormalizedValue(x, low, high float64) (float64, error) {
	if high == low {
		return 0, fmt.Errorf("%w: empty normalization range [%g, %g]", ErrDegenerateGeometry, low, high)
	}
	return (x - low) / (high - low), nil
}

// NormalizeScale rescales the cloud in place so that its largest axis
// extent spans [minRange, maxRange]. The scale factor is uniform across
// axes, preserving the relative shape, and every axis ends up centered on
// the middle of the target interval. Surface normals are unaffected by a
// uniform rescale, so clouds keep their normals as they are.
func NormalizeScale(cloud *data.PointCloud, minRange, maxRange float64) error {
	if maxRange <= minRange {
		return fmt.Errorf("%w: target range [%g, %g] is empty", ErrInvalidParameter, minRange, maxRange)
	}

	min, max, err := cloud.Bounds()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDegenerateGeometry, err)
	}

	extent := 0.0
	for axis := 0; axis < 3; axis++ {
		extent = math.Max(extent, max[axis]-min[axis])
	}
	if extent < minExtent {
		return fmt.Errorf("%w: cloud extent %g is too small to normalize", ErrDegenerateGeometry, extent)
	}

	scale := (maxRange - minRange) / extent
	mid := (minRange + maxRange) / 2
	cx := (min[0] + max[0]) / 2
	cy := (min[1] + max[1]) / 2
	cz := (min[2] + max[2]) / 2

	for i := range cloud.Points {
		p := &cloud.Points[i]
		p.X = mid + (p.X-cx)*scale
		p.Y = mid + (p.Y-cy)*scale
		p.Z = mid + (p.Z-cz)*scale
	}
	return nil
}
