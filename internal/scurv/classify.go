package scurv

import (
	"math"

	"github.com/turecekt/scurv/internal/data"
)

// CurvatureCategory is the qualitative class of a local surface patch.
type CurvatureCategory int

const (
	Flat CurvatureCategory = iota
	Convex
	Concave
)

func (c CurvatureCategory) String() string {
	switch c {
	case Flat:
		return "flat"
	case Convex:
		return "convex"
	case Concave:
		return "concave"
	}
	return "unknown"
}

// flatSineThreshold is the out-of-plane displacement sine below which a
// neighbor counts as coplanar with the query tangent plane.
const flatSineThreshold = 0.02

// PatchClassification is the outcome of classifying one point
// neighborhood. Projection is the mean out-of-plane displacement sine of
// the neighbors, bounded in [-1, 1]: negative values lean convex, positive
// values concave.
type PatchClassification struct {
	Category   CurvatureCategory
	Projection float64
}

// ClassifyPatch classifies the patch around a point as flat, convex or
// concave. Each neighbor is projected onto the tangent plane defined by
// the query normal; the sign of its out-of-plane displacement, combined
// through SignMultiplied with the sign of the neighbor/query normal
// agreement, casts one vote. Combining signs instead of multiplying the
// raw dot products keeps the vote stable under flipped normals and immune
// to overflow from large coordinate products. Ties and sub-threshold
// displacements resolve to Flat. Zero distance neighbors (the query point
// handed back by the searcher) are skipped.
//
// neighborNormals must be index aligned with neighbors.
func ClassifyPatch(point data.Point, normal data.Normal, neighbors []data.Point, neighborNormals []data.Normal) PatchClassification {
	p := point.Vector()
	n := normal.Vector()

	var flat, convex, concave int
	var sineSum float64
	var sineCount int

	for i := range neighbors {
		v := neighbors[i].Vector().Sub(p)
		dist := v.Norm()
		if dist == 0 {
			continue
		}
		sine := v.Dot(n) / dist
		agreement := neighborNormals[i].Vector().Dot(n)
		side := SignMultiplied(sine, agreement)

		sineCount++
		if math.Abs(sine) <= flatSineThreshold || side == 0 {
			flat++
			continue
		}
		if side < 0 {
			convex++
			sineSum -= math.Abs(sine)
		} else {
			concave++
			sineSum += math.Abs(sine)
		}
	}

	category := Flat
	if convex > concave && convex > flat {
		category = Convex
	} else if concave > convex && concave > flat {
		category = Concave
	}

	var projection float64
	if sineCount > 0 {
		projection = sineSum / float64(sineCount)
	}
	return PatchClassification{Category: category, Projection: projection}
}
