package scurv

// The 210 descriptor values decompose as three curvature categories, each
// contributing the smoothed empirical distribution curve of its patch
// projections resampled at 70 uniform positions. The coarse accumulation
// underneath uses 14 bins per category, smoothed by a shape preserving
// PCHIP before resampling.
const (
	SignatureSize      = 210
	NumCategories      = 3
	SamplesPerCategory = 70
	CoarseBins         = 14
)

func init() {
	if NumCategories*SamplesPerCategory != SignatureSize {
		panic("scurv: signature layout does not add up to the signature size")
	}
}

// SCurVSignature210 is one fixed length SCurV descriptor record.
type SCurVSignature210 struct {
	Histogram [SignatureSize]float64
}

// CategoryValues returns the slice of the signature belonging to the given
// curvature category.
func (s *SCurVSignature210) CategoryValues(category CurvatureCategory) []float64 {
	start := int(category) * SamplesPerCategory
	return s.Histogram[start : start+SamplesPerCategory]
}

// SignatureCloud is an ordered collection of computed signatures, one
// record per estimated object.
type SignatureCloud struct {
	Signatures []SCurVSignature210
}

func (c *SignatureCloud) Len() int {
	return len(c.Signatures)
}

func (c *SignatureCloud) Append(s SCurVSignature210) {
	c.Signatures = append(c.Signatures, s)
}
