package scurv

import (
	"fmt"
	"math"
)

// HermitePoint is a control point of a Piecewise Cubic Hermite
// Interpolating Polynomial (PCHIP): abscissa, function value and
// derivative value.
type HermitePoint struct {
	X float64
	F float64
	D float64
}

// SignMultiplied reports the sign of arg1*arg2 without forming the
// product, so that extreme magnitudes cannot over- or underflow the
// result. It returns -1, 0 or +1.
func SignMultiplied(arg1, arg2 float64) float64 {
	if arg1 == 0 || arg2 == 0 {
		return 0
	}
	if math.Signbit(arg1) != math.Signbit(arg2) {
		return -1
	}
	return 1
}

// SplinePchip assigns one derivative per control point following the
// monotonicity preserving PCHIP rule: interior derivatives are a weighted
// harmonic mean of the adjacent secant slopes, zeroed where the slopes
// disagree in sign, and boundary derivatives use one sided three point
// formulas clamped so the curve cannot overshoot the data. The abscissae
// must be strictly increasing. Two control points degrade to the secant
// slope.
func SplinePchip(x, f []float64) ([]float64, error) {
	n := len(x)
	if n != len(f) {
		return nil, fmt.Errorf("%w: %d abscissae but %d values", ErrInvalidParameter, n, len(f))
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 control points, got %d", ErrInvalidParameter, n)
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("%w: abscissae must be strictly increasing", ErrInvalidParameter)
		}
	}

	d := make([]float64, n)
	h1 := x[1] - x[0]
	del1 := (f[1] - f[0]) / h1
	if n == 2 {
		d[0], d[1] = del1, del1
		return d, nil
	}

	h2 := x[2] - x[1]
	del2 := (f[2] - f[1]) / h2
	hsum := h1 + h2

	// Left boundary: non centered three point formula, adjusted so the
	// first segment keeps the shape of the data.
	w1 := (h1 + hsum) / hsum
	w2 := -h1 / hsum
	d[0] = w1*del1 + w2*del2
	if SignMultiplied(d[0], del1) <= 0 {
		d[0] = 0
	} else if SignMultiplied(del1, del2) < 0 {
		// data has a local extremum near the boundary
		dmax := 3 * del1
		if math.Abs(d[0]) > math.Abs(dmax) {
			d[0] = dmax
		}
	}

	for i := 1; i < n-1; i++ {
		if i > 1 {
			h1 = h2
			h2 = x[i+1] - x[i]
			hsum = h1 + h2
			del1 = del2
			del2 = (f[i+1] - f[i]) / h2
		}
		// derivative is zero unless the neighboring slopes agree in sign
		d[i] = 0
		if SignMultiplied(del1, del2) > 0 {
			hsumt3 := 3 * hsum
			wl := (hsum + h1) / hsumt3
			wr := (hsum + h2) / hsumt3
			dmax := math.Max(math.Abs(del1), math.Abs(del2))
			dmin := math.Min(math.Abs(del1), math.Abs(del2))
			drat1 := del1 / dmax
			drat2 := del2 / dmax
			d[i] = dmin / (wl*drat1 + wr*drat2)
		}
	}

	// Right boundary, mirror of the left one.
	w1 = -h2 / hsum
	w2 = (h2 + hsum) / hsum
	d[n-1] = w1*del1 + w2*del2
	if SignMultiplied(d[n-1], del2) <= 0 {
		d[n-1] = 0
	} else if SignMultiplied(del1, del2) < 0 {
		dmax := 3 * del2
		if math.Abs(d[n-1]) > math.Abs(dmax) {
			d[n-1] = dmax
		}
	}

	return d, nil
}

// HermiteInterpolate evaluates the cubic Hermite segment spanned by the
// control points point1 and point2 at xi. The evaluation is only defined
// for point1.X <= xi <= point2.X and is exact at both endpoints.
func HermiteInterpolate(point1, point2 HermitePoint, xi float64) (float64, error) {
	h := point2.X - point1.X
	if h <= 0 {
		return 0, fmt.Errorf("%w: segment [%g, %g] is not increasing", ErrNumericDomain, point1.X, point2.X)
	}
	if xi < point1.X || xi > point2.X {
		return 0, fmt.Errorf("%w: %g lies outside segment [%g, %g]", ErrNumericDomain, xi, point1.X, point2.X)
	}

	t := (xi - point1.X) / h
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*point1.F + h10*h*point1.D + h01*point2.F + h11*h*point2.D, nil
}
