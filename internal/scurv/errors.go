package scurv

import "errors"

// Failure kinds reported by the estimator. All reflect caller misuse or
// unusable input and are detected before any partial output is produced.
var (
	// ErrMissingInput indicates that the cloud or the normals are not
	// bound, or that the normals are not index aligned with the cloud.
	ErrMissingInput = errors.New("missing input")

	// ErrInvalidParameter indicates an out of range configuration value,
	// such as a neighbor count below 2.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientNeighbors indicates a cloud smaller than the
	// configured neighbor count.
	ErrInsufficientNeighbors = errors.New("insufficient neighbors")

	// ErrDegenerateGeometry indicates a cloud with no spatial extent,
	// which prevents scale normalization.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrNumericDomain indicates a spline evaluation requested outside the
	// domain of a segment.
	ErrNumericDomain = errors.New("numeric domain error")
)
