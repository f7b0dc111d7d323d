package scurv

import (
	"errors"
	"math"
	"testing"

	"github.com/turecekt/scurv/internal/data"
)

func TestNormalizedValue(t *testing.T) {
	v, err := NormalizedValue(3, 2, 6)
	if err != nil {
		t.Fatalf("NormalizedValue: %v", err)
	}
	if v != 0.25 {
		t.Errorf("NormalizedValue(3, 2, 6) = %g, want 0.25", v)
	}

	if _, err := NormalizedValue(1, 4, 4); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("empty range: err = %v, want ErrDegenerateGeometry", err)
	}
}

func TestNormalizeScaleMapsLargestExtent(t *testing.T) {
	cloud := &data.PointCloud{Points: []data.Point{
		{X: 2, Y: 3, Z: 0},
		{X: 6, Y: 4, Z: 0},
		{X: 4, Y: 3.5, Z: 0},
	}}
	if err := NormalizeScale(cloud, 0, 1); err != nil {
		t.Fatalf("NormalizeScale: %v", err)
	}

	min, max, err := cloud.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	// x is the largest axis and must span exactly [0, 1]
	if min[0] != 0 || max[0] != 1 {
		t.Errorf("x bounds = [%g, %g], want [0, 1]", min[0], max[0])
	}
	// y had a quarter of the x extent and stays centered on 0.5
	if math.Abs(min[1]-0.375) > 1e-12 || math.Abs(max[1]-0.625) > 1e-12 {
		t.Errorf("y bounds = [%g, %g], want [0.375, 0.625]", min[1], max[1])
	}
}

func TestNormalizeScalePreservesShape(t *testing.T) {
	cloud := &data.PointCloud{Points: []data.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}}
	before := cloud.Points[1].Vector().Sub(cloud.Points[0].Vector()).Norm() /
		cloud.Points[2].Vector().Sub(cloud.Points[0].Vector()).Norm()

	if err := NormalizeScale(cloud, 0, 1); err != nil {
		t.Fatalf("NormalizeScale: %v", err)
	}
	after := cloud.Points[1].Vector().Sub(cloud.Points[0].Vector()).Norm() /
		cloud.Points[2].Vector().Sub(cloud.Points[0].Vector()).Norm()

	if math.Abs(before-after) > 1e-12 {
		t.Errorf("distance ratio changed from %g to %g; scaling must be uniform", before, after)
	}
}

func TestNormalizeScaleIdempotent(t *testing.T) {
	cloud := &data.PointCloud{Points: []data.Point{
		{X: -3, Y: 2, Z: 7},
		{X: 5, Y: -1, Z: 2},
		{X: 1, Y: 4, Z: -2},
		{X: 0, Y: 0, Z: 0},
	}}
	if err := NormalizeScale(cloud, 0, 1); err != nil {
		t.Fatalf("first NormalizeScale: %v", err)
	}
	once := cloud.Copy()
	if err := NormalizeScale(cloud, 0, 1); err != nil {
		t.Fatalf("second NormalizeScale: %v", err)
	}

	for i := range cloud.Points {
		d := cloud.Points[i].Vector().Sub(once.Points[i].Vector()).Norm()
		if d > 1e-12 {
			t.Errorf("point %d moved by %g on repeated normalization", i, d)
		}
	}
}

func TestNormalizeScaleDegenerate(t *testing.T) {
	empty := &data.PointCloud{}
	if err := NormalizeScale(empty, 0, 1); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("empty cloud: err = %v, want ErrDegenerateGeometry", err)
	}

	single := &data.PointCloud{Points: []data.Point{{X: 1, Y: 2, Z: 3}}}
	if err := NormalizeScale(single, 0, 1); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("single point: err = %v, want ErrDegenerateGeometry", err)
	}

	coincident := &data.PointCloud{Points: []data.Point{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: 1},
	}}
	if err := NormalizeScale(coincident, 0, 1); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("coincident points: err = %v, want ErrDegenerateGeometry", err)
	}
}

func TestNormalizeScaleInvalidRange(t *testing.T) {
	cloud := &data.PointCloud{Points: []data.Point{{X: 0}, {X: 1}}}
	if err := NormalizeScale(cloud, 1, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty target range: err = %v, want ErrInvalidParameter", err)
	}
}
