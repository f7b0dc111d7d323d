package data

import "errors"

// PointCloud is an ordered sequence of points. The insertion order is the
// point index used for neighbor lookups.
type PointCloud struct {
	Points []Point
}

func (c *PointCloud) Len() int {
	return len(c.Points)
}

func (c *PointCloud) Append(p Point) {
	c.Points = append(c.Points, p)
}

// Copy returns a deep copy of the cloud.
func (c *PointCloud) Copy() *PointCloud {
	points := make([]Point, len(c.Points))
	copy(points, c.Points)
	return &PointCloud{Points: points}
}

// Bounds returns the min and max corners of the axis aligned bounding box
// of the cloud. An empty cloud has no bounds.
func (c *PointCloud) Bounds() (min, max [3]float64, err error) {
	if len(c.Points) == 0 {
		return min, max, errors.New("empty point cloud")
	}
	first := c.Points[0]
	min = [3]float64{first.X, first.Y, first.Z}
	max = min
	for _, p := range c.Points[1:] {
		coords := [3]float64{p.X, p.Y, p.Z}
		for axis := 0; axis < 3; axis++ {
			if coords[axis] < min[axis] {
				min[axis] = coords[axis]
			}
			if coords[axis] > max[axis] {
				max[axis] = coords[axis]
			}
		}
	}
	return min, max, nil
}

// NormalCloud holds the surface normals of a point cloud, index aligned
// with the cloud they belong to.
type NormalCloud struct {
	Normals []Normal
}

func (c *NormalCloud) Len() int {
	return len(c.Normals)
}

func (c *NormalCloud) Append(n Normal) {
	c.Normals = append(c.Normals, n)
}
