package data

import "github.com/golang/geo/r3"

// Contains data of a Point Cloud Point, namely its X,Y,Z coords
type Point struct {
	X float64
	Y float64
	Z float64
}

// Builds a new Point from the given coordinates
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

func (p Point) Vector() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// Contains the unit surface normal paired with a point cloud point
type Normal struct {
	X float64
	Y float64
	Z float64
}

// Builds a new Normal from the given components
func NewNormal(x, y, z float64) Normal {
	return Normal{X: x, Y: y, Z: z}
}

func (n Normal) Vector() r3.Vector {
	return r3.Vector{X: n.X, Y: n.Y, Z: n.Z}
}
