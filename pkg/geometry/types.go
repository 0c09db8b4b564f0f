// Package geometry provides the computational-geometry kernel used to
// decide how a mesh is cut by slicing planes and whether geometric
// features (points, segments, polygons) lie on or cross those planes.
// All functions are pure and safe for concurrent use.
//
// Points are sdfx vectors (github.com/deadsy/sdfx/vec/v3). They are
// treated as immutable values; kernel functions never mutate their inputs.
package geometry

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// LineSegment is an ordered pair of points. The First/Second ordering
// matters for directional interpolation (see IntersectionAtX).
type LineSegment struct {
	First  v3.Vec
	Second v3.Vec
}

// Flip returns the segment with its endpoints swapped.
func (s LineSegment) Flip() LineSegment {
	return LineSegment{First: s.Second, Second: s.First}
}

// Plane is defined by a point on the plane and a normal vector.
type Plane struct {
	Point  v3.Vec
	Normal v3.Vec
}

// Bounds is an ordered cycle of four corner points forming an
// axis-aligned rectangle in the XY projection:
//
//	A---B
//	|   |
//	D---C
type Bounds [4]v3.Vec

// Edges returns the four boundary segments A-B, B-C, C-D, D-A.
func (b Bounds) Edges() [4]LineSegment {
	return [4]LineSegment{
		{First: b[0], Second: b[1]},
		{First: b[1], Second: b[2]},
		{First: b[2], Second: b[3]},
		{First: b[3], Second: b[0]},
	}
}

// RectBounds builds a Bounds from min/max XY corners at z=0.
func RectBounds(minX, minY, maxX, maxY float64) Bounds {
	return Bounds{
		{X: minX, Y: maxY},
		{X: maxX, Y: maxY},
		{X: maxX, Y: minY},
		{X: minX, Y: minY},
	}
}

// Polygon is a closed loop of vertices.
type Polygon struct {
	Vertices []v3.Vec
}
