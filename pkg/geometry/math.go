package geometry

import (
	"errors"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrDegenerateSegment is returned when an operation requires a segment
// with distinct endpoints but both endpoints coincide.
var ErrDegenerateSegment = errors.New("geometry: segment endpoints coincide")

// PlaneTolerance is the distance within which a vertex is considered to
// lie in a plane. Callers needing a tighter tolerance must wrap
// VertexLiesInPlane themselves.
const PlaneTolerance = 0.1

// Distance returns the Euclidean distance between two points in the XY
// plane. Z is ignored.
func Distance(p1, p2 v3.Vec) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceToLine returns the shortest XY-plane distance from point to the
// line through the segment's endpoints, using the closest-point
// projection clamped to the segment. A segment whose endpoints coincide
// in XY has no defined projection and yields ErrDegenerateSegment.
func DistanceToLine(point v3.Vec, line LineSegment) (float64, error) {
	px := line.Second.X - line.First.X
	py := line.Second.Y - line.First.Y

	norm := px*px + py*py
	if norm == 0 {
		return 0, ErrDegenerateSegment
	}

	u := ((point.X-line.First.X)*px + (point.Y-line.First.Y)*py) / norm
	if u > 1 {
		u = 1
	} else if u < 0 {
		u = 0
	}

	dx := line.First.X + u*px - point.X
	dy := line.First.Y + u*py - point.Y
	return math.Sqrt(dx*dx + dy*dy), nil
}

// SideOfLine reports which side of line the point is on in the XY plane:
// +1 for left, -1 for right, 0 for collinear. Collinearity is an exact
// floating comparison; no tolerance is applied.
func SideOfLine(point v3.Vec, line LineSegment) int {
	a := line.First
	b := line.Second
	c := point
	return Sign((b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X))
}

// Sign returns +1, -1, or 0 according to the sign of number.
func Sign(number float64) int {
	if number > 0 {
		return 1
	}
	if number < 0 {
		return -1
	}
	return 0
}

// CCW reports whether traversing a -> b -> c turns counter-clockwise in
// the XY plane.
func CCW(a, b, c v3.Vec) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// SegmentsIntersect reports whether two segments properly cross in the XY
// plane, using the orientation test: (A,B) and (C,D) intersect iff
// ccw(A,C,D) != ccw(B,C,D) and ccw(A,B,C) != ccw(A,B,D). Collinear
// overlap is not special-cased.
func SegmentsIntersect(seg1, seg2 LineSegment) bool {
	a := seg1.First
	b := seg1.Second
	c := seg2.First
	d := seg2.Second
	return CCW(a, c, d) != CCW(b, c, d) && CCW(a, b, c) != CCW(a, b, d)
}

// LineIntersectsBounds reports whether line clips the rectangle
// edge-to-edge. The segment must cross exactly two of the four boundary
// edges; any other count (a corner graze or a segment ending inside the
// rectangle) reports false.
func LineIntersectsBounds(line LineSegment, bounds Bounds) bool {
	count := 0
	for _, edge := range bounds.Edges() {
		if SegmentsIntersect(line, edge) {
			count++
		}
	}
	return count == 2
}

// VertexLiesInPlane reports whether vertex is within PlaneTolerance of
// plane along its normal.
func VertexLiesInPlane(vertex v3.Vec, plane Plane) bool {
	val := math.Abs(plane.Normal.Dot(vertex.Sub(plane.Point)))
	return val < PlaneTolerance
}

// PolygonLiesInPlane reports whether every vertex of polygon lies in
// plane. It short-circuits on the first vertex that does not.
func PolygonLiesInPlane(polygon Polygon, plane Plane) bool {
	for _, vert := range polygon.Vertices {
		if !VertexLiesInPlane(vert, plane) {
			return false
		}
	}
	return true
}

// LinearInterpolation blends componentwise from p0 to p1. A percentage of
// 0 returns p0, 1 returns p1; values outside [0,1] extrapolate.
func LinearInterpolation(p0, p1 v3.Vec, percentage float64) v3.Vec {
	return v3.Vec{
		X: p0.X + (p1.X-p0.X)*percentage,
		Y: p0.Y + (p1.Y-p0.Y)*percentage,
		Z: p0.Z + (p1.Z-p0.Z)*percentage,
	}
}
