package geometry

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PlaneSide classifies a triangle against a slicing plane.
type PlaneSide int

const (
	SideCrossing   PlaneSide = iota // plane cuts the triangle
	SideFront                       // whole triangle on the normal side
	SideBack                        // whole triangle behind the plane
	SideDegenerate                  // cut produced fewer than two points
)

func (s PlaneSide) String() string {
	switch s {
	case SideCrossing:
		return "crossing"
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	case SideDegenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// Triangle is one face of a mesh being sliced.
type Triangle struct {
	V      [3]v3.Vec
	Normal v3.Vec
}

// signedDistance is the distance from point to plane along the normal.
func signedDistance(plane Plane, point v3.Vec) float64 {
	return plane.Normal.Dot(point.Sub(plane.Point))
}

// IntersectPlane cuts the triangle with plane. When the plane crosses the
// triangle it returns the cut as a LineSegment with SideCrossing;
// otherwise the segment is zero and the side tells which half-space holds
// the whole triangle. Vertices exactly on the plane count as front, and
// an on-plane vertex is reused as a cut endpoint.
func (t Triangle) IntersectPlane(plane Plane) (LineSegment, PlaneSide) {
	countFront := 0
	countBack := 0

	for j := 0; j < 3; j++ {
		if signedDistance(plane, t.V[j]) < 0 {
			countBack++
		} else {
			countFront++
		}
	}

	if countBack == 3 {
		return LineSegment{}, SideBack
	}
	if countFront == 3 {
		return LineSegment{}, SideFront
	}

	// Walk the three edges of the CCW triangle.
	edges := [6]int{0, 1, 1, 2, 2, 0}
	var points []v3.Vec

	for i := 0; i < 3; i++ {
		a := t.V[edges[i*2]]
		b := t.V[edges[i*2+1]]
		da := signedDistance(plane, a)
		db := signedDistance(plane, b)

		switch {
		case da*db < 0:
			s := da / (da - db) // intersection factor in (0,1)
			points = append(points, LinearInterpolation(a, b, s))
		case da == 0:
			if len(points) < 2 {
				points = append(points, a)
			}
		case db == 0:
			if len(points) < 2 {
				points = append(points, b)
			}
		}
	}

	if len(points) == 2 {
		return LineSegment{First: points[0], Second: points[1]}, SideCrossing
	}
	return LineSegment{}, SideDegenerate
}

// TriangleMesh is a triangle soup with a tracked axis-aligned bounding
// box. The zero value is not usable; call NewTriangleMesh.
type TriangleMesh struct {
	Triangles []Triangle

	// Bounding box corners, updated on every Append.
	BottomLeft v3.Vec
	UpperRight v3.Vec
}

const meshBoundsInit = 999999

// NewTriangleMesh returns an empty mesh with its bounding box primed for
// Append updates.
func NewTriangleMesh() *TriangleMesh {
	return &TriangleMesh{
		BottomLeft: v3.Vec{X: meshBoundsInit, Y: meshBoundsInit, Z: meshBoundsInit},
		UpperRight: v3.Vec{X: -meshBoundsInit, Y: -meshBoundsInit, Z: -meshBoundsInit},
	}
}

// Append adds a triangle and grows the bounding box to cover it.
func (m *TriangleMesh) Append(t Triangle) {
	m.Triangles = append(m.Triangles, t)
	for i := 0; i < 3; i++ {
		v := t.V[i]
		if v.X < m.BottomLeft.X {
			m.BottomLeft.X = v.X
		}
		if v.Y < m.BottomLeft.Y {
			m.BottomLeft.Y = v.Y
		}
		if v.Z < m.BottomLeft.Z {
			m.BottomLeft.Z = v.Z
		}
		if v.X > m.UpperRight.X {
			m.UpperRight.X = v.X
		}
		if v.Y > m.UpperRight.Y {
			m.UpperRight.Y = v.Y
		}
		if v.Z > m.UpperRight.Z {
			m.UpperRight.Z = v.Z
		}
	}
}

// Size returns the extent of the bounding box on each axis.
func (m *TriangleMesh) Size() v3.Vec {
	return m.UpperRight.Sub(m.BottomLeft)
}

// Normalize translates the mesh so its bounding box is centered on the
// origin.
func (m *TriangleMesh) Normalize() {
	half := m.Size().MulScalar(0.5)
	center := m.BottomLeft.Add(half)

	for i := range m.Triangles {
		for j := 0; j < 3; j++ {
			m.Triangles[i].V[j] = m.Triangles[i].V[j].Sub(center)
		}
	}

	m.BottomLeft = half.MulScalar(-1)
	m.UpperRight = half
}

// XYBounds projects the bounding box onto the XY plane as a Bounds
// rectangle, for use with the x-sweep kernel functions.
func (m *TriangleMesh) XYBounds() Bounds {
	return RectBounds(m.BottomLeft.X, m.BottomLeft.Y, m.UpperRight.X, m.UpperRight.Y)
}
