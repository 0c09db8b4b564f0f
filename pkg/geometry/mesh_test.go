package geometry

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func tri(a, b, c v3.Vec) Triangle {
	return Triangle{V: [3]v3.Vec{a, b, c}}
}

func TestIntersectPlaneCrossing(t *testing.T) {
	plane := Plane{Point: v3.Vec{Z: 1}, Normal: v3.Vec{Z: 1}}
	face := tri(
		v3.Vec{X: 0, Y: 0, Z: 0},
		v3.Vec{X: 2, Y: 0, Z: 2},
		v3.Vec{X: 0, Y: 2, Z: 2},
	)

	seg, side := face.IntersectPlane(plane)
	if side != SideCrossing {
		t.Fatalf("side = %s, want crossing", side)
	}
	if !almostEqual(seg.First.Z, 1) || !almostEqual(seg.Second.Z, 1) {
		t.Errorf("cut endpoints should lie at z=1, got %+v %+v", seg.First, seg.Second)
	}
}

func TestIntersectPlaneFrontAndBack(t *testing.T) {
	plane := Plane{Point: v3.Vec{Z: 5}, Normal: v3.Vec{Z: 1}}

	below := tri(
		v3.Vec{Z: 0}, v3.Vec{X: 1, Z: 1}, v3.Vec{Y: 1, Z: 2},
	)
	if _, side := below.IntersectPlane(plane); side != SideBack {
		t.Errorf("triangle below plane: side = %s, want back", side)
	}

	above := tri(
		v3.Vec{Z: 6}, v3.Vec{X: 1, Z: 7}, v3.Vec{Y: 1, Z: 8},
	)
	if _, side := above.IntersectPlane(plane); side != SideFront {
		t.Errorf("triangle above plane: side = %s, want front", side)
	}
}

func TestIntersectPlaneVertexOnPlane(t *testing.T) {
	plane := Plane{Point: v3.Vec{Z: 0}, Normal: v3.Vec{Z: 1}}
	face := tri(
		v3.Vec{X: 0, Y: 0, Z: 0}, // exactly on plane
		v3.Vec{X: 2, Y: 0, Z: 2},
		v3.Vec{X: 0, Y: 2, Z: -2},
	)

	seg, side := face.IntersectPlane(plane)
	if side != SideCrossing {
		t.Fatalf("side = %s, want crossing", side)
	}
	if !almostEqual(seg.First.Z, 0) || !almostEqual(seg.Second.Z, 0) {
		t.Errorf("cut should lie at z=0, got %+v %+v", seg.First, seg.Second)
	}
}

func TestTriangleMeshBounds(t *testing.T) {
	m := NewTriangleMesh()
	m.Append(tri(
		v3.Vec{X: -1, Y: 0, Z: 0},
		v3.Vec{X: 2, Y: 3, Z: 1},
		v3.Vec{X: 0, Y: -2, Z: 5},
	))

	if m.BottomLeft.X != -1 || m.BottomLeft.Y != -2 || m.BottomLeft.Z != 0 {
		t.Errorf("bottom left = %+v", m.BottomLeft)
	}
	if m.UpperRight.X != 2 || m.UpperRight.Y != 3 || m.UpperRight.Z != 5 {
		t.Errorf("upper right = %+v", m.UpperRight)
	}

	size := m.Size()
	if size.X != 3 || size.Y != 5 || size.Z != 5 {
		t.Errorf("size = %+v", size)
	}
}

func TestTriangleMeshNormalize(t *testing.T) {
	m := NewTriangleMesh()
	m.Append(tri(
		v3.Vec{X: 10, Y: 10, Z: 10},
		v3.Vec{X: 12, Y: 10, Z: 10},
		v3.Vec{X: 10, Y: 14, Z: 16},
	))
	m.Normalize()

	if !almostEqual(m.BottomLeft.X, -1) || !almostEqual(m.UpperRight.X, 1) {
		t.Errorf("x bounds after normalize: %+v %+v", m.BottomLeft, m.UpperRight)
	}
	if !almostEqual(m.BottomLeft.Z, -3) || !almostEqual(m.UpperRight.Z, 3) {
		t.Errorf("z bounds after normalize: %+v %+v", m.BottomLeft, m.UpperRight)
	}

	// Size is preserved.
	size := m.Size()
	if !almostEqual(size.Y, 4) {
		t.Errorf("size.Y after normalize = %f, want 4", size.Y)
	}
}
