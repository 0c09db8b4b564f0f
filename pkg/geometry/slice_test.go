package geometry

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestIntersectionAtX(t *testing.T) {
	seg := LineSegment{
		First:  v3.Vec{X: 0, Y: 0, Z: 3},
		Second: v3.Vec{X: 10, Y: 10, Z: 3},
	}

	p, ok := IntersectionAtX(seg, 5)
	if !ok {
		t.Fatal("expected an intersection at x=5")
	}
	if !almostEqual(p.X, 5) || !almostEqual(p.Y, 5) || !almostEqual(p.Z, 3) {
		t.Errorf("intersection = %+v, want (5,5,3)", p)
	}
}

func TestIntersectionAtXDescendingY(t *testing.T) {
	seg := LineSegment{
		First:  v3.Vec{X: 0, Y: 10, Z: 1},
		Second: v3.Vec{X: 10, Y: 0, Z: 1},
	}

	p, ok := IntersectionAtX(seg, 2)
	if !ok {
		t.Fatal("expected an intersection at x=2")
	}
	if !almostEqual(p.Y, 8) {
		t.Errorf("y = %f, want 8", p.Y)
	}
}

func TestIntersectionAtXOutOfRange(t *testing.T) {
	seg := LineSegment{
		First:  v3.Vec{X: 2, Y: 0},
		Second: v3.Vec{X: 8, Y: 4},
	}

	if _, ok := IntersectionAtX(seg, 1.999); ok {
		t.Error("x below the segment range should have no intersection")
	}
	if _, ok := IntersectionAtX(seg, 8.001); ok {
		t.Error("x above the segment range should have no intersection")
	}
}

func TestIntersectionAtXVerticalSegment(t *testing.T) {
	seg := LineSegment{
		First:  v3.Vec{X: 4, Y: 0},
		Second: v3.Vec{X: 4, Y: 10},
	}

	if _, ok := IntersectionAtX(seg, 4); ok {
		t.Error("zero x-extent segment should have no intersection")
	}
}

func TestIntersectionAtXEndpoints(t *testing.T) {
	seg := LineSegment{
		First:  v3.Vec{X: 1, Y: 2, Z: 6},
		Second: v3.Vec{X: 5, Y: 9, Z: 6},
	}

	p, ok := IntersectionAtX(seg, 1)
	if !ok {
		t.Fatal("expected intersection at the first endpoint")
	}
	if !almostEqual(p.Y, 2) || !almostEqual(p.Z, 6) {
		t.Errorf("at first endpoint got %+v, want y=2 z=6", p)
	}

	p, ok = IntersectionAtX(seg, 5)
	if !ok {
		t.Fatal("expected intersection at the second endpoint")
	}
	if !almostEqual(p.Y, 9) {
		t.Errorf("at second endpoint got y=%f, want 9", p.Y)
	}
}

func TestExtremeXValues(t *testing.T) {
	bounds := Bounds{
		{X: 3, Y: 1},
		{X: -2, Y: 4},
		{X: 9, Y: 0},
		{X: 5, Y: 2},
	}

	minP, maxP := ExtremeXValues(bounds)
	if minP.X != -2 {
		t.Errorf("min x = %f, want -2", minP.X)
	}
	if maxP.X != 9 {
		t.Errorf("max x = %f, want 9", maxP.X)
	}
}

func TestIntersectionLinesForBounds(t *testing.T) {
	bounds := RectBounds(0, 0, 10, 5)

	xs := IntersectionLinesForBounds(bounds, 2.5)
	if len(xs) != 5 {
		t.Fatalf("got %d lines, want 5", len(xs))
	}
	if xs[0] != 0 {
		t.Errorf("first line = %f, want min x", xs[0])
	}
	for _, x := range xs {
		if x > 10 {
			t.Errorf("line at %f exceeds max x", x)
		}
	}
}

func TestIntersectionLinesLengthProperty(t *testing.T) {
	cases := []struct {
		maxX      float64
		thickness float64
	}{
		{10, 1},
		{10, 3},
		{7, 2},
		{1, 0.25},
	}
	for _, c := range cases {
		bounds := RectBounds(0, 0, c.maxX, 1)
		xs := IntersectionLinesForBounds(bounds, c.thickness)
		want := int(math.Floor(c.maxX/c.thickness)) + 1
		if len(xs) != want {
			t.Errorf("maxX=%f thickness=%f: got %d lines, want %d",
				c.maxX, c.thickness, len(xs), want)
		}
	}
}

func TestIntersectionsForSegmentsSortedByY(t *testing.T) {
	// A zig-zag polyline crossed twice by the plane at x=5.
	points := []v3.Vec{
		{X: 0, Y: 8},
		{X: 10, Y: 9},
		{X: 10, Y: 0},
		{X: 0, Y: 1},
	}

	hits := IntersectionsForSegments(5, points)
	if len(hits) != 2 {
		t.Fatalf("got %d intersections, want 2", len(hits))
	}
	if hits[0].Y > hits[1].Y {
		t.Error("intersections are not sorted ascending by y")
	}
}

func TestIntersectionsForSegmentsSkipsMisses(t *testing.T) {
	points := []v3.Vec{
		{X: 0, Y: 0},
		{X: 2, Y: 2},
		{X: 2, Y: 8}, // vertical in x: never intersects
	}

	hits := IntersectionsForSegments(1, points)
	if len(hits) != 1 {
		t.Fatalf("got %d intersections, want 1", len(hits))
	}
}
