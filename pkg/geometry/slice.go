package geometry

import (
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// IntersectionAtX returns the point where segment crosses the YZ plane at
// xPosition. The second result is false when xPosition falls outside the
// segment's x-range or the segment has zero x-extent.
//
// The y coordinate is shifted from the first endpoint by the absolute
// interpolated amount, signed by the segment's overall y direction, and
// the z coordinate is always the first endpoint's z. This asymmetry is
// deliberate: the slicer's infill pass depends on it.
func IntersectionAtX(segment LineSegment, xPosition float64) (v3.Vec, bool) {
	minX := math.Min(segment.First.X, segment.Second.X)
	maxX := math.Max(segment.First.X, segment.Second.X)

	if minX == maxX {
		return v3.Vec{}, false
	}
	if xPosition < minX || xPosition > maxX {
		return v3.Vec{}, false
	}

	xLength := segment.Second.X - segment.First.X
	distanceToFirstX := xPosition - segment.First.X
	yLength := segment.Second.Y - segment.First.Y

	yShift := math.Abs(yLength * (distanceToFirstX / xLength))
	zPosition := segment.First.Z

	if yLength > 0 {
		return v3.Vec{X: xPosition, Y: segment.First.Y + yShift, Z: zPosition}, true
	}
	return v3.Vec{X: xPosition, Y: segment.First.Y - yShift, Z: zPosition}, true
}

// ExtremeXValues returns the points of bounds with the minimum and
// maximum x coordinate, in a single pass.
func ExtremeXValues(bounds Bounds) (minXPoint, maxXPoint v3.Vec) {
	minXPoint = bounds[0]
	maxXPoint = bounds[0]
	for _, point := range bounds {
		if point.X < minXPoint.X {
			minXPoint = point
		}
		if point.X > maxXPoint.X {
			maxXPoint = point
		}
	}
	return minXPoint, maxXPoint
}

// IntersectionLinesForBounds returns the x positions of the slicing lines
// spanning bounds, starting at the left extreme and stepping by thickness
// while not exceeding the right extreme.
func IntersectionLinesForBounds(bounds Bounds, thickness float64) []float64 {
	left, right := ExtremeXValues(bounds)

	var xValues []float64
	for x := left.X; x <= right.X; x += thickness {
		xValues = append(xValues, x)
	}
	return xValues
}

// IntersectionsForSegments intersects every consecutive pair of points
// with the YZ plane at xPosition and returns the hits sorted ascending
// by y.
func IntersectionsForSegments(xPosition float64, points []v3.Vec) []v3.Vec {
	var intersections []v3.Vec

	for i := 0; i+1 < len(points); i++ {
		segment := LineSegment{First: points[i], Second: points[i+1]}
		if p, ok := IntersectionAtX(segment, xPosition); ok {
			intersections = append(intersections, p)
		}
	}

	sort.Slice(intersections, func(i, j int) bool {
		return intersections[i].Y < intersections[j].Y
	})
	return intersections
}
