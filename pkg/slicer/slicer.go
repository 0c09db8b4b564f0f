// Package slicer turns a triangle mesh into layers of print paths and
// distributes those layers as chunks across the machines of a network.
// Slicing is a z-plane sweep over the mesh; infill comes from the
// geometry kernel's x-sweep.
package slicer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/coprint/pkg/geometry"
	"github.com/chazu/coprint/pkg/network"
)

// DefaultMeshCells controls marching cubes tessellation resolution for
// FromSolid.
const DefaultMeshCells = 100

// ErrNoMachines is returned when layers are distributed over a network
// that has no machines.
var ErrNoMachines = errors.New("slicer: network has no machines")

// Options configures a slicing run.
type Options struct {
	LayerHeight   float64 // z distance between slicing planes
	InfillSpacing float64 // x distance between infill lines; 0 disables infill
}

// Layer is one horizontal slice of the mesh: the z position of its
// slicing plane, the perimeter segments cut from the mesh, and the
// infill spans filling the interior.
type Layer struct {
	Z       float64
	Outline []geometry.LineSegment
	Infill  []geometry.LineSegment
}

// FromSolid tessellates an SDF solid into a TriangleMesh using marching
// cubes. cells controls resolution; DefaultMeshCells is a reasonable
// choice for simulation purposes.
func FromSolid(s sdf.SDF3, cells int) *geometry.TriangleMesh {
	if cells <= 0 {
		cells = DefaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	mesh := geometry.NewTriangleMesh()
	for _, tri := range triangles {
		mesh.Append(geometry.Triangle{
			V:      [3]v3.Vec{tri[0], tri[1], tri[2]},
			Normal: tri.Normal(),
		})
	}
	return mesh
}

// Slice sweeps horizontal planes through the mesh and returns one Layer
// per plane, bottom-up. The first plane sits half a layer height above
// the mesh bottom so that flat bottom faces are not sliced edge-on.
func Slice(mesh *geometry.TriangleMesh, opts Options) ([]Layer, error) {
	if opts.LayerHeight <= 0 {
		return nil, fmt.Errorf("slicer: layer height must be positive, got %f", opts.LayerHeight)
	}
	if len(mesh.Triangles) == 0 {
		return nil, errors.New("slicer: mesh has no triangles")
	}

	bounds := mesh.XYBounds()
	normal := v3.Vec{Z: 1}

	var layers []Layer
	for z := mesh.BottomLeft.Z + opts.LayerHeight/2; z <= mesh.UpperRight.Z; z += opts.LayerHeight {
		plane := geometry.Plane{Point: v3.Vec{Z: z}, Normal: normal}

		layer := Layer{Z: z}
		for _, tri := range mesh.Triangles {
			seg, side := tri.IntersectPlane(plane)
			if side == geometry.SideCrossing {
				layer.Outline = append(layer.Outline, seg)
			}
		}

		if opts.InfillSpacing > 0 && len(layer.Outline) > 0 {
			layer.Infill = infillForLayer(layer.Outline, bounds, opts.InfillSpacing)
		}

		layers = append(layers, layer)
	}

	return layers, nil
}

// infillForLayer sweeps vertical x-lines across the layer outline and
// pairs consecutive crossings into printable spans.
func infillForLayer(outline []geometry.LineSegment, bounds geometry.Bounds, spacing float64) []geometry.LineSegment {
	var spans []geometry.LineSegment

	for _, x := range geometry.IntersectionLinesForBounds(bounds, spacing) {
		var hits []v3.Vec
		for _, seg := range outline {
			if p, ok := geometry.IntersectionAtX(seg, x); ok {
				hits = append(hits, p)
			}
		}
		sort.Slice(hits, func(i, j int) bool { return hits[i].Y < hits[j].Y })

		// Even-odd pairing: inside the perimeter between hit 0-1, 2-3, ...
		for i := 0; i+1 < len(hits); i += 2 {
			spans = append(spans, geometry.LineSegment{First: hits[i], Second: hits[i+1]})
		}
	}

	return spans
}

// Frames converts a layer's paths into simulator frames, one per
// toolhead target position.
func (l Layer) Frames() []network.Frame {
	var out []network.Frame
	for _, seg := range l.Outline {
		out = append(out,
			network.Frame{Location: seg.First},
			network.Frame{Location: seg.Second, Extruding: true},
		)
	}
	for _, seg := range l.Infill {
		out = append(out,
			network.Frame{Location: seg.First},
			network.Frame{Location: seg.Second, Extruding: true},
		)
	}
	return out
}

// Distribute performs vertical chunking: layers are grouped bottom-up
// into one contiguous band per machine, each band becomes a chunk owned
// by that machine, and every band depends on the band below it. Chunk
// IDs are "<machine>/band<index>".
func Distribute(n *network.Network, layers []Layer) error {
	if len(n.Machines) == 0 {
		return ErrNoMachines
	}
	if len(layers) == 0 {
		return errors.New("slicer: no layers to distribute")
	}

	bands := len(n.Machines)
	if bands > len(layers) {
		bands = len(layers)
	}
	perBand := len(layers) / bands

	var prev network.ChunkID
	for b := 0; b < bands; b++ {
		start := b * perBand
		end := start + perBand
		if b == bands-1 {
			end = len(layers) // last band absorbs the remainder
		}

		m := n.Machines[b%len(n.Machines)]
		chunk := &network.Chunk{
			ID: network.ChunkID(fmt.Sprintf("%s/band%d", m.Name, b)),
		}
		for _, layer := range layers[start:end] {
			chunk.AddFrames(layer.Frames()...)
		}
		if prev != "" {
			chunk.AddDependency(prev)
		}

		if err := m.AddChunk(chunk); err != nil {
			return err
		}
		prev = chunk.ID
	}

	return nil
}
