package cmd

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/chazu/coprint/pkg/log"
	"github.com/chazu/coprint/pkg/slicer"
)

// SliceCommand returns the slice command. It slices a box solid into
// layers, distributes the layers over the profile's machines, and
// estimates the resulting network. Useful for sizing a print before
// writing a full network script.
func SliceCommand() *cli.Command {
	return &cli.Command{
		Name:  "slice",
		Usage: "Slice a box solid and estimate the distributed print",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "size-x",
				Usage: "Box width in cm",
				Value: 10,
			},
			&cli.Float64Flag{
				Name:  "size-y",
				Usage: "Box depth in cm",
				Value: 10,
			},
			&cli.Float64Flag{
				Name:  "size-z",
				Usage: "Box height in cm",
				Value: 10,
			},
			&cli.Float64Flag{
				Name:  "layer-height",
				Usage: "Layer height in cm",
				Value: 0.3,
			},
			&cli.Float64Flag{
				Name:  "infill-spacing",
				Usage: "Spacing between infill lines in cm (0 disables infill)",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "cells",
				Usage: "Marching cubes resolution",
				Value: slicer.DefaultMeshCells,
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "Path to machine profile YAML",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress result output",
			},
		},
		Action: sliceAction,
	}
}

func sliceAction(c *cli.Context) error {
	logger := log.NewLogger("slice")

	prof, err := loadProfile(c)
	if err != nil {
		return err
	}

	size := v3.Vec{
		X: c.Float64("size-x"),
		Y: c.Float64("size-y"),
		Z: c.Float64("size-z"),
	}
	box, err := sdf.Box3D(size, 0)
	if err != nil {
		return fmt.Errorf("cannot build solid: %w", err)
	}

	mesh := slicer.FromSolid(box, c.Int("cells"))
	logger.Info("tessellated solid", zap.Int("triangles", len(mesh.Triangles)))

	layers, err := slicer.Slice(mesh, slicer.Options{
		LayerHeight:   c.Float64("layer-height"),
		InfillSpacing: c.Float64("infill-spacing"),
	})
	if err != nil {
		return fmt.Errorf("slicing failed: %w", err)
	}
	logger.Info("sliced mesh", zap.Int("layers", len(layers)))

	net := prof.BuildNetwork()
	if err := slicer.Distribute(net, layers); err != nil {
		return fmt.Errorf("distribution failed: %w", err)
	}

	if !reportValidation(net, logger) {
		return cli.Exit("network validation failed", exitInvalidNet)
	}

	frames, err := net.EstimateExecutionTime()
	if err != nil {
		return cli.Exit(fmt.Sprintf("estimation failed: %v", err), exitInvalidNet)
	}

	logger.Info("estimation complete",
		zap.Int("machines", len(net.Machines)),
		zap.Int("chunks", net.ChunkCount()),
		zap.Float64("frames", frames),
	)

	if !c.Bool("quiet") {
		fmt.Printf("\n=== Slice ===\n")
		fmt.Printf("Solid:        box %gx%gx%g cm\n", size.X, size.Y, size.Z)
		fmt.Printf("Triangles:    %d\n", len(mesh.Triangles))
		fmt.Printf("Layers:       %d\n", len(layers))
		printEstimate(net, frames, prof.SecondsPerFrame)
	}
	return cli.Exit("", exitSuccess)
}
