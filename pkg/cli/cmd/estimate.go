package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/chazu/coprint/pkg/engine"
	"github.com/chazu/coprint/pkg/log"
	"github.com/chazu/coprint/pkg/network"
	"github.com/chazu/coprint/pkg/profile"
)

// Exit codes for estimate and slice.
const (
	exitSuccess     = 0
	exitScriptError = 1
	exitInvalidNet  = 2
)

// EstimateCommand returns the estimate command. It evaluates a network
// script, validates the resulting chunk graph, and reports the critical
// path length in frames and wall-clock time.
func EstimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate execution time of a network script",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "script",
				Usage:    "Path to network script file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "profile",
				Usage: "Path to machine profile YAML (used for frame timing)",
			},
			&cli.Float64Flag{
				Name:  "seconds-per-frame",
				Usage: "Override frame duration in seconds",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress result output",
			},
		},
		Action: estimateAction,
	}
}

func estimateAction(c *cli.Context) error {
	scriptPath := c.String("script")
	logger := log.NewLogger(filepath.Base(scriptPath))

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("cannot read script %q: %w", scriptPath, err)
	}

	prof, err := loadProfile(c)
	if err != nil {
		return err
	}
	secondsPerFrame := prof.SecondsPerFrame
	if c.IsSet("seconds-per-frame") {
		secondsPerFrame = c.Float64("seconds-per-frame")
	}

	eng := engine.NewEngine()
	net, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", scriptPath, e.Error())
		}
		return cli.Exit("", exitScriptError)
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
		printEstimate(net, frames, secondsPerFrame)
	}
	return cli.Exit("", exitSuccess)
}

// loadProfile loads the --profile file, or the default two-machine
// profile when the flag is absent.
func loadProfile(c *cli.Context) (*profile.Profile, error) {
	path := c.String("profile")
	if path == "" {
		return profile.Defaults(), nil
	}
	return profile.Load(path)
}

// reportValidation prints all findings and returns true if the network
// is safe to estimate (no error-severity findings).
func reportValidation(net *network.Network, logger *log.Logger) bool {
	ok := true
	for _, v := range network.Validate(net) {
		switch v.Severity {
		case network.SeverityError:
			logger.Error(v.Message, zap.String("chunk", string(v.ChunkID)))
			ok = false
		default:
			logger.Warn(v.Message, zap.String("chunk", string(v.ChunkID)))
		}
	}
	return ok
}

func printEstimate(net *network.Network, frames, secondsPerFrame float64) {
	fmt.Printf("\n=== Estimate ===\n")
	fmt.Printf("Machines:     %d\n", len(net.Machines))
	fmt.Printf("Chunks:       %d\n", net.ChunkCount())
	fmt.Printf("Frames:       %.0f\n", frames)
	if secondsPerFrame > 0 {
		wall := time.Duration(frames * secondsPerFrame * float64(time.Second))
		fmt.Printf("Wall clock:   %s (at %.4fs per frame)\n", wall.Round(time.Millisecond), secondsPerFrame)
	}

	for _, m := range net.Machines {
		fmt.Printf("\nMachine %q:\n", m.Name)
		for _, ch := range m.Chunks {
			t, known := ch.ExecutionTime()
			if known {
				fmt.Printf("  %-20s frames=%-6d finish=%.0f\n", ch.ID, len(ch.FrameData), t)
			} else {
				fmt.Printf("  %-20s frames=%-6d\n", ch.ID, len(ch.FrameData))
			}
		}
	}
}
