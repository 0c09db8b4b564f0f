package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Version is the canonical project version.
const Version = "0.1.0"

// VersionCommand returns the version command. Commit is set by the
// caller from build metadata.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			fmt.Printf("coprint %s (commit: %s)\n", Version, commit)
			return nil
		},
	}
}
