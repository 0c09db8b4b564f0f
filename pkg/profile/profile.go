// Package profile loads printer machine profiles from YAML. A profile
// describes one physical printer's geometry and speed; the simulator
// uses it to parameterize machines and to convert frame-units into
// wall-clock time.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chazu/coprint/pkg/network"
)

// Profile is a machines.yaml configuration file. All machine values are
// optional; missing fields fall back to Defaults().
type Profile struct {
	// SecondsPerFrame scales the estimator's frame-unit result into
	// wall-clock seconds.
	SecondsPerFrame float64 `yaml:"seconds_per_frame"`

	Machines []MachineConfig `yaml:"machines"`
}

// MachineConfig is one machine entry in the profile.
type MachineConfig struct {
	Name            string  `yaml:"name"`
	BuildDepth      float64 `yaml:"build_depth"`      // meters
	PrintheadSlope  float64 `yaml:"printhead_slope"`  // slope m in y = mx + b
	MachineWidth    float64 `yaml:"machine_width"`    // meters
	PrintheadDepth  float64 `yaml:"printhead_depth"`  // meters
	PrintheadHeight float64 `yaml:"printhead_height"` // meters
	MachineSpeed    float64 `yaml:"machine_speed"`    // cm/s
	Temperature     float64 `yaml:"temperature"`      // celsius
}

// Defaults returns the profile used when no config file is given: two
// identical machines at a conservative speed.
func Defaults() *Profile {
	return &Profile{
		SecondsPerFrame: 1.0 / 30.0,
		Machines: []MachineConfig{
			{Name: "machine-0", MachineSpeed: 10},
			{Name: "machine-1", MachineSpeed: 10},
		},
	}
}

// Load reads a YAML profile file and validates it.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read profile file %q: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	if p.SecondsPerFrame == 0 {
		p.SecondsPerFrame = Defaults().SecondsPerFrame
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

// Validate checks the profile for values the simulator cannot work with.
func (p *Profile) Validate() error {
	if p.SecondsPerFrame < 0 {
		return fmt.Errorf("seconds_per_frame must not be negative, got %f", p.SecondsPerFrame)
	}
	if len(p.Machines) == 0 {
		return fmt.Errorf("profile defines no machines")
	}

	seen := make(map[string]bool)
	for i, m := range p.Machines {
		if m.Name == "" {
			return fmt.Errorf("machine %d has no name", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate machine name %q", m.Name)
		}
		seen[m.Name] = true
		if m.MachineSpeed < 0 {
			return fmt.Errorf("machine %q: machine_speed must not be negative", m.Name)
		}
	}
	return nil
}

// Parameters converts a machine entry to the network parameter struct.
func (m MachineConfig) Parameters() network.MachineParameters {
	return network.MachineParameters{
		BuildDepth:      m.BuildDepth,
		PrintheadSlope:  m.PrintheadSlope,
		MachineWidth:    m.MachineWidth,
		PrintheadDepth:  m.PrintheadDepth,
		PrintheadHeight: m.PrintheadHeight,
		MachineSpeed:    m.MachineSpeed,
		Temperature:     m.Temperature,
	}
}

// BuildNetwork creates a network with one machine per profile entry.
func (p *Profile) BuildNetwork() *network.Network {
	n := network.New()
	for _, m := range p.Machines {
		n.AddMachine(m.Name, m.Parameters())
	}
	return n
}
