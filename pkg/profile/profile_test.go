package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "machines.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp profile: %v", err)
	}
	return path
}

func TestLoadValidProfile(t *testing.T) {
	path := writeTemp(t, `
seconds_per_frame: 0.05
machines:
  - name: left
    machine_speed: 10
    build_depth: 0.3
  - name: right
    machine_speed: 12
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.SecondsPerFrame != 0.05 {
		t.Errorf("seconds_per_frame = %f, want 0.05", p.SecondsPerFrame)
	}
	if len(p.Machines) != 2 {
		t.Fatalf("machine count = %d, want 2", len(p.Machines))
	}
	if p.Machines[0].Name != "left" || p.Machines[0].BuildDepth != 0.3 {
		t.Errorf("machine 0 = %+v", p.Machines[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeTemp(t, "machines: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("invalid YAML should fail")
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		p    Profile
		want string
	}{
		{
			name: "no machines",
			p:    Profile{SecondsPerFrame: 1},
			want: "no machines",
		},
		{
			name: "unnamed machine",
			p:    Profile{SecondsPerFrame: 1, Machines: []MachineConfig{{}}},
			want: "has no name",
		},
		{
			name: "duplicate names",
			p: Profile{SecondsPerFrame: 1, Machines: []MachineConfig{
				{Name: "a"}, {Name: "a"},
			}},
			want: "duplicate",
		},
		{
			name: "negative speed",
			p: Profile{SecondsPerFrame: 1, Machines: []MachineConfig{
				{Name: "a", MachineSpeed: -1},
			}},
			want: "machine_speed",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.p.Validate()
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Errorf("err = %v, want substring %q", err, c.want)
			}
		})
	}
}

func TestDefaultsAreValid(t *testing.T) {
	p := Defaults()
	if err := p.Validate(); err != nil {
		t.Errorf("Defaults() should validate, got %v", err)
	}
}

func TestBuildNetwork(t *testing.T) {
	p := Profile{
		SecondsPerFrame: 1,
		Machines: []MachineConfig{
			{Name: "a", MachineSpeed: 10},
			{Name: "b", MachineSpeed: 20},
		},
	}

	n := p.BuildNetwork()
	if len(n.Machines) != 2 {
		t.Fatalf("machine count = %d, want 2", len(n.Machines))
	}
	if m := n.Lookup("b"); m == nil || m.Parameters.MachineSpeed != 20 {
		t.Error("machine b parameters not carried over")
	}
}
