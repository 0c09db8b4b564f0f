package network

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks
// estimation or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks estimation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ChunkID  ChunkID // which chunk has the problem (empty if network-level)
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.ChunkID == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] chunk %s: %s", e.Severity, e.ChunkID, e.Message)
}

// Validate runs structural checks on the network and returns the
// findings. An empty result means the network is safe to estimate. The
// function is read-only and never mutates the network.
func Validate(n *Network) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateReferences(n)...)
	errs = append(errs, validateDAG(n)...)
	errs = append(errs, validateMachines(n)...)
	return errs
}

// validateReferences checks that every dependency points at a registered
// chunk and that no chunk depends on itself.
func validateReferences(n *Network) []ValidationError {
	var errs []ValidationError

	for _, c := range n.Chunks() {
		for _, dep := range c.Dependencies {
			if dep == c.ID {
				errs = append(errs, ValidationError{
					ChunkID:  c.ID,
					Message:  "chunk depends on itself",
					Severity: SeverityError,
				})
				continue
			}
			if _, ok := n.chunks[dep]; !ok {
				errs = append(errs, ValidationError{
					ChunkID:  c.ID,
					Message:  fmt.Sprintf("dependency %q does not exist", dep),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateDAG checks for dependency cycles using DFS with 3-color
// marking. White (0) = unvisited, gray (1) = in the current DFS path,
// black (2) = fully explored. Encountering a gray chunk means a cycle.
func validateDAG(n *Network) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[ChunkID]int) // default zero = white
	var errs []ValidationError

	var visit func(id ChunkID) bool // returns true if cycle found
	visit = func(id ChunkID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				ChunkID:  id,
				Message:  fmt.Sprintf("cycle detected: chunk %s is part of a cycle", id),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray

		c, ok := n.chunks[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}

		for _, dep := range c.Dependencies {
			if visit(dep) {
				return true
			}
		}

		color[id] = black
		return false
	}

	// Start DFS from every chunk to catch disconnected components.
	for id := range n.chunks {
		if color[id] == white {
			if visit(id) {
				// One cycle error is sufficient; stop early.
				break
			}
		}
	}

	return errs
}

// validateMachines reports advisory findings: machines with no work and
// chunks with no frames.
func validateMachines(n *Network) []ValidationError {
	var errs []ValidationError

	for _, m := range n.Machines {
		if len(m.Chunks) == 0 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("machine %q has no chunks", m.Name),
				Severity: SeverityWarning,
			})
		}
		for _, c := range m.Chunks {
			if len(c.FrameData) == 0 {
				errs = append(errs, ValidationError{
					ChunkID:  c.ID,
					Message:  "chunk has no frame data (zero duration)",
					Severity: SeverityWarning,
				})
			}
		}
	}

	return errs
}
