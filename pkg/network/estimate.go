package network

import (
	"errors"
	"fmt"
)

// ErrCyclicDependency is returned when the chunk dependency graph
// contains a cycle. The dependency relation must be acyclic; the
// estimator detects violations instead of recursing without bound.
var ErrCyclicDependency = errors.New("network: cyclic chunk dependency")

// EstimateExecutionTime computes the expected completion length of the
// whole collaborative print, in frame-units: the length of the longest
// dependency chain across all machines. Per-chunk results are memoized,
// so the traversal is linear in chunks plus dependency edges and calling
// this again on an unmodified network returns the same value.
func (n *Network) EstimateExecutionTime() (float64, error) {
	visiting := make(map[ChunkID]bool)

	currentMax := 0.0
	for _, c := range n.Chunks() {
		t, err := n.execTime(c, visiting)
		if err != nil {
			return 0, err
		}
		if t > currentMax {
			currentMax = t
		}
	}
	return currentMax, nil
}

// execTime returns the memoized execution time of c: the longest
// dependency chain ending at c, plus c's own frame count. The visiting
// set tracks the current DFS path to detect cycles.
func (n *Network) execTime(c *Chunk, visiting map[ChunkID]bool) (float64, error) {
	if c.execTimeSet {
		return c.execTime, nil
	}
	if visiting[c.ID] {
		return 0, fmt.Errorf("%w: chunk %s", ErrCyclicDependency, c.ID)
	}
	visiting[c.ID] = true
	defer delete(visiting, c.ID)

	tCritical := 0.0
	for _, dep := range c.Dependencies {
		d, ok := n.chunks[dep]
		if !ok {
			return 0, fmt.Errorf("network: chunk %s depends on unknown chunk %s", c.ID, dep)
		}
		t, err := n.execTime(d, visiting)
		if err != nil {
			return 0, err
		}
		if t > tCritical {
			tCritical = t
		}
	}

	result := tCritical + float64(len(c.FrameData))
	c.execTime = result
	c.execTimeSet = true
	return result, nil
}

// ResetEstimates clears all memoized execution times so a modified
// network can be re-estimated.
func (n *Network) ResetEstimates() {
	for _, c := range n.chunks {
		c.execTime = 0
		c.execTimeSet = false
	}
}
