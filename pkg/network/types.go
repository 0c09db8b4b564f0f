// Package network defines the chunk dependency model for a collaborative
// print: machines own ordered chunks, chunks reference dependencies across
// the whole network, and the estimator computes the make-span of the job.
package network

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ChunkID identifies a chunk within a network. Dependencies are held as
// IDs resolved through the network registry, never as pointers between
// machines.
type ChunkID string

// Frame is one unit of execution time: a single toolhead position in the
// simulated print. A chunk's intrinsic cost is the length of its frame
// data.
type Frame struct {
	Location  v3.Vec
	Extruding bool
}

// Chunk is one schedulable unit of print work assigned to a machine.
type Chunk struct {
	ID           ChunkID
	FrameData    []Frame
	Dependencies []ChunkID

	// Memoized execution time. execTimeSet distinguishes a computed
	// zero from "not yet computed"; there is no numeric sentinel.
	execTime    float64
	execTimeSet bool
}

// AddDependency appends dependency references to other chunks.
func (c *Chunk) AddDependency(ids ...ChunkID) {
	c.Dependencies = append(c.Dependencies, ids...)
}

// AddFrames appends frames to the chunk's frame data.
func (c *Chunk) AddFrames(frames ...Frame) {
	c.FrameData = append(c.FrameData, frames...)
}

// ExecutionTime returns the memoized execution time, if computed.
func (c *Chunk) ExecutionTime() (float64, bool) {
	return c.execTime, c.execTimeSet
}

// MachineParameters describes one physical printer contributing work.
type MachineParameters struct {
	BuildDepth      float64
	PrintheadSlope  float64
	MachineWidth    float64
	PrintheadDepth  float64
	PrintheadHeight float64
	MachineSpeed    float64 // cm/s
	Temperature     float64
	ModelShift      v3.Vec
}

// Machine owns an ordered sequence of chunks.
type Machine struct {
	Number     int
	Name       string
	Parameters MachineParameters
	Chunks     []*Chunk

	net *Network
}

// Network is the full set of machines for one collaborative print job,
// plus the registry that resolves chunk dependency references.
type Network struct {
	Machines []*Machine

	chunks map[ChunkID]*Chunk
}
