package network

import "fmt"

// New creates an empty Network.
func New() *Network {
	return &Network{
		chunks: make(map[ChunkID]*Chunk),
	}
}

// AddMachine creates a machine, appends it to the network, and returns it.
func (n *Network) AddMachine(name string, params MachineParameters) *Machine {
	m := &Machine{
		Number:     len(n.Machines),
		Name:       name,
		Parameters: params,
		net:        n,
	}
	n.Machines = append(n.Machines, m)
	return m
}

// AddChunk appends a chunk to the machine and registers it in the
// network-wide registry. Chunk IDs must be unique across the network.
func (m *Machine) AddChunk(c *Chunk) error {
	if c.ID == "" {
		return fmt.Errorf("network: chunk on machine %q has empty ID", m.Name)
	}
	if _, exists := m.net.chunks[c.ID]; exists {
		return fmt.Errorf("network: duplicate chunk ID %q", c.ID)
	}
	m.Chunks = append(m.Chunks, c)
	m.net.chunks[c.ID] = c
	return nil
}

// Chunk returns the chunk with the given ID, if registered.
func (n *Network) Chunk(id ChunkID) (*Chunk, bool) {
	c, ok := n.chunks[id]
	return c, ok
}

// Chunks flattens all chunks across all machines, in machine order.
func (n *Network) Chunks() []*Chunk {
	var all []*Chunk
	for _, m := range n.Machines {
		all = append(all, m.Chunks...)
	}
	return all
}

// ChunkCount returns the number of registered chunks.
func (n *Network) ChunkCount() int {
	return len(n.chunks)
}

// Lookup returns the machine with the given name, or nil.
func (n *Network) Lookup(name string) *Machine {
	for _, m := range n.Machines {
		if m.Name == name {
			return m
		}
	}
	return nil
}
