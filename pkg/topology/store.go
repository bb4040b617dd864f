package topology

import (
	"fmt"
	"sort"
)

// Store is the ground-truth network graph. Nodes and links are created
// once at construction time; after that the only mutation the store
// permits is the per-link TrafficCount, incremented by the congestion
// tracker. Routing never edits the store directly: speculative edge
// removal happens on a View obtained from Snapshot.
type Store struct {
	nodes     map[string]*Node
	links     map[edgeKey]*Link
	adjacency map[string][]string
}

// NewStore creates an empty topology store.
func NewStore() *Store {
	return &Store{
		nodes:     make(map[string]*Node),
		links:     make(map[edgeKey]*Link),
		adjacency: make(map[string][]string),
	}
}

// AddNode creates a node. Quantum-only attributes on a classical node
// are rejected.
func (s *Store) AddNode(id string, class NodeClass, attrs NodeAttrs) (*Node, error) {
	if id == "" {
		return nil, nodeErr("AddNode", id, fmt.Errorf("%w: empty id", ErrInvalidNode))
	}
	if _, ok := s.nodes[id]; ok {
		return nil, nodeErr("AddNode", id, ErrDuplicateNode)
	}
	if attrs.MemoryCapacity < 0 {
		return nil, nodeErr("AddNode", id, fmt.Errorf("%w: negative memory capacity", ErrInvalidNode))
	}
	if class == ClassicalNode {
		if attrs.MemoryCapacity != 0 {
			return nil, nodeErr("AddNode", id, fmt.Errorf("%w: classical node with qubit memory", ErrInvalidNode))
		}
		if attrs.BaselineDecoherence != nil {
			return nil, nodeErr("AddNode", id, fmt.Errorf("%w: classical node with decoherence figure", ErrInvalidNode))
		}
	}
	if d := attrs.BaselineDecoherence; d != nil && (*d <= 0 || *d >= 1) {
		return nil, nodeErr("AddNode", id, fmt.Errorf("%w: baseline decoherence %v outside (0,1)", ErrInvalidNode, *d))
	}
	if attrs.ProcessingDelay < 0 {
		return nil, nodeErr("AddNode", id, fmt.Errorf("%w: negative processing delay", ErrInvalidNode))
	}
	delay := attrs.ProcessingDelay
	if delay == 0 {
		delay = 1
	}

	n := &Node{
		ID:                  id,
		Class:               class,
		MemoryCapacity:      attrs.MemoryCapacity,
		BaselineDecoherence: attrs.BaselineDecoherence,
		ProcessingDelay:     delay,
	}
	s.nodes[id] = n
	return n, nil
}

// AddLink creates an undirected link between a and b. The link class is
// derived from the endpoint classes; a requested class that disagrees
// with the derivation fails with ErrInvalidLink rather than being
// silently rewritten.
func (s *Store) AddLink(a, b string, attrs LinkAttrs) (*Link, error) {
	if a == b {
		return nil, linkErr("AddLink", a, b, fmt.Errorf("%w: self-link", ErrInvalidLink))
	}
	na, ok := s.nodes[a]
	if !ok {
		return nil, nodeErr("AddLink", a, ErrNodeNotFound)
	}
	nb, ok := s.nodes[b]
	if !ok {
		return nil, nodeErr("AddLink", b, ErrNodeNotFound)
	}
	key := keyFor(a, b)
	if _, ok := s.links[key]; ok {
		return nil, linkErr("AddLink", a, b, ErrDuplicateLink)
	}

	derived := ClassicalLink
	if na.Class == QuantumNode && nb.Class == QuantumNode {
		derived = QuantumLink
	}
	if attrs.Class == QuantumLink && derived == ClassicalLink {
		return nil, linkErr("AddLink", a, b,
			fmt.Errorf("%w: quantum link requires two quantum endpoints", ErrInvalidLink))
	}
	if attrs.Class == ClassicalLink && derived == QuantumLink {
		return nil, linkErr("AddLink", a, b,
			fmt.Errorf("%w: both endpoints are quantum, link class must be quantum", ErrInvalidLink))
	}

	if err := validateLinkAttrs(derived, attrs); err != nil {
		return nil, linkErr("AddLink", a, b, err)
	}

	l := &Link{
		A:     key.a,
		B:     key.b,
		Class: derived,
	}
	switch derived {
	case QuantumLink:
		l.Distance = attrs.Distance
		l.DecoherenceRate = attrs.DecoherenceRate
		l.EntSwapFailProb = attrs.EntSwapFailProb
		l.EnvironmentNoise = attrs.EnvironmentNoise
		l.FiberQuality = attrs.FiberQuality
		l.TemperatureFactor = attrs.TemperatureFactor
	case ClassicalLink:
		l.Latency = attrs.Latency
		l.PacketLossProb = attrs.PacketLossProb
	}

	s.links[key] = l
	s.insertNeighbor(a, b)
	s.insertNeighbor(b, a)
	return l, nil
}

func validateLinkAttrs(class LinkClass, attrs LinkAttrs) error {
	switch class {
	case QuantumLink:
		if attrs.Distance <= 0 {
			return fmt.Errorf("%w: distance must be positive", ErrInvalidLink)
		}
		if attrs.DecoherenceRate < 0 {
			return fmt.Errorf("%w: decoherence rate must be non-negative", ErrInvalidLink)
		}
		if attrs.EntSwapFailProb < 0 || attrs.EntSwapFailProb >= 1 {
			return fmt.Errorf("%w: swap failure probability %v outside [0,1)", ErrInvalidLink, attrs.EntSwapFailProb)
		}
		if v := attrs.EnvironmentNoise; v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("%w: environment noise %v outside [0,1]", ErrInvalidLink, *v)
		}
		if v := attrs.FiberQuality; v != nil && (*v <= 0 || *v > 1) {
			return fmt.Errorf("%w: fiber quality %v outside (0,1]", ErrInvalidLink, *v)
		}
		if v := attrs.TemperatureFactor; v != nil && (*v <= 0 || *v > 2) {
			return fmt.Errorf("%w: temperature factor %v outside (0,2]", ErrInvalidLink, *v)
		}
	case ClassicalLink:
		if attrs.Latency <= 0 {
			return fmt.Errorf("%w: latency must be positive", ErrInvalidLink)
		}
		if attrs.PacketLossProb < 0 || attrs.PacketLossProb >= 1 {
			return fmt.Errorf("%w: packet loss probability %v outside [0,1)", ErrInvalidLink, attrs.PacketLossProb)
		}
	}
	return nil
}

// insertNeighbor keeps adjacency lists sorted so traversals visit
// neighbors in a stable lexicographic order.
func (s *Store) insertNeighbor(node, neighbor string) {
	list := s.adjacency[node]
	i := sort.SearchStrings(list, neighbor)
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = neighbor
	s.adjacency[node] = list
}

// Node returns the node with the given ID.
func (s *Store) Node(id string) (*Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, nodeErr("Node", id, ErrNodeNotFound)
	}
	return n, nil
}

// HasNode reports whether a node exists.
func (s *Store) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// GetLink returns the link between a and b, in either endpoint order.
func (s *Store) GetLink(a, b string) (*Link, error) {
	l, ok := s.links[keyFor(a, b)]
	if !ok {
		return nil, linkErr("GetLink", a, b, ErrLinkNotFound)
	}
	return l, nil
}

// Neighbors returns the IDs adjacent to the given node, sorted
// lexicographically. The returned slice must not be modified.
func (s *Store) Neighbors(id string) ([]string, error) {
	if _, ok := s.nodes[id]; !ok {
		return nil, nodeErr("Neighbors", id, ErrNodeNotFound)
	}
	return s.adjacency[id], nil
}

// Nodes returns all nodes sorted by ID.
func (s *Store) Nodes() []*Node {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = s.nodes[id]
	}
	return out
}

// Links returns all links sorted by normalized endpoint pair.
func (s *Store) Links() []*Link {
	keys := make([]edgeKey, 0, len(s.links))
	for k := range s.links {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})
	out := make([]*Link, len(keys))
	for i, k := range keys {
		out[i] = s.links[k]
	}
	return out
}

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// LinkCount returns the number of links.
func (s *Store) LinkCount() int { return len(s.links) }
