package topology

import "fmt"

// NodeClass identifies what kind of hardware a node runs.
type NodeClass uint8

const (
	ClassicalNode NodeClass = iota
	QuantumNode
)

func (c NodeClass) String() string {
	switch c {
	case ClassicalNode:
		return "classical"
	case QuantumNode:
		return "quantum"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// LinkClass identifies the physical channel type of a link.
// A link is quantum if and only if both of its endpoints are quantum;
// the store derives the class and never trusts a caller-supplied one
// that disagrees.
type LinkClass uint8

const (
	ClassicalLink LinkClass = iota
	QuantumLink
)

func (c LinkClass) String() string {
	switch c {
	case ClassicalLink:
		return "classical"
	case QuantumLink:
		return "quantum"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Node is a network endpoint. Nodes are created once at topology
// construction and are immutable afterwards.
type Node struct {
	ID    string
	Class NodeClass

	// MemoryCapacity is the qubit buffer size. Nonzero only for
	// quantum nodes.
	MemoryCapacity int

	// BaselineDecoherence is an optional per-node decoherence figure
	// in (0,1). Present only for quantum nodes.
	BaselineDecoherence *float64

	// ProcessingDelay is a simulation-only cost. It never influences
	// routing decisions.
	ProcessingDelay int
}

// NodeAttrs carries the optional attributes supplied at AddNode time.
type NodeAttrs struct {
	MemoryCapacity      int
	BaselineDecoherence *float64
	ProcessingDelay     int
}

// Link is an undirected channel between two nodes. Endpoints are stored
// normalized (A < B lexicographically). Which attribute set is
// meaningful depends on Class; reading the wrong set is a programming
// error.
type Link struct {
	A, B  string
	Class LinkClass

	// Quantum attributes.
	Distance        float64 // km
	DecoherenceRate float64 // failure probability per km
	EntSwapFailProb float64

	// Optional quantum modifiers scaling the effective decoherence
	// probability. Nil means "not modeled", treated as neutral.
	EnvironmentNoise  *float64
	FiberQuality      *float64
	TemperatureFactor *float64

	// Classical attributes.
	Latency        int // ms
	PacketLossProb float64

	// TrafficCount is incremented on every evaluated traversal. It is
	// the only link field that mutates after construction.
	TrafficCount int
}

// LinkAttrs is the caller-supplied attribute record for AddLink. Class
// is the requested link class; the store rejects it when it contradicts
// the class derived from the endpoints.
type LinkAttrs struct {
	Class LinkClass

	Distance        float64
	DecoherenceRate float64
	EntSwapFailProb float64

	EnvironmentNoise  *float64
	FiberQuality      *float64
	TemperatureFactor *float64

	Latency        int
	PacketLossProb float64
}

// Endpoints returns the link's endpoint IDs in normalized order.
func (l *Link) Endpoints() (string, string) {
	return l.A, l.B
}

// Other returns the endpoint opposite to id, or "" if id is not an
// endpoint of this link.
func (l *Link) Other(id string) string {
	switch id {
	case l.A:
		return l.B
	case l.B:
		return l.A
	default:
		return ""
	}
}

// Float returns a pointer to a float64 literal, for the optional
// modifier fields.
func Float(v float64) *float64 {
	return &v
}

// edgeKey is a normalized (A < B) undirected edge identifier.
type edgeKey struct {
	a, b string
}

func keyFor(a, b string) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}
