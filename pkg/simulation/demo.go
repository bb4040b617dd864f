package simulation

import (
	"math/rand"

	"github.com/qnetlab/qnetsim/pkg/topology"
)

// demoEdge is one entry of the canonical demo edge list. The requested
// class reflects the physical intent; pairs of quantum nodes get
// quantum channels, everything else falls back to classical fiber.
type demoEdge struct {
	a, b    string
	quantum bool
}

var (
	demoClassicalNodes = []string{"A", "B", "C", "D", "E"}
	demoQuantumNodes   = []string{"F", "G", "H", "I", "J"}

	demoEdges = []demoEdge{
		{"A", "B", false},
		{"B", "C", false},
		{"C", "D", false},
		{"D", "E", false},
		{"F", "G", true},
		{"F", "H", true},
		{"G", "H", true},
		{"H", "I", true},
		{"I", "J", true},
		{"J", "D", true},
		{"B", "I", true},
		{"C", "H", true},
		{"E", "J", true},
		{"A", "F", false},
		{"E", "G", false},
	}
)

// DemoStore builds the ten-node hybrid demo network: five classical
// nodes A-E, five quantum nodes F-J, and fifteen links with randomized
// physical attributes drawn from rng. A quantum request between a
// quantum and a classical node is physically impossible and is built
// as a classical channel instead.
func DemoStore(rng *rand.Rand) (*topology.Store, error) {
	s := topology.NewStore()

	for _, id := range demoClassicalNodes {
		if _, err := s.AddNode(id, topology.ClassicalNode, topology.NodeAttrs{
			ProcessingDelay: 1 + rng.Intn(10),
		}); err != nil {
			return nil, err
		}
	}
	for _, id := range demoQuantumNodes {
		if _, err := s.AddNode(id, topology.QuantumNode, topology.NodeAttrs{
			MemoryCapacity:      4 + rng.Intn(7),
			BaselineDecoherence: topology.Float(uniform(rng, 0.01, 0.1)),
			ProcessingDelay:     1 + rng.Intn(10),
		}); err != nil {
			return nil, err
		}
	}

	for _, e := range demoEdges {
		attrs := demoLinkAttrs(s, e, rng)
		if _, err := s.AddLink(e.a, e.b, attrs); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func demoLinkAttrs(s *topology.Store, e demoEdge, rng *rand.Rand) topology.LinkAttrs {
	if e.quantum && bothQuantum(s, e.a, e.b) {
		return topology.LinkAttrs{
			Class:             topology.QuantumLink,
			Distance:          float64(10 + rng.Intn(91)), // 10-100 km
			DecoherenceRate:   0.01,
			EntSwapFailProb:   uniform(rng, 0.05, 0.2),
			EnvironmentNoise:  topology.Float(uniform(rng, 0.1, 0.4)),
			FiberQuality:      topology.Float(uniform(rng, 0.7, 1.0)),
			TemperatureFactor: topology.Float(uniform(rng, 0.5, 1.5)),
		}
	}
	return topology.LinkAttrs{
		Class:          topology.ClassicalLink,
		Latency:        10 + rng.Intn(41), // 10-50 ms
		PacketLossProb: uniform(rng, 0.01, 0.1),
	}
}

func bothQuantum(s *topology.Store, a, b string) bool {
	na, err := s.Node(a)
	if err != nil {
		return false
	}
	nb, err := s.Node(b)
	if err != nil {
		return false
	}
	return na.Class == topology.QuantumNode && nb.Class == topology.QuantumNode
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
