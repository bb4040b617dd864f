package simulation

import (
	"math/rand"
	"testing"

	"github.com/qnetlab/qnetsim/pkg/topology"
)

func TestDemoStore_Shape(t *testing.T) {
	s, err := DemoStore(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Failed to build demo store: %v", err)
	}

	if s.NodeCount() != 10 {
		t.Errorf("Expected 10 nodes, got %d", s.NodeCount())
	}
	if s.LinkCount() != 15 {
		t.Errorf("Expected 15 links, got %d", s.LinkCount())
	}

	for _, id := range demoClassicalNodes {
		n, err := s.Node(id)
		if err != nil {
			t.Fatalf("Missing node %s: %v", id, err)
		}
		if n.Class != topology.ClassicalNode {
			t.Errorf("Expected %s to be classical, got %v", id, n.Class)
		}
	}
	for _, id := range demoQuantumNodes {
		n, err := s.Node(id)
		if err != nil {
			t.Fatalf("Missing node %s: %v", id, err)
		}
		if n.Class != topology.QuantumNode {
			t.Errorf("Expected %s to be quantum, got %v", id, n.Class)
		}
		if n.MemoryCapacity < 4 || n.MemoryCapacity > 10 {
			t.Errorf("Memory capacity of %s out of range: %d", id, n.MemoryCapacity)
		}
	}
}

func TestDemoStore_QuantumRequestsNeedQuantumEndpoints(t *testing.T) {
	s, err := DemoStore(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Failed to build demo store: %v", err)
	}

	// F-G joins two quantum nodes and stays quantum.
	l, err := s.GetLink("F", "G")
	if err != nil {
		t.Fatalf("Missing link F-G: %v", err)
	}
	if l.Class != topology.QuantumLink {
		t.Errorf("Expected F-G to be quantum, got %v", l.Class)
	}

	// B-I asks for a quantum channel but B is classical, so the
	// builder falls back to classical fiber.
	l, err = s.GetLink("B", "I")
	if err != nil {
		t.Fatalf("Missing link B-I: %v", err)
	}
	if l.Class != topology.ClassicalLink {
		t.Errorf("Expected B-I to fall back to classical, got %v", l.Class)
	}
	if l.Latency < 10 || l.Latency > 50 {
		t.Errorf("Latency of B-I out of range: %d", l.Latency)
	}
}

func TestDemoStore_AttributeRanges(t *testing.T) {
	s, err := DemoStore(rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Failed to build demo store: %v", err)
	}

	for _, l := range s.Links() {
		switch l.Class {
		case topology.QuantumLink:
			if l.Distance < 10 || l.Distance > 100 {
				t.Errorf("Distance of %s-%s out of range: %v", l.A, l.B, l.Distance)
			}
			if l.DecoherenceRate != 0.01 {
				t.Errorf("Expected decoherence rate 0.01 on %s-%s, got %v", l.A, l.B, l.DecoherenceRate)
			}
			if l.EntSwapFailProb < 0.05 || l.EntSwapFailProb > 0.2 {
				t.Errorf("Swap failure probability of %s-%s out of range: %v", l.A, l.B, l.EntSwapFailProb)
			}
			if l.FiberQuality == nil || *l.FiberQuality < 0.7 || *l.FiberQuality > 1.0 {
				t.Errorf("Fiber quality of %s-%s out of range: %v", l.A, l.B, l.FiberQuality)
			}
		case topology.ClassicalLink:
			if l.PacketLossProb < 0.01 || l.PacketLossProb > 0.1 {
				t.Errorf("Packet loss of %s-%s out of range: %v", l.A, l.B, l.PacketLossProb)
			}
		}
	}
}

func TestDemoStore_Deterministic(t *testing.T) {
	a, err := DemoStore(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Failed to build first store: %v", err)
	}
	b, err := DemoStore(rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Failed to build second store: %v", err)
	}

	la, lb := a.Links(), b.Links()
	if len(la) != len(lb) {
		t.Fatalf("Link counts differ: %d vs %d", len(la), len(lb))
	}
	for i := range la {
		if !sameLink(la[i], lb[i]) {
			t.Errorf("Link %s-%s differs between identically seeded builds", la[i].A, la[i].B)
		}
	}
}

func sameLink(a, b *topology.Link) bool {
	if a.A != b.A || a.B != b.B || a.Class != b.Class {
		return false
	}
	if a.Distance != b.Distance || a.DecoherenceRate != b.DecoherenceRate ||
		a.EntSwapFailProb != b.EntSwapFailProb ||
		a.Latency != b.Latency || a.PacketLossProb != b.PacketLossProb {
		return false
	}
	return sameFloat(a.EnvironmentNoise, b.EnvironmentNoise) &&
		sameFloat(a.FiberQuality, b.FiberQuality) &&
		sameFloat(a.TemperatureFactor, b.TemperatureFactor)
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
