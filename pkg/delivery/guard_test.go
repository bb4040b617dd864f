package delivery

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/qnetlab/qnetsim/pkg/congestion"
	"github.com/qnetlab/qnetsim/pkg/linksim"
	"github.com/qnetlab/qnetsim/pkg/routing"
	"github.com/qnetlab/qnetsim/pkg/topology"
)

func guardStore(t *testing.T) *topology.Store {
	t.Helper()
	s := topology.NewStore()
	for _, id := range []string{"F", "G", "H"} {
		if _, err := s.AddNode(id, topology.QuantumNode, topology.NodeAttrs{MemoryCapacity: 4}); err != nil {
			t.Fatalf("AddNode %s failed: %v", id, err)
		}
	}
	if _, err := s.AddNode("A", topology.ClassicalNode, topology.NodeAttrs{}); err != nil {
		t.Fatalf("AddNode A failed: %v", err)
	}
	if _, err := s.AddLink("F", "G", topology.LinkAttrs{
		Class:           topology.QuantumLink,
		Distance:        10,
		DecoherenceRate: 0,
		EntSwapFailProb: 0,
	}); err != nil {
		t.Fatalf("AddLink F-G failed: %v", err)
	}
	if _, err := s.AddLink("A", "F", topology.LinkAttrs{
		Class:          topology.ClassicalLink,
		Latency:        10,
		PacketLossProb: 0,
	}); err != nil {
		t.Fatalf("AddLink A-F failed: %v", err)
	}
	return s
}

func newTestGuard(s *topology.Store) *Guard {
	selector := routing.NewSelector(s, congestion.NewTracker(), linksim.NewEnhancer())
	return NewGuard(s, selector)
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestRequestDelivery_MultiDestinationRejectedBeforeAnyEvaluation(t *testing.T) {
	s := guardStore(t)
	g := newTestGuard(s)
	// A nil selector proves the request never reaches routing.
	g.Selector = nil

	ok, err := g.RequestDelivery("F", []string{"G", "H"}, testRand())
	if ok {
		t.Error("Expected a rejected multi-destination request")
	}
	if !errors.Is(err, ErrCloningViolation) {
		t.Errorf("Expected ErrCloningViolation, got %v", err)
	}
	for _, l := range s.Links() {
		if l.TrafficCount != 0 {
			t.Errorf("Expected zero link evaluations, %s-%s has traffic %d", l.A, l.B, l.TrafficCount)
		}
	}
}

func TestRequestDelivery_NoDestination(t *testing.T) {
	g := newTestGuard(guardStore(t))
	ok, err := g.RequestDelivery("F", nil, testRand())
	if ok || !errors.Is(err, ErrNoDestination) {
		t.Errorf("Expected ErrNoDestination, got ok=%v err=%v", ok, err)
	}
}

func TestRequestDelivery_ClassicalChannelRejected(t *testing.T) {
	g := newTestGuard(guardStore(t))
	// A-F exists but is classical; quantum state must not be
	// downgraded onto it.
	ok, err := g.RequestDelivery("A", []string{"F"}, testRand())
	if ok {
		t.Error("Expected rejection over a classical channel")
	}
	if !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("Expected ErrInvalidChannel, got %v", err)
	}
}

func TestRequestDelivery_MissingLinkRejected(t *testing.T) {
	g := newTestGuard(guardStore(t))
	ok, err := g.RequestDelivery("F", []string{"H"}, testRand())
	if ok || !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("Expected ErrInvalidChannel for unlinked nodes, got ok=%v err=%v", ok, err)
	}
}

func TestRequestDelivery_UnknownNode(t *testing.T) {
	g := newTestGuard(guardStore(t))
	ok, err := g.RequestDelivery("F", []string{"nope"}, testRand())
	if ok || !errors.Is(err, topology.ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got ok=%v err=%v", ok, err)
	}
}

func TestRequestDelivery_SingleQuantumDestinationDelivered(t *testing.T) {
	g := newTestGuard(guardStore(t))
	ok, err := g.RequestDelivery("F", []string{"G"}, testRand())
	if err != nil {
		t.Fatalf("RequestDelivery failed: %v", err)
	}
	if !ok {
		t.Error("Expected delivery over the perfect quantum link")
	}
}
