package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"

	"github.com/qnetlab/qnetsim/pkg/config"
	"github.com/qnetlab/qnetsim/pkg/delivery"
	"github.com/qnetlab/qnetsim/pkg/logging"
	"github.com/qnetlab/qnetsim/pkg/metrics"
	"github.com/qnetlab/qnetsim/pkg/server"
	"github.com/qnetlab/qnetsim/pkg/simulation"
	"github.com/qnetlab/qnetsim/pkg/topology"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults apply when empty)")
	seed := flag.Int64("seed", 0, "Override the random seed")
	metricsAddr := flag.String("metrics-addr", "", "Serve prometheus metrics on this address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable JSON debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logger := logging.NewNopLogger()
	if *verbose {
		jl := logging.NewDefaultLogger()
		jl.SetLevel(logging.DebugLevel)
		logger = jl
	}
	registry := metrics.NewRegistry()
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", registry.Handler())
		srv := server.NewGracefulServer(*metricsAddr, mux, logger)
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
		fmt.Printf("📈 Serving metrics on %s/metrics\n", *metricsAddr)
	}

	fmt.Println("🚀 qnetsim - Hybrid Quantum-Classical Network Simulator")

	runner := newDemoRunner(cfg, logger, registry)
	fmt.Printf("✅ Demo topology ready: %d nodes, %d links (seed %d)\n",
		runner.Store.NodeCount(), runner.Store.LinkCount(), cfg.Seed)

	fmt.Println("\n📡 Simulating all links:")
	for _, rep := range runner.SimulateAllLinks() {
		printLinkReport(rep)
	}

	fmt.Println("\n🚦 Hybrid routing A -> J:")
	routeAndPrint(runner, "A", "J")

	fmt.Println("\n🚦 Hybrid routing F -> J:")
	routeAndPrint(runner, "F", "J")

	fmt.Println("\n🔒 No-cloning guard:")
	deliverAndPrint(runner, "F", []string{"G"})
	deliverAndPrint(runner, "F", []string{"G", "H"})
	deliverAndPrint(runner, "A", []string{"F"})

	fmt.Println("\n🛠️  Structural repeater enhancement:")
	structural, err := runner.CompareStructuralEnhancement()
	if err != nil {
		log.Fatalf("Structural enhancement failed: %v", err)
	}
	fmt.Printf("  Inserted repeaters: %v\n", structural.Inserted)
	fmt.Printf("  🎯 Baseline success rate:  %.2f%%\n", structural.BaselineRate)
	fmt.Printf("  🚀 Enhanced success rate:  %.2f%%\n", structural.EnhancedRate)
	fmt.Printf("  ✅ Improvement:            %.2f%%\n", structural.Improvement())
}

func newDemoRunner(cfg config.Config, logger logging.Logger, registry *metrics.Registry) *simulation.Runner {
	store, err := simulation.DemoStore(rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		log.Fatalf("Failed to build demo topology: %v", err)
	}
	return simulation.NewRunner(cfg, store, logger, registry)
}

func printLinkReport(rep simulation.LinkReport) {
	out := rep.Outcome
	switch rep.Class {
	case topology.QuantumLink:
		fmt.Printf("  Quantum link %s-%s: decoherence_prob=%.3f, swap_fail_prob=%.2f, success=%v\n",
			rep.A, rep.B, out.DecoherenceProb, out.SwapFailProb, out.Success)
	default:
		fmt.Printf("  Classical link %s-%s: packet_loss_prob=%.2f, latency=%dms, success=%v\n",
			rep.A, rep.B, out.PacketLossProb, out.Latency, out.Success)
	}
}

func routeAndPrint(runner *simulation.Runner, source, target string) {
	res, err := runner.Route(source, target)
	if err != nil {
		log.Fatalf("Routing %s -> %s failed: %v", source, target, err)
	}
	for i, attempt := range res.Attempts {
		kind := "hybrid"
		if attempt.QuantumOnly {
			kind = "quantum-only"
		}
		fmt.Printf("  🔁 Attempt %d (%s): %s\n", i+1, kind, strings.Join(attempt.Path, " -> "))
		if attempt.Failed {
			fmt.Printf("     ❌ Failed link: %s-%s\n", attempt.FailedA, attempt.FailedB)
		}
	}
	if res.Path != nil {
		fmt.Printf("  ✅ Delivered over: %s\n", strings.Join(res.Path, " -> "))
	} else {
		fmt.Printf("  ❌ Delivery failed after %d attempts\n", res.Walks())
	}
}

func deliverAndPrint(runner *simulation.Runner, source string, destinations []string) {
	ok, err := runner.Deliver(source, destinations)
	switch {
	case errors.Is(err, delivery.ErrCloningViolation):
		fmt.Printf("  ❌ %s -> %v: rejected, no-cloning violation\n", source, destinations)
	case errors.Is(err, delivery.ErrInvalidChannel):
		fmt.Printf("  ⚠️  %s -> %v: rejected, no quantum channel\n", source, destinations)
	case err != nil:
		fmt.Printf("  ⚠️  %s -> %v: %v\n", source, destinations, err)
	case ok:
		fmt.Printf("  ✅ %s -> %v: quantum state delivered\n", source, destinations)
	default:
		fmt.Printf("  ❌ %s -> %v: delivery failed\n", source, destinations)
	}
}
