package linksim

import (
	"github.com/qnetlab/qnetsim/pkg/topology"
)

// EvaluateQuantum runs one transmission trial over a quantum link. Two
// independent samples are drawn: the first against the effective
// decoherence probability, the second against the entanglement-swap
// failure probability. Either sample landing below its probability
// fails the trial.
//
// Called on a classical link it returns NotApplicable without drawing.
func EvaluateQuantum(link *topology.Link, rng Rand) Outcome {
	if link.Class != topology.QuantumLink {
		return NotApplicable
	}
	return evaluateQuantumRates(link, link.DecoherenceRate, link.EntSwapFailProb, rng)
}

// evaluateQuantumRates evaluates a quantum trial with explicit
// decoherence and swap-failure rates. The enhancement overlay computes
// scaled rates as locals and passes them here, so the shared Link is
// never touched and there is nothing to restore afterwards.
func evaluateQuantumRates(link *topology.Link, decoherenceRate, swapFailProb float64, rng Rand) Outcome {
	decoherenceProb := clampProb(link.Distance * decoherenceRate * modifier(link))

	failedDecoherence := rng.Float64() < decoherenceProb
	failedSwap := rng.Float64() < swapFailProb

	out := Outcome{
		Applicable:      true,
		Success:         !(failedDecoherence || failedSwap),
		DecoherenceProb: decoherenceProb,
		SwapFailProb:    swapFailProb,
	}
	switch {
	case failedDecoherence:
		out.Cause = CauseDecoherence
	case failedSwap:
		out.Cause = CauseSwapFailure
	}
	return out
}

// EvaluateClassical runs one transmission trial over a classical link:
// a single sample against the packet loss probability. Latency is
// reported but never decides success.
//
// Called on a quantum link it returns NotApplicable without drawing.
func EvaluateClassical(link *topology.Link, rng Rand) Outcome {
	if link.Class != topology.ClassicalLink {
		return NotApplicable
	}
	lost := rng.Float64() < link.PacketLossProb
	out := Outcome{
		Applicable:     true,
		Success:        !lost,
		Latency:        link.Latency,
		PacketLossProb: link.PacketLossProb,
	}
	if lost {
		out.Cause = CausePacketLoss
	}
	return out
}

// Evaluate dispatches on the link's class.
func Evaluate(link *topology.Link, rng Rand) Outcome {
	if link.Class == topology.QuantumLink {
		return EvaluateQuantum(link, rng)
	}
	return EvaluateClassical(link, rng)
}

// modifier combines the optional environment modifiers into a single
// factor scaling the raw distance*rate decoherence probability. Each
// absent modifier contributes a neutral 1, so an unmodified link
// reduces to the plain distance*rate form. The combination is monotone:
// more noise or temperature raises the probability, better fiber
// lowers it.
func modifier(link *topology.Link) float64 {
	f := 1.0
	if v := link.EnvironmentNoise; v != nil {
		f *= *v
	}
	if v := link.FiberQuality; v != nil {
		f *= 1 - *v
	}
	if v := link.TemperatureFactor; v != nil {
		f *= *v
	}
	return f
}

func clampProb(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
