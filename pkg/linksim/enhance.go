package linksim

import (
	"github.com/qnetlab/qnetsim/pkg/topology"
)

// Default enhancement parameters.
const (
	DefaultRepeaterThreshold = 70.0 // km
	DefaultRepeaterFactor    = 0.5
	DefaultQECThreshold      = 0.2
	DefaultQECFactor         = 0.3
)

// Enhancer applies transient reliability mitigations to quantum trials:
// a repeater correction for long links and error-correction suppression
// for links whose failure rates are still too high afterwards. The
// scaled rates exist only as locals inside a single trial; the Link
// record is never written, so attribute restoration is structural
// rather than something that can be forgotten on an early return.
type Enhancer struct {
	RepeaterThreshold float64
	RepeaterFactor    float64
	QECThreshold      float64
	QECFactor         float64
}

// NewEnhancer returns an Enhancer with the default parameters.
func NewEnhancer() *Enhancer {
	return &Enhancer{
		RepeaterThreshold: DefaultRepeaterThreshold,
		RepeaterFactor:    DefaultRepeaterFactor,
		QECThreshold:      DefaultQECThreshold,
		QECFactor:         DefaultQECFactor,
	}
}

// EffectiveRates returns the decoherence and swap-failure rates after
// applying the repeater and error-correction rules, plus which rules
// fired. The repeater rule fires strictly above the distance threshold;
// the error-correction rule fires when either already-scaled rate is
// strictly above the QEC threshold. Both scalings compose
// multiplicatively.
func (e *Enhancer) EffectiveRates(link *topology.Link) (rate, swap float64, repeater, qec bool) {
	rate = link.DecoherenceRate
	swap = link.EntSwapFailProb

	if link.Distance > e.RepeaterThreshold {
		rate *= e.RepeaterFactor
		swap *= e.RepeaterFactor
		repeater = true
	}
	if rate > e.QECThreshold || swap > e.QECThreshold {
		rate *= e.QECFactor
		swap *= e.QECFactor
		qec = true
	}
	return rate, swap, repeater, qec
}

// Evaluate runs one enhanced trial. Quantum links are evaluated against
// the effective rates from EffectiveRates; classical links pass through
// to the plain classical trial, which has no mitigations.
func (e *Enhancer) Evaluate(link *topology.Link, rng Rand) Outcome {
	if link.Class != topology.QuantumLink {
		return EvaluateClassical(link, rng)
	}
	rate, swap, _, _ := e.EffectiveRates(link)
	return evaluateQuantumRates(link, rate, swap, rng)
}

// EvaluateQuantum runs one enhanced quantum trial, returning
// NotApplicable for classical links.
func (e *Enhancer) EvaluateQuantum(link *topology.Link, rng Rand) Outcome {
	if link.Class != topology.QuantumLink {
		return NotApplicable
	}
	rate, swap, _, _ := e.EffectiveRates(link)
	return evaluateQuantumRates(link, rate, swap, rng)
}
