package linksim

import (
	"testing"

	"github.com/qnetlab/qnetsim/pkg/topology"
)

func enhancedQuantumLink(t *testing.T, distance, rate, swap float64) *topology.Link {
	t.Helper()
	q, _ := testLinks(t, topology.LinkAttrs{
		Class:           topology.QuantumLink,
		Distance:        distance,
		DecoherenceRate: rate,
		EntSwapFailProb: swap,
	})
	return q
}

func TestEffectiveRates_NoRuleBelowThresholds(t *testing.T) {
	e := NewEnhancer()
	q := enhancedQuantumLink(t, 50, 0.01, 0.1)

	rate, swap, repeater, qec := e.EffectiveRates(q)
	if repeater || qec {
		t.Errorf("Expected no rule to fire, got repeater=%v qec=%v", repeater, qec)
	}
	if rate != 0.01 || swap != 0.1 {
		t.Errorf("Expected unchanged rates, got %v / %v", rate, swap)
	}
}

func TestEffectiveRates_ExactThresholdBoundaries(t *testing.T) {
	e := NewEnhancer()

	// Distance exactly at the repeater threshold: rule must not fire.
	q := enhancedQuantumLink(t, DefaultRepeaterThreshold, 0.01, 0.1)
	if _, _, repeater, _ := e.EffectiveRates(q); repeater {
		t.Error("Repeater rule fired at exactly the threshold distance")
	}

	// Rates exactly at the QEC threshold: rule must not fire.
	q = enhancedQuantumLink(t, 50, DefaultQECThreshold, DefaultQECThreshold)
	if _, _, _, qec := e.EffectiveRates(q); qec {
		t.Error("QEC rule fired at exactly the threshold rate")
	}
}

func TestEffectiveRates_RepeaterScalesLongLinks(t *testing.T) {
	e := NewEnhancer()
	q := enhancedQuantumLink(t, 80, 0.01, 0.1)

	rate, swap, repeater, qec := e.EffectiveRates(q)
	if !repeater {
		t.Fatal("Expected repeater rule to fire above the threshold distance")
	}
	if qec {
		t.Error("QEC rule fired on already-low rates")
	}
	if rate != 0.005 || swap != 0.05 {
		t.Errorf("Expected halved rates 0.005/0.05, got %v / %v", rate, swap)
	}
}

func TestEffectiveRates_QECComposesWithRepeater(t *testing.T) {
	e := NewEnhancer()
	// After the repeater halves 0.9 to 0.45, the swap rate still
	// exceeds the QEC threshold, so both scalings apply.
	q := enhancedQuantumLink(t, 80, 0.01, 0.9)

	rate, swap, repeater, qec := e.EffectiveRates(q)
	if !repeater || !qec {
		t.Fatalf("Expected both rules to fire, got repeater=%v qec=%v", repeater, qec)
	}
	wantRate := 0.01 * 0.5 * 0.3
	wantSwap := 0.9 * 0.5 * 0.3
	if !almost(rate, wantRate) || !almost(swap, wantSwap) {
		t.Errorf("Expected composed rates %v / %v, got %v / %v", wantRate, wantSwap, rate, swap)
	}
}

func TestEffectiveRates_QECWithoutRepeater(t *testing.T) {
	e := NewEnhancer()
	q := enhancedQuantumLink(t, 50, 0.25, 0.1)

	rate, swap, repeater, qec := e.EffectiveRates(q)
	if repeater {
		t.Error("Repeater rule fired below the threshold distance")
	}
	if !qec {
		t.Fatal("Expected QEC rule to fire on a high decoherence rate")
	}
	// QEC scales both rates even when only one exceeded the threshold.
	if !almost(rate, 0.25*0.3) || !almost(swap, 0.1*0.3) {
		t.Errorf("Expected 0.075 / 0.03, got %v / %v", rate, swap)
	}
}

func TestEnhancerEvaluate_LeavesLinkBitIdentical(t *testing.T) {
	e := NewEnhancer()
	q, _ := testLinks(t, topology.LinkAttrs{
		Class:             topology.QuantumLink,
		Distance:          120,
		DecoherenceRate:   0.3,
		EntSwapFailProb:   0.4,
		EnvironmentNoise:  topology.Float(0.3),
		FiberQuality:      topology.Float(0.75),
		TemperatureFactor: topology.Float(1.2),
	})
	before := *q
	beforeNoise, beforeFiber, beforeTemp := *q.EnvironmentNoise, *q.FiberQuality, *q.TemperatureFactor

	for _, draws := range [][]float64{{0, 0}, {0.999, 0.999}} { // failing and succeeding trials
		e.Evaluate(q, &seqRand{vals: draws})

		if q.Distance != before.Distance ||
			q.DecoherenceRate != before.DecoherenceRate ||
			q.EntSwapFailProb != before.EntSwapFailProb {
			t.Fatal("Enhanced trial mutated link rates")
		}
		if *q.EnvironmentNoise != beforeNoise || *q.FiberQuality != beforeFiber || *q.TemperatureFactor != beforeTemp {
			t.Fatal("Enhanced trial mutated link modifiers")
		}
	}
}

func TestEnhancerEvaluate_ClassicalPassesThrough(t *testing.T) {
	e := NewEnhancer()
	_, c := testLinks(t, perfectQuantumAttrs())

	out := e.Evaluate(c, &seqRand{vals: []float64{0.9}})
	if !out.Applicable || out.Latency != 25 {
		t.Error("Expected the classical trial to pass through unenhanced")
	}
}

func TestEnhancerEvaluateQuantum_NotApplicableOnClassical(t *testing.T) {
	e := NewEnhancer()
	_, c := testLinks(t, perfectQuantumAttrs())
	rng := &seqRand{}
	if out := e.EvaluateQuantum(c, rng); out.Applicable || rng.draws != 0 {
		t.Error("Expected not-applicable without draws")
	}
}

func almost(got, want float64) bool {
	diff := got - want
	return diff < 1e-12 && diff > -1e-12
}
