package linksim

// FailureCause identifies why a link trial failed.
type FailureCause uint8

const (
	CauseNone FailureCause = iota
	CauseDecoherence
	CauseSwapFailure
	CausePacketLoss
)

func (c FailureCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseDecoherence:
		return "decoherence"
	case CauseSwapFailure:
		return "swap_failure"
	case CausePacketLoss:
		return "packet_loss"
	default:
		return "unknown"
	}
}

// Outcome is the result of one link trial, carrying the effective
// probabilities alongside the boolean result so a reporting layer can
// show what the trial was up against.
//
// Applicable is false when the link's class did not match the requested
// simulation type; such an outcome draws no random samples and carries
// no other information.
type Outcome struct {
	Applicable bool
	Success    bool
	Cause      FailureCause

	// Quantum diagnostics.
	DecoherenceProb float64
	SwapFailProb    float64

	// Classical diagnostics. Latency never affects success.
	Latency        int
	PacketLossProb float64
}

// NotApplicable is the sentinel outcome for a class-mismatched trial.
var NotApplicable = Outcome{}

// Rand is the random source consumed by trials: one uniform sample in
// [0,1) per draw. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}
