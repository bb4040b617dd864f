package routing

import (
	"github.com/qnetlab/qnetsim/pkg/linksim"
)

// State is the routing state machine position a request ended in, or
// passed through for intermediate reports.
type State uint8

const (
	StateSelectQuantumOnly State = iota
	StateSelectHybrid
	StateEvaluate
	StateSuccess
	StateRetryExcludeEdge
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateSelectQuantumOnly:
		return "select_quantum_only"
	case StateSelectHybrid:
		return "select_hybrid"
	case StateEvaluate:
		return "evaluate"
	case StateSuccess:
		return "success"
	case StateRetryExcludeEdge:
		return "retry_exclude_edge"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// EdgeOutcome pairs one walked edge with its trial outcome.
type EdgeOutcome struct {
	A, B    string
	Outcome linksim.Outcome
}

// AttemptReport describes one evaluated walk: the path that was tried,
// the per-edge outcomes in walk order, and the edge that broke the walk
// (nil on success). QuantumOnly marks the initial all-quantum attempt.
type AttemptReport struct {
	Path        []string
	Outcomes    []EdgeOutcome
	FailedA     string
	FailedB     string
	Failed      bool
	QuantumOnly bool
}

// Result is the terminal outcome of a routing request. Path is nil
// when the request exhausted its attempts or the graph; Attempts
// carries every evaluated walk, winning and failed, for reporting.
type Result struct {
	Path     []string
	State    State
	Attempts []AttemptReport
}

// Walks returns how many evaluated walks the request consumed.
func (r *Result) Walks() int { return len(r.Attempts) }
