package simulation

import (
	"github.com/qnetlab/qnetsim/pkg/linksim"
	"github.com/qnetlab/qnetsim/pkg/topology"
)

// LinkReport pairs one link with the outcome and diagnostics of a
// single transmission trial, for the reporting layer.
type LinkReport struct {
	A, B    string
	Class   topology.LinkClass
	Outcome linksim.Outcome
}

// StructuralReport compares a topology before and after structural
// repeater insertion. Rates are analytic success percentages averaged
// over quantum links.
type StructuralReport struct {
	BaselineRate float64
	EnhancedRate float64
	Inserted     []string
	Enhanced     *topology.Store
}

// Improvement returns the percentage-point gain of the enhancement.
func (r StructuralReport) Improvement() float64 {
	return r.EnhancedRate - r.BaselineRate
}
