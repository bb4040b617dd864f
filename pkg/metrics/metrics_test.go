package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/qnetlab/qnetsim/pkg/linksim"
)

func TestRecordTrial_Success(t *testing.T) {
	r := NewRegistry()

	r.RecordTrial("quantum", linksim.Outcome{Applicable: true, Success: true})

	got := testutil.ToFloat64(r.LinkTrialsTotal.WithLabelValues("quantum", "success"))
	if got != 1 {
		t.Errorf("Expected 1 successful trial, got %v", got)
	}
	failures := testutil.ToFloat64(r.LinkFailuresTotal.WithLabelValues(linksim.CauseDecoherence.String()))
	if failures != 0 {
		t.Errorf("Expected no failures recorded, got %v", failures)
	}
}

func TestRecordTrial_FailureRecordsCause(t *testing.T) {
	r := NewRegistry()

	r.RecordTrial("quantum", linksim.Outcome{
		Applicable: true,
		Success:    false,
		Cause:      linksim.CauseSwapFailure,
	})

	trials := testutil.ToFloat64(r.LinkTrialsTotal.WithLabelValues("quantum", "failure"))
	if trials != 1 {
		t.Errorf("Expected 1 failed trial, got %v", trials)
	}
	failures := testutil.ToFloat64(r.LinkFailuresTotal.WithLabelValues(linksim.CauseSwapFailure.String()))
	if failures != 1 {
		t.Errorf("Expected 1 swap failure, got %v", failures)
	}
}

func TestRecordTrial_SkipsNotApplicable(t *testing.T) {
	r := NewRegistry()

	r.RecordTrial("quantum", linksim.NotApplicable)

	if n := testutil.CollectAndCount(r.LinkTrialsTotal); n != 0 {
		t.Errorf("Expected no trial series, got %d", n)
	}
}

func TestTraversalAndBottleneckMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordTraversal("classical")
	r.RecordTraversal("classical")
	r.SetActiveBottlenecks(3)

	if got := testutil.ToFloat64(r.TraversalsTotal.WithLabelValues("classical")); got != 2 {
		t.Errorf("Expected 2 traversals, got %v", got)
	}
	if got := testutil.ToFloat64(r.BottlenecksActive); got != 3 {
		t.Errorf("Expected 3 active bottlenecks, got %v", got)
	}
}

func TestRouteAndDeliveryMetrics(t *testing.T) {
	r := NewRegistry()

	r.RecordWalk()
	r.RecordWalk()
	r.RecordRoute("success", 2)
	r.RecordDelivery("delivered")
	r.RecordDelivery("rejected_cloning")
	r.SetStructuralRepeaters(4)

	if got := testutil.ToFloat64(r.RouteWalksTotal); got != 2 {
		t.Errorf("Expected 2 walks, got %v", got)
	}
	if got := testutil.ToFloat64(r.RoutesTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("Expected 1 successful route, got %v", got)
	}
	if got := testutil.ToFloat64(r.DeliveriesTotal.WithLabelValues("rejected_cloning")); got != 1 {
		t.Errorf("Expected 1 rejected delivery, got %v", got)
	}
	if got := testutil.ToFloat64(r.RepeatersStructural); got != 4 {
		t.Errorf("Expected 4 structural repeaters, got %v", got)
	}
}

func TestNewRegistry_IsolatedRegistries(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.RecordWalk()

	if got := testutil.ToFloat64(b.RouteWalksTotal); got != 0 {
		t.Errorf("Expected registries to be independent, got %v walks on b", got)
	}
}
