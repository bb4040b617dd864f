// Package delivery enforces quantum delivery policy in front of the
// path selector: no cloning, and no silent downgrade of quantum state
// onto a classical channel.
package delivery

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/qnetlab/qnetsim/pkg/linksim"
	"github.com/qnetlab/qnetsim/pkg/logging"
	"github.com/qnetlab/qnetsim/pkg/metrics"
	"github.com/qnetlab/qnetsim/pkg/routing"
	"github.com/qnetlab/qnetsim/pkg/topology"
)

// Policy rejection errors. These are refusals, not failures: the caller
// may correct the request and retry.
var (
	// ErrCloningViolation rejects a request to deliver one quantum
	// state to more than one destination.
	ErrCloningViolation = errors.New("no-cloning violation")

	// ErrInvalidChannel rejects a quantum delivery whose only direct
	// link is classical.
	ErrInvalidChannel = errors.New("no quantum channel to destination")

	// ErrNoDestination rejects a request with no destination at all.
	ErrNoDestination = errors.New("no destination")
)

// Guard screens quantum-state delivery requests before they reach the
// path selector.
type Guard struct {
	Store    *topology.Store
	Selector *routing.Selector
	Logger   logging.Logger
	Metrics  *metrics.Registry
}

// NewGuard wires a guard with a no-op logger.
func NewGuard(store *topology.Store, selector *routing.Selector) *Guard {
	return &Guard{
		Store:    store,
		Selector: selector,
		Logger:   logging.NewNopLogger(),
	}
}

// RequestDelivery attempts to deliver one quantum state from source to
// the given destinations. More than one destination is rejected with
// ErrCloningViolation before any link is evaluated; the request is
// never partially honored. A single destination requires a direct
// quantum link from the source: if the only link is classical, the
// request is rejected with ErrInvalidChannel rather than downgraded.
// Otherwise the request is handed to the path selector and the result
// reports whether the walk succeeded.
func (g *Guard) RequestDelivery(source string, destinations []string, rng linksim.Rand) (bool, error) {
	requestID := uuid.NewString()
	log := g.Logger.With(logging.RequestID(requestID), logging.Source(source))

	if len(destinations) == 0 {
		g.reject("no_destination")
		return false, fmt.Errorf("deliver from %s: %w", source, ErrNoDestination)
	}
	if len(destinations) > 1 {
		log.Warn("rejected multi-destination quantum delivery",
			logging.Int("destinations", len(destinations)))
		g.reject("cloning_violation")
		return false, fmt.Errorf("deliver from %s to %d destinations: %w",
			source, len(destinations), ErrCloningViolation)
	}

	dest := destinations[0]
	if _, err := g.Store.Node(source); err != nil {
		g.reject("unknown_node")
		return false, err
	}
	if _, err := g.Store.Node(dest); err != nil {
		g.reject("unknown_node")
		return false, err
	}

	link, err := g.Store.GetLink(source, dest)
	if err != nil || link.Class != topology.QuantumLink {
		log.Warn("rejected quantum delivery without quantum channel",
			logging.Target(dest))
		g.reject("invalid_channel")
		return false, fmt.Errorf("deliver %s -> %s: %w", source, dest, ErrInvalidChannel)
	}

	res, err := g.Selector.Route(source, dest, rng)
	if err != nil {
		g.reject("routing_error")
		return false, err
	}
	delivered := res.State == routing.StateSuccess
	if g.Metrics != nil {
		outcome := "delivered"
		if !delivered {
			outcome = "exhausted"
		}
		g.Metrics.RecordDelivery(outcome)
	}
	log.Info("quantum delivery finished",
		logging.Target(dest),
		logging.Bool("delivered", delivered),
		logging.Attempt(res.Walks()))
	return delivered, nil
}

func (g *Guard) reject(reason string) {
	if g.Metrics != nil {
		g.Metrics.RecordDelivery("rejected_" + reason)
	}
}
