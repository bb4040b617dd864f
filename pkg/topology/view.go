package topology

// View is a speculative read-only projection of a Store with a set of
// excluded edges. Routing retries exclude the failed edge on their view
// instead of deep-copying the graph; the underlying store is never
// modified. A view belongs to exactly one in-progress routing request
// and is discarded when the request completes.
type View struct {
	store    *Store
	excluded map[edgeKey]struct{}
}

// Snapshot returns a fresh view with no exclusions.
func (s *Store) Snapshot() *View {
	return &View{
		store:    s,
		excluded: make(map[edgeKey]struct{}),
	}
}

// ExcludeLink removes the edge between a and b from this view only.
// Excluding an absent edge is a no-op.
func (v *View) ExcludeLink(a, b string) {
	v.excluded[keyFor(a, b)] = struct{}{}
}

// Excluded reports whether the edge between a and b has been excluded.
func (v *View) Excluded(a, b string) bool {
	_, ok := v.excluded[keyFor(a, b)]
	return ok
}

// ExcludedCount returns the number of excluded edges.
func (v *View) ExcludedCount() int { return len(v.excluded) }

// Node returns the node with the given ID.
func (v *View) Node(id string) (*Node, error) {
	return v.store.Node(id)
}

// GetLink returns the link between a and b unless it is excluded on
// this view.
func (v *View) GetLink(a, b string) (*Link, error) {
	if v.Excluded(a, b) {
		return nil, linkErr("GetLink", a, b, ErrLinkNotFound)
	}
	return v.store.GetLink(a, b)
}

// Neighbors returns the IDs adjacent to the given node over
// non-excluded edges, sorted lexicographically.
func (v *View) Neighbors(id string) ([]string, error) {
	all, err := v.store.Neighbors(id)
	if err != nil {
		return nil, err
	}
	if len(v.excluded) == 0 {
		return all, nil
	}
	out := make([]string, 0, len(all))
	for _, n := range all {
		if !v.Excluded(id, n) {
			out = append(out, n)
		}
	}
	return out, nil
}
