package routing

import (
	"github.com/qnetlab/qnetsim/pkg/topology"
)

// shortestPath finds a minimum-hop path between start and end over the
// view using breadth-first search. Neighbors are visited in
// lexicographic order, so ties break deterministically. With
// quantumOnly set, only quantum links are traversed. Returns nil when
// no path exists.
func shortestPath(v *topology.View, start, end string, quantumOnly bool) []string {
	if start == end {
		return []string{start}
	}

	parent := map[string]string{start: start}
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		neighbors, err := v.Neighbors(current)
		if err != nil {
			continue
		}
		for _, n := range neighbors {
			if _, seen := parent[n]; seen {
				continue
			}
			if quantumOnly {
				link, err := v.GetLink(current, n)
				if err != nil || link.Class != topology.QuantumLink {
					continue
				}
			}
			parent[n] = current
			if n == end {
				return reconstructPath(end, parent)
			}
			queue = append(queue, n)
		}
	}

	return nil
}

// reconstructPath walks the parent map back from end to the root.
func reconstructPath(end string, parent map[string]string) []string {
	path := []string{end}
	node := end
	for parent[node] != node {
		node = parent[node]
		path = append(path, node)
	}
	// Reverse into start -> end order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// minWeightPath finds the path minimizing the sum of the given weight
// function over its links, using Dijkstra with a simple slice priority
// queue. Returns nil when no path exists.
func minWeightPath(v *topology.View, start, end string, weight func(*topology.Link) float64) []string {
	type pqItem struct {
		nodeID   string
		distance float64
	}

	distances := map[string]float64{start: 0}
	parent := map[string]string{start: start}
	pq := []pqItem{{start, 0}}

	for len(pq) > 0 {
		// Extract min (linear scan is fine at simulation scale)
		minIdx := 0
		for i := 1; i < len(pq); i++ {
			if pq[i].distance < pq[minIdx].distance {
				minIdx = i
			}
		}
		current := pq[minIdx]
		pq = append(pq[:minIdx], pq[minIdx+1:]...)

		if current.nodeID == end {
			return reconstructPath(end, parent)
		}
		if current.distance > distances[current.nodeID] {
			continue // stale entry
		}

		neighbors, err := v.Neighbors(current.nodeID)
		if err != nil {
			continue
		}
		for _, n := range neighbors {
			link, err := v.GetLink(current.nodeID, n)
			if err != nil {
				continue
			}
			newDist := current.distance + weight(link)
			if oldDist, visited := distances[n]; !visited || newDist < oldDist {
				distances[n] = newDist
				parent[n] = current.nodeID
				pq = append(pq, pqItem{n, newDist})
			}
		}
	}

	return nil
}
