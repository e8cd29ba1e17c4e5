package network

import (
	"math"
	"slices"

	"github.com/sarchlab/spikenet/edgestore"
)

const (
	// minStrength is the smallest edge strength magnitude accepted.
	minStrength = 1e-6

	// inhibitoryTargetFactor scales the strength of edges ending at an
	// inhibitory neuron.
	inhibitoryTargetFactor = -2.0
)

// AddEdge connects source to target. It returns false without changing the
// network for self-loops, out-of-range indices, strengths below 1e-6 in
// magnitude and pairs that are already connected.
//
// The stored weight is strength × −2 when the target is inhibitory.
func (n *Network) AddEdge(source, target int, strength float64) bool {
	if source == target || !n.inRange(source) || !n.inRange(target) {
		return false
	}

	if math.Abs(strength) < minStrength {
		return false
	}

	if n.edges.Contains(source, target) {
		return false
	}

	if n.neurons[target].IsInhibitory() {
		strength *= inhibitoryTargetFactor
	}

	return n.edges.Insert(source, target, strength)
}

// RandomConnect discards every edge and draws a new random topology. Each
// neuron gets a Poisson(meanDegree) out-degree and connects to the first
// candidates of a fresh permutation of the ensemble that AddEdge accepts. The
// k-th accepted edge of a source takes the k-th value of a per-source batch
// of uniform strengths in (1e-6, 2×meanStrength). It returns the number of
// edges created.
func (n *Network) RandomConnect(meanDegree, meanStrength float64) int {
	n.edges.Clear()

	size := len(n.neurons)
	candidates := make([]int, size)
	for i := range candidates {
		candidates[i] = i
	}

	total := 0
	for source := 0; source < size; source++ {
		degree := n.source.Poisson(meanDegree)
		n.source.Shuffle(candidates)

		strengths := make([]float64, degree)
		n.source.UniformFill(strengths, minStrength, 2*meanStrength)

		linked := 0
		for _, target := range candidates {
			if linked >= degree {
				break
			}

			if n.AddEdge(source, target, strengths[linked]) {
				linked++
			}
		}

		total += linked
	}

	n.logger.Debug("random topology generated",
		"neurons", size, "edges", total,
		"mean_degree", meanDegree, "mean_strength", meanStrength)

	return total
}

// Degree returns the number of edges leaving neuron i and the sum of their
// weights. Indices out of range have no edges.
func (n *Network) Degree(i int) (count int, weight float64) {
	for _, e := range n.edges.Range(i) {
		count++
		weight += e.Weight
	}

	return count, weight
}

// Neighbors returns the edges leaving neuron i in target order.
func (n *Network) Neighbors(i int) []edgestore.Edge {
	return slices.Clone(n.edges.Range(i))
}

// NumEdges returns the number of edges in the network.
func (n *Network) NumEdges() int {
	return n.edges.Len()
}
