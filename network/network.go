// Package network composes an ensemble of spiking neurons, the sparse edge
// store connecting them and the sampling source driving their stochastic
// initialization into one simulated network.
//
// The network is not safe for concurrent use. Step may fan work out to
// several goroutines (see Builder.WithWorkers) but returns only after all of
// them finish.
package network

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/sarchlab/spikenet/edgestore"
	"github.com/sarchlab/spikenet/neuron"
	"github.com/sarchlab/spikenet/rng"
)

// ErrOutOfRange is returned when a positional write does not fit in the
// ensemble.
var ErrOutOfRange = errors.New("network: index out of range")

// Network is an ordered ensemble of neurons connected by directed, weighted
// edges.
type Network struct {
	neurons   []neuron.Neuron
	edges     *edgestore.Store
	source    *rng.Source
	newNeuron func() neuron.Neuron
	workers   int
	logger    *slog.Logger
}

// Size returns the number of neurons.
func (n *Network) Size() int {
	return len(n.neurons)
}

func (n *Network) inRange(i int) bool {
	return i >= 0 && i < len(n.neurons)
}

func (n *Network) spanMustFit(start, length int) error {
	if start < 0 || length < 0 || start+length > len(n.neurons) {
		return fmt.Errorf("%w: start %d, length %d, size %d",
			ErrOutOfRange, start, length, len(n.neurons))
	}

	return nil
}

// Resize grows the ensemble to size neurons. Shrinking requests are ignored.
// A round(inhibFraction × added) share of the new neurons become FS, the
// rest RS, each with its own noise draw.
func (n *Network) Resize(size int, inhibFraction float64) {
	old := len(n.neurons)
	if size <= old {
		return
	}

	for i := old; i < size; i++ {
		n.neurons = append(n.neurons, n.newNeuron())
	}

	added := size - old
	numFS := int(math.Round(inhibFraction * float64(added)))
	numFS = min(max(numFS, 0), added)

	_ = n.AssignArchetypeCounts(neuron.Counts{neuron.FS.String(): numFS}, old)

	n.logger.Debug("ensemble resized",
		"neurons", size, "added", added, "fs", numFS)
}

// AssignArchetypeCounts assigns archetypes and default parameters to the
// neurons from start to the end of the ensemble. One uniform noise value per
// neuron is drawn first, in index order. Counts are then consumed in name
// order, each recognized name claiming that many consecutive neurons;
// unrecognized names are skipped. Neurons left over become RS.
func (n *Network) AssignArchetypeCounts(counts neuron.Counts, start int) error {
	if start < 0 || start > len(n.neurons) {
		return fmt.Errorf("%w: start %d, size %d",
			ErrOutOfRange, start, len(n.neurons))
	}

	span := len(n.neurons) - start
	noise := make([]float64, span)
	n.source.UniformFill(noise, 0, 1)

	k, limit := 0, 0
	for _, name := range counts.Names() {
		archetype, ok := neuron.ParseArchetype(name)
		if !ok {
			continue
		}

		limit += max(counts[name], 0)
		for ; k < limit && k < span; k++ {
			n.neurons[start+k].SetDefaultParams(archetype, noise[k])
		}
	}

	for ; k < span; k++ {
		n.neurons[start+k].SetDefaultParams(neuron.RS, noise[k])
	}

	return nil
}

// AssignExplicit overwrites archetype and parameters of consecutive neurons
// starting at start. Nothing is written when the slices differ in length or
// do not fit in the ensemble.
func (n *Network) AssignExplicit(
	archetypes []neuron.Archetype,
	params []neuron.Params,
	start int,
) error {
	if len(archetypes) != len(params) {
		return fmt.Errorf("%w: %d archetypes for %d parameter records",
			ErrOutOfRange, len(archetypes), len(params))
	}

	if err := n.spanMustFit(start, len(params)); err != nil {
		return err
	}

	for k := range params {
		n.neurons[start+k].SetArchetype(archetypes[k])
		n.neurons[start+k].SetParams(params[k])
	}

	return nil
}

// SetPotentials overwrites the membrane potential of consecutive neurons
// starting at start.
func (n *Network) SetPotentials(values []float64, start int) error {
	if err := n.spanMustFit(start, len(values)); err != nil {
		return err
	}

	for k, v := range values {
		n.neurons[start+k].SetPotential(v)
	}

	return nil
}

// Potentials returns the membrane potential of every neuron in ensemble
// order.
func (n *Network) Potentials() []float64 {
	values := make([]float64, len(n.neurons))
	for i, nr := range n.neurons {
		values[i] = nr.Potential()
	}

	return values
}

// Recoveries returns the recovery variable of every neuron in ensemble order.
func (n *Network) Recoveries() []float64 {
	values := make([]float64, len(n.neurons))
	for i, nr := range n.neurons {
		values[i] = nr.Recovery()
	}

	return values
}

// Archetype returns the archetype of neuron i. Like the other per-neuron
// accessors below, it panics if i is out of range.
func (n *Network) Archetype(i int) neuron.Archetype {
	return n.neurons[i].Archetype()
}

// State returns a snapshot of neuron i. It panics if i is out of range.
func (n *Network) State(i int) neuron.State {
	return neuron.Snapshot(n.neurons[i])
}

// FormattedParams renders the parameters of neuron i. It panics if i is out
// of range.
func (n *Network) FormattedParams(i int) string {
	return n.neurons[i].FormattedParams()
}

// FormattedValues renders the state variables of neuron i. It panics if i
// is out of range.
func (n *Network) FormattedValues(i int) string {
	return n.neurons[i].FormattedValues()
}
