package network

import (
	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
)

const (
	// inhibitoryInputScale scales the external input of inhibitory neurons.
	inhibitoryInputScale = 0.4

	// excitatoryCurrentScale scales the summed weights of firing excitatory
	// neighbors.
	excitatoryCurrentScale = 0.5
)

// Step advances the network by one tick and returns the neurons that were
// firing when the tick started.
//
// Firing neurons are recorded and reset first. Then, only if inputs has one
// value per neuron, each neuron n receives
//
//	input'[n] + 0.5 × Σ excitatory − Σ inhibitory
//
// where input' is the input scaled by 0.4 for inhibitory neurons and the sums
// run over the edges stored under n whose other end fired this tick, split by
// that neuron's nature. All currents are computed before any neuron advances.
// With any other input length no neuron advances.
func (n *Network) Step(inputs []float64) *roaring.Bitmap {
	size := len(n.neurons)

	spikes := roaring.New()
	fired := make([]bool, size)
	for i, nr := range n.neurons {
		if nr.Firing() {
			fired[i] = true
			spikes.Add(uint32(i))
			nr.Reset()
		}
	}

	if len(inputs) != size {
		return spikes
	}

	inhibitory := make([]bool, size)
	for i, nr := range n.neurons {
		inhibitory[i] = nr.IsInhibitory()
	}

	currents := make([]float64, size)
	n.forEachChunk(func(lo, hi int) {
		for i := lo; i < hi; i++ {
			currents[i] = n.current(i, inputs[i], fired, inhibitory)
		}
	})

	n.forEachChunk(func(lo, hi int) {
		for i := lo; i < hi; i++ {
			n.neurons[i].Input(currents[i])
			n.neurons[i].Step()
		}
	})

	return spikes
}

func (n *Network) current(
	i int,
	input float64,
	fired, inhibitory []bool,
) float64 {
	if inhibitory[i] {
		input *= inhibitoryInputScale
	}

	excitatory, inhibition := 0.0, 0.0
	for _, e := range n.edges.Range(i) {
		if !fired[e.Target] {
			continue
		}

		if inhibitory[e.Target] {
			inhibition += e.Weight
		} else {
			excitatory += e.Weight
		}
	}

	return input + excitatoryCurrentScale*excitatory - inhibition
}

// forEachChunk splits the ensemble into one contiguous chunk per worker and
// waits until fn has returned for every chunk.
func (n *Network) forEachChunk(fn func(lo, hi int)) {
	size := len(n.neurons)
	if n.workers <= 1 || size < 2 {
		fn(0, size)
		return
	}

	chunk := (size + n.workers - 1) / n.workers

	var g errgroup.Group
	for lo := 0; lo < size; lo += chunk {
		hi := min(lo+chunk, size)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}

	_ = g.Wait()
}
