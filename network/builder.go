package network

import (
	"log/slog"

	"github.com/sarchlab/spikenet/edgestore"
	"github.com/sarchlab/spikenet/logging"
	"github.com/sarchlab/spikenet/neuron"
	"github.com/sarchlab/spikenet/rng"
)

// Builder can be used to build a Network.
type Builder struct {
	source    *rng.Source
	newNeuron func() neuron.Neuron
	workers   int
	logger    *slog.Logger
}

// MakeBuilder creates a new builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		newNeuron: neuron.New,
		workers:   1,
	}
}

// WithSource sets the sampling source that drives every stochastic choice of
// the network. It is required.
func (b Builder) WithSource(source *rng.Source) Builder {
	b.source = source
	return b
}

// WithNeuronFactory sets the function used to create the neurons appended by
// Resize.
func (b Builder) WithNeuronFactory(f func() neuron.Neuron) Builder {
	b.newNeuron = f
	return b
}

// WithWorkers sets the number of goroutines that compute currents and advance
// neurons in Step. One means fully sequential.
func (b Builder) WithWorkers(workers int) Builder {
	b.workers = workers
	return b
}

// WithLogger sets the logger.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.source == nil {
		panic("network: a sampling source is required")
	}

	if b.newNeuron == nil {
		panic("network: a neuron factory is required")
	}

	if b.workers < 1 {
		panic("network: workers must be at least 1")
	}
}

// Build creates an empty network.
func (b Builder) Build() *Network {
	b.parametersMustBeValid()

	return &Network{
		edges:     edgestore.New(),
		source:    b.source,
		newNeuron: b.newNeuron,
		workers:   b.workers,
		logger:    logging.OrDiscard(b.logger),
	}
}
