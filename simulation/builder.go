package simulation

import (
	"log/slog"

	"github.com/rs/xid"

	"github.com/sarchlab/spikenet/datarecording"
	"github.com/sarchlab/spikenet/logging"
	"github.com/sarchlab/spikenet/network"
	"github.com/sarchlab/spikenet/rng"
)

// Builder can be used to build a simulation.
type Builder struct {
	net       *network.Network
	source    *rng.Source
	inputMean float64
	inputSD   float64
	logger    *slog.Logger

	recorder datarecording.DataRecorder
	samples  []int
}

// MakeBuilder creates a new builder. The default thalamic input is drawn from
// a normal distribution with mean 0 and standard deviation 5.
func MakeBuilder() Builder {
	return Builder{
		inputMean: 0,
		inputSD:   5,
	}
}

// WithNetwork sets the network to simulate.
func (b Builder) WithNetwork(net *network.Network) Builder {
	b.net = net
	return b
}

// WithSource sets the sampling source of the thalamic input. It should be
// the source the network was built with, so one seed reproduces the whole
// run.
func (b Builder) WithSource(source *rng.Source) Builder {
	b.source = source
	return b
}

// WithInputMean sets the mean of the thalamic input.
func (b Builder) WithInputMean(mean float64) Builder {
	b.inputMean = mean
	return b
}

// WithInputSD sets the standard deviation of the thalamic input.
func (b Builder) WithInputSD(sd float64) Builder {
	b.inputSD = sd
	return b
}

// WithLogger sets the logger.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithDataRecorder records the spikes of every tick and the state of the
// sampled neurons into recorder.
func (b Builder) WithDataRecorder(
	recorder datarecording.DataRecorder,
	samples ...int,
) Builder {
	b.recorder = recorder
	b.samples = samples

	return b
}

func (b Builder) parametersMustBeValid() {
	if b.net == nil {
		panic("simulation: a network is required")
	}

	if b.source == nil {
		panic("simulation: a sampling source is required")
	}

	if b.inputSD < 0 {
		panic("simulation: input standard deviation cannot be negative")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:        xid.New().String(),
		net:       b.net,
		source:    b.source,
		inputMean: b.inputMean,
		inputSD:   b.inputSD,
		logger:    logging.OrDiscard(b.logger),
	}

	if b.recorder != nil {
		dbRecorder, err := NewDBRecorder(b.recorder, b.samples, s.logger)
		if err != nil {
			panic(err)
		}

		s.dbRecorder = dbRecorder
		s.AcceptHook(dbRecorder)
	}

	return s
}
