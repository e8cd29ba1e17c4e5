package cmd

import (
	"log/slog"
	"math"

	"github.com/sarchlab/spikenet/config"
	"github.com/sarchlab/spikenet/network"
	"github.com/sarchlab/spikenet/neuron"
	"github.com/sarchlab/spikenet/rng"
)

// buildNetwork grows and wires the configured network. The returned counts
// select the sampled neurons of the reports.
func buildNetwork(
	cfg *config.Config,
	source *rng.Source,
	logger *slog.Logger,
) (*network.Network, neuron.Counts, error) {
	n := cfg.Network

	net := network.MakeBuilder().
		WithSource(source).
		WithWorkers(n.Workers).
		WithLogger(logger).
		Build()

	var counts neuron.Counts
	if len(n.Types) == 0 {
		net.Resize(n.Size, n.InhibitoryFraction)
		counts = neuron.Counts{
			neuron.FS.String(): int(math.Round(n.InhibitoryFraction * float64(n.Size))),
		}
	} else {
		net.Resize(n.Size, 0)
		counts = cfg.Counts(n.Size)
		if err := net.AssignArchetypeCounts(counts, 0); err != nil {
			return nil, nil, err
		}
	}

	edges := net.RandomConnect(n.MeanDegree, n.MeanStrength)

	logger.Info("network built",
		"neurons", net.Size(), "edges", edges, "seed", source.Seed())

	return net, counts, nil
}
