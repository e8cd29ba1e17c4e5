// Package report renders a network as the tab-separated text dumps of a
// simulation run: the parameter table, the sampled trajectories and the spike
// raster.
//
// Every function is a pure rendering of an Ensemble view; none of them drive
// the simulation.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/sarchlab/spikenet/neuron"
)

// Ensemble is the read-only view of a network that reports are rendered from.
type Ensemble interface {
	Size() int
	Archetype(i int) neuron.Archetype
	FormattedParams(i int) string
	FormattedValues(i int) string
	Degree(i int) (count int, weight float64)
}

// WriteParams writes one row per neuron with its parameters, out-degree and
// valence (summed outgoing weight).
func WriteParams(w io.Writer, ens Ensemble) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Type\ta\tb\tc\td\tInhibitory\tdegree\tvalence")
	for i := 0; i < ens.Size(); i++ {
		count, weight := ens.Degree(i)
		fmt.Fprintf(bw, "%s\t%d\t%g\n", ens.FormattedParams(i), count, weight)
	}

	return bw.Flush()
}

// Samples selects the neurons whose values are written in trajectory rows:
// the first neuron of each archetype named in counts, in name order, then the
// first RS neuron when counts account for fewer neurons than the ensemble
// holds. Names without a matching neuron are left out.
func Samples(ens Ensemble, counts neuron.Counts) []int {
	var samples []int

	for _, name := range counts.Names() {
		archetype, ok := neuron.ParseArchetype(name)
		if !ok {
			continue
		}

		if i, found := first(ens, archetype); found {
			samples = append(samples, i)
		}
	}

	if counts.Total() < ens.Size() {
		if i, found := first(ens, neuron.RS); found {
			samples = append(samples, i)
		}
	}

	return samples
}

func first(ens Ensemble, archetype neuron.Archetype) (int, bool) {
	for i := 0; i < ens.Size(); i++ {
		if ens.Archetype(i) == archetype {
			return i, true
		}
	}

	return 0, false
}

// WriteHeader writes the header of the trajectory table: one
// potential/recovery/current column triple per sampled neuron.
func WriteHeader(w io.Writer, ens Ensemble, counts neuron.Counts) error {
	bw := bufio.NewWriter(w)

	for _, i := range Samples(ens, counts) {
		name := ens.Archetype(i).String()
		fmt.Fprintf(bw, "\t%s.v\t%s.u\t%s.I", name, name, name)
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}

// WriteTrajectory writes one trajectory row for the given tick, with columns
// in the order of WriteHeader.
func WriteTrajectory(
	w io.Writer,
	tick uint64,
	ens Ensemble,
	counts neuron.Counts,
) error {
	return writeRow(w, tick, ens, Samples(ens, counts))
}

func writeRow(w io.Writer, tick uint64, ens Ensemble, samples []int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, tick)
	for _, i := range samples {
		fmt.Fprintf(bw, "\t%s", ens.FormattedValues(i))
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}

// WriteSpikes writes one "tick<TAB>index" row per spike, in index order.
func WriteSpikes(w io.Writer, tick uint64, spikes *roaring.Bitmap) error {
	bw := bufio.NewWriter(w)

	it := spikes.Iterator()
	for it.HasNext() {
		fmt.Fprintf(bw, "%d\t%d\n", tick, it.Next())
	}

	return bw.Flush()
}
