package neuron

import (
	"fmt"
	"slices"
)

// Archetype is a category of neuron. It fixes the default parameter range and
// whether the neuron is inhibitory.
type Archetype int

// The known archetypes.
const (
	RS  Archetype = iota // regular spiking
	IB                   // intrinsically bursting
	CH                   // chattering
	FS                   // fast spiking
	LTS                  // low-threshold spiking
	TC                   // thalamo-cortical
	RZ                   // resonator
	numArchetypes
)

// Params is the parameter record of the two-variable neuron model.
type Params struct {
	A float64
	B float64
	C float64
	D float64
}

type archetypeInfo struct {
	name       string
	inhibitory bool
	base       Params

	// spread is added to base scaled by the noise (inhibitory) or by the
	// squared noise (excitatory).
	spread Params
}

var archetypes = [numArchetypes]archetypeInfo{
	RS:  {name: "RS", base: Params{0.02, 0.2, -65, 8}, spread: Params{0, 0, 15, -6}},
	IB:  {name: "IB", base: Params{0.02, 0.2, -55, 4}, spread: Params{0, 0, 5, -2}},
	CH:  {name: "CH", base: Params{0.02, 0.2, -50, 2}, spread: Params{0, 0, 5, -1}},
	FS:  {name: "FS", inhibitory: true, base: Params{0.02, 0.25, -65, 2}, spread: Params{0.08, -0.05, 0, 0}},
	LTS: {name: "LTS", inhibitory: true, base: Params{0.02, 0.25, -65, 2}, spread: Params{0.01, -0.01, 0, 0}},
	TC:  {name: "TC", base: Params{0.02, 0.25, -65, 0.05}, spread: Params{0, 0, 0, 0.05}},
	RZ:  {name: "RZ", base: Params{0.1, 0.26, -65, 2}, spread: Params{0.01, 0, 0, 0}},
}

// Archetypes returns every known archetype.
func Archetypes() []Archetype {
	all := make([]Archetype, 0, numArchetypes)
	for a := Archetype(0); a < numArchetypes; a++ {
		all = append(all, a)
	}

	return all
}

// ParseArchetype resolves an archetype from its name.
func ParseArchetype(name string) (Archetype, bool) {
	for a := Archetype(0); a < numArchetypes; a++ {
		if archetypes[a].name == name {
			return a, true
		}
	}

	return 0, false
}

// Valid reports whether a is one of the known archetypes.
func (a Archetype) Valid() bool {
	return a >= 0 && a < numArchetypes
}

func (a Archetype) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Archetype(%d)", int(a))
	}

	return archetypes[a].name
}

// Inhibitory reports whether neurons of this archetype are inhibitory.
func (a Archetype) Inhibitory() bool {
	return a.Valid() && archetypes[a].inhibitory
}

// DefaultParams returns the archetype's parameters perturbed by a noise value
// in [0, 1). Inhibitory archetypes vary linearly with the noise, excitatory
// ones with its square.
func (a Archetype) DefaultParams(noise float64) Params {
	if !a.Valid() {
		a = RS
	}

	info := archetypes[a]
	scale := noise * noise
	if info.inhibitory {
		scale = noise
	}

	return Params{
		A: info.base.A + scale*info.spread.A,
		B: info.base.B + scale*info.spread.B,
		C: info.base.C + scale*info.spread.C,
		D: info.base.D + scale*info.spread.D,
	}
}

// Counts maps archetype names to neuron counts. Names are visited in
// ascending order.
type Counts map[string]int

// Names returns the names in ascending order.
func (c Counts) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}

	return total
}
