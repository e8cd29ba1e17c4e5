// Package neuron models the spiking point-neurons a network is made of.
//
// The network only talks to neurons through the Neuron interface, so the
// dynamics can be swapped without touching the topology or step code. The
// package ships the Izhikevich two-variable model together with the closed set
// of archetypes (RS, IB, CH, FS, LTS, TC, RZ) it is usually parameterized
// with.
package neuron

// Neuron is the capability a network needs from each member of its ensemble.
type Neuron interface {
	// Archetype returns the neuron's archetype.
	Archetype() Archetype

	// Is reports whether the neuron has the given archetype.
	Is(a Archetype) bool

	// SetArchetype changes the archetype without touching the parameters.
	SetArchetype(a Archetype)

	// Params returns the parameter record.
	Params() Params

	// SetParams overwrites the parameter record.
	SetParams(p Params)

	// SetDefaultParams assigns the archetype and its default parameters
	// perturbed by the noise value, and sets the recovery variable to b times
	// the current potential.
	SetDefaultParams(a Archetype, noise float64)

	Potential() float64
	SetPotential(v float64)
	Recovery() float64
	Current() float64

	// IsInhibitory reports whether the neuron's archetype is inhibitory.
	IsInhibitory() bool

	// Firing reports whether the neuron crossed its threshold.
	Firing() bool

	// Reset moves a firing neuron to its post-spike baseline.
	Reset()

	// Input sets the current applied on the next Step.
	Input(current float64)

	// Step advances the internal dynamics by one tick.
	Step()

	// FormattedParams renders the archetype and parameters as one
	// tab-separated line fragment.
	FormattedParams() string

	// FormattedValues renders potential, recovery and current as one
	// tab-separated line fragment.
	FormattedValues() string
}

// State is a value snapshot of a neuron.
type State struct {
	Archetype Archetype `json:"archetype"`
	Params    Params    `json:"params"`
	Potential float64   `json:"potential"`
	Recovery  float64   `json:"recovery"`
	Current   float64   `json:"current"`
	Firing    bool      `json:"firing"`
}

// Snapshot captures the state of n.
func Snapshot(n Neuron) State {
	return State{
		Archetype: n.Archetype(),
		Params:    n.Params(),
		Potential: n.Potential(),
		Recovery:  n.Recovery(),
		Current:   n.Current(),
		Firing:    n.Firing(),
	}
}
