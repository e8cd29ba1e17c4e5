package neuron

import "fmt"

const (
	// FiringThreshold is the potential (mV) at which a neuron spikes.
	FiringThreshold = 30.0

	// RestingPotential is the potential (mV) a new neuron starts at.
	RestingPotential = -65.0
)

// Izhikevich is the two-variable phenomenological neuron model
//
//	v' = 0.04v² + 5v + 140 − u + I
//	u' = a(bv − u)
//
// integrated with two half steps for v per tick. When v reaches
// FiringThreshold the neuron fires; Reset sets v to c and adds d to u.
type Izhikevich struct {
	archetype Archetype
	params    Params
	potential float64
	recovery  float64
	current   float64
}

var _ Neuron = (*Izhikevich)(nil)

// NewIzhikevich creates a regular-spiking neuron at rest.
func NewIzhikevich() *Izhikevich {
	n := &Izhikevich{
		archetype: RS,
		params:    RS.DefaultParams(0),
		potential: RestingPotential,
	}
	n.recovery = n.params.B * n.potential

	return n
}

// New creates a neuron of the default model.
func New() Neuron {
	return NewIzhikevich()
}

func (n *Izhikevich) Archetype() Archetype {
	return n.archetype
}

func (n *Izhikevich) Is(a Archetype) bool {
	return n.archetype == a
}

func (n *Izhikevich) SetArchetype(a Archetype) {
	n.archetype = a
}

func (n *Izhikevich) Params() Params {
	return n.params
}

func (n *Izhikevich) SetParams(p Params) {
	n.params = p
}

// SetDefaultParams assigns the archetype defaults and puts the recovery
// variable back on the u = bv nullcline of the new parameters.
func (n *Izhikevich) SetDefaultParams(a Archetype, noise float64) {
	n.archetype = a
	n.params = a.DefaultParams(noise)
	n.recovery = n.params.B * n.potential
}

func (n *Izhikevich) Potential() float64 {
	return n.potential
}

func (n *Izhikevich) SetPotential(v float64) {
	n.potential = v
}

func (n *Izhikevich) Recovery() float64 {
	return n.recovery
}

func (n *Izhikevich) Current() float64 {
	return n.current
}

func (n *Izhikevich) IsInhibitory() bool {
	return n.archetype.Inhibitory()
}

func (n *Izhikevich) Firing() bool {
	return n.potential >= FiringThreshold
}

func (n *Izhikevich) Reset() {
	n.potential = n.params.C
	n.recovery += n.params.D
}

func (n *Izhikevich) Input(current float64) {
	n.current = current
}

func (n *Izhikevich) Step() {
	for half := 0; half < 2; half++ {
		n.potential += 0.5 * (0.04*n.potential*n.potential +
			5*n.potential + 140 - n.recovery + n.current)

		// Cap at the peak so the second half step cannot diverge.
		if n.potential >= FiringThreshold {
			n.potential = FiringThreshold
			break
		}
	}

	n.recovery += n.params.A * (n.params.B*n.potential - n.recovery)
}

func (n *Izhikevich) FormattedParams() string {
	inhibitory := 0
	if n.IsInhibitory() {
		inhibitory = 1
	}

	return fmt.Sprintf("%s\t%.3f\t%.3f\t%.3f\t%.3f\t%d",
		n.archetype, n.params.A, n.params.B, n.params.C, n.params.D,
		inhibitory)
}

func (n *Izhikevich) FormattedValues() string {
	return fmt.Sprintf("%.3f\t%.3f\t%.3f",
		n.potential, n.recovery, n.current)
}
