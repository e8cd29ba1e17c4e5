package neuron_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/spikenet/neuron"
)

var _ = Describe("Archetype", func() {
	It("should resolve every archetype by name", func() {
		for _, a := range neuron.Archetypes() {
			parsed, ok := neuron.ParseArchetype(a.String())
			Expect(ok).To(BeTrue())
			Expect(parsed).To(Equal(a))
		}
	})

	It("should reject unknown names", func() {
		_, ok := neuron.ParseArchetype("XX")
		Expect(ok).To(BeFalse())

		_, ok = neuron.ParseArchetype("fs")
		Expect(ok).To(BeFalse())
	})

	It("should mark only FS and LTS as inhibitory", func() {
		for _, a := range neuron.Archetypes() {
			want := a == neuron.FS || a == neuron.LTS
			Expect(a.Inhibitory()).To(Equal(want), a.String())
		}
	})

	It("should perturb excitatory parameters with the squared noise", func() {
		p := neuron.RS.DefaultParams(0.5)

		Expect(p.A).To(BeNumerically("~", 0.02, 1e-12))
		Expect(p.B).To(BeNumerically("~", 0.2, 1e-12))
		Expect(p.C).To(BeNumerically("~", -65+15*0.25, 1e-12))
		Expect(p.D).To(BeNumerically("~", 8-6*0.25, 1e-12))
	})

	It("should perturb inhibitory parameters linearly", func() {
		p := neuron.FS.DefaultParams(0.5)

		Expect(p.A).To(BeNumerically("~", 0.02+0.08*0.5, 1e-12))
		Expect(p.B).To(BeNumerically("~", 0.25-0.05*0.5, 1e-12))
		Expect(p.C).To(BeNumerically("~", -65, 1e-12))
		Expect(p.D).To(BeNumerically("~", 2, 1e-12))
	})

	It("should name invalid archetypes", func() {
		Expect(neuron.Archetype(42).String()).To(Equal("Archetype(42)"))
		Expect(neuron.Archetype(42).Inhibitory()).To(BeFalse())
	})
})

var _ = Describe("Counts", func() {
	It("should list names in ascending order", func() {
		c := neuron.Counts{"RS": 1, "FS": 3, "IB": 2}

		Expect(c.Names()).To(Equal([]string{"FS", "IB", "RS"}))
		Expect(c.Total()).To(Equal(6))
	})
})
