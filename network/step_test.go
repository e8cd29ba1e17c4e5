package network

import (
	"fmt"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/spikenet/neuron"
	"github.com/sarchlab/spikenet/rng"
)

type approxMatcher struct {
	want float64
}

func approx(want float64) gomock.Matcher {
	return approxMatcher{want: want}
}

func (m approxMatcher) Matches(x any) bool {
	v, ok := x.(float64)
	return ok && math.Abs(v-m.want) < 1e-9
}

func (m approxMatcher) String() string {
	return fmt.Sprintf("is approximately %g", m.want)
}

type callLog struct {
	sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.Lock()
	defer l.Unlock()

	l.calls = append(l.calls, call)
}

var _ = Describe("Step", func() {
	var (
		mockCtrl *gomock.Controller
		neurons  []*MockNeuron
		net      *Network
	)

	// inhibitory[i] decides the nature of mock neuron i.
	buildWithMocks := func(inhibitory []bool, workers int) {
		neurons = nil
		for _, inhib := range inhibitory {
			n := NewMockNeuron(mockCtrl)
			n.EXPECT().SetDefaultParams(gomock.Any(), gomock.Any()).AnyTimes()
			n.EXPECT().IsInhibitory().Return(inhib).AnyTimes()
			neurons = append(neurons, n)
		}

		next := 0
		net = MakeBuilder().
			WithSource(rng.New(7)).
			WithWorkers(workers).
			WithNeuronFactory(func() neuron.Neuron {
				n := neurons[next]
				next++
				return n
			}).
			Build()
		net.Resize(len(inhibitory), 0)
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should only reset firing neurons when the input length mismatches", func() {
		buildWithMocks([]bool{false, true, false}, 1)

		neurons[0].EXPECT().Firing().Return(true)
		neurons[0].EXPECT().Reset()
		neurons[1].EXPECT().Firing().Return(false)
		neurons[2].EXPECT().Firing().Return(true)
		neurons[2].EXPECT().Reset()

		spikes := net.Step([]float64{1, 2})

		Expect(spikes.ToArray()).To(Equal([]uint32{0, 2}))
	})

	It("should not advance any neuron without inputs", func() {
		buildWithMocks([]bool{false, false}, 1)

		neurons[0].EXPECT().Firing().Return(false)
		neurons[1].EXPECT().Firing().Return(false)

		spikes := net.Step(nil)

		Expect(spikes.IsEmpty()).To(BeTrue())
	})

	for _, workers := range []int{1, 3} {
		It(fmt.Sprintf("should aggregate currents from neurons that fired (%d workers)", workers), func() {
			buildWithMocks([]bool{false, false, true}, workers)

			Expect(net.AddEdge(0, 1, 0.5)).To(BeTrue())
			Expect(net.AddEdge(0, 2, 1.0)).To(BeTrue())
			Expect(net.AddEdge(2, 1, 0.3)).To(BeTrue())
			Expect(net.AddEdge(1, 0, 0.9)).To(BeTrue())

			log := &callLog{}
			fired := []bool{false, true, true}
			for i, n := range neurons {
				name := fmt.Sprintf("%d", i)
				n.EXPECT().Firing().DoAndReturn(func() bool {
					log.add("firing" + name)
					return fired[i]
				})
				if fired[i] {
					n.EXPECT().Reset().Do(func() { log.add("reset" + name) })
				}
			}

			// Neuron 0: 1 + 0.5×0.5 − (−2.0). Neuron 1: only its input, its
			// sole neighbor (0) did not fire. Neuron 2: 3×0.4 + 0.5×0.3.
			want := []float64{3.25, 2, 1.35}
			for i, n := range neurons {
				name := fmt.Sprintf("%d", i)
				gomock.InOrder(
					n.EXPECT().Input(approx(want[i])),
					n.EXPECT().Step().Do(func() { log.add("step" + name) }),
				)
			}

			spikes := net.Step([]float64{1, 2, 3})

			Expect(spikes.ToArray()).To(Equal([]uint32{1, 2}))

			firstStep := len(log.calls)
			for i, call := range log.calls {
				if call[:4] == "step" {
					firstStep = i
					break
				}
			}
			for _, call := range log.calls[firstStep:] {
				Expect(call).To(HavePrefix("step"))
			}
			Expect(log.calls[firstStep:]).To(HaveLen(3))
		})
	}
})
