package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/spikenet/network"
	"github.com/sarchlab/spikenet/neuron"
	"github.com/sarchlab/spikenet/rng"
	"github.com/sarchlab/spikenet/simulation"
)

func get(handler http.Handler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

var _ = Describe("Monitor", func() {
	var (
		mockCtrl *gomock.Controller
		sim      *MockSimulation
		m        *Monitor
		router   http.Handler
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sim = NewMockSimulation(mockCtrl)

		m = NewMonitor()
		m.RegisterSimulation(sim)
		router = m.Router()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should refuse privileged ports", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should pause and continue the simulation", func() {
		sim.EXPECT().Pause()
		sim.EXPECT().Continue()

		Expect(get(router, "/api/pause").Code).To(Equal(http.StatusOK))
		Expect(get(router, "/api/continue").Code).To(Equal(http.StatusOK))
	})

	It("should report the current tick", func() {
		sim.EXPECT().CurrentTick().Return(uint64(42))
		sim.EXPECT().Paused().Return(true)

		rec := get(router, "/api/now")

		Expect(rec.Body.String()).To(MatchJSON(`{"now":42,"paused":true}`))
	})

	It("should serve snapshots", func() {
		sim.EXPECT().Snapshot().Return(simulation.Snapshot{
			ID:         "abc",
			Tick:       3,
			Neurons:    2,
			Edges:      1,
			Potentials: []float64{-65, 30},
			Recoveries: []float64{-13, -6.5},
		})

		rec := get(router, "/api/snapshot")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		var snapshot simulation.Snapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &snapshot)).To(Succeed())
		Expect(snapshot.Tick).To(Equal(uint64(3)))
		Expect(snapshot.Potentials).To(Equal([]float64{-65, 30}))
	})

	It("should serve a field of the snapshot", func() {
		sim.EXPECT().Snapshot().Return(simulation.Snapshot{
			Potentials: []float64{-65, 12.5},
		}).Times(2)

		rec := get(router, "/api/field/Potentials.1")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("12.5"))

		rec = get(router, "/api/field/Potentials.7")
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should serialize neurons", func() {
		sim.EXPECT().NeuronState(1).Return(neuron.State{
			Archetype: neuron.FS,
			Potential: -60,
		}, nil)

		rec := get(router, "/api/neuron/1")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("Potential"))
	})

	It("should answer 404 for unknown neurons", func() {
		sim.EXPECT().NeuronState(9).
			Return(neuron.State{}, simulation.ErrNoNeuron)
		sim.EXPECT().Degree(9).Return(0, 0.0, simulation.ErrNoNeuron)

		Expect(get(router, "/api/neuron/9").Code).To(Equal(http.StatusNotFound))
		Expect(get(router, "/api/degree/9").Code).To(Equal(http.StatusNotFound))
	})

	It("should answer 400 for malformed indices", func() {
		Expect(get(router, "/api/neuron/x").Code).To(Equal(http.StatusBadRequest))
		Expect(get(router, "/api/degree/-x").Code).To(Equal(http.StatusBadRequest))
	})

	It("should report degree and valence", func() {
		sim.EXPECT().Degree(2).Return(3, -1.5, nil)

		rec := get(router, "/api/degree/2")

		Expect(rec.Body.String()).To(
			MatchJSON(`{"index":2,"degree":3,"valence":-1.5}`))
	})

	It("should report resources", func() {
		rec := get(router, "/api/resource")

		Expect(rec.Code).To(Equal(http.StatusOK))

		var rsp resourceRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should collect a CPU profile", func() {
		m.WithProfileDuration(10 * time.Millisecond)

		rec := get(router, "/api/profile")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("SampleType"))
	})

	It("should serve the web page", func() {
		rec := get(router, "/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
	})

	It("should list and complete progress bars", func() {
		bar := m.CreateProgressBar("run", 10)
		bar.IncrementFinished(4)

		rec := get(router, "/api/progress")
		var bars []ProgressBarStatus
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("run"))
		Expect(bars[0].Finished).To(Equal(uint64(4)))

		m.CompleteProgressBar(bar)

		rec = get(router, "/api/progress")
		Expect(rec.Body.String()).To(MatchJSON(`[]`))
	})

	It("should start and stop the server", func() {
		sim.EXPECT().ID().Return("abc").AnyTimes()
		sim.EXPECT().CurrentTick().Return(uint64(5))
		sim.EXPECT().Paused().Return(false)

		url, err := m.StartServer()
		Expect(err).NotTo(HaveOccurred())

		rsp, err := http.Get(url + "/api/now")
		Expect(err).NotTo(HaveOccurred())
		body, err := io.ReadAll(rsp.Body)
		rsp.Body.Close()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(MatchJSON(`{"now":5,"paused":false}`))

		Expect(m.StopServer(context.Background())).To(Succeed())
	})

	It("should not start without a simulation", func() {
		_, err := NewMonitor().StartServer()

		Expect(err).To(HaveOccurred())
	})
})

type sampleStruct struct {
	Field1 int
	Field2 string
	Field3 *sampleStruct
	Field4 []sampleStruct
	hidden int
}

var _ = Describe("Field walking", func() {
	var m *Monitor

	BeforeEach(func() {
		m = NewMonitor()
	})

	It("should walk int fields", func() {
		s := &sampleStruct{Field1: 1}

		elem, err := m.walkFields(s, "Field1")

		Expect(err).To(BeNil())
		Expect(elem.Kind()).To(Equal(reflect.Int))
		Expect(elem.Int()).To(Equal(int64(1)))
	})

	It("should walk string fields", func() {
		s := &sampleStruct{Field2: "abc"}

		elem, err := m.walkFields(s, "Field2")

		Expect(err).To(BeNil())
		Expect(elem.String()).To(Equal("abc"))
	})

	It("should walk pointers and slices", func() {
		s := &sampleStruct{
			Field3: &sampleStruct{
				Field4: []sampleStruct{{Field1: 7}, {Field1: 8}},
			},
		}

		elem, err := m.walkFields(s, "Field3.Field4.1.Field1")

		Expect(err).To(BeNil())
		Expect(elem.Int()).To(Equal(int64(8)))
	})

	It("should reject unknown and unexported fields", func() {
		s := &sampleStruct{}

		_, err := m.walkFields(s, "Missing")
		Expect(err).To(HaveOccurred())

		_, err = m.walkFields(s, "hidden")
		Expect(err).To(HaveOccurred())

		_, err = m.walkFields(s, "Field1.x")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ProgressHook", func() {
	It("should follow a running simulation", func() {
		source := rng.New(9)
		net := network.MakeBuilder().WithSource(source).Build()
		net.Resize(5, 0.2)

		sim := simulation.MakeBuilder().
			WithNetwork(net).
			WithSource(source).
			Build()

		m := NewMonitor()
		var statuses []ProgressBarStatus

		hook := NewProgressHook(m, fmt.Sprintf("sim %s", sim.ID()), 4)
		sim.AcceptHook(hook)
		sim.AcceptHook(simulation.HookFunc(func(ctx simulation.HookCtx) {
			if ctx.Pos == simulation.HookPosAfterStep {
				statuses = append(statuses, hook.Bar().Status())
			}
		}))

		Expect(m.progressBars).To(HaveLen(1))
		Expect(sim.Run(context.Background(), 4)).To(Succeed())

		Expect(statuses).To(HaveLen(4))
		Expect(statuses[3].Finished).To(Equal(uint64(4)))
		Expect(statuses[3].InProgress).To(BeZero())
		Expect(m.progressBars).To(BeEmpty())
	})
})
