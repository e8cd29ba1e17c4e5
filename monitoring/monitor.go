// Package monitoring serves a running simulation over HTTP so it can be
// watched, paused and profiled from a browser.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"reflect"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/spikenet/logging"
	"github.com/sarchlab/spikenet/monitoring/web"
	"github.com/sarchlab/spikenet/neuron"
	"github.com/sarchlab/spikenet/simulation"
)

// Simulation is what the monitor needs from a running simulation.
type Simulation interface {
	ID() string
	Pause()
	Continue()
	Paused() bool
	CurrentTick() uint64
	Snapshot() simulation.Snapshot
	NeuronState(i int) (neuron.State, error)
	Degree(i int) (count int, weight float64, err error)
}

// Monitor can turn a simulation into a server and allows external monitoring
// controlling of the simulation.
type Monitor struct {
	sim             Simulation
	portNumber      int
	openBrowser     bool
	profileDuration time.Duration
	logger          *slog.Logger

	server *http.Server

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: time.Second,
		logger:          logging.Discard(),
	}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// refused and replaced by a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("monitor port not allowed, using a random port",
			"port", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the monitor page in a browser.
func (m *Monitor) WithBrowser(open bool) *Monitor {
	m.openBrowser = open
	return m
}

// WithProfileDuration sets how long /api/profile samples the CPU.
func (m *Monitor) WithProfileDuration(d time.Duration) *Monitor {
	m.profileDuration = d
	return m
}

// WithLogger sets the logger.
func (m *Monitor) WithLogger(logger *slog.Logger) *Monitor {
	m.logger = logging.OrDiscard(logger)
	return m
}

// RegisterSimulation registers the simulation to monitor.
func (m *Monitor) RegisterSimulation(s Simulation) {
	m.sim = s
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the handler serving the monitor API and pages.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseSimulation)
	r.HandleFunc("/api/continue", m.continueSimulation)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/snapshot", m.snapshot)
	r.HandleFunc("/api/field/{path}", m.listFieldValue)
	r.HandleFunc("/api/neuron/{index}", m.neuronDetails)
	r.HandleFunc("/api/degree/{index}", m.degree)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() (string, error) {
	if m.sim == nil {
		return "", errors.New("monitoring: no simulation registered")
	}

	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", fmt.Errorf("monitoring: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitor stopped", "err", err)
		}
	}()

	m.logger.Info("monitoring simulation", "url", url, "id", m.sim.ID())

	if m.openBrowser {
		if err := browser.OpenURL(url); err != nil {
			m.logger.Warn("cannot open browser", "url", url, "err", err)
		}
	}

	return url, nil
}

// StopServer shuts the web server down.
func (m *Monitor) StopServer(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

func (m *Monitor) pauseSimulation(w http.ResponseWriter, _ *http.Request) {
	m.sim.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueSimulation(w http.ResponseWriter, _ *http.Request) {
	m.sim.Continue()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"now\":%d,\"paused\":%t}",
		m.sim.CurrentTick(), m.sim.Paused())
}

func (m *Monitor) snapshot(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, m.sim.Snapshot())
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	snapshot := m.sim.Snapshot()

	elem, err := m.walkFields(&snapshot, mux.Vars(r)["path"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.writeJSON(w, elem.Interface())
}

func (m *Monitor) neuronIndexOr400(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid neuron index", http.StatusBadRequest)
		return 0, false
	}

	return index, true
}

func (m *Monitor) neuronDetails(w http.ResponseWriter, r *http.Request) {
	index, ok := m.neuronIndexOr400(w, r)
	if !ok {
		return
	}

	state, err := m.sim.NeuronState(index)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&state)
	serializer.SetMaxDepth(2)

	if err := serializer.Serialize(w); err != nil {
		m.logger.Error("serializing neuron", "index", index, "err", err)
	}
}

type degreeRsp struct {
	Index   int     `json:"index"`
	Degree  int     `json:"degree"`
	Valence float64 `json:"valence"`
}

func (m *Monitor) degree(w http.ResponseWriter, r *http.Request) {
	index, ok := m.neuronIndexOr400(w, r)
	if !ok {
		return
	}

	count, weight, err := m.sim.Degree(index)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	m.writeJSON(w, degreeRsp{Index: index, Degree: count, Valence: weight})
}

type fieldFormatError struct {
	field string
}

func (e fieldFormatError) Error() string {
	return "invalid field " + e.field
}

// walkFields follows a dot-separated path of struct fields and slice indices
// from comp.
func (m *Monitor) walkFields(
	comp any,
	fields string,
) (reflect.Value, error) {
	elem := reflect.ValueOf(comp)

	fieldNames := strings.Split(fields, ".")

	for len(fieldNames) > 0 {
		switch elem.Kind() {
		case reflect.Ptr, reflect.Interface:
			elem = elem.Elem()
		case reflect.Struct:
			elem = elem.FieldByName(fieldNames[0])
			if !elem.IsValid() || !elem.CanInterface() {
				return elem, fieldFormatError{fieldNames[0]}
			}
			fieldNames = fieldNames[1:]
		case reflect.Slice:
			index, err := strconv.Atoi(fieldNames[0])
			if err != nil || index < 0 || index >= elem.Len() {
				return elem, fieldFormatError{fieldNames[0]}
			}

			elem = elem.Index(index)
			fieldNames = fieldNames[1:]
		default:
			return elem, fieldFormatError{fieldNames[0]}
		}
	}

	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}

	return elem, nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]ProgressBarStatus, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.Status())
	}
	m.progressBarsLock.Unlock()

	m.writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		m.internalError(w, err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		m.internalError(w, err)
		return
	}

	memoryInfo, err := proc.MemoryInfo()
	if err != nil {
		m.internalError(w, err)
		return
	}

	m.writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		m.internalError(w, err)
		return
	}

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(data); err != nil {
		m.logger.Warn("writing response", "err", err)
	}
}

func (m *Monitor) internalError(w http.ResponseWriter, err error) {
	m.logger.Error("monitor request failed", "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
