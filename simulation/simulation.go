// Package simulation drives a network through discrete ticks, feeding it
// noisy thalamic input and letting hooks observe every step.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/spikenet/network"
	"github.com/sarchlab/spikenet/neuron"
	"github.com/sarchlab/spikenet/rng"
)

// ErrNoNeuron is returned when a view is asked for a neuron that does not
// exist.
var ErrNoNeuron = errors.New("simulation: no such neuron")

// A Simulation advances a network tick by tick.
//
// Run must be called from one goroutine at a time. The views (Snapshot,
// NeuronState, Degree, CurrentTick) and Pause/Continue may be called
// concurrently with Run.
type Simulation struct {
	hookableBase

	id        string
	net       *network.Network
	source    *rng.Source
	inputMean float64
	inputSD   float64
	logger    *slog.Logger

	dbRecorder *DBRecorder

	// netLock guards the network against readers while it steps.
	netLock    sync.RWMutex
	tick       atomic.Uint64
	lastSpikes int

	// resume is non-nil while paused and is closed by Continue.
	resume    chan struct{}
	pauseLock sync.Mutex

	singleRunLock sync.Mutex
}

// ID returns the unique identifier of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Network returns the simulated network. Outside of hooks it must not be
// used while Run is in progress.
func (s *Simulation) Network() *network.Network {
	return s.net
}

// RecordingErr returns the first error of the data recorder set with
// WithDataRecorder, if any.
func (s *Simulation) RecordingErr() error {
	if s.dbRecorder == nil {
		return nil
	}

	return s.dbRecorder.Err()
}

// CurrentTick returns the number of ticks completed.
func (s *Simulation) CurrentTick() uint64 {
	return s.tick.Load()
}

// Run advances the network by the given number of ticks. It returns early
// with the context's error if ctx is cancelled between two ticks or while
// the simulation is paused.
func (s *Simulation) Run(ctx context.Context, ticks uint64) error {
	s.singleRunLock.Lock()
	defer s.singleRunLock.Unlock()

	s.logger.Info("simulation started",
		"id", s.id, "neurons", s.net.Size(), "edges", s.net.NumEdges(),
		"ticks", ticks, "seed", s.source.Seed())

	inputs := make([]float64, s.net.Size())
	for i := uint64(0); i < ticks; i++ {
		if err := s.waitWhilePaused(ctx); err != nil {
			s.logger.Warn("simulation interrupted",
				"tick", s.CurrentTick(), "err", err)
			return fmt.Errorf("simulation interrupted at tick %d: %w",
				s.CurrentTick(), err)
		}

		s.runTick(inputs)
	}

	s.invokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosRunEnd,
		Item:   StepInfo{Tick: s.CurrentTick()},
	})

	s.logger.Info("simulation finished", "tick", s.CurrentTick())

	return nil
}

// waitWhilePaused returns once the simulation is not paused, or with the
// context's error if ctx is done first.
func (s *Simulation) waitWhilePaused(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.pauseLock.Lock()
		resume := s.resume
		s.pauseLock.Unlock()

		if resume == nil {
			return nil
		}

		select {
		case <-resume:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Simulation) runTick(inputs []float64) {
	s.invokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosBeforeStep,
		Item:   StepInfo{Tick: s.CurrentTick()},
	})

	s.source.NormalFill(inputs, s.inputMean, s.inputSD)

	s.netLock.Lock()
	spikes := s.net.Step(inputs)
	tick := s.tick.Add(1)
	s.lastSpikes = int(spikes.GetCardinality())
	s.netLock.Unlock()

	s.logger.Debug("tick", "tick", tick, "spikes", spikes.GetCardinality())

	s.invokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosAfterStep,
		Item:   StepInfo{Tick: tick, Spikes: spikes},
	})
}

// Pause stops the run before its next tick until Continue is called. The
// tick in progress, if any, still completes.
func (s *Simulation) Pause() {
	s.pauseLock.Lock()
	defer s.pauseLock.Unlock()

	if s.resume != nil {
		return
	}

	s.resume = make(chan struct{})
	s.logger.Info("simulation paused", "tick", s.CurrentTick())
}

// Continue resumes a paused run.
func (s *Simulation) Continue() {
	s.pauseLock.Lock()
	defer s.pauseLock.Unlock()

	if s.resume == nil {
		return
	}

	close(s.resume)
	s.resume = nil
	s.logger.Info("simulation continued", "tick", s.CurrentTick())
}

// Paused reports whether the simulation is paused.
func (s *Simulation) Paused() bool {
	s.pauseLock.Lock()
	defer s.pauseLock.Unlock()

	return s.resume != nil
}

// Snapshot is a consistent view of the network between two ticks.
type Snapshot struct {
	ID         string    `json:"id"`
	Tick       uint64    `json:"tick"`
	Paused     bool      `json:"paused"`
	Neurons    int       `json:"neurons"`
	Edges      int       `json:"edges"`
	Spikes     int       `json:"spikes"`
	Potentials []float64 `json:"potentials"`
	Recoveries []float64 `json:"recoveries"`
}

// Snapshot captures the state of the network.
func (s *Simulation) Snapshot() Snapshot {
	paused := s.Paused()

	s.netLock.RLock()
	defer s.netLock.RUnlock()

	return Snapshot{
		ID:         s.id,
		Tick:       s.CurrentTick(),
		Paused:     paused,
		Neurons:    s.net.Size(),
		Edges:      s.net.NumEdges(),
		Spikes:     s.lastSpikes,
		Potentials: s.net.Potentials(),
		Recoveries: s.net.Recoveries(),
	}
}

// NeuronState returns a snapshot of neuron i.
func (s *Simulation) NeuronState(i int) (neuron.State, error) {
	s.netLock.RLock()
	defer s.netLock.RUnlock()

	if i < 0 || i >= s.net.Size() {
		return neuron.State{}, fmt.Errorf("%w: %d", ErrNoNeuron, i)
	}

	return s.net.State(i), nil
}

// Degree returns the out-degree and valence of neuron i.
func (s *Simulation) Degree(i int) (count int, weight float64, err error) {
	s.netLock.RLock()
	defer s.netLock.RUnlock()

	if i < 0 || i >= s.net.Size() {
		return 0, 0, fmt.Errorf("%w: %d", ErrNoNeuron, i)
	}

	count, weight = s.net.Degree(i)

	return count, weight, nil
}
