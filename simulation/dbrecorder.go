package simulation

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/sarchlab/spikenet/datarecording"
	"github.com/sarchlab/spikenet/logging"
)

const (
	spikeTable  = "spikes"
	sampleTable = "samples"
)

type spikeEntry struct {
	Tick   int64
	Neuron int64
}

type sampleEntry struct {
	Tick      int64
	Neuron    int64
	Archetype string
	Potential float64
	Recovery  float64
	Current   float64
}

// DBRecorder is a hook that records the spikes of every tick and the state of
// a few sampled neurons into a DataRecorder.
type DBRecorder struct {
	recorder datarecording.DataRecorder
	samples  []int
	logger   *slog.Logger

	errLock sync.Mutex
	err     error
}

// NewDBRecorder creates the spikes and samples tables and returns a hook
// filling them.
func NewDBRecorder(
	recorder datarecording.DataRecorder,
	samples []int,
	logger *slog.Logger,
) (*DBRecorder, error) {
	if err := recorder.CreateTable(spikeTable, spikeEntry{}); err != nil {
		return nil, fmt.Errorf("creating %s table: %w", spikeTable, err)
	}

	if err := recorder.CreateTable(sampleTable, sampleEntry{}); err != nil {
		return nil, fmt.Errorf("creating %s table: %w", sampleTable, err)
	}

	return &DBRecorder{
		recorder: recorder,
		samples:  append([]int(nil), samples...),
		logger:   logging.OrDiscard(logger),
	}, nil
}

// Func records a step or flushes at the end of a run.
func (r *DBRecorder) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosAfterStep:
		r.recordStep(ctx)
	case HookPosRunEnd:
		r.fail(r.recorder.Flush())
	}
}

func (r *DBRecorder) recordStep(ctx HookCtx) {
	tick := int64(ctx.Item.Tick)

	if ctx.Item.Spikes != nil {
		it := ctx.Item.Spikes.Iterator()
		for it.HasNext() {
			entry := spikeEntry{Tick: tick, Neuron: int64(it.Next())}
			if err := r.recorder.InsertData(spikeTable, entry); err != nil {
				r.fail(err)
				return
			}
		}
	}

	net := ctx.Domain.Network()
	for _, i := range r.samples {
		if i < 0 || i >= net.Size() {
			continue
		}

		state := net.State(i)
		entry := sampleEntry{
			Tick:      tick,
			Neuron:    int64(i),
			Archetype: state.Archetype.String(),
			Potential: state.Potential,
			Recovery:  state.Recovery,
			Current:   state.Current,
		}

		if err := r.recorder.InsertData(sampleTable, entry); err != nil {
			r.fail(err)
			return
		}
	}
}

func (r *DBRecorder) fail(err error) {
	if err == nil {
		return
	}

	r.errLock.Lock()
	defer r.errLock.Unlock()

	if r.err == nil {
		r.err = err
		r.logger.Error("recording failed", "err", err)
	}
}

// Err returns the first error met while recording.
func (r *DBRecorder) Err() error {
	r.errLock.Lock()
	defer r.errLock.Unlock()

	return r.err
}
