package report

import (
	"io"
	"sync"

	"github.com/sarchlab/spikenet/neuron"
	"github.com/sarchlab/spikenet/simulation"
)

// Hook streams the trajectory and spike reports of a running simulation.
type Hook struct {
	ens        Ensemble
	samples    []int
	trajectory io.Writer
	spikes     io.Writer

	errLock sync.Mutex
	err     error
}

// NewHook writes the trajectory header and returns a hook that appends one
// trajectory row and the spike rows after every tick. Either writer may be
// nil to skip that report.
//
// The sampled neurons are chosen once, so archetypes must not change while
// the hook is attached.
func NewHook(
	ens Ensemble,
	counts neuron.Counts,
	trajectory, spikes io.Writer,
) (*Hook, error) {
	h := &Hook{
		ens:        ens,
		samples:    Samples(ens, counts),
		trajectory: trajectory,
		spikes:     spikes,
	}

	if trajectory != nil {
		if err := WriteHeader(trajectory, ens, counts); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Func writes the reports of a finished tick.
func (h *Hook) Func(ctx simulation.HookCtx) {
	if ctx.Pos != simulation.HookPosAfterStep || h.Err() != nil {
		return
	}

	if h.spikes != nil && ctx.Item.Spikes != nil {
		if err := WriteSpikes(h.spikes, ctx.Item.Tick, ctx.Item.Spikes); err != nil {
			h.fail(err)
			return
		}
	}

	if h.trajectory != nil {
		h.fail(writeRow(h.trajectory, ctx.Item.Tick, h.ens, h.samples))
	}
}

func (h *Hook) fail(err error) {
	if err == nil {
		return
	}

	h.errLock.Lock()
	defer h.errLock.Unlock()

	if h.err == nil {
		h.err = err
	}
}

// Err returns the first write error. Once an error happens the hook stops
// writing.
func (h *Hook) Err() error {
	h.errLock.Lock()
	defer h.errLock.Unlock()

	return h.err
}
