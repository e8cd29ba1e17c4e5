package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/spikenet/simulation"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID         string
	Name       string
	StartTime  time.Time
	Total      uint64
	Finished   uint64
	InProgress uint64
}

// ProgressBarStatus is a copy of a progress bar taken at one instant.
type ProgressBarStatus struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// Status returns the current state of the bar.
func (b *ProgressBar) Status() ProgressBarStatus {
	b.Lock()
	defer b.Unlock()

	return ProgressBarStatus{
		ID:         b.ID,
		Name:       b.Name,
		StartTime:  b.StartTime,
		Total:      b.Total,
		Finished:   b.Finished,
		InProgress: b.InProgress,
	}
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// ProgressHook advances a progress bar as a simulation ticks and removes it
// from the monitor when the run ends.
type ProgressHook struct {
	monitor *Monitor
	bar     *ProgressBar
}

// NewProgressHook creates a bar of total ticks on the monitor and returns the
// hook that drives it.
func NewProgressHook(m *Monitor, name string, total uint64) *ProgressHook {
	return &ProgressHook{
		monitor: m,
		bar:     m.CreateProgressBar(name, total),
	}
}

// Bar returns the driven progress bar.
func (h *ProgressHook) Bar() *ProgressBar {
	return h.bar
}

// Func updates the bar.
func (h *ProgressHook) Func(ctx simulation.HookCtx) {
	switch ctx.Pos {
	case simulation.HookPosBeforeStep:
		h.bar.IncrementInProgress(1)
	case simulation.HookPosAfterStep:
		h.bar.MoveInProgressToFinished(1)
	case simulation.HookPosRunEnd:
		h.monitor.CompleteProgressBar(h.bar)
	}
}
