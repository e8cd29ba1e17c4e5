package simulation

import "github.com/RoaringBitmap/roaring/v2"

// HookPos identifies where in the run a hook is invoked.
type HookPos struct {
	Name string
}

var (
	// HookPosBeforeStep is invoked before the network advances.
	HookPosBeforeStep = &HookPos{Name: "BeforeStep"}

	// HookPosAfterStep is invoked after the network advanced. The item is a
	// StepInfo carrying the spikes of the tick.
	HookPosAfterStep = &HookPos{Name: "AfterStep"}

	// HookPosRunEnd is invoked once when Run returns normally.
	HookPosRunEnd = &HookPos{Name: "RunEnd"}
)

// StepInfo describes one tick.
type StepInfo struct {
	// Tick counts the ticks completed, the current one included for
	// HookPosAfterStep.
	Tick uint64

	// Spikes holds the neurons that fired. It is nil before the step.
	Spikes *roaring.Bitmap
}

// HookCtx is passed to hooks.
type HookCtx struct {
	Domain *Simulation
	Pos    *HookPos
	Item   StepInfo
}

// Hook is invoked by a Simulation at the positions of a run. Hooks run on the
// goroutine that called Run, between steps, so they may read the network
// through HookCtx.Domain.Network.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

type hookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook. Hooks must be registered before Run.
func (h *hookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *hookableBase) NumHooks() int {
	return len(h.hooks)
}

func (h *hookableBase) invokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
