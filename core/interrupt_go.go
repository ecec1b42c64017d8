//go:build !tinygo

package core

// State stands in for the saved PRIMASK on regular Go
type State uintptr

// disableInterrupts is a no-op on regular Go; the simulator never
// preempts a claim in progress
func disableInterrupts() State {
	return 0
}

// restoreInterrupts is a no-op on regular Go
func restoreInterrupts(State) {}
