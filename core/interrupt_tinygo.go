//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts and returns the previous PRIMASK
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts puts PRIMASK back as it was
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
