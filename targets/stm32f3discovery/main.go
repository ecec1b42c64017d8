//go:build stm32f303

package main

import (
	"ledswitch/core"
	"runtime/interrupt"
)

// periph is read by the EXTI0 vector; it is written once before the
// vector is enabled.
var periph *core.Peripherals

func main() {
	// Halts (panic) if anything claimed the peripherals before us
	periph = core.MustTake()

	InitTrace(periph)

	// Place the handler in the vector table. The NVIC enable bit is left
	// to core.Boot so it is the last configuration write.
	interrupt.New(core.IRQ_EXTI0, handleEXTI0)

	core.Run(periph)
}

// handleEXTI0 is the EXTI line 0 vector.
func handleEXTI0(interrupt.Interrupt) {
	periph.HandleButtonEdge()
}
