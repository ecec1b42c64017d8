//go:build stm32f303

package main

import "ledswitch/core"

// InitTrace routes core trace output to ITM stimulus port 0. The debugger
// enables ITM and the SWO pin; without one attached, output is dropped.
func InitTrace(p *core.Peripherals) {
	core.SetTraceWriter(p.ITM.WriteLine)

	// Setup register dump after Boot
	core.SetDebugEnabled(true)
}
