// Command ledswitch-sim runs the firmware core against the register
// simulator and prints the trace it would emit over SWO.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"ledswitch/core"
	"ledswitch/host/monitor"
)

var (
	beats       = flag.Int("beats", 20, "Heartbeats to run")
	toggleEvery = flag.Int("toggle-every", 5, "Toggle the button every N heartbeats (0 = never)")
	start       = flag.Uint("start", 0, "Initial heartbeat counter")
	debug       = flag.Bool("debug", true, "Emit the setup register dump")
)

func main() {
	flag.Parse()

	sim := core.NewSimBus()
	core.SetBus(sim)

	p := core.MustTake()
	sim.Attach(core.IRQ_EXTI0, p.HandleButtonEdge)
	core.SetTraceWriter(p.ITM.WriteLine)
	core.SetDebugEnabled(*debug)

	core.Boot(p)

	hb := core.NewHeartbeat(uint32(*start))
	for i := 0; i < *beats; i++ {
		if *toggleEvery > 0 && i > 0 && i%*toggleEvery == 0 {
			sim.SetButton(!sim.Button())
			fmt.Printf("-- edge: button=%v led=%v\n", sim.Button(), sim.LED())
		}
		hb.Beat()
	}

	m := monitor.New(bytes.NewReader(sim.SWO()), monitor.PortMask(0), func(ev monitor.Event) {
		if ev.Err != nil {
			fmt.Printf("!! %v\n", ev.Err)
		}
		fmt.Println(ev.Line)
	})
	if err := m.Run(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := m.Summary()
	fmt.Printf("\nheartbeats=%d lost=%d handler_runs=%d refires=%d led=%v\n",
		s.Heartbeats, s.Lost, sim.Serviced(), sim.Refires(), sim.LED())
}
