package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"ledswitch/host/monitor"
	"ledswitch/host/serial"
	"ledswitch/protocol"
)

var (
	device  = flag.String("device", "/dev/ttyUSB0", "Serial device receiving SWO")
	baud    = flag.Int("baud", 2000000, "SWO baud rate (TPIU prescaler)")
	port    = flag.Uint("port", protocol.TracePort, "ITM stimulus port to print")
	verbose = flag.Bool("verbose", false, "Print every heartbeat, not just anomalies")
)

func main() {
	flag.Parse()

	if *port >= protocol.ITMPortCount {
		fmt.Fprintf(os.Stderr, "Error: stimulus port %d out of range\n", *port)
		os.Exit(2)
	}

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	p, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	if err := p.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	fmt.Printf("Monitoring SWO on %s at %d baud, stimulus port %d\n", *device, *baud, *port)

	m := monitor.New(p, monitor.PortMask(uint8(*port)), printEvent)
	m.Follow = true

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		close(stop)
	}()

	err = m.Run(stop)

	s := m.Summary()
	fmt.Printf("\nlines=%d heartbeats=%d lost=%d restarts=%d overflows=%d syncs=%d skipped=%d\n",
		s.Lines, s.Heartbeats, s.Lost, s.Restarts, s.Decoder.Overflows, s.Decoder.Syncs, s.Decoder.Skipped)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printEvent(ev monitor.Event) {
	switch {
	case ev.Err != nil:
		fmt.Printf("!! %v\n", ev.Err)
		fmt.Println(ev.Line)
	case ev.Heartbeat && !*verbose:
		// Quiet unless something is wrong
	default:
		fmt.Println(ev.Line)
	}
}
