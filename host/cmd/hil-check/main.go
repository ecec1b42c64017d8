package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"ledswitch/host/bench"
)

var (
	buttonPin = flag.String("button", "GPIO17", "Pi pin wired to PA0 (button)")
	ledPin    = flag.String("led", "GPIO27", "Pi pin wired to PE15 (LED)")
	cycles    = flag.Int("cycles", 20, "Press/release cycles to drive")
	settle    = flag.Duration("settle", bench.DefaultSettle, "Wait after each edge before sampling the LED")
)

func main() {
	flag.Parse()

	b, err := bench.Open(*buttonPin, *ledPin, *settle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Driving %s, sampling %s, %d cycles\n", *buttonPin, *ledPin, *cycles)

	err = b.Cycle(*cycles)
	if rerr := b.Release(); rerr != nil {
		fmt.Fprintf(os.Stderr, "Warning: release button: %v\n", rerr)
	}

	var mismatch *bench.MismatchError
	switch {
	case errors.As(err, &mismatch):
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", mismatch)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("PASS: LED followed the button on %d edges\n", b.Steps())
}
