// Package bench checks a flashed board from a Raspberry Pi wired to it:
// one Pi GPIO drives the button line (PA0), another reads the LED line
// (PE15). The firmware must make the LED follow the button on every edge.
package bench

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// DefaultSettle is how long to wait after an edge before sampling the LED.
// The handler runs in microseconds; this covers wiring and Pi scheduling.
const DefaultSettle = 2 * time.Millisecond

// MismatchError reports an LED level that did not follow the button.
type MismatchError struct {
	Step   int
	Button gpio.Level
	LED    gpio.Level
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("step %d: button %s but LED %s", e.Step, e.Button, e.LED)
}

// Bench drives the button line and samples the LED line.
type Bench struct {
	button gpio.PinOut
	led    gpio.PinIn
	settle time.Duration
	steps  int
}

// Open initialises the periph host drivers and looks up both pins by name
// (e.g. "GPIO17").
func Open(buttonName, ledName string, settle time.Duration) (*Bench, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init failed: %w", err)
	}

	button := gpioreg.ByName(buttonName)
	if button == nil {
		return nil, fmt.Errorf("unknown button pin %q", buttonName)
	}
	led := gpioreg.ByName(ledName)
	if led == nil {
		return nil, fmt.Errorf("unknown LED pin %q", ledName)
	}

	return New(button, led, settle)
}

// New configures button as an output driven low (released) and led as a
// floating input.
func New(button gpio.PinOut, led gpio.PinIn, settle time.Duration) (*Bench, error) {
	if err := button.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("configure button pin %s: %w", button, err)
	}
	if err := led.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure LED pin %s: %w", led, err)
	}
	return &Bench{button: button, led: led, settle: settle}, nil
}

// Step drives the button to level, waits the settle time and checks the
// LED. A mismatch is returned as *MismatchError.
func (b *Bench) Step(level gpio.Level) error {
	b.steps++
	if err := b.button.Out(level); err != nil {
		return fmt.Errorf("step %d: drive button: %w", b.steps, err)
	}
	if b.settle > 0 {
		time.Sleep(b.settle)
	}
	if got := b.led.Read(); got != level {
		return &MismatchError{Step: b.steps, Button: level, LED: got}
	}
	return nil
}

// Cycle presses and releases the button n times, stopping at the first
// failure.
func (b *Bench) Cycle(n int) error {
	for i := 0; i < n; i++ {
		if err := b.Step(gpio.High); err != nil {
			return err
		}
		if err := b.Step(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

// Steps returns how many edges have been driven.
func (b *Bench) Steps() int {
	return b.steps
}

// Release leaves the button line low.
func (b *Bench) Release() error {
	return b.button.Out(gpio.Low)
}
