package serial

import (
	"io"
)

// Port is a serial port carrying the SWO trace stream.
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate; must match the TPIU SWO prescaler (TRACECLKIN / (ACPR+1))
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration for SWO in NRZ mode at 2 Mbaud,
// the usual OpenOCD setting for a 72 MHz STM32F3
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        2000000,
		ReadTimeout: 100, // 100ms read timeout
	}
}
