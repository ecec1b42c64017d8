//go:build !tinygo

package core

// Bus stands in for the memory bus on regular Go (for testing and the
// desktop simulator).
type Bus interface {
	Load32(addr uintptr) uint32
	Store32(addr uintptr, v uint32)
	Store8(addr uintptr, v uint8)
}

// Global bus used by register accesses on regular Go.
var bus Bus = NewSimBus()

// SetBus installs the bus that register accesses go through.
func SetBus(b Bus) {
	bus = b
}

func load32(addr uintptr) uint32 {
	return bus.Load32(addr)
}

func store32(addr uintptr, v uint32) {
	bus.Store32(addr, v)
}

func store8(addr uintptr, v uint8) {
	bus.Store8(addr, v)
}
