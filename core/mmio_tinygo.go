//go:build tinygo

package core

import (
	"runtime/volatile"
	"unsafe"
)

// load32 reads the hardware register at addr
func load32(addr uintptr) uint32 {
	return (*volatile.Register32)(unsafe.Pointer(addr)).Get()
}

// store32 writes the hardware register at addr
func store32(addr uintptr, v uint32) {
	(*volatile.Register32)(unsafe.Pointer(addr)).Set(v)
}

// store8 writes one byte to the hardware register at addr
func store8(addr uintptr, v uint8) {
	(*volatile.Register8)(unsafe.Pointer(addr)).Set(v)
}
