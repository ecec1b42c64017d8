package core

// Access is the access mode a register is tagged with.
type Access uint8

const (
	ReadOnly Access = iota
	WriteOnly
	ReadWrite
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "RO"
	case WriteOnly:
		return "WO"
	case ReadWrite:
		return "RW"
	default:
		return "??"
	}
}

// RO32 is a read-only 32-bit memory-mapped register.
type RO32 struct{ addr uintptr }

// Addr returns the register address.
func (r RO32) Addr() uintptr { return r.addr }

// Access returns ReadOnly.
func (r RO32) Access() Access { return ReadOnly }

// Read performs a single volatile load.
func (r RO32) Read() uint32 { return load32(r.addr) }

// WO32 is a write-only 32-bit memory-mapped register.
type WO32 struct{ addr uintptr }

// Addr returns the register address.
func (r WO32) Addr() uintptr { return r.addr }

// Access returns WriteOnly.
func (r WO32) Access() Access { return WriteOnly }

// Write performs a single volatile store.
func (r WO32) Write(v uint32) { store32(r.addr, v) }

// RW32 is a read/modify/write 32-bit memory-mapped register.
//
// Modify and the bit helpers are a load followed by a store. They are not
// atomic with respect to an interrupt handler touching the same address, so
// every RW32 must be owned by exactly one execution context at a time.
type RW32 struct{ addr uintptr }

// Addr returns the register address.
func (r RW32) Addr() uintptr { return r.addr }

// Access returns ReadWrite.
func (r RW32) Access() Access { return ReadWrite }

// Read performs a single volatile load.
func (r RW32) Read() uint32 { return load32(r.addr) }

// Write performs a single volatile store.
func (r RW32) Write(v uint32) { store32(r.addr, v) }

// Modify loads the register, applies fn and stores the result.
func (r RW32) Modify(fn func(uint32) uint32) {
	store32(r.addr, fn(load32(r.addr)))
}

// SetBits sets the bits in mask, leaving the others unchanged.
func (r RW32) SetBits(mask uint32) {
	store32(r.addr, load32(r.addr)|mask)
}

// ClearBits clears the bits in mask, leaving the others unchanged.
func (r RW32) ClearBits(mask uint32) {
	store32(r.addr, load32(r.addr)&^mask)
}

// ReplaceBits replaces the field mask<<pos with value<<pos.
func (r RW32) ReplaceBits(value, mask uint32, pos uint8) {
	store32(r.addr, load32(r.addr)&^(mask<<pos)|(value&mask)<<pos)
}

// StimPort is an ITM stimulus port. A 32-bit read reports FIFO status and
// an 8-bit write emits one byte as a software source packet.
type StimPort struct{ addr uintptr }

// Addr returns the port address.
func (s StimPort) Addr() uintptr { return s.addr }

// Access returns ReadWrite.
func (s StimPort) Access() Access { return ReadWrite }

// Ready reports whether the port FIFO can take another byte.
func (s StimPort) Ready() bool { return load32(s.addr)&itmStimReady != 0 }

// WriteByte stores b with a single byte-wide access.
func (s StimPort) WriteByte(b byte) error {
	store8(s.addr, b)
	return nil
}
