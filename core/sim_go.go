//go:build !tinygo

package core

import "ledswitch/protocol"

// SimWrite is one store seen by the simulator.
type SimWrite struct {
	Addr    uintptr
	Value   uint32
	Width   uint8 // 8 or 32
	Dropped bool  // Target peripheral was not clocked
}

// SimBus simulates the STM32F303 registers this firmware touches, with
// their side effects: clock gating of GPIOA/GPIOE/SYSCFG, BSRR driving
// ODR, write-1-to-clear EXTI_PR, set-only NVIC_ISER, EXTI line 0 edge
// detection on PA0 and ITM stimulus port output as an SWO byte stream.
//
// Interrupts are dispatched synchronously from the call that raises them,
// which stands in for preemption of the main loop. It is not safe for
// concurrent use.
type SimBus struct {
	regs    map[uintptr]uint32
	writes  []SimWrite
	swo     []byte
	vectors map[int]func()
	inISR   bool

	serviced int
	refires  int
}

// NewSimBus creates a simulator in the post-reset state with a debugger
// attached (ITM enabled).
func NewSimBus() *SimBus {
	s := &SimBus{vectors: make(map[int]func())}
	s.Reset()
	return s
}

// Reset restores post-reset register values and forgets recorded history.
// Attached vectors are kept.
func (s *SimBus) Reset() {
	s.regs = map[uintptr]uint32{
		rccAHBENRAddr:               0x00000014, // SRAM and FLITF clocks on
		gpioABase + gpioMODEROffset: 0xA8000000, // PA13..15 in SWD alternate function
		itmTCRAddr:                  itmTCRITMENA,
		itmTERAddr:                  itmTERPort0,
	}
	s.writes = nil
	s.swo = nil
	s.inISR = false
	s.serviced = 0
	s.refires = 0
}

// clockGate returns the enable register and bit gating addr, if any.
func clockGate(addr uintptr) (uintptr, uint32, bool) {
	switch {
	case addr >= gpioABase && addr < gpioABase+gpioSize:
		return rccAHBENRAddr, rccIOPAEN, true
	case addr >= gpioEBase && addr < gpioEBase+gpioSize:
		return rccAHBENRAddr, rccIOPEEN, true
	case addr >= syscfgBase && addr < syscfgBase+syscfgSize:
		return rccAPB2ENRAddr, rccSYSCFGEN, true
	}
	return 0, 0, false
}

func (s *SimBus) clocked(addr uintptr) bool {
	reg, bit, gated := clockGate(addr)
	return !gated || s.regs[reg]&bit != 0
}

func (s *SimBus) itmEnabled() bool {
	return s.regs[itmTCRAddr]&itmTCRITMENA != 0 && s.regs[itmTERAddr]&itmTERPort0 != 0
}

// Load32 implements Bus.
func (s *SimBus) Load32(addr uintptr) uint32 {
	if !s.clocked(addr) {
		return 0
	}
	switch addr {
	case itmStim0Addr:
		return itmStimReady
	case gpioEBSRRAddr:
		return 0
	}
	return s.regs[addr]
}

// Store32 implements Bus.
func (s *SimBus) Store32(addr uintptr, v uint32) {
	if !s.clocked(addr) {
		s.writes = append(s.writes, SimWrite{Addr: addr, Value: v, Width: 32, Dropped: true})
		return
	}
	s.writes = append(s.writes, SimWrite{Addr: addr, Value: v, Width: 32})

	switch addr {
	case gpioEBSRRAddr:
		// Set wins when both halves name the same pin
		odr := s.regs[gpioEODRAddr]
		odr = odr&^(v>>bsrrResetShift) | v&0xFFFF
		s.regs[gpioEODRAddr] = odr
	case extiPRAddr:
		s.regs[addr] &^= v
	case nvicISER0Addr:
		s.regs[addr] |= v
		s.dispatch()
	case gpioAIDRAddr, gpioEODRAddr, itmTERAddr, itmTCRAddr:
		// Read-only
	case itmStim0Addr:
		if s.itmEnabled() {
			s.swo = protocol.AppendStimulus(s.swo, protocol.TracePort,
				[]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
		}
	default:
		s.regs[addr] = v
	}
}

// Store8 implements Bus.
func (s *SimBus) Store8(addr uintptr, v uint8) {
	s.writes = append(s.writes, SimWrite{Addr: addr, Value: uint32(v), Width: 8})
	if addr == itmStim0Addr && s.itmEnabled() {
		s.swo = protocol.AppendStimulus(s.swo, protocol.TracePort, []byte{v})
	}
}

// Attach installs fn as the handler for NVIC vector irq.
func (s *SimBus) Attach(irq int, fn func()) {
	s.vectors[irq] = fn
}

// SetButton drives the PA0 pin level. A level change is an edge: if EXTI
// line 0 is routed to port A, unmasked and armed for that edge, the line
// goes pending and, if the vector is enabled, the handler runs before
// SetButton returns.
func (s *SimBus) SetButton(pressed bool) {
	idr := s.regs[gpioAIDRAddr]
	was := idr&(1<<ButtonPin) != 0
	if pressed == was {
		return
	}
	if pressed {
		s.regs[gpioAIDRAddr] = idr | 1<<ButtonPin
	} else {
		s.regs[gpioAIDRAddr] = idr &^ (1 << ButtonPin)
	}

	const line = uint32(1) << ButtonLine
	if s.regs[syscfgEXTICR1Addr]&exticrPortMask != exticrPortA {
		return
	}
	if s.regs[extiIMRAddr]&line == 0 {
		return
	}
	if (pressed && s.regs[extiRTSRAddr]&line != 0) || (!pressed && s.regs[extiFTSRAddr]&line != 0) {
		s.regs[extiPRAddr] |= line
		s.dispatch()
	}
}

// dispatch runs the EXTI0 handler if line 0 is pending and its vector is
// enabled. There is a single priority level, so it never nests.
func (s *SimBus) dispatch() {
	const line = uint32(1) << ButtonLine
	if s.inISR || s.regs[extiPRAddr]&line == 0 || s.regs[nvicISER0Addr]&(1<<IRQ_EXTI0) == 0 {
		return
	}
	fn := s.vectors[IRQ_EXTI0]
	if fn == nil {
		return
	}

	s.inISR = true
	fn()
	s.inISR = false
	s.serviced++

	// Hardware would re-enter immediately; count it instead of looping.
	if s.regs[extiPRAddr]&line != 0 {
		s.refires++
	}
}

// Button returns the PA0 pin level.
func (s *SimBus) Button() bool {
	return s.regs[gpioAIDRAddr]&(1<<ButtonPin) != 0
}

// LED returns the PE15 driven level.
func (s *SimBus) LED() bool {
	return s.regs[gpioEODRAddr]&(1<<LEDPin) != 0
}

// Peek returns a register's stored value with no side effects or gating.
func (s *SimBus) Peek(addr uintptr) uint32 {
	return s.regs[addr]
}

// Poke sets a register's stored value with no side effects or gating.
func (s *SimBus) Poke(addr uintptr, v uint32) {
	s.regs[addr] = v
}

// Writes returns every store since the last Reset, in order.
func (s *SimBus) Writes() []SimWrite {
	return s.writes
}

// SWO returns the trace byte stream emitted so far.
func (s *SimBus) SWO() []byte {
	return s.swo
}

// TakeSWO returns the trace bytes emitted so far and clears them.
func (s *SimBus) TakeSWO() []byte {
	out := s.swo
	s.swo = nil
	return out
}

// Serviced returns how many times the EXTI0 handler ran.
func (s *SimBus) Serviced() int {
	return s.serviced
}

// Refires returns how many times the handler returned with line 0 still
// pending.
func (s *SimBus) Refires() int {
	return s.refires
}
