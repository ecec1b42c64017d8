package core

// EnableClocks turns on the bus clocks for GPIOA, GPIOE and SYSCFG.
// It must run before any of their registers are touched: an unclocked
// peripheral ignores writes and reads back zero, with no fault raised.
func (p *Peripherals) EnableClocks() {
	p.RCC.AHBENR.Modify(func(r uint32) uint32 { return r | rccIOPAEN | rccIOPEEN })
	p.RCC.APB2ENR.Modify(func(r uint32) uint32 { return r | rccSYSCFGEN })
}

// ConfigureLED puts LEDPin in general purpose output mode.
//
// The button pin is left alone: GPIOA_MODER resets PA0 to input mode.
func (p *Peripherals) ConfigureLED() {
	shift := LEDPin * moderFieldWidth
	mask := uint32(moderFieldMask) << shift
	mode := uint32(moderOutput) << shift
	p.GPIOE.MODER.Modify(func(r uint32) uint32 { return r&^mask | mode })
}

// RouteButtonInterrupt binds PA0 to EXTI line 0, arms both edges and
// enables the vector. Enabling the vector is always the final write so the
// handler never runs against partly configured hardware.
//
// A wrong bit here does not fail, the line just never fires.
func (p *Peripherals) RouteButtonInterrupt() {
	const line = uint32(1) << ButtonLine

	// EXTICR1 holds a 3-bit field per line; line 0 is bits 2:0.
	p.SYSCFG.EXTICR1.ReplaceBits(exticrPortA, exticrPortMask, 4*ButtonLine)

	p.EXTI.IMR.SetBits(line)
	p.EXTI.RTSR.SetBits(line)
	p.EXTI.FTSR.SetBits(line)

	// ISER ignores zero bits, so a plain store leaves other vectors alone.
	p.NVIC.ISER0.Write(1 << IRQ_EXTI0)
}

// Setup runs the three configuration stages in order. Call it exactly once.
func (p *Peripherals) Setup() {
	p.EnableClocks()
	p.ConfigureLED()
	p.RouteButtonInterrupt()
}
