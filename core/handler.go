package core

// HandleButtonEdge services EXTI line 0. It runs on every button edge,
// press and release alike, and makes the LED follow the sampled button
// level. It is the only writer of the LED.
//
// Runs in interrupt context: no allocation, no blocking.
func (p *Peripherals) HandleButtonEdge() {
	// PR is rc_w1; clear only our line or it refires on return.
	p.EXTI.PR.Write(1 << ButtonLine)

	if p.GPIOA.IDR.Read()&(1<<ButtonPin) != 0 {
		p.GPIOE.BSRR.Write(1 << LEDPin)
	} else {
		p.GPIOE.BSRR.Write(1 << (bsrrResetShift + LEDPin))
	}
}
