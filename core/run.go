package core

// Boot configures the hardware. After it returns the button interrupt is
// live and the handler owns EXTI.PR, GPIOA.IDR and GPIOE.BSRR.
func Boot(p *Peripherals) {
	p.Setup()

	DebugPrintln("[SETUP] MODER_E=" + hex32(p.GPIOE.MODER.Read()) +
		" IMR=" + hex32(p.EXTI.IMR.Read()) +
		" ISER0=" + hex32(p.NVIC.ISER0.Read()))
}

// Run boots the hardware and emits heartbeats forever. It never returns.
func Run(p *Peripherals) {
	Boot(p)

	hb := NewHeartbeat(0)
	for {
		hb.Beat()
	}
}
