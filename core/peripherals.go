package core

// RCC holds the clock enable registers.
type RCC struct {
	AHBENR  RW32
	APB2ENR RW32
}

// InputPort is the part of GPIO port A the handler reads.
type InputPort struct {
	IDR RO32
}

// OutputPort is the part of GPIO port E used to drive the LED.
type OutputPort struct {
	MODER RW32
	ODR   RO32
	BSRR  WO32
}

// SYSCFG holds the EXTI routing select register.
type SYSCFG struct {
	EXTICR1 RW32
}

// EXTI holds the line 0 mask, trigger and pending registers.
type EXTI struct {
	IMR  RW32
	RTSR RW32
	FTSR RW32
	PR   RW32
}

// NVIC holds the set-enable register for vectors 0..31.
type NVIC struct {
	ISER0 RW32
}

// ITM is the trace macrocell, stimulus port 0 only.
type ITM struct {
	Stim0 StimPort
	TER   RO32
	TCR   RO32
}

// Peripherals is the single handle to every register the firmware touches.
//
// Ownership after Boot:
//   - RCC, GPIOE.MODER, SYSCFG, EXTI mask/trigger, NVIC: main loop, setup only
//   - EXTI.PR, GPIOA.IDR, GPIOE.BSRR: interrupt handler only
//   - ITM: main loop only
type Peripherals struct {
	RCC    RCC
	GPIOA  InputPort
	GPIOE  OutputPort
	SYSCFG SYSCFG
	EXTI   EXTI
	NVIC   NVIC
	ITM    ITM
}

var taken bool

// Take claims the peripherals. It succeeds exactly once; later calls
// return false.
func Take() (*Peripherals, bool) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if taken {
		return nil, false
	}
	taken = true
	return Steal(), true
}

// MustTake returns the peripherals or panics if they were already claimed.
func MustTake() *Peripherals {
	p, ok := Take()
	if !ok {
		panic("peripherals already taken")
	}
	return p
}

// Steal returns a handle without claiming it. The caller vouches that no
// other handle is live, or that every register it touches is otherwise
// unshared. Nothing checks this.
func Steal() *Peripherals {
	return &Peripherals{
		RCC: RCC{
			AHBENR:  RW32{rccAHBENRAddr},
			APB2ENR: RW32{rccAPB2ENRAddr},
		},
		GPIOA: InputPort{
			IDR: RO32{gpioAIDRAddr},
		},
		GPIOE: OutputPort{
			MODER: RW32{gpioEMODERAddr},
			ODR:   RO32{gpioEODRAddr},
			BSRR:  WO32{gpioEBSRRAddr},
		},
		SYSCFG: SYSCFG{
			EXTICR1: RW32{syscfgEXTICR1Addr},
		},
		EXTI: EXTI{
			IMR:  RW32{extiIMRAddr},
			RTSR: RW32{extiRTSRAddr},
			FTSR: RW32{extiFTSRAddr},
			PR:   RW32{extiPRAddr},
		},
		NVIC: NVIC{
			ISER0: RW32{nvicISER0Addr},
		},
		ITM: ITM{
			Stim0: StimPort{itmStim0Addr},
			TER:   RO32{itmTERAddr},
			TCR:   RO32{itmTCRAddr},
		},
	}
}
