package core

// STM32F303 memory map for the registers this firmware touches.
// Addresses and bit positions from RM0316.

// Reset & Clock Control
const (
	rccBase        = 0x40021000
	rccAHBENRAddr  = rccBase + 0x14 // AHB peripheral clock enable
	rccAPB2ENRAddr = rccBase + 0x18 // APB2 peripheral clock enable

	rccIOPAEN   = 1 << 17 // AHBENR: GPIO port A clock
	rccIOPEEN   = 1 << 21 // AHBENR: GPIO port E clock
	rccSYSCFGEN = 1 << 0  // APB2ENR: SYSCFG clock
)

// General purpose I/O
const (
	gpioABase = 0x48000000
	gpioEBase = 0x48001000
	gpioSize  = 0x400

	gpioMODEROffset = 0x00 // Mode register
	gpioIDROffset   = 0x10 // Input data register
	gpioODROffset   = 0x14 // Output data register
	gpioBSRROffset  = 0x18 // Bit set/reset register

	gpioAIDRAddr   = gpioABase + gpioIDROffset
	gpioEMODERAddr = gpioEBase + gpioMODEROffset
	gpioEODRAddr   = gpioEBase + gpioODROffset
	gpioEBSRRAddr  = gpioEBase + gpioBSRROffset

	moderFieldWidth = 2
	moderFieldMask  = 0b11
	moderOutput     = 0b01 // General purpose output

	bsrrResetShift = 16 // BSRR upper half clears
)

// System configuration controller
const (
	syscfgBase        = 0x40010000
	syscfgSize        = 0x400
	syscfgEXTICR1Addr = syscfgBase + 0x08

	exticrPortMask = 0b111 // 3-bit port select per EXTI line
	exticrPortA    = 0b000
)

// Extended interrupts and events controller
const (
	extiBase     = 0x40010400
	extiIMRAddr  = extiBase + 0x00 // Interrupt mask
	extiRTSRAddr = extiBase + 0x08 // Rising trigger selection
	extiFTSRAddr = extiBase + 0x0C // Falling trigger selection
	extiPRAddr   = extiBase + 0x14 // Pending, rc_w1
)

// Nested vectored interrupt controller
const (
	nvicISER0Addr = 0xE000E100 // Interrupt set-enable 0..31
)

// Instrumentation trace macrocell
const (
	itmStim0Addr = 0xE0000000 // Stimulus port 0
	itmTERAddr   = 0xE0000E00 // Trace enable
	itmTCRAddr   = 0xE0000E80 // Trace control

	itmStimReady = 1 << 0 // STIM read: FIFO can accept data
	itmTERPort0  = 1 << 0
	itmTCRITMENA = 1 << 0
)

// Board wiring on the STM32F3 Discovery.
const (
	// ButtonPin is the USER pushbutton, PA0.
	ButtonPin = 0
	// LEDPin is the LED driven from the button, PE15.
	LEDPin = 15
	// ButtonLine is the EXTI line fed by ButtonPin.
	ButtonLine = ButtonPin
	// IRQ_EXTI0 is the NVIC vector for EXTI line 0.
	IRQ_EXTI0 = 6
)
