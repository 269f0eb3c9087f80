//go:build tinygo && avr

package avr

import (
	"device"
	"machine"
	"runtime/volatile"

	"neotx/core"
)

// Config describes the pins to drive. All pins live on one output
// port register and are toggled with a single store per edge.
type Config struct {
	Port *volatile.Register8 // output register shared by all pins
	DDR  *volatile.Register8 // matching data direction register
	Pins []uint8             // bit numbers within Port

	// ResetMicros is the latch time in microseconds; the delay
	// counter on this target is 8-bit, like the grid it runs on.
	// 0 selects the protocol default.
	ResetMicros uint8

	Order core.ColorOrder
}

// Cached by Activate for the bit primitives. The primitives read
// globals instead of taking parameters: the parameter loads would not
// fit the segment cycle budget.
var (
	txPort   *volatile.Register8
	maskHi   uint8
	maskLo   uint8
	irqState core.InterruptState
)

type emitter struct {
	port   *volatile.Register8
	maskHi uint8
	maskLo uint8
}

// Configure validates the pin set, switches the pins to output and
// precomputes the mask pair. The mask pair folds in the port shadow at
// configure time, so pulse edges never disturb the port's other bits.
func Configure(cfg Config) (*core.Device, error) {
	if len(cfg.Pins) == 0 {
		return nil, core.ErrNoPins
	}
	if machine.CPUFrequency() != ClockHz {
		return nil, core.ErrClockRate
	}

	var mask uint8
	for _, pin := range cfg.Pins {
		mask |= 1 << pin
	}
	cfg.DDR.SetBits(mask)

	shadow := cfg.Port.Get()
	em := &emitter{
		port:   cfg.Port,
		maskHi: mask | shadow,
		maskLo: ^mask & shadow,
	}
	core.DebugPrintln("ws2812: avr maskhi=" + core.Utoa(uint32(em.maskHi)) +
		" masklo=" + core.Utoa(uint32(em.maskLo)))
	return core.NewDevice(em, cfg.Order, uint16(cfg.ResetMicros)), nil
}

func (e *emitter) Activate() {
	txPort = e.port
	maskHi = e.maskHi
	maskLo = e.maskLo
	irqState = core.DisableInterrupts()
}

func (e *emitter) Deactivate() error {
	core.RestoreInterrupts(irqState)
	return nil
}

// EmitByte shifts the byte out MSB first through the two pulse
// primitives. Precondition: Activate has run and interrupts are off;
// not re-checked here.
func (e *emitter) EmitByte(b byte) {
	for i := 0; i < 8; i++ {
		if b&0x80 != 0 {
			emitOne()
		} else {
			emitZero()
		}
		b <<= 1
	}
}

// The pulse primitives must never be inlined: the call boundary is
// what keeps their cycle count independent of the caller, and the nop
// chains are counted against timing.go's budgets. Lengths are pinned
// there by compile-time assertions.

//go:noinline
func emitOne() {
	txPort.Set(maskHi)
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	txPort.Set(maskLo)
	device.Asm("nop")
}

//go:noinline
func emitZero() {
	txPort.Set(maskHi)
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	txPort.Set(maskLo)
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
	device.Asm("nop")
}

// DelayMicros busy-waits with interrupts masked so handler jitter
// cannot stretch the wait. Loop overhead makes the wait come out
// slightly long, never short.
//
//go:noinline
func (e *emitter) DelayMicros(us uint16) {
	state := core.DisableInterrupts()
	for n := uint32(us) * loopsPerMicro; n > 0; n-- {
		device.Asm("nop")
	}
	core.RestoreInterrupts(state)
}
