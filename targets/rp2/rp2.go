//go:build rp2040 || rp2350

package rp2

import (
	"machine"
	"time"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"neotx/core"
)

// Strip program: one side-set data pin, 10 state-machine cycles per
// bit. The out consumes the next data bit into x during the low tail
// of the previous bit; the jump pair then holds the pin high for 3
// cycles (a zero) or 6 (a one).
//
// Loaded at a fixed origin: the jump targets are absolute, and the
// assembler does not relocate them.
const stripOrigin = 0

func stripProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 1}
	return []uint16{
		// bitloop:
		asm.Out(rp2pio.OutDestX, 1).Side(0).Delay(3).Encode(), // 0: low tail (T3)
		asm.Jmp(3, rp2pio.JmpXZero).Side(1).Delay(2).Encode(), // 1: rising edge (T1)
		// do_one:
		asm.Jmp(0, rp2pio.JmpAlways).Side(1).Delay(2).Encode(), // 2: stretch high (T2)
		// do_zero:
		asm.Nop().Side(0).Delay(2).Encode(), // 3: early low (T2)
	}
}

// Config describes the strip.
type Config struct {
	Pin machine.Pin

	// PIO selects the PIO block (0 or 1) and StateMachine the state
	// machine within it (0..3). Both default to 0.
	PIO          uint8
	StateMachine uint8

	ResetMicros uint16 // latch time in microseconds, 0 for the default
	Order       core.ColorOrder
}

type emitter struct {
	sm     rp2pio.StateMachine
	word   uint32
	nbytes uint8
}

// Configure claims the state machine, loads the strip program and
// starts it on the 8MHz grid.
func Configure(cfg Config) (*core.Device, error) {
	whole, frac, err := rp2pio.ClkDivFromFrequency(smClockHz, machine.CPUFrequency())
	if err != nil {
		return nil, core.ErrClockRate
	}

	Pio := rp2pio.PIO0
	if cfg.PIO == 1 {
		Pio = rp2pio.PIO1
	}
	sm := Pio.StateMachine(cfg.StateMachine)
	sm.TryClaim()

	program := stripProgram()
	offset, err := Pio.AddProgram(program, stripOrigin)
	if err != nil {
		return nil, err
	}

	cfg.Pin.Configure(machine.PinConfig{Mode: Pio.PinMode()})

	smCfg := rp2pio.DefaultStateMachineConfig()
	smCfg.SetSidesetParams(1, false, false)
	smCfg.SetSidesetPins(cfg.Pin)
	// Shift left so the MSB leaves first; autopull refills from the
	// FIFO every 24 bits, one pixel per word.
	smCfg.SetOutShift(false, true, bitsPerWord)
	smCfg.SetFIFOJoin(rp2pio.FifoJoinTx)
	smCfg.SetWrap(offset, offset+uint8(len(program))-1)
	smCfg.SetClkDivIntFrac(whole, frac)

	sm.Init(offset, smCfg)
	sm.SetPindirsConsecutive(cfg.Pin, 1, true)
	sm.SetPinsConsecutive(cfg.Pin, 1, false)
	sm.SetEnabled(true)

	em := &emitter{sm: sm}
	return core.NewDevice(em, cfg.Order, cfg.ResetMicros), nil
}

func (e *emitter) Activate() {
	e.word = 0
	e.nbytes = 0
}

// EmitByte packs wire bytes into 24-bit FIFO words; the state machine
// shifts each word out MSB first on its own clock, so feeding can
// stall on a full FIFO without disturbing the pulse train.
func (e *emitter) EmitByte(b byte) {
	e.word = e.word<<8 | uint32(b)
	e.nbytes++
	if e.nbytes < 3 {
		return
	}
	for e.sm.IsTxFIFOFull() {
	}
	e.sm.TxPut(e.word << 8)
	e.word = 0
	e.nbytes = 0
}

// Deactivate drains the FIFO so the frame is fully on the wire before
// the session's reset wait starts.
func (e *emitter) Deactivate() error {
	for !e.sm.IsTxFIFOEmpty() {
	}
	// An empty FIFO still leaves up to one word in the OSR.
	time.Sleep(drainMicros * time.Microsecond)
	return nil
}

// DelayMicros sleeps: the PIO holds the bit timing and interrupts stay
// enabled on this target, so a scheduler sleep is safe for the latch
// gap.
func (e *emitter) DelayMicros(us uint16) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
