// Package rp2 drives WS2812 strips from RP2040/RP2350 parts. Pulse
// timing is offloaded to a PIO state machine: the side-set program
// below holds the bit widths on its own clock grid, so the CPU only
// feeds bytes and interrupts stay enabled during transmission.
package rp2

// The state machine runs at 8MHz (125ns per cycle) and spends 10
// cycles per bit. Highs are held by side-set: 3 cycles for a zero,
// 6 for a one, giving 375ns/750ns highs and a 1250ns bit period.
const (
	smClockHz = 8_000_000

	zeroHighCycles = 3  // T1: the shared rising window
	oneHighCycles  = 6  // T1+T2: a one stretches the high
	cyclesPerBit   = 10 // T1+T2+T3

	// bitsPerWord is the FIFO packing: one pixel's three wire bytes
	// per 32-bit word, shifted out left-first under autopull.
	bitsPerWord = 24
)

// drainMicros is how long the state machine needs to shift out a full
// FIFO word after the FIFO itself reads empty: the OSR can still hold
// up to one word.
const drainMicros = bitsPerWord * cyclesPerBit * 1_000_000 / smClockHz
