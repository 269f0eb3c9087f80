// Package avr drives WS2812 strips from bare 8-bit AVR ports: raw
// port-register stores with nop padding on a 16MHz cycle grid, the
// whole transmit window run with interrupts masked.
package avr

import "neotx/core"

// ClockHz is the only supported core clock. Pulse padding is counted
// in cycles of this grid; Configure rejects parts running at anything
// else rather than ship skewed timing.
const ClockHz = 16_000_000

// Fixed instruction costs inside and between the bit primitives, in
// cycles of the 16MHz grid. The link cost covers the call, return and
// the caller's bit test between two primitives, so low segments come
// out at their nominal width instead of stretching by the call
// overhead.
const (
	riseCycles = 2 // st completing the rising edge
	fallCycles = 2 // st completing the falling edge
	linkCycles = 9 // rcall, ret and the bit-test glue between primitives

	// One pass of the calibrated delay loop: dec, branch and the nop
	// keeping the loop body opaque to the optimizer.
	delayLoopCycles = 4
)

// Segment budgets: the pulse table quantized onto the 16MHz grid.
// Mirrors core.CyclesFor, written as constant arithmetic so the
// padding below is checkable at compile time.
const (
	oneHighCycles  = (core.OneHighNanos*ClockHz + 500_000_000) / 1_000_000_000
	oneLowCycles   = (core.OneLowNanos*ClockHz + 500_000_000) / 1_000_000_000
	zeroHighCycles = (core.ZeroHighNanos*ClockHz + 500_000_000) / 1_000_000_000
	zeroLowCycles  = (core.ZeroLowNanos*ClockHz + 500_000_000) / 1_000_000_000
)

// Nop padding per segment on top of the fixed costs.
const (
	oneHighPads  = oneHighCycles - fallCycles
	oneLowPads   = oneLowCycles - linkCycles
	zeroHighPads = zeroHighCycles - fallCycles
	zeroLowPads  = zeroLowCycles - linkCycles
)

// Build-time feasibility: negative padding, or a zero-bit high segment
// past the misread ceiling, must fail the build outright instead of
// degrading silently. Each constant overflows uint if the grid cannot
// hold its segment.
const (
	_ uint = oneHighPads
	_ uint = oneLowPads
	_ uint = zeroHighPads
	_ uint = zeroLowPads
	_ uint = (core.ZeroHighCeilNanos*ClockHz)/1_000_000_000 - zeroHighCycles
)

// The nop chains in the emitter are written out longhand for exactly
// these budgets; both directions fail the build if the numbers drift.
const (
	_ uint = oneHighPads - 9
	_ uint = 9 - oneHighPads
	_ uint = oneLowPads - 1
	_ uint = 1 - oneLowPads
	_ uint = zeroHighPads - 4
	_ uint = 4 - zeroHighPads
	_ uint = zeroLowPads - 4
	_ uint = 4 - zeroLowPads
)

// loopsPerMicro calibrates the busy-wait delay to the clock grid.
const loopsPerMicro = ClockHz / 1_000_000 / delayLoopCycles
