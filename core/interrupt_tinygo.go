//go:build tinygo

package core

import "runtime/interrupt"

// InterruptState is the machine interrupt-enable state stashed by
// DisableInterrupts (SREG on AVR, PRIMASK on ARM).
type InterruptState = interrupt.State

// DisableInterrupts disables interrupts and returns the previous state
func DisableInterrupts() InterruptState {
	return interrupt.Disable()
}

// RestoreInterrupts restores a previously stashed interrupt state
func RestoreInterrupts(state InterruptState) {
	interrupt.Restore(state)
}
