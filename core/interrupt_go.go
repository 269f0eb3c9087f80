//go:build !tinygo

package core

// InterruptState holds the interrupt-enable state stashed by
// DisableInterrupts. Regular Go builds have no maskable interrupts;
// the helpers exist so portable target code and tests compile.
type InterruptState uintptr

// DisableInterrupts is a no-op on regular Go builds.
func DisableInterrupts() InterruptState {
	return 0
}

// RestoreInterrupts is a no-op on regular Go builds.
func RestoreInterrupts(state InterruptState) {
	// No-op
}
