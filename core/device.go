package core

// PulseEmitter is the capability boundary between the portable session
// and a target's timing code. Exactly one implementation is compiled
// into any given binary (selected by build tags), so the interface
// calls devirtualize; within a target the bit primitives are direct
// free-function calls and never cross a dynamic dispatch boundary.
type PulseEmitter interface {
	// Activate prepares the hardware for an uninterruptible
	// transmission window. Software-timed targets stash the
	// interrupt-enable state and disable interrupts here.
	Activate()

	// EmitByte sends the 8 bits of b on the wire, most significant
	// bit first. Precondition: a session is open (Activate has run
	// and Deactivate has not); behavior is undefined otherwise.
	EmitByte(b byte)

	// Deactivate ends the transmission window, restoring interrupt
	// state or flushing hardware queues. Backends that buffer a
	// frame report flush failures here.
	Deactivate() error

	// DelayMicros busy-waits or sleeps for at least us microseconds.
	// Best effort: the wait comes out slightly long, never short.
	DelayMicros(us uint16)
}

// Device is the handle for one logically-grouped set of LED strings
// driven in parallel from the same output. Built by a target Configure,
// immutable afterwards, and caller-owned: the caller keeps it alive for
// the lifetime of every transmission that references it.
type Device struct {
	emitter     PulseEmitter
	offsets     [3]uint8
	order       ColorOrder
	resetMicros uint16
}

// NewDevice wraps a target emitter into a Device. Target Configure
// functions call this after validating their own configuration.
// A resetMicros of 0 selects DefaultResetMicros.
func NewDevice(em PulseEmitter, order ColorOrder, resetMicros uint16) *Device {
	if resetMicros == 0 {
		resetMicros = DefaultResetMicros
	}
	return &Device{
		emitter:     em,
		offsets:     order.Offsets(),
		order:       order,
		resetMicros: resetMicros,
	}
}

// Order reports the wire color order the device was configured with.
func (d *Device) Order() ColorOrder { return d.order }

// ResetMicros reports the configured latch time in microseconds.
func (d *Device) ResetMicros() uint16 { return d.resetMicros }
