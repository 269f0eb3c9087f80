package core

// WS2812 pulse widths in nanoseconds. The strip samples the high time of
// each bit to tell a one from a zero; the values below are the usual
// targets with a ±150ns working band. Low segments may run long without
// corrupting data as long as they stay far below the reset window, and on
// software-timed targets they do run long (call and loop overhead), which
// is why only the high segments are budgeted strictly.
const (
	OneHighNanos  = 700
	OneLowNanos   = 600
	ZeroHighNanos = 350
	ZeroLowNanos  = 800

	// PulseToleranceNanos is the working band around each target width.
	// Sourced from strip behavior, not a datasheet guarantee; validate
	// against real hardware when driving exotic clones.
	PulseToleranceNanos = 150

	// ZeroHighCeilNanos is the hard limit for the zero-bit high segment.
	// Past this, strips begin reading the bit as a one.
	ZeroHighCeilNanos = 550

	// ZeroHighWarnNanos marks the borderline-but-workable band.
	ZeroHighWarnNanos = 450

	// DefaultResetMicros is the latch time most strips need between
	// frames. Some tolerate much less.
	DefaultResetMicros = 50
)

// CyclesFor converts a duration to CPU cycles at clockHz, rounded to the
// nearest whole cycle.
func CyclesFor(nanos, clockHz uint32) uint32 {
	return uint32((uint64(nanos)*uint64(clockHz) + 500_000_000) / 1_000_000_000)
}

// NanosFor converts a cycle count at clockHz back to nanoseconds,
// rounded to the nearest.
func NanosFor(cycles, clockHz uint32) uint32 {
	if clockHz == 0 {
		return 0
	}
	return uint32((uint64(cycles)*1_000_000_000 + uint64(clockHz)/2) / uint64(clockHz))
}

// PadCycles computes the filler cycles a pulse segment needs on top of its
// fixed instruction cost. A fixed cost that already overshoots the target
// means the clock is too slow for that segment: the raw pad would be
// negative, and the configuration must be rejected rather than rounded.
func PadCycles(targetNanos, fixedCycles, clockHz uint32) (uint32, error) {
	want := CyclesFor(targetNanos, clockHz)
	if want < fixedCycles {
		return 0, ErrClockRate
	}
	return want - fixedCycles, nil
}

// BitShape is the pulse table quantized onto a clock's cycle grid. Each
// segment is at least one cycle.
type BitShape struct {
	OneHigh  uint32
	OneLow   uint32
	ZeroHigh uint32
	ZeroLow  uint32
}

func segmentCycles(nanos, clockHz uint32) uint32 {
	c := CyclesFor(nanos, clockHz)
	if c == 0 {
		c = 1
	}
	return c
}

// ShapeBits quantizes the pulse table at clockHz. It fails with
// ErrClockRate when the grid cannot hold the zero-bit high segment under
// the misread ceiling, which is the single protocol-critical constraint.
func ShapeBits(clockHz uint32) (BitShape, error) {
	s := BitShape{
		OneHigh:  segmentCycles(OneHighNanos, clockHz),
		OneLow:   segmentCycles(OneLowNanos, clockHz),
		ZeroHigh: segmentCycles(ZeroHighNanos, clockHz),
		ZeroLow:  segmentCycles(ZeroLowNanos, clockHz),
	}
	if NanosFor(s.ZeroHigh, clockHz) > ZeroHighCeilNanos {
		return s, ErrClockRate
	}
	return s, nil
}

// Marginal reports whether the quantized zero-bit high segment lands in
// the borderline band where some strips start misreading.
func (s BitShape) Marginal(clockHz uint32) bool {
	ns := NanosFor(s.ZeroHigh, clockHz)
	return ns > ZeroHighWarnNanos && ns <= ZeroHighCeilNanos
}

// DelayLoops converts a microsecond count into iterations of a busy loop
// that costs cyclesPerLoop per pass after overheadCycles of setup. The
// wait comes out slightly long rather than short: remainders are kept.
func DelayLoops(us uint16, clockHz, cyclesPerLoop, overheadCycles uint32) uint32 {
	if cyclesPerLoop == 0 {
		return 0
	}
	total := uint64(us) * uint64(clockHz) / 1_000_000
	if total <= uint64(overheadCycles) {
		return 0
	}
	return uint32((total - uint64(overheadCycles) + uint64(cyclesPerLoop) - 1) / uint64(cyclesPerLoop))
}
