package avr

import (
	"testing"

	"neotx/core"
)

// The constant arithmetic in timing.go mirrors core.CyclesFor; if the
// two ever disagree the padding is wrong on the real grid.
func TestSegmentBudgetsMatchCoreMath(t *testing.T) {
	tests := []struct {
		name  string
		nanos uint32
		got   uint32
	}{
		{"one high", core.OneHighNanos, oneHighCycles},
		{"one low", core.OneLowNanos, oneLowCycles},
		{"zero high", core.ZeroHighNanos, zeroHighCycles},
		{"zero low", core.ZeroLowNanos, zeroLowCycles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if want := core.CyclesFor(tt.nanos, ClockHz); tt.got != want {
				t.Errorf("budget = %d cycles, want %d", tt.got, want)
			}
		})
	}
}

func TestPaddingNonNegative(t *testing.T) {
	pads := []struct {
		name string
		got  uint32
	}{
		{"one high", oneHighPads},
		{"one low", oneLowPads},
		{"zero high", zeroHighPads},
		{"zero low", zeroLowPads},
	}
	for _, p := range pads {
		// Unsigned constants cannot go negative; what this asserts is
		// that the compile-time derivation and the runtime view agree.
		if p.got > 32 {
			t.Errorf("%s padding = %d cycles, implausibly large", p.name, p.got)
		}
	}
}

func TestZeroHighStaysUnderCeiling(t *testing.T) {
	ns := core.NanosFor(zeroHighCycles, ClockHz)
	if ns > core.ZeroHighCeilNanos {
		t.Errorf("zero-bit high = %dns, over the %dns ceiling", ns, core.ZeroHighCeilNanos)
	}
}

func TestDelayCalibration(t *testing.T) {
	if loopsPerMicro != 4 {
		t.Errorf("loopsPerMicro = %d, want 4 on the 16MHz grid", loopsPerMicro)
	}
	// The emitter multiplies instead of calling core.DelayLoops to
	// keep the hot path free of 64-bit math; both must agree.
	for _, us := range []uint16{1, 50, 255} {
		direct := uint32(us) * loopsPerMicro
		viaCore := core.DelayLoops(us, ClockHz, delayLoopCycles, 0)
		if direct != viaCore {
			t.Errorf("%dus: emitter %d loops, core math %d", us, direct, viaCore)
		}
	}
}
