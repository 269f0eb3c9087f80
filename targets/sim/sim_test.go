package sim

import (
	"bytes"
	"strings"
	"testing"

	"neotx/core"
)

func configure(t *testing.T, cfg Config) (*core.Device, *Strip) {
	t.Helper()
	dev, strip, err := Configure(cfg)
	if err != nil {
		t.Fatalf("Configure(%+v) = %v", cfg, err)
	}
	t.Cleanup(func() { dev.Close() })
	return dev, strip
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

// On the 16MHz grid every segment must land inside the working band
// around its target width, and the zero-bit high must stay under the
// misread ceiling. This is the cycle-count regression that stands in
// for a logic-analyzer trace.
func TestPulseDurationsAt16MHz(t *testing.T) {
	dev, strip := configure(t, Config{})

	dev.Prepare()
	dev.Transmit([]core.Pixel{{R: 0xAA, G: 0xAA, B: 0xAA}})
	dev.Close()

	if len(strip.Pulses) != 24 {
		t.Fatalf("recorded %d pulses, want 24", len(strip.Pulses))
	}
	for i, p := range strip.Pulses {
		if p.One {
			if absDiff(p.HighNanos, core.OneHighNanos) > core.PulseToleranceNanos {
				t.Errorf("pulse %d: one-high %dns outside band", i, p.HighNanos)
			}
			if absDiff(p.LowNanos, core.OneLowNanos) > core.PulseToleranceNanos {
				t.Errorf("pulse %d: one-low %dns outside band", i, p.LowNanos)
			}
		} else {
			if absDiff(p.HighNanos, core.ZeroHighNanos) > core.PulseToleranceNanos {
				t.Errorf("pulse %d: zero-high %dns outside band", i, p.HighNanos)
			}
			if p.HighNanos > core.ZeroHighCeilNanos {
				t.Errorf("pulse %d: zero-high %dns over the misread ceiling", i, p.HighNanos)
			}
			// The zero-bit low may stretch past the nominal band on
			// slower grids; it only has to stay far under the reset
			// window.
			if p.LowNanos >= 1000*uint32(dev.ResetMicros()) {
				t.Errorf("pulse %d: zero-low %dns reaches the reset window", i, p.LowNanos)
			}
		}
	}
}

// A GRB device given {R:255 G:128 B:0} must emit the bit patterns of
// 128, then 255, then 0: wire order is G,R,B although the struct
// stores R,G,B.
func TestWireOrderAndBitPatterns(t *testing.T) {
	dev, strip := configure(t, Config{Order: core.OrderGRB})

	dev.Prepare()
	dev.Transmit([]core.Pixel{{R: 255, G: 128, B: 0}})
	dev.Close()

	if !bytes.Equal(strip.Bytes, []byte{128, 255, 0}) {
		t.Fatalf("wire bytes = %v, want [128 255 0]", strip.Bytes)
	}

	wantBits := make([]bool, 0, 24)
	for _, b := range []byte{128, 255, 0} {
		for i := 7; i >= 0; i-- {
			wantBits = append(wantBits, b&(1<<i) != 0)
		}
	}
	if len(strip.Pulses) != len(wantBits) {
		t.Fatalf("recorded %d pulses, want %d", len(strip.Pulses), len(wantBits))
	}
	for i, want := range wantBits {
		if strip.Pulses[i].One != want {
			t.Errorf("pulse %d: one=%v, want %v", i, strip.Pulses[i].One, want)
		}
	}
}

func TestEmptyTransmitRecordsNothing(t *testing.T) {
	dev, strip := configure(t, Config{})

	dev.Prepare()
	dev.Transmit(nil)
	if len(strip.Pulses) != 0 || len(strip.Bytes) != 0 {
		t.Errorf("empty transmit recorded %d pulses, %d bytes",
			len(strip.Pulses), len(strip.Bytes))
	}
	dev.Close()
}

func TestTooSlowClockRejected(t *testing.T) {
	if _, _, err := Configure(Config{ClockHz: 1_000_000}); err != core.ErrClockRate {
		t.Errorf("Configure(1MHz) = %v, want ErrClockRate", err)
	}
}

func TestMarginalClockAccepted(t *testing.T) {
	_, strip, err := Configure(Config{ClockHz: 2_000_000})
	if err != nil {
		t.Fatalf("Configure(2MHz) = %v", err)
	}
	if !strip.Shape().Marginal(2_000_000) {
		t.Error("2MHz grid not reported as marginal")
	}
}

func TestSessionHooksAndResetWait(t *testing.T) {
	dev, strip := configure(t, Config{ResetMicros: 75})

	dev.Prepare()
	dev.Prepare() // idempotent: the second Prepare must not re-activate
	if strip.Activations != 1 {
		t.Errorf("activations = %d, want 1", strip.Activations)
	}

	dev.Close()
	dev.Close() // symmetric: the second Close must not re-deactivate
	if strip.Deactivations != 1 {
		t.Errorf("deactivations = %d, want 1", strip.Deactivations)
	}
	if strip.WaitedMicros != 75 {
		t.Errorf("waited %dus, want 75", strip.WaitedMicros)
	}
}

func TestPixelsInvertsColorOrder(t *testing.T) {
	want := []core.Pixel{{R: 1, G: 2, B: 3}, {R: 200, G: 100, B: 50}}

	for order := core.ColorOrder(0); order < 6; order++ {
		dev, strip := configure(t, Config{Order: order})
		dev.Prepare()
		dev.Transmit(want)
		dev.Close()

		got := strip.Pixels()
		if len(got) != len(want) {
			t.Fatalf("%v: reconstructed %d pixels, want %d", order, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%v: pixel %d = %+v, want %+v", order, i, got[i], want[i])
			}
		}
	}
}

func TestResetClearsRecordings(t *testing.T) {
	dev, strip := configure(t, Config{})

	dev.Prepare()
	dev.Transmit([]core.Pixel{{R: 1}})
	strip.Reset()
	if len(strip.Pulses) != 0 || len(strip.Bytes) != 0 {
		t.Error("Reset left recordings behind")
	}
	dev.Close()
}

func TestRenderANSI(t *testing.T) {
	dev, strip := configure(t, Config{})

	dev.Prepare()
	dev.Transmit([]core.Pixel{{R: 255, G: 0, B: 0}})
	dev.Close()

	var out strings.Builder
	strip.RenderANSI(&out)
	if !strings.Contains(out.String(), "48;2;255;0;0") {
		t.Errorf("render output %q missing red swatch", out.String())
	}
}
