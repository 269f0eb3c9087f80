// Package sim is a host-side target: a software pulse emitter on a
// configurable virtual clock grid. It records the exact pulse train a
// hardware backend would produce, with segment durations quantized to
// the virtual clock, and doubles as the mock register harness the
// session tests and the host tool's preview mode run against.
package sim

import (
	"fmt"
	"io"

	"neotx/core"
)

// DefaultClockHz is the virtual cycle grid used when none is given,
// matching the clock the software-timed hardware targets run at.
const DefaultClockHz = 16_000_000

// Config describes a simulated strip.
type Config struct {
	ClockHz     uint32 // virtual clock, 0 selects DefaultClockHz
	ResetMicros uint16 // latch time, 0 selects the protocol default
	Order       core.ColorOrder
}

// Pulse is one recorded bit: the logical value and the high/low
// segment durations in nanoseconds on the virtual clock grid.
type Pulse struct {
	One       bool
	HighNanos uint32
	LowNanos  uint32
}

// Strip records everything emitted at it. Fields are exported for
// test assertions; reading them mid-session is fine, the recorder has
// no hidden state.
type Strip struct {
	clockHz uint32
	shape   core.BitShape
	order   core.ColorOrder

	Pulses        []Pulse
	Bytes         []byte
	Activations   int
	Deactivations int
	WaitedMicros  uint32
}

// Configure builds a simulated device. It applies the same timing
// feasibility check a hardware target would: a virtual clock whose
// zero-bit high segment cannot stay under the misread ceiling is
// rejected with core.ErrClockRate.
func Configure(cfg Config) (*core.Device, *Strip, error) {
	clockHz := cfg.ClockHz
	if clockHz == 0 {
		clockHz = DefaultClockHz
	}
	shape, err := core.ShapeBits(clockHz)
	if err != nil {
		return nil, nil, err
	}
	s := &Strip{
		clockHz: clockHz,
		shape:   shape,
		order:   cfg.Order,
	}
	return core.NewDevice(s, cfg.Order, cfg.ResetMicros), s, nil
}

// ClockHz reports the virtual clock the strip quantizes against.
func (s *Strip) ClockHz() uint32 { return s.clockHz }

// Shape reports the quantized pulse table.
func (s *Strip) Shape() core.BitShape { return s.shape }

func (s *Strip) Activate() {
	s.Activations++
}

func (s *Strip) Deactivate() error {
	s.Deactivations++
	return nil
}

func (s *Strip) DelayMicros(us uint16) {
	s.WaitedMicros += uint32(us)
}

// EmitByte records the 8 pulses of b, most significant bit first.
func (s *Strip) EmitByte(b byte) {
	s.Bytes = append(s.Bytes, b)
	for i := 0; i < 8; i++ {
		if b&0x80 != 0 {
			s.Pulses = append(s.Pulses, Pulse{
				One:       true,
				HighNanos: core.NanosFor(s.shape.OneHigh, s.clockHz),
				LowNanos:  core.NanosFor(s.shape.OneLow, s.clockHz),
			})
		} else {
			s.Pulses = append(s.Pulses, Pulse{
				HighNanos: core.NanosFor(s.shape.ZeroHigh, s.clockHz),
				LowNanos:  core.NanosFor(s.shape.ZeroLow, s.clockHz),
			})
		}
		b <<= 1
	}
}

// Reset clears the recordings while keeping the configuration, so one
// strip can be reused frame after frame.
func (s *Strip) Reset() {
	s.Pulses = s.Pulses[:0]
	s.Bytes = s.Bytes[:0]
}

// Pixels reconstructs the transmitted pixels from the recorded wire
// bytes by inverting the strip's color-order permutation. A trailing
// partial pixel is dropped.
func (s *Strip) Pixels() []core.Pixel {
	off := s.order.Offsets()
	px := make([]core.Pixel, len(s.Bytes)/3)
	for i := range px {
		var ch [3]uint8
		for j := 0; j < 3; j++ {
			ch[off[j]] = s.Bytes[i*3+j]
		}
		px[i] = core.Pixel{R: ch[0], G: ch[1], B: ch[2]}
	}
	return px
}

// RenderANSI writes the recorded pixels as a row of truecolor terminal
// swatches, one two-column block per LED.
func (s *Strip) RenderANSI(w io.Writer) {
	for _, p := range s.Pixels() {
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm  ", p.R, p.G, p.B)
	}
	fmt.Fprint(w, "\x1b[0m\n")
}
