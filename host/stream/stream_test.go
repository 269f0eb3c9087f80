package stream

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"neotx/protocol"
)

func TestSendWritesFramedPixels(t *testing.T) {
	var port bytes.Buffer
	s := New(&port, 0, zerolog.Nop())

	pixels := []byte{255, 0, 0, 0, 255, 0}
	if err := s.Send(pixels); err != nil {
		t.Fatalf("Send = %v", err)
	}

	want := protocol.AppendFrame(nil, pixels)
	if !bytes.Equal(port.Bytes(), want) {
		t.Errorf("port saw %v, want %v", port.Bytes(), want)
	}
	if s.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", s.Frames())
	}
}

func TestSendEmptyBufferIsNoOp(t *testing.T) {
	var port bytes.Buffer
	s := New(&port, 0, zerolog.Nop())

	if err := s.Send(nil); err != nil {
		t.Fatalf("Send = %v", err)
	}
	if port.Len() != 0 {
		t.Errorf("empty send wrote %d bytes", port.Len())
	}
	if s.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", s.Frames())
	}
}

func TestSolidFillsTriplets(t *testing.T) {
	buf := make([]byte, 9)
	Solid(buf, 10, 20, 30)
	want := []byte{10, 20, 30, 10, 20, 30, 10, 20, 30}
	if !bytes.Equal(buf, want) {
		t.Errorf("buf = %v, want %v", buf, want)
	}
}

func TestWheelCoversPrimaries(t *testing.T) {
	// Position 255 wraps to the red end of the wheel.
	if r, g, b := Wheel(255); r != 255 || g != 0 || b != 0 {
		t.Errorf("Wheel(255) = %d,%d,%d, want 255,0,0", r, g, b)
	}
	// Every position keeps total intensity constant: the wheel fades
	// between two channels at a time.
	for pos := 0; pos < 256; pos++ {
		r, g, b := Wheel(uint8(pos))
		if int(r)+int(g)+int(b) != 255 {
			t.Fatalf("Wheel(%d) = %d,%d,%d, intensities sum to %d",
				pos, r, g, b, int(r)+int(g)+int(b))
		}
	}
}

func TestRainbowIsDeterministicAndScrolls(t *testing.T) {
	a := make([]byte, 30)
	b := make([]byte, 30)
	Rainbow(a, 0)
	Rainbow(b, 0)
	if !bytes.Equal(a, b) {
		t.Error("same phase produced different frames")
	}
	Rainbow(b, 128)
	if bytes.Equal(a, b) {
		t.Error("advancing the phase did not change the frame")
	}
}
