// Package stream turns pixel buffers into paced Adalight frames on a
// serial port. It is the PC half of the driver: effects render into a
// reusable RGB buffer, the streamer frames it and holds the target
// frame rate.
package stream

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"neotx/protocol"
)

// Streamer frames pixel buffers and writes them to a port, pacing
// successive sends to a target frame rate. Not safe for concurrent
// use; one goroutine owns a streamer.
type Streamer struct {
	port     io.Writer
	log      zerolog.Logger
	interval time.Duration
	last     time.Time
	scratch  []byte
	frames   uint64
}

// New builds a streamer on the port. fps of 0 disables pacing: every
// Send goes out immediately.
func New(port io.Writer, fps int, log zerolog.Logger) *Streamer {
	s := &Streamer{
		port: port,
		log:  log,
	}
	if fps > 0 {
		s.interval = time.Second / time.Duration(fps)
	}
	return s
}

// Send frames the pixel buffer (3 bytes per pixel, R,G,B) and writes
// it to the port, sleeping first if the previous frame went out less
// than a frame interval ago.
func (s *Streamer) Send(pixels []byte) error {
	if s.interval > 0 && !s.last.IsZero() {
		if d := time.Until(s.last.Add(s.interval)); d > 0 {
			time.Sleep(d)
		}
	}

	s.scratch = protocol.AppendFrame(s.scratch[:0], pixels)
	if len(s.scratch) == 0 {
		return nil
	}
	if _, err := s.port.Write(s.scratch); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	s.last = time.Now()
	s.frames++
	s.log.Debug().
		Int("bytes", len(s.scratch)).
		Uint64("frame", s.frames).
		Msg("frame sent")
	return nil
}

// Frames reports how many frames have been sent.
func (s *Streamer) Frames() uint64 { return s.frames }
