//go:build !tinygo

// Package nrz drives WS2812 strips from a Linux host (Raspberry Pi
// class hardware): the pulse train is rendered as an NRZ-expanded SPI
// bitstream, three SPI bits per protocol bit, so the SPI peripheral
// reproduces the WS2812 widths without cycle-counted CPU work.
package nrz

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"neotx/core"
)

// ErrOverrun reports that a session pushed more pixels than the
// configured strip length before closing. The excess is dropped; the
// flushed frame holds the first NumPixels pixels.
var ErrOverrun = errors.New("nrz: frame exceeds configured pixel count")

// Config describes the strip.
type Config struct {
	// Port is the spireg name ("" opens the first available port,
	// "/dev/spidev0.0" or "SPI0.0" name a specific one).
	Port string

	// NumPixels is the strip length. The SPI raster is framed per
	// strip, so unlike the microcontroller targets this backend needs
	// to know where a frame ends.
	NumPixels int

	ResetMicros uint16 // latch time in microseconds, 0 for the default
	Order       core.ColorOrder
}

// frameWriter is the slice of nrzled.Dev the emitter uses; tests
// substitute a recorder.
type frameWriter interface {
	Write(pixels []byte) (int, error)
}

type emitter struct {
	dev     frameWriter
	frame   []byte
	size    int
	overrun bool
}

// Configure initializes the periph host drivers, opens the named SPI
// port and builds a device on it.
func Configure(cfg Config) (*core.Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("nrz: host init: %w", err)
	}
	p, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("nrz: open spi port: %w", err)
	}
	return ConfigurePort(p, cfg)
}

// ConfigurePort builds a device on an already-open SPI port. Split out
// for callers with custom wiring and for tests driving a recorded
// port.
func ConfigurePort(p spi.Port, cfg Config) (*core.Device, error) {
	if cfg.NumPixels <= 0 {
		return nil, core.ErrNoPins
	}
	dev, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: cfg.NumPixels,
		Channels:  3,
		// 3 SPI bits per protocol bit at the 800kHz NRZ bit rate.
		Freq: 2500 * physic.KiloHertz,
	})
	if err != nil {
		return nil, fmt.Errorf("nrz: %w", err)
	}
	em := &emitter{
		dev:   dev,
		frame: make([]byte, 0, cfg.NumPixels*3),
		size:  cfg.NumPixels * 3,
	}
	return core.NewDevice(em, cfg.Order, cfg.ResetMicros), nil
}

func (e *emitter) Activate() {
	e.frame = e.frame[:0]
	e.overrun = false
}

// EmitByte buffers one wire byte. The SPI transfer is a single
// rasterized frame, so bytes accumulate until Deactivate flushes.
func (e *emitter) EmitByte(b byte) {
	if len(e.frame) == e.size {
		e.overrun = true
		return
	}
	e.frame = append(e.frame, b)
}

// Deactivate pads the frame to the strip length with dark pixels and
// flushes it through the NRZ raster.
func (e *emitter) Deactivate() error {
	for len(e.frame) < e.size {
		e.frame = append(e.frame, 0)
	}
	_, err := e.dev.Write(e.frame)
	e.frame = e.frame[:0]
	if err != nil {
		return fmt.Errorf("nrz: flush frame: %w", err)
	}
	if e.overrun {
		return ErrOverrun
	}
	return nil
}

// DelayMicros sleeps: the SPI peripheral holds the bit timing on this
// target, so a scheduler sleep is fine for the latch gap.
func (e *emitter) DelayMicros(us uint16) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
