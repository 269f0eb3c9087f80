package core

import "errors"

// Configuration errors shared by every target backend. Targets return
// these from Configure; nothing in the transmit path reports errors
// (see the session documentation for the runtime contract).
var (
	// ErrNoPins means the configuration named no data pins to drive.
	ErrNoPins = errors.New("ws2812: no data pins configured")

	// ErrPinSpan means the configured pins do not share a single
	// output port register and cannot be driven in one store.
	ErrPinSpan = errors.New("ws2812: data pins do not share an output port")

	// ErrClockRate means the host clock cannot hold the bit timing,
	// or the target only supports a specific clock grid.
	ErrClockRate = errors.New("ws2812: clock cannot satisfy the bit timing")
)
