// Package arduino drives WS2812 strips through Uno/Nano logical pin
// numbers: D0..D13 plus A0..A5 addressed as D14..D19. Pins resolve
// through the board's pin-to-port map and the raw AVR backend does the
// actual pulse work.
package arduino

import (
	"errors"

	"neotx/core"
)

// ErrUnknownPin means a pin number outside the D0..D19 board layout.
var ErrUnknownPin = errors.New("ws2812: pin is not a D0..D19 board pin")

// NumPins is the number of logical board pins (D0..D13, A0..A5).
const NumPins = 20

// portIndex identifies one of the ATmega328P GPIO ports.
type portIndex uint8

const (
	portB portIndex = iota // D8..D13
	portC                  // A0..A5 (D14..D19)
	portD                  // D0..D7
)

// pinPort resolves a logical board pin to its port and bit, following
// the Uno/Nano layout.
func pinPort(pin uint8) (portIndex, uint8, bool) {
	switch {
	case pin < 8:
		return portD, pin, true
	case pin < 14:
		return portB, pin - 8, true
	case pin < NumPins:
		return portC, pin - 14, true
	}
	return 0, 0, false
}

// groupPins resolves a pin set to its shared port and the per-port bit
// numbers. All pins must land on one port: a WS2812 edge is a single
// port store, so pins spanning ports cannot be driven together.
func groupPins(pins []uint8) (portIndex, []uint8, error) {
	if len(pins) == 0 {
		return 0, nil, core.ErrNoPins
	}
	var port portIndex
	bits := make([]uint8, len(pins))
	for i, pin := range pins {
		p, bit, ok := pinPort(pin)
		if !ok {
			return 0, nil, ErrUnknownPin
		}
		if i == 0 {
			port = p
		} else if p != port {
			return 0, nil, core.ErrPinSpan
		}
		bits[i] = bit
	}
	return port, bits, nil
}
