//go:build tinygo && avr

package arduino

import (
	avrdev "device/avr"
	"runtime/volatile"

	"neotx/core"
	"neotx/targets/avr"
)

// Config describes the strip in board terms.
type Config struct {
	Pins        []uint8 // logical board pins, D0..D19; one shared port
	ResetMicros uint8   // latch time in microseconds, 0 for the default
	Order       core.ColorOrder
}

// Configure resolves the board pins through the Uno/Nano pin map and
// hands the shared port to the raw AVR backend.
func Configure(cfg Config) (*core.Device, error) {
	port, bits, err := groupPins(cfg.Pins)
	if err != nil {
		return nil, err
	}
	out, ddr := portRegs(port)
	return avr.Configure(avr.Config{
		Port:        out,
		DDR:         ddr,
		Pins:        bits,
		ResetMicros: cfg.ResetMicros,
		Order:       cfg.Order,
	})
}

func portRegs(p portIndex) (out, ddr *volatile.Register8) {
	switch p {
	case portB:
		return avrdev.PORTB, avrdev.DDRB
	case portC:
		return avrdev.PORTC, avrdev.DDRC
	default:
		return avrdev.PORTD, avrdev.DDRD
	}
}
