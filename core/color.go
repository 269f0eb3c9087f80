package core

// Pixel holds one LED's intensities in a fixed R,G,B field order.
// The physical wire order of the attached strip is applied only at
// transmission time through the device's ColorOrder.
type Pixel struct {
	R uint8
	G uint8
	B uint8
}

// ColorOrder selects the byte sequence a strip expects on the wire.
// The zero value is GRB, which is what most WS2812 variants use.
type ColorOrder uint8

const (
	OrderGRB ColorOrder = iota
	OrderRGB
	OrderRBG
	OrderBRG
	OrderBGR
	OrderGBR
)

// colorOffsets maps each wire position to the Pixel field offset to
// read (0=R, 1=G, 2=B). One entry per ColorOrder value.
var colorOffsets = [6][3]uint8{
	OrderGRB: {1, 0, 2},
	OrderRGB: {0, 1, 2},
	OrderRBG: {0, 2, 1},
	OrderBRG: {2, 0, 1},
	OrderBGR: {2, 1, 0},
	OrderGBR: {1, 2, 0},
}

// Offsets returns the wire-position → field-offset table for the order.
// Unknown selectors fall back to GRB.
func (o ColorOrder) Offsets() [3]uint8 {
	if int(o) >= len(colorOffsets) {
		o = OrderGRB
	}
	return colorOffsets[o]
}

func (o ColorOrder) String() string {
	switch o {
	case OrderGRB:
		return "GRB"
	case OrderRGB:
		return "RGB"
	case OrderRBG:
		return "RBG"
	case OrderBRG:
		return "BRG"
	case OrderBGR:
		return "BGR"
	case OrderGBR:
		return "GBR"
	}
	return "GRB"
}
