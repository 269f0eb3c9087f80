package stream

// Effects render into caller-owned RGB buffers (3 bytes per pixel) so
// a frame loop never allocates.

// Solid fills the buffer with one color.
func Solid(buf []byte, r, g, b uint8) {
	for i := 0; i+3 <= len(buf); i += 3 {
		buf[i] = r
		buf[i+1] = g
		buf[i+2] = b
	}
}

// Wheel maps a position on a 0..255 color wheel to an RGB color, red
// through green through blue and back.
func Wheel(pos uint8) (r, g, b uint8) {
	pos = 255 - pos
	switch {
	case pos < 85:
		return 255 - pos*3, 0, pos * 3
	case pos < 170:
		pos -= 85
		return 0, pos * 3, 255 - pos*3
	default:
		pos -= 170
		return pos * 3, 255 - pos*3, 0
	}
}

// Rainbow paints a rolling rainbow across the buffer; advancing phase
// between frames scrolls it.
func Rainbow(buf []byte, phase uint8) {
	n := len(buf) / 3
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		r, g, b := Wheel(uint8(i*256/n) + phase)
		buf[i*3] = r
		buf[i*3+1] = g
		buf[i*3+2] = b
	}
}
