// Package protocol implements the Adalight serial wire format, the
// de-facto protocol for streaming LED frames from a PC to a
// microcontroller: a 6-byte header ("Ada", pixel count minus one as a
// big-endian uint16, a checksum over the count) followed by 3 bytes of
// color payload per pixel. The payload is raw wire-order bytes; color
// permutation is the driver's business, not the framing's.
package protocol

import "errors"

// HeaderLen is the size of the frame header preceding the payload.
const HeaderLen = 6

const (
	magic0 = 'A'
	magic1 = 'd'
	magic2 = 'a'
)

// ErrTooManyPixels is returned by the decoder when a frame header
// announces more pixels than the decoder was sized for.
var ErrTooManyPixels = errors.New("adalight: frame exceeds pixel limit")

// Checksum computes the header checksum over the two count bytes.
func Checksum(hi, lo byte) byte {
	return hi ^ lo ^ 0x55
}

// AppendFrame appends a complete frame carrying the pixel payload to
// dst and returns the extended slice. pixels holds 3 bytes per pixel;
// a trailing partial pixel is truncated. An empty payload appends
// nothing, since the wire format cannot express zero pixels.
func AppendFrame(dst, pixels []byte) []byte {
	n := len(pixels) / 3
	if n == 0 {
		return dst
	}
	hi := byte((n - 1) >> 8)
	lo := byte(n - 1)
	dst = append(dst, magic0, magic1, magic2, hi, lo, Checksum(hi, lo))
	return append(dst, pixels[:n*3]...)
}

type decodeState uint8

const (
	stateMagic0 decodeState = iota
	stateMagic1
	stateMagic2
	stateCountHi
	stateCountLo
	stateChecksum
	statePayload
)

// Decoder is a byte-fed state machine that reassembles frames from a
// serial stream. It resynchronizes on the header magic after garbage,
// a bad checksum, or an oversized count, so a stream joined mid-frame
// recovers at the next frame boundary.
type Decoder struct {
	state     decodeState
	hi, lo    byte
	need      int
	frame     []byte
	maxPixels int
}

// NewDecoder returns a decoder accepting frames of up to maxPixels
// pixels. The frame buffer is allocated once, up front: the decoder
// never grows beyond the bound it was sized for.
func NewDecoder(maxPixels int) *Decoder {
	return &Decoder{
		frame:     make([]byte, 0, maxPixels*3),
		maxPixels: maxPixels,
	}
}

// Feed consumes one byte from the stream. When the byte completes a
// frame, Feed returns the payload and true; the slice is valid only
// until the next call. Malformed input is skipped silently — the
// decoder hunts for the next header — except for an oversized count,
// which is reported so the caller can log it, then resynchronized past.
func (d *Decoder) Feed(b byte) ([]byte, bool, error) {
	switch d.state {
	case stateMagic0:
		if b == magic0 {
			d.state = stateMagic1
		}
	case stateMagic1:
		if b == magic1 {
			d.state = stateMagic2
		} else {
			d.resync(b)
		}
	case stateMagic2:
		if b == magic2 {
			d.state = stateCountHi
		} else {
			d.resync(b)
		}
	case stateCountHi:
		d.hi = b
		d.state = stateCountLo
	case stateCountLo:
		d.lo = b
		d.state = stateChecksum
	case stateChecksum:
		if b != Checksum(d.hi, d.lo) {
			d.resync(b)
			return nil, false, nil
		}
		count := (int(d.hi)<<8 | int(d.lo)) + 1
		if count > d.maxPixels {
			d.state = stateMagic0
			return nil, false, ErrTooManyPixels
		}
		d.need = count * 3
		d.frame = d.frame[:0]
		d.state = statePayload
	case statePayload:
		d.frame = append(d.frame, b)
		if len(d.frame) == d.need {
			d.state = stateMagic0
			return d.frame, true, nil
		}
	}
	return nil, false, nil
}

// resync restarts header hunting, treating the offending byte as a
// potential first magic byte so back-to-back "A..Ada" sequences are
// not missed.
func (d *Decoder) resync(b byte) {
	if b == magic0 {
		d.state = stateMagic1
	} else {
		d.state = stateMagic0
	}
}
