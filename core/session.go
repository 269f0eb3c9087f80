package core

// The transmission session is a single package-global instance: only
// one physical transmission can be in flight on a core at a time, and
// the per-bit primitives read cached state instead of taking parameters
// (parameter loads would not fit the cycle budget on software-timed
// targets). Mutual exclusion is structural: software-timed targets run
// the whole Prepare..Close window with interrupts masked, and there is
// no second thread of control.
var session struct {
	open    bool
	emitter PulseEmitter
}

// Prepare opens a transmission session on the device: the device's
// emitter is cached as the active one and its Activate hook runs
// (interrupt stash and masking on software-timed targets). A no-op if
// a session is already open, even one prepared on another device.
func (d *Device) Prepare() {
	if session.open {
		return
	}
	session.emitter = d.emitter
	session.emitter.Activate()
	session.open = true
}

// Close ends the session: the emitter's Deactivate hook runs (interrupt
// restore or hardware flush), the session is marked closed, and the
// mandatory reset wait is performed so the strip latches and is ready
// for a fresh full-strip write on the next Prepare. A no-op when no
// session is open. The returned error comes from Deactivate; flushing
// backends can fail.
func (d *Device) Close() error {
	if !session.open {
		return nil
	}
	err := session.emitter.Deactivate()
	session.open = false
	d.WaitReset()
	return err
}

// WaitReset busy-waits the device's configured reset time. Callable on
// its own for writers that want to restart painting from the first LED
// without closing the session boundary.
func (d *Device) WaitReset() {
	d.emitter.DelayMicros(d.resetMicros)
}

// Transmit sends the pixels to the strip: for each pixel, the three
// color bytes are re-sequenced through the device's color-order table
// and handed to the active emitter, which shifts each byte out MSB
// first. There is no return value; the side effect is the pulse train
// on the wire.
//
// Repeated calls within one session continue painting from the LED
// after the previous call's last pixel. That is intentional: a caller
// can stream a large virtual strip through a 1-pixel buffer by calling
// Transmit repeatedly. An empty slice emits nothing and leaves the
// session untouched.
//
// Precondition: a session must be open. Behavior without one is
// architecture-defined and unchecked; checking would cost cycles the
// protocol cannot spare. If the session is interrupted on real
// hardware, the strip sees protocol garbage and recovers only after a
// full reset window and a retransmission from the first pixel.
func (d *Device) Transmit(pixels []Pixel) {
	em := session.emitter
	off := d.offsets
	for i := range pixels {
		ch := [3]uint8{pixels[i].R, pixels[i].G, pixels[i].B}
		em.EmitByte(ch[off[0]])
		em.EmitByte(ch[off[1]])
		em.EmitByte(ch[off[2]])
	}
}
