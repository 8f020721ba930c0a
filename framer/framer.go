// Package framer implements the escape-byte receive automaton: bytes in
// from the UART accumulate in a bounded staging buffer until an unescaped
// protocol.Esc followed by a command byte marks a complete message.
package framer

import "openenterprise/tockboot/protocol"

// Event describes what happened as a result of feeding one byte in.
type Event int

const (
	// EventNone means the byte was consumed with no message boundary.
	EventNone Event = iota
	// EventDispatch means a complete message is staged; Cmd names it.
	EventDispatch
	// EventOverflow means the receive buffer saturated; the caller must
	// stage a RES_OVERFLOW response and call Resume once it drains.
	EventOverflow
)

// Result is returned from Feed.
type Result struct {
	Event Event
	Cmd   protocol.Command
}

// Framer holds the receive staging buffer and escape-bit state. It is not
// safe for concurrent use; the PollLoop is its sole owner.
type Framer struct {
	rx            [protocol.RxCap]byte
	rxLen         int
	escapePending bool
	discarding    bool
}

// New returns an empty Framer.
func New() *Framer {
	return &Framer{}
}

// RxLen returns the number of valid bytes currently staged.
func (f *Framer) RxLen() int {
	return f.rxLen
}

// RxBytes returns the staged payload of the message currently (or most
// recently) received. The slice aliases the Framer's internal buffer and
// is only valid until the next Feed or Reset call.
func (f *Framer) RxBytes() []byte {
	return f.rx[:f.rxLen]
}

// Reset clears the cursor but not the buffer contents, matching the
// reference implementation's reset, which only ever zeroes cursors.
func (f *Framer) Reset() {
	f.rxLen = 0
	f.escapePending = false
}

// Resume ends the post-overflow discard period. The PollLoop calls this
// once the staged RES_OVERFLOW response has physically drained.
func (f *Framer) Resume() {
	f.discarding = false
}

// Feed advances the automaton by one received byte.
func (f *Framer) Feed(b byte) Result {
	if f.discarding {
		return Result{Event: EventNone}
	}

	if !f.escapePending {
		if b == protocol.Esc {
			f.escapePending = true
			return Result{Event: EventNone}
		}
		return f.append(b)
	}

	f.escapePending = false
	if b == protocol.Esc {
		// Literal escape byte in the payload.
		return f.append(protocol.Esc)
	}
	// Unescaped Esc was followed by a command byte: message complete.
	return Result{Event: EventDispatch, Cmd: protocol.Command(b)}
}

// append stores b in RxBuf, signalling overflow if the buffer is full.
func (f *Framer) append(b byte) Result {
	if f.rxLen == len(f.rx) {
		f.rxLen = 0
		f.escapePending = false
		f.discarding = true
		return Result{Event: EventOverflow}
	}
	f.rx[f.rxLen] = b
	f.rxLen++
	return Result{Event: EventNone}
}
