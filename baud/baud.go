// Package baud implements the BaudNegotiator: the extended variant's
// three-step handshake for switching UART baud rate without bricking the
// link. It is modeled as an explicit state machine driven by two events —
// "TX drained" and "command received" — kept separate from the stateless
// command dispatcher, per the reference design's own recommendation.
//
// Wire format (implementation-defined; not specified by the reference
// sources beyond the state-machine fragment): a CHANGE_BAUD payload is a
// 4-byte little-endian requested baud rate. The confirming second
// CHANGE_BAUD must carry the identical 4-byte rate; any other payload is
// treated the same as an unrelated command arriving mid-handshake.
package baud

// State is one of the four BaudNegotiator states.
type State int

const (
	StateIdle State = iota
	StateChanging
	StateWaitingConfirmation
	StateResetting
)

// ByteCapWithoutDelimiter is the framing-byte cap while waiting for
// confirmation; the reference implementation uses 10.
const ByteCapWithoutDelimiter = 10

// Action tells the caller what UART reconfiguration to perform after a
// TX-drained edge.
type Action int

const (
	ActionNone Action = iota
	ActionReinitToPending
	ActionReinitToPrevious
)

// Negotiator holds the baud-change state machine. It never touches the
// UART itself; the PollLoop performs the Reinit call the returned Action
// names, preserving the invariant that the device never commits to a new
// rate until the prior response has physically left the transmitter.
type Negotiator struct {
	state        State
	pendingRate  uint32
	previousRate uint32
}

// New returns a Negotiator in the Idle state.
func New() *Negotiator {
	return &Negotiator{}
}

// State returns the current state.
func (n *Negotiator) State() State {
	return n.state
}

// PendingRate returns the rate requested by the in-flight CHANGE_BAUD.
func (n *Negotiator) PendingRate() uint32 {
	return n.pendingRate
}

// Begin accepts a CHANGE_BAUD request while Idle, recording requested as
// the pending rate and current as the rate to fall back to on failure. It
// is a no-op (returning false) if the negotiator is not Idle.
func (n *Negotiator) Begin(requested, current uint32) bool {
	if n.state != StateIdle {
		return false
	}
	n.pendingRate = requested
	n.previousRate = current
	n.state = StateChanging
	return true
}

// OnTxDrained advances the state machine on the TX-empty edge: Changing
// moves to WaitingConfirmation (reinit at the new rate), Resetting moves
// back to Idle (reinit at the previous rate).
func (n *Negotiator) OnTxDrained() (Action, uint32) {
	switch n.state {
	case StateChanging:
		n.state = StateWaitingConfirmation
		return ActionReinitToPending, n.pendingRate
	case StateResetting:
		n.state = StateIdle
		return ActionReinitToPrevious, n.previousRate
	default:
		return ActionNone, 0
	}
}

// NoteRxByte is consulted on every byte the framer accepts while waiting
// for confirmation. rxLen is the staged byte count *before* the byte just
// fed to the framer was appended, matching the reference implementation's
// pre-increment check (`rx_ptr > 10`, tested before `rx_stage_ram[rx_ptr++]
// = b`). It reports whether the no-delimiter byte cap was exceeded, in
// which case the negotiator has already moved to Resetting and the caller
// must stage a failure response.
func (n *Negotiator) NoteRxByte(rxLen int) (capExceeded bool) {
	if n.state != StateWaitingConfirmation {
		return false
	}
	if rxLen > ByteCapWithoutDelimiter {
		n.state = StateResetting
		return true
	}
	return false
}

// ConfirmOrFail is called when a complete command arrives while waiting
// for confirmation. A matching CHANGE_BAUD(rate) confirms the handshake
// and returns to Idle without reverting the rate. Anything else — a
// different command, or a CHANGE_BAUD with a mismatched rate — fails the
// handshake and moves to Resetting.
func (n *Negotiator) ConfirmOrFail(isChangeBaud bool, rate uint32) (confirmed, failed bool) {
	if n.state != StateWaitingConfirmation {
		return false, false
	}
	if isChangeBaud && rate == n.pendingRate {
		n.state = StateIdle
		return true, false
	}
	n.state = StateResetting
	return false, true
}
