// Package pollloop drives the bootloader's single-threaded, non-blocking
// main loop: ingest one RX byte if available, drain one TX byte if ready,
// and advance the baud negotiator on TX-drained edges. There are no
// suspension points; everything here runs to completion between the
// collaborator polls.
package pollloop

import (
	"openenterprise/tockboot/baud"
	"openenterprise/tockboot/dispatch"
	"openenterprise/tockboot/framer"
	"openenterprise/tockboot/internal/hal"
	"openenterprise/tockboot/protocol"
	"openenterprise/tockboot/respbuilder"
)

// Loop owns the staging buffers and drives them against a UARTPort.
type Loop struct {
	Port   hal.UARTPort
	Frame  *framer.Framer
	Resp   *respbuilder.Builder
	Disp   *dispatch.Dispatcher
	Baud   *baud.Negotiator

	awaitingOverflowResume bool
}

// New returns a Loop wired to the given collaborators. disp must share
// Frame, Resp, and Baud with the Loop (construct them once and pass the
// same pointers to both).
func New(port hal.UARTPort, frame *framer.Framer, resp *respbuilder.Builder, disp *dispatch.Dispatcher, negotiator *baud.Negotiator) *Loop {
	return &Loop{Port: port, Frame: frame, Resp: resp, Disp: disp, Baud: negotiator}
}

// Run drives Step forever. It never returns; embedded entrypoints call
// this directly, and it is not exercised by host tests, which call Step.
func Run(l *Loop) {
	for {
		l.Step()
	}
}

// Step performs one iteration: at most one RX byte in, at most one TX
// byte out, and one baud-state check.
func (l *Loop) Step() {
	l.stepRx()
	l.stepTx()
}

func (l *Loop) stepRx() {
	if !l.Port.RxReady() {
		return
	}
	preLen := l.Frame.RxLen()
	b := l.Port.RxByte()
	result := l.Frame.Feed(b)

	switch result.Event {
	case framer.EventDispatch:
		l.Disp.Dispatch(result.Cmd)
	case framer.EventOverflow:
		l.Resp.EmitRaw(protocol.RespOverflow)
		l.awaitingOverflowResume = true
	case framer.EventNone:
		if l.Baud != nil && l.Baud.State() == baud.StateWaitingConfirmation {
			if l.Baud.NoteRxByte(preLen) {
				l.Resp.Emit(protocol.RespChangeBaudFail, nil)
				l.Frame.Reset()
			}
		}
	}
}

func (l *Loop) stepTx() {
	if l.Port.TxReady() && l.Resp.Pending() {
		l.Port.TxByte(l.Resp.NextByte())
	}

	// A TX-drained edge needs the staged response fully handed to the UART
	// and the transmitter itself empty.
	if l.Resp.Pending() || !l.Port.TxEmpty() {
		return
	}

	if l.awaitingOverflowResume && !l.Resp.Pending() {
		l.Frame.Resume()
		l.awaitingOverflowResume = false
	}

	if l.Baud == nil {
		return
	}
	action, rate := l.Baud.OnTxDrained()
	switch action {
	case baud.ActionReinitToPending, baud.ActionReinitToPrevious:
		if err := l.Port.Reinit(rate); err == nil {
			l.Disp.CurrentBaud = rate
		}
	}
}
