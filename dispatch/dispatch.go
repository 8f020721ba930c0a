// Package dispatch maps a completed command byte to a handler, enforcing
// argument lengths and address validity before ever touching flash, and
// folding the baud-change confirmation invariant into command handling.
package dispatch

import (
	"encoding/binary"

	"openenterprise/tockboot/attrstore"
	"openenterprise/tockboot/baud"
	"openenterprise/tockboot/flashops"
	"openenterprise/tockboot/framer"
	"openenterprise/tockboot/protocol"
	"openenterprise/tockboot/respbuilder"
)

// Dispatcher wires together the flash façade, attribute store, baud
// negotiator, and response builder around a single Dispatch entry point.
type Dispatcher struct {
	Framer *framer.Framer
	Resp   *respbuilder.Builder
	Flash  *flashops.Ops
	Attrs  *attrstore.Store
	Baud   *baud.Negotiator

	// Banner is the version/info string returned by INFO, truncated to
	// 192 bytes.
	Banner string

	// CurrentBaud is the UART's present baud rate; the PollLoop keeps
	// this in sync whenever it performs a Reinit. CHANGE_BAUD reads it to
	// know what rate to fall back to on failure.
	CurrentBaud uint32

	// ClockRouter, if set, is invoked for CLKOUT and is not expected to
	// return. Left nil on hosts with no reference clock to route.
	ClockRouter func()
}

// Dispatch handles one complete command. cmd is the command byte the
// framer reported; the decoded payload is read from d.Framer.RxBytes().
func (d *Dispatcher) Dispatch(cmd protocol.Command) {
	rx := d.Framer.RxBytes()

	if d.Baud != nil && d.Baud.State() == baud.StateWaitingConfirmation {
		isChangeBaud := cmd == protocol.CmdChangeBaud
		var rate uint32
		if isChangeBaud && len(rx) == 4 {
			rate = binary.LittleEndian.Uint32(rx)
		}
		confirmed, failed := d.Baud.ConfirmOrFail(isChangeBaud, rate)
		if failed {
			d.Resp.Emit(protocol.RespChangeBaudFail, nil)
			d.Framer.Reset()
			return
		}
		if confirmed {
			d.Resp.Reset()
			d.Framer.Reset()
			return
		}
	}

	switch cmd {
	case protocol.CmdPing:
		d.handlePing(rx)
	case protocol.CmdInfo:
		d.handleInfo(rx)
	case protocol.CmdID:
		d.Resp.Reset()
	case protocol.CmdReset:
		d.Resp.Reset()
		d.Framer.Reset()
		return
	case protocol.CmdEPage:
		d.handleEPage(rx)
	case protocol.CmdWPage:
		d.handleWPage(rx)
	case protocol.CmdCRCRX:
		d.handleCRCRX(rx)
	case protocol.CmdRRange:
		d.handleRRange(rx)
	case protocol.CmdSAttr:
		d.handleSAttr(rx)
	case protocol.CmdGAttr:
		d.handleGAttr(rx)
	case protocol.CmdCRCIF:
		d.handleCRCIF(rx)
	case protocol.CmdWUser:
		d.handleWUser(rx)
	case protocol.CmdCLKOut:
		d.handleCLKOut()
		return
	case protocol.CmdChangeBaud:
		d.handleChangeBaud(rx)
	default:
		d.Resp.Emit(protocol.RespUnknown, nil)
	}

	d.Framer.Reset()
}

func (d *Dispatcher) handlePing(rx []byte) {
	if len(rx) != 0 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	d.Resp.Emit(protocol.RespPong, nil)
}

func (d *Dispatcher) handleInfo(rx []byte) {
	if len(rx) != 0 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	banner := d.Banner
	if len(banner) > 192 {
		banner = banner[:192]
	}
	payload := make([]byte, 193)
	payload[0] = byte(len(banner))
	copy(payload[1:1+len(banner)], banner)
	d.Resp.Emit(protocol.RespInfo, payload)
}

func (d *Dispatcher) handleEPage(rx []byte) {
	if len(rx) != 4 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	addr := binary.LittleEndian.Uint32(rx)
	d.emitOutcome(d.Flash.ErasePage(addr))
}

func (d *Dispatcher) handleWPage(rx []byte) {
	if len(rx) != 4+512 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	addr := binary.LittleEndian.Uint32(rx[:4])
	var data [512]byte
	copy(data[:], rx[4:])
	d.emitOutcome(d.Flash.WritePage(addr, data))
}

func (d *Dispatcher) handleCRCRX(rx []byte) {
	length := uint16(len(rx))
	var crc uint32 = 0xFFFFFFFF
	if length > 0 {
		crc = d.Flash.Hash.Checksum(rx)
	}
	payload := make([]byte, 6)
	binary.LittleEndian.PutUint16(payload[0:2], length)
	binary.LittleEndian.PutUint32(payload[2:6], crc)
	d.Resp.Emit(protocol.RespCRCRX, payload)
}

func (d *Dispatcher) handleRRange(rx []byte) {
	if len(rx) != 6 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	addr := binary.LittleEndian.Uint32(rx[:4])
	length := binary.LittleEndian.Uint16(rx[4:6])
	if length >= protocol.TxCap/2 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	data, outcome := d.Flash.ReadRange(addr, uint32(length))
	if outcome != flashops.OutcomeOK {
		d.emitOutcome(outcome)
		return
	}
	d.Resp.Emit(protocol.RespRRange, data)
}

func (d *Dispatcher) handleSAttr(rx []byte) {
	if len(rx) < 10 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	idx := int(rx[0])
	vlen := int(rx[9])
	if len(rx) != 10+vlen {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	var key [attrstore.KeySize]byte
	copy(key[:], rx[1:9])
	value := rx[10 : 10+vlen]

	outcome := d.Attrs.Set(idx, key, value)
	switch outcome {
	case attrstore.OutcomeOK:
		d.Resp.Emit(protocol.RespOK, nil)
	case attrstore.OutcomeBadArgs:
		if vlen >= attrstore.MaxValueSize {
			d.Resp.Emit(protocol.RespBadArgs, nil)
		} else {
			d.Resp.Emit(protocol.RespBadAddr, nil)
		}
	default:
		d.Resp.Emit(protocol.RespInternalError, nil)
	}
}

func (d *Dispatcher) handleGAttr(rx []byte) {
	if len(rx) != 1 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	idx := int(rx[0])
	data, outcome := d.Attrs.Get(idx)
	switch outcome {
	case attrstore.OutcomeOK:
		d.Resp.Emit(protocol.RespGAttr, data)
	case attrstore.OutcomeBadArgs:
		d.Resp.Emit(protocol.RespBadAddr, nil)
	default:
		d.Resp.Emit(protocol.RespInternalError, nil)
	}
}

func (d *Dispatcher) handleCRCIF(rx []byte) {
	if len(rx) != 8 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	addr := binary.LittleEndian.Uint32(rx[:4])
	length := binary.LittleEndian.Uint32(rx[4:8])
	crc, outcome := d.Flash.CRCRange(addr, length)
	if outcome != flashops.OutcomeOK {
		d.emitOutcome(outcome)
		return
	}
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, crc)
	d.Resp.Emit(protocol.RespCRCIF, payload)
}

func (d *Dispatcher) handleWUser(rx []byte) {
	if len(rx) != 8 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	word0 := binary.LittleEndian.Uint32(rx[:4])
	word1 := binary.LittleEndian.Uint32(rx[4:8])
	d.emitOutcome(d.Flash.WriteUserPage(word0, word1))
}

func (d *Dispatcher) handleCLKOut() {
	if d.ClockRouter != nil {
		d.ClockRouter()
	}
}

func (d *Dispatcher) handleChangeBaud(rx []byte) {
	if d.Baud == nil || len(rx) != 4 {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	rate := binary.LittleEndian.Uint32(rx)
	if !d.Baud.Begin(rate, d.CurrentBaud) {
		d.Resp.Emit(protocol.RespBadArgs, nil)
		return
	}
	d.Resp.Emit(protocol.RespOK, nil)
}

func (d *Dispatcher) emitOutcome(outcome flashops.Outcome) {
	switch outcome {
	case flashops.OutcomeOK, flashops.OutcomeAlreadyEmpty:
		d.Resp.Emit(protocol.RespOK, nil)
	case flashops.OutcomeBadAddr:
		d.Resp.Emit(protocol.RespBadAddr, nil)
	default:
		d.Resp.Emit(protocol.RespInternalError, nil)
	}
}
