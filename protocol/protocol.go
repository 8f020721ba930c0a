// Package protocol holds the wire-level constants shared by the framer,
// response builder, and command dispatcher: the escape sentinel, buffer
// capacities, and the command/response byte tables.
package protocol

// Esc is the framing sentinel. A literal Esc byte in a payload is doubled
// on the wire; a single unescaped Esc marks the end of a message.
const Esc byte = 0xFC

// Buffer capacities for the receive and transmit staging areas.
const (
	RxCap = 8192
	TxCap = 8192
)

// Page is the flash erase/write granularity in bytes.
const Page = 512

// Command identifies a decoded command byte.
type Command byte

// Command set, mirroring the reference bootloader's byte values.
const (
	CmdPing       Command = 0x01
	CmdInfo       Command = 0x03
	CmdID         Command = 0x04
	CmdReset      Command = 0x05
	CmdEPage      Command = 0x06
	CmdWPage      Command = 0x07
	CmdXEBlock    Command = 0x08
	CmdXWPage     Command = 0x09
	CmdCRCRX      Command = 0x10
	CmdRRange     Command = 0x11
	CmdXRRange    Command = 0x12
	CmdSAttr      Command = 0x13
	CmdGAttr      Command = 0x14
	CmdCRCIF      Command = 0x15
	CmdCRCEF      Command = 0x16
	CmdXEPage     Command = 0x17
	CmdXFInit     Command = 0x18
	CmdCLKOut     Command = 0x19
	CmdWUser      Command = 0x20
	CmdChangeBaud Command = 0x21

	// cmdXReserved0C has no assigned name in the reference sources but is
	// one of the external-flash-prefixed bytes dispatch rejects with
	// RespUnknown, the same as any other unrecognised command.
	cmdXReserved0C Command = 0x0C
)

// ResponseCode identifies a framed response's code byte.
type ResponseCode byte

// Response codes, bit-exact with the reference bootloader.
const (
	RespOverflow       ResponseCode = 0x10
	RespPong           ResponseCode = 0x11
	RespBadAddr        ResponseCode = 0x12
	RespInternalError  ResponseCode = 0x13
	RespBadArgs        ResponseCode = 0x14
	RespOK             ResponseCode = 0x15
	RespUnknown        ResponseCode = 0x16
	RespCRCRX          ResponseCode = 0x19
	RespRRange         ResponseCode = 0x20
	RespGAttr          ResponseCode = 0x22
	RespCRCIF          ResponseCode = 0x23
	RespInfo           ResponseCode = 0x25
	RespChangeBaudFail ResponseCode = 0x26
)
