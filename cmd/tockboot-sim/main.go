// Command tockboot-sim drives a fixed, scripted command sequence through
// the host-testable protocol core and prints the outcome of each step. It
// takes no input and offers no interactive surface; it exists purely as a
// development smoke test, the same role the reference bootloader's own
// build scripts serve for a fresh flash image.
package main

import (
	"encoding/binary"
	"fmt"

	"openenterprise/tockboot/attrstore"
	"openenterprise/tockboot/baud"
	"openenterprise/tockboot/boardcfg"
	"openenterprise/tockboot/dispatch"
	"openenterprise/tockboot/flashops"
	"openenterprise/tockboot/framer"
	"openenterprise/tockboot/internal/simulator"
	"openenterprise/tockboot/pollloop"
	"openenterprise/tockboot/protocol"
	"openenterprise/tockboot/respbuilder"
	"openenterprise/tockboot/version"
)

func main() {
	board := boardcfg.Hail
	flash := simulator.NewFlashForBoard(board)

	frame := framer.New()
	resp := respbuilder.New()
	neg := baud.New()
	ops := flashops.New(board.Regions, flash, simulator.CRC32Hasher{})
	attrs := attrstore.New(board.Regions, flash)

	disp := &dispatch.Dispatcher{
		Framer:      frame,
		Resp:        resp,
		Flash:       ops,
		Attrs:       attrs,
		Baud:        neg,
		Banner:      fmt.Sprintf("tockboot %s (%s)", version.Version, board.Name),
		CurrentBaud: boardcfg.DefaultUARTBaud,
	}

	uart := simulator.NewUART(boardcfg.DefaultUARTBaud)
	loop := pollloop.New(uart, frame, resp, disp, neg)

	run := func(label string, cmd []byte) []byte {
		uart.Feed(cmd)
		for uart.RxReady() || resp.Pending() {
			loop.Step()
		}
		out := uart.Drain()
		fmt.Printf("%-28s -> % x\n", label, out)
		return out
	}

	run("PING", escaped(nil, byte(protocol.CmdPing)))
	run("INFO", escaped(nil, byte(protocol.CmdInfo)))

	addr := make([]byte, 4)
	binary.LittleEndian.PutUint32(addr, board.Regions.CodeFloor)
	run("EPAGE(code floor)", escaped(addr, byte(protocol.CmdEPage)))

	page := make([]byte, 512)
	for i := range page {
		page[i] = byte(i)
	}
	run("WPAGE(code floor)", escaped(append(append([]byte{}, addr...), page...), byte(protocol.CmdWPage)))

	rrangeArgs := make([]byte, 6)
	copy(rrangeArgs, addr)
	binary.LittleEndian.PutUint16(rrangeArgs[4:], 512)
	readBack := run("RRANGE(code floor,512)", escaped(rrangeArgs, byte(protocol.CmdRRange)))
	_, payload, _ := respbuilder.Decode(readBack)
	fmt.Printf("  write/read match: %v\n", bytesEqual(payload, page))

	key := [8]byte{'b', 'o', 'a', 'r', 'd'}
	value := []byte("hail")
	sattrArgs := append(append([]byte{0}, key[:]...), append([]byte{byte(len(value))}, value...)...)
	run("SATTR(0,board,hail)", escaped(sattrArgs, byte(protocol.CmdSAttr)))
	run("GATTR(0)", escaped([]byte{0}, byte(protocol.CmdGAttr)))
}

// escaped doubles every literal protocol.Esc byte in payload and appends
// the unescaped Esc/cmd delimiter, producing a full command frame.
func escaped(payload []byte, cmd byte) []byte {
	out := make([]byte, 0, len(payload)+2)
	for _, b := range payload {
		if b == protocol.Esc {
			out = append(out, protocol.Esc, protocol.Esc)
		} else {
			out = append(out, b)
		}
	}
	out = append(out, protocol.Esc, cmd)
	return out
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
