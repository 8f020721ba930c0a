//go:build tinygo

// Command tockboot is the embedded entrypoint: it wires concrete
// TinyGo/RP2350 collaborators to the host-testable protocol core in
// pollloop, framer, dispatch, flashops, and attrstore, then runs forever.
package main

import (
	"machine"

	"openenterprise/tockboot/attrstore"
	"openenterprise/tockboot/baud"
	"openenterprise/tockboot/boardcfg"
	"openenterprise/tockboot/dispatch"
	"openenterprise/tockboot/entry"
	"openenterprise/tockboot/flashops"
	"openenterprise/tockboot/framer"
	"openenterprise/tockboot/pollloop"
	"openenterprise/tockboot/respbuilder"
	"openenterprise/tockboot/version"
)

func main() {
	board := boardcfg.Hail
	userPageOffset = board.Regions.UserPageAddr

	selectPin := machine.GPIO8
	selectPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	uartPort := &uartAdapter{uart: machine.UART0}
	uartPort.Reinit(boardcfg.DefaultUARTBaud)

	flashDriver := &romFlashDriver{}
	jumper := &residentAppJumper{}

	entry.Decide(gpioAdapter{pin: selectPin}, jumper, boardcfg.DefaultEntrySampleCount)

	frame := framer.New()
	resp := respbuilder.New()
	neg := baud.New()
	ops := flashops.New(board.Regions, flashDriver, crc32Hasher{})
	attrs := attrstore.New(board.Regions, flashDriver)

	disp := &dispatch.Dispatcher{
		Framer:      frame,
		Resp:        resp,
		Flash:       ops,
		Attrs:       attrs,
		Baud:        neg,
		Banner:      version.Version + " " + version.BuildMarker,
		CurrentBaud: boardcfg.DefaultUARTBaud,
	}

	loop := pollloop.New(uartPort, frame, resp, disp, neg)
	pollloop.Run(loop)
}
