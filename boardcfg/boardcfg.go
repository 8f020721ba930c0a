// Package boardcfg is the compile-time board configuration surface: per
// board, the bootloader-select pin, UART peripheral/pin mux identifiers,
// and the default values of attributes 0..2. There are no runtime
// environment variables, matching the reference design's board table.
package boardcfg

import "openenterprise/tockboot/flashmap"

// DefaultEntrySampleCount is how many times EntryPolicy samples the
// select pin before deciding.
const DefaultEntrySampleCount = 10000

// DefaultUARTBaud is the baud rate the bootloader starts at before any
// CHANGE_BAUD negotiation.
const DefaultUARTBaud = 115200

// AttrDefault is one of a board's default attribute values, applied to
// attribute slots 0, 1, and 2 at image-build time.
type AttrDefault struct {
	Key   [8]byte
	Value string
}

// Board names a target's pin/peripheral wiring and default attributes.
type Board struct {
	Name string

	// SelectPin names the bootloader-entry GPIO, for documentation; the
	// concrete hal.GPIOPin implementation is supplied by cmd/tockboot.
	SelectPin string

	// UARTPeripheral and UARTPinMux name the UART instance and its pin
	// multiplexing, for documentation; wired concretely in cmd/tockboot.
	UARTPeripheral string
	UARTPinMux     string

	Regions flashmap.Regions

	DefaultAttrs [3]AttrDefault
}

// Hail mirrors the reference "hail" board: a SAM4L part with code flash
// from 0x10000 up to 0x80000, attributes immediately below it, and a
// dedicated user page.
var Hail = Board{
	Name:           "hail",
	SelectPin:      "PA08",
	UARTPeripheral: "USART3",
	UARTPinMux:     "PB09/PB10 (MUX A)",
	Regions: flashmap.Regions{
		CodeFloor:    0x10000,
		CodeCeiling:  0x80000,
		AttrFloor:    0xFC00,
		AttrCeiling:  0x10000,
		UserPageAddr: 0x80000,
	},
	DefaultAttrs: [3]AttrDefault{
		{Key: [8]byte{'b', 'o', 'a', 'r', 'd'}, Value: "hail"},
		{Key: [8]byte{'a', 'r', 'c', 'h'}, Value: "cortex-m4"},
		{Key: [8]byte{'a', 'p', 'p', 'a', 'd', 'd', 'r'}, Value: "0x10000"},
	},
}

// JustJump mirrors the reference "justjump" board: a minimal target with
// no identifying attributes, useful as a test fixture for the
// no-attributes-set edge case.
var JustJump = Board{
	Name:           "justjump",
	SelectPin:      "PA08",
	UARTPeripheral: "USART3",
	UARTPinMux:     "PB09/PB10 (MUX A)",
	Regions: flashmap.Regions{
		CodeFloor:    0x10000,
		CodeCeiling:  0x80000,
		AttrFloor:    0xFC00,
		AttrCeiling:  0x10000,
		UserPageAddr: 0x80000,
	},
}

// attrMagic is the 14-byte magic string written at the start of the
// reserved attributes section, letting host tools detect the bootloader's
// presence without invoking it.
const attrMagic = "TOCKBOOTLOADER"

// attrVersionString is the 8-byte version string following the magic.
const attrVersionString = "0.5.0\x00\x00\x00"

// AttributeImageSize is the total size of the reserved attributes section:
// 14 bytes magic + 8 bytes version + 490 bytes reserved + 1024 bytes of
// attribute storage (16 slots x 64 bytes).
const AttributeImageSize = 14 + 8 + 490 + flashmap.AttrSlotCount*flashmap.AttrSlotSize

// AttributeImage renders the reserved attributes section's initial image:
// magic, version, zeroed reserved bytes, and slots populated from the
// board's default attributes (remaining slots zeroed). The linker bakes
// this in on real hardware; a host simulator needs to construct it.
func (b Board) AttributeImage() [AttributeImageSize]byte {
	var img [AttributeImageSize]byte
	copy(img[0:14], attrMagic)
	copy(img[14:22], attrVersionString)
	// img[22:512] (490 bytes reserved) stays zero.

	const slotsStart = 512
	for i, def := range b.DefaultAttrs {
		if def.Value == "" {
			continue
		}
		off := slotsStart + i*flashmap.AttrSlotSize
		copy(img[off:off+8], def.Key[:])
		img[off+8] = byte(len(def.Value))
		copy(img[off+9:off+9+len(def.Value)], def.Value)
	}
	return img
}
