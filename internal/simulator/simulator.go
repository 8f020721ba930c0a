// Package simulator provides in-memory implementations of the hal
// collaborator interfaces, backed by plain byte slices. It
// plays the same role for this module that an RAM-backed flash region
// plays for the reference bootloader's own test rig: a host can drive the
// whole protocol core through go test without any embedded hardware.
package simulator

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"log/slog"

	"openenterprise/tockboot/boardcfg"
	"openenterprise/tockboot/flashmap"
)

// Flash is an in-memory hal.FlashDriver. Erased bytes read as 0xFF, the
// same as real NOR flash.
type Flash struct {
	Regions         flashmap.Regions
	image           []byte
	userPage        [8]byte
	invalidateCount int
}

// NewFlash returns a Flash spanning the board's header, attribute, and
// code regions, fully erased.
func NewFlash(regions flashmap.Regions) *Flash {
	size := regions.CodeCeiling
	if regions.UserPageAddr+flashmap.UserPageSize > size {
		size = regions.UserPageAddr + flashmap.UserPageSize
	}
	img := make([]byte, size)
	for i := range img {
		img[i] = 0xFF
	}
	return &Flash{Regions: regions, image: img}
}

// NewFlashForBoard seeds a Flash with the board's rendered attribute
// image at its header floor, matching what a linker bakes into real
// hardware.
func NewFlashForBoard(b boardcfg.Board) *Flash {
	f := NewFlash(b.Regions)
	img := b.AttributeImage()
	copy(f.image[b.Regions.HeaderFloor():], img[:])
	return f
}

// ErasePage erases the 512-byte page at addr, reporting alreadyEmpty if
// it already read all 0xFF.
func (f *Flash) ErasePage(addr uint32) (alreadyEmpty bool, err error) {
	if uint64(addr)+flashmap.Page > uint64(len(f.image)) {
		return false, fmt.Errorf("simulator: erase out of range at 0x%x", addr)
	}
	page := f.image[addr : addr+flashmap.Page]
	empty := true
	for _, b := range page {
		if b != 0xFF {
			empty = false
			break
		}
	}
	if empty {
		slog.Debug("simulator:erase-already-empty", slog.Uint64("addr", uint64(addr)))
		return true, nil
	}
	for i := range page {
		page[i] = 0xFF
	}
	slog.Debug("simulator:erase", slog.Uint64("addr", uint64(addr)))
	return false, nil
}

// WritePage erases then writes a full page, matching the reference
// driver's erase-before-write discipline.
func (f *Flash) WritePage(addr uint32, data [512]byte) error {
	if _, err := f.ErasePage(addr); err != nil {
		return err
	}
	copy(f.image[addr:addr+flashmap.Page], data[:])
	f.InvalidateCache()
	slog.Debug("simulator:write", slog.Uint64("addr", uint64(addr)), slog.Int("len", len(data)))
	return nil
}

// WriteUserPage erases (conceptually) then writes the two-word user page.
func (f *Flash) WriteUserPage(word0, word1 uint32) error {
	binary.LittleEndian.PutUint32(f.userPage[0:4], word0)
	binary.LittleEndian.PutUint32(f.userPage[4:8], word1)
	f.InvalidateCache()
	slog.Debug("simulator:write-user-page", slog.Uint64("word0", uint64(word0)), slog.Uint64("word1", uint64(word1)))
	return nil
}

// ReadRange returns a copy of the mapped bytes at [addr, addr+length).
// The fixed user page is served out of its own backing array.
func (f *Flash) ReadRange(addr uint32, length uint32) ([]byte, error) {
	if addr == f.Regions.UserPageAddr && length == flashmap.UserPageSize {
		out := make([]byte, flashmap.UserPageSize)
		copy(out, f.userPage[:])
		return out, nil
	}
	if uint64(addr)+uint64(length) > uint64(len(f.image)) {
		return nil, fmt.Errorf("simulator: read out of range at 0x%x len %d", addr, length)
	}
	out := make([]byte, length)
	copy(out, f.image[addr:uint64(addr)+uint64(length)])
	slog.Debug("simulator:read", slog.Uint64("addr", uint64(addr)), slog.Uint64("len", uint64(length)))
	return out, nil
}

// InvalidateCache records that a cache flush occurred; the simulator's
// reads are never stale, so this is purely observable for tests.
func (f *Flash) InvalidateCache() {
	f.invalidateCount++
}

// InvalidateCount reports how many times InvalidateCache was called.
func (f *Flash) InvalidateCount() int {
	return f.invalidateCount
}

// CRC32Hasher is the simulator's hal.Hasher, backed by the standard
// library's IEEE CRC-32 — the same default the embedded build uses.
type CRC32Hasher struct{}

// Checksum computes the IEEE CRC-32 of data.
func (CRC32Hasher) Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// GPIO is an in-memory hal.GPIOPin whose level is set directly by tests.
type GPIO struct {
	Level bool
}

// Get returns the pin's current level.
func (g *GPIO) Get() bool {
	return g.Level
}

// Jumper is an in-memory hal.ApplicationJumper that records whether it was
// invoked instead of transferring control.
type Jumper struct {
	Jumped bool
}

// JumpToApplication records the jump instead of transferring control.
func (j *Jumper) JumpToApplication() {
	j.Jumped = true
}

// UART is an in-memory hal.UARTPort backed by byte queues. Transmission is
// modeled as instantaneous: a byte handed to TxByte is immediately
// "on the wire", so TxEmpty is simply "nothing queued right now". This is
// a simplification against real hardware's shift-register delay, but
// preserves the ordering invariants the PollLoop depends on.
type UART struct {
	rx          []byte
	tx          []byte
	Baud        uint32
	ReinitCalls []uint32
}

// NewUART returns a UART starting at baud.
func NewUART(baud uint32) *UART {
	return &UART{Baud: baud}
}

// Feed queues bytes as if received from the host.
func (u *UART) Feed(bytes []byte) {
	u.rx = append(u.rx, bytes...)
}

// RxReady reports whether a received byte is queued.
func (u *UART) RxReady() bool {
	return len(u.rx) > 0
}

// RxByte pops the next received byte.
func (u *UART) RxByte() byte {
	b := u.rx[0]
	u.rx = u.rx[1:]
	return b
}

// TxReady always reports true: the simulator has no transmitter backpressure.
func (u *UART) TxReady() bool {
	return true
}

// TxByte appends b to the transmitted stream.
func (u *UART) TxByte(b byte) {
	u.tx = append(u.tx, b)
}

// TxEmpty always reports true; see the UART doc comment.
func (u *UART) TxEmpty() bool {
	return true
}

// Reinit records the requested baud rate and applies it.
func (u *UART) Reinit(baud uint32) error {
	u.ReinitCalls = append(u.ReinitCalls, baud)
	u.Baud = baud
	return nil
}

// Drain returns and clears everything transmitted so far.
func (u *UART) Drain() []byte {
	out := u.tx
	u.tx = nil
	return out
}
