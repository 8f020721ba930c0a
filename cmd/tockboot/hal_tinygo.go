//go:build tinygo

package main

import (
	"hash/crc32"
	"machine"

	"openenterprise/tockboot/flashmap"
)

// uartAdapter satisfies hal.UARTPort over a TinyGo machine.UART.
type uartAdapter struct {
	uart *machine.UART
}

func (u *uartAdapter) RxReady() bool { return u.uart.Buffered() > 0 }
func (u *uartAdapter) RxByte() byte {
	b, _ := u.uart.ReadByte()
	return b
}
func (u *uartAdapter) TxReady() bool { return true }
func (u *uartAdapter) TxByte(b byte) { u.uart.WriteByte(b) }
func (u *uartAdapter) TxEmpty() bool { return u.uart.Buffered() == 0 }
func (u *uartAdapter) Reinit(baud uint32) error {
	return u.uart.Configure(machine.UARTConfig{BaudRate: baud})
}

// gpioAdapter satisfies hal.GPIOPin over a TinyGo machine.Pin.
type gpioAdapter struct {
	pin machine.Pin
}

func (g gpioAdapter) Get() bool { return g.pin.Get() }

// residentAppJumper satisfies hal.ApplicationJumper. The actual jump
// routine — reconfiguring the vector table and branching into the
// resident application — is an external, chip-specific collaborator not
// covered by this module; it is stubbed here as the one unimplemented
// seam, matching spec's explicit scope exclusion.
type residentAppJumper struct{}

func (residentAppJumper) JumpToApplication() {
	panic("tockboot: jump_to_application is an external collaborator and must be supplied by the board package")
}

// romFlashDriver satisfies hal.FlashDriver over TinyGo's machine.Flash
// block device (ReadAt, EraseBlocks, WriteAt). It disables no interrupts,
// and InvalidateCache is a no-op.
type romFlashDriver struct{}

func (romFlashDriver) ErasePage(addr uint32) (alreadyEmpty bool, err error) {
	page := make([]byte, flashmap.Page)
	machine.Flash.ReadAt(page, int64(addr))
	empty := true
	for _, b := range page {
		if b != 0xFF {
			empty = false
			break
		}
	}
	if empty {
		return true, nil
	}
	if err := machine.Flash.EraseBlocks(int64(addr)/flashmap.Page, 1); err != nil {
		return false, err
	}
	return false, nil
}

func (d romFlashDriver) WritePage(addr uint32, data [512]byte) error {
	if _, err := d.ErasePage(addr); err != nil {
		return err
	}
	_, err := machine.Flash.WriteAt(data[:], int64(addr))
	return err
}

func (d romFlashDriver) WriteUserPage(word0, word1 uint32) error {
	var buf [8]byte
	buf[0], buf[1], buf[2], buf[3] = byte(word0), byte(word0>>8), byte(word0>>16), byte(word0>>24)
	buf[4], buf[5], buf[6], buf[7] = byte(word1), byte(word1>>8), byte(word1>>16), byte(word1>>24)
	_, err := machine.Flash.WriteAt(buf[:], int64(userPageOffset))
	return err
}

func (romFlashDriver) ReadRange(addr uint32, length uint32) ([]byte, error) {
	out := make([]byte, length)
	_, err := machine.Flash.ReadAt(out, int64(addr))
	return out, err
}

func (romFlashDriver) InvalidateCache() {}

// userPageOffset is set by the board package at init; left as a package
// variable here so hal_tinygo.go has no hard-coded board dependency.
var userPageOffset uint32

// crc32Hasher satisfies hal.Hasher with the standard library's IEEE CRC-32.
type crc32Hasher struct{}

func (crc32Hasher) Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
