// Package hal declares the collaborator boundary this bootloader treats as
// external: chip clock/pin init, the watchdog, the UART driver, the CRC32
// primitive, the flash controller, and jumping to the resident application.
// None of these are implemented here. flashops, dispatch, and pollloop are
// written only against these interfaces; concrete implementations live in
// internal/simulator (host tests) and cmd/tockboot (tinygo build).
package hal

import "errors"

// ErrNotReady is returned by a FlashDriver when the controller is mid-operation.
var ErrNotReady = errors.New("hal: flash controller not ready")

// FlashDriver is the flash-controller collaborator: erase, program, and
// memory-mapped read access over raw flash addresses, plus the picocache
// invalidation the controller requires for read/write coherence.
type FlashDriver interface {
	// ErasePage erases the 512-byte page starting at addr. Returns
	// (alreadyEmpty=true, nil) if the page already reads all 0xFF and no
	// erase was issued.
	ErasePage(addr uint32) (alreadyEmpty bool, err error)

	// WritePage erases then writes a full 512-byte page at addr.
	WritePage(addr uint32, data [512]byte) error

	// WriteUserPage erases then writes the 8-byte user page.
	WriteUserPage(word0, word1 uint32) error

	// ReadRange returns a view of mapped flash covering [addr, addr+len).
	// It does not invalidate the picocache; callers call InvalidateCache
	// first.
	ReadRange(addr uint32, length uint32) ([]byte, error)

	// InvalidateCache discards the picocache's contents.
	InvalidateCache()
}

// UARTPort is the UART driver collaborator: non-blocking byte-at-a-time
// RX/TX, plus baud reconfiguration for the renegotiation handshake.
type UARTPort interface {
	// RxReady reports whether a received byte is available.
	RxReady() bool
	// RxByte returns the next received byte. Only valid after RxReady.
	RxByte() byte

	// TxReady reports whether the transmitter can accept another byte.
	TxReady() bool
	// TxByte queues b for transmission. Only valid after TxReady.
	TxByte(b byte)

	// TxEmpty reports whether the transmitter has physically finished
	// sending everything previously queued (the TX shift register is
	// drained, not merely that the software queue is empty).
	TxEmpty() bool

	// Reinit reconfigures the UART at the given baud rate, preserving
	// framing (8N1). Used only by the baud renegotiation handshake.
	Reinit(baud uint32) error
}

// GPIOPin is a single digital input, pulled up and glitch-filtered at the
// board level; EntryPolicy samples it to decide whether to stay resident.
type GPIOPin interface {
	Get() bool
}

// Hasher computes a CRC-32 checksum. The default collaborator is the IEEE
// polynomial from the standard library's hash/crc32 package; CRC32 is
// explicitly out of scope as a primitive, so any implementation satisfying
// this interface is a valid driver.
type Hasher interface {
	Checksum(data []byte) uint32
}

// ApplicationJumper is the "jump to application" collaborator: control
// never returns from a successful call.
type ApplicationJumper interface {
	JumpToApplication()
}
