// Package attrstore implements the 16-slot attribute record store layered
// over the two reserved flash pages that follow the bootloader's magic and
// version header. A slot write is atomic at page granularity: the whole
// 512-byte page holding the target slot is read, patched in RAM, erased,
// and rewritten.
package attrstore

import (
	"openenterprise/tockboot/flashmap"
	"openenterprise/tockboot/internal/hal"
)

// Outcome is the result of a validated attribute operation.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeBadArgs
	OutcomeBadAddr
	OutcomeInternalError
)

// KeySize and MaxValueSize bound the fields of a slot record.
const (
	KeySize      = 8
	MaxValueSize = 56
	SlotSize     = flashmap.AttrSlotSize
)

// Store wraps a hal.FlashDriver with the attribute region's slot layout.
type Store struct {
	Regions flashmap.Regions
	Driver  hal.FlashDriver
}

// New returns a Store bound to the given region table and flash driver.
func New(regions flashmap.Regions, driver hal.FlashDriver) *Store {
	return &Store{Regions: regions, Driver: driver}
}

// Get returns the 64 raw bytes of slot idx (key, value length, value,
// padding). The caller trims trailing padding using the value-length byte.
func (s *Store) Get(idx int) ([]byte, Outcome) {
	if idx < 0 || idx >= flashmap.AttrSlotCount {
		return nil, OutcomeBadArgs
	}
	addr := s.Regions.AttrSlotOffset(idx)
	s.Driver.InvalidateCache()
	data, err := s.Driver.ReadRange(addr, SlotSize)
	if err != nil {
		return nil, OutcomeInternalError
	}
	return data, OutcomeOK
}

// Set writes key and value into slot idx. value must be shorter than
// MaxValueSize. The entire page containing idx is read, the target slot's
// first 9+len(value) bytes are overwritten, the rest of that slot and all
// other slots on the page are preserved verbatim, then the page is erased
// and rewritten.
func (s *Store) Set(idx int, key [KeySize]byte, value []byte) Outcome {
	if idx < 0 || idx >= flashmap.AttrSlotCount {
		return OutcomeBadArgs
	}
	if len(value) >= MaxValueSize {
		return OutcomeBadArgs
	}

	pageIdx, slotInPage := flashmap.AttrPageIndex(idx)
	pageAddr := s.Regions.AttrFloor + uint32(pageIdx*flashmap.Page)

	s.Driver.InvalidateCache()
	page, err := s.Driver.ReadRange(pageAddr, flashmap.Page)
	if err != nil {
		return OutcomeInternalError
	}

	var image [flashmap.Page]byte
	copy(image[:], page)

	slotOff := slotInPage * SlotSize
	copy(image[slotOff:slotOff+KeySize], key[:])
	image[slotOff+KeySize] = byte(len(value))
	copy(image[slotOff+KeySize+1:slotOff+KeySize+1+len(value)], value)

	if _, err := s.Driver.ErasePage(pageAddr); err != nil {
		return OutcomeInternalError
	}
	if err := s.Driver.WritePage(pageAddr, image); err != nil {
		return OutcomeInternalError
	}
	return OutcomeOK
}
