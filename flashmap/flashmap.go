// Package flashmap defines the address ranges a bootloader is allowed to
// touch and the predicates that validate a request against them. Nothing
// here talks to hardware; it is pure arithmetic over a board's Regions.
package flashmap

import "openenterprise/tockboot/protocol"

// Page is re-exported for callers that only import flashmap.
const Page = protocol.Page

// Regions describes the half-open byte-address intervals a board exposes.
// CODE is user-writable program flash; Attributes is the 1024-byte, 16-slot
// attribute store; UserPage is a single fixed 8-byte non-volatile region.
type Regions struct {
	CodeFloor    uint32
	CodeCeiling  uint32
	AttrFloor    uint32
	AttrCeiling  uint32
	UserPageAddr uint32
}

// AttrSlotSize is the size in bytes of one attribute record slot.
const AttrSlotSize = 64

// AttrSlotCount is the number of slots the attribute store holds.
const AttrSlotCount = 16

// UserPageSize is the size in bytes of the user page region.
const UserPageSize = 8

// InCode reports whether addr lies within the code region.
func (r Regions) InCode(addr uint32) bool {
	return addr >= r.CodeFloor && addr < r.CodeCeiling
}

// PageAligned reports whether addr is a multiple of Page.
func PageAligned(addr uint32) bool {
	return addr%Page == 0
}

// CodeRangeValid reports whether [addr, addr+length) lies within CODE,
// inclusive of the final byte of CodeCeiling as the reference implementation
// allows (addr+len <= CodeCeiling+1 in the original bounds check).
func (r Regions) CodeRangeValid(addr uint32, length uint32) bool {
	if addr < r.CodeFloor || addr >= r.CodeCeiling {
		return false
	}
	end := uint64(addr) + uint64(length)
	return end <= uint64(r.CodeCeiling)+1
}

// AttrSlotOffset returns the byte offset of slot idx within the attribute
// region. Callers must check idx < AttrSlotCount first.
func (r Regions) AttrSlotOffset(idx int) uint32 {
	return r.AttrFloor + uint32(idx*AttrSlotSize)
}

// AttrPageIndex returns which of the two attribute pages (0 or 1) contains
// slot idx, and the slot's offset within that page.
func AttrPageIndex(idx int) (page int, slotInPage int) {
	return idx / 8, idx % 8
}

// HeaderFloor returns the address of the one-page magic/version/reserved
// header that immediately precedes the two attribute pages.
func (r Regions) HeaderFloor() uint32 {
	return r.AttrFloor - Page
}
