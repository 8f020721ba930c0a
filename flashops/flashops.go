// Package flashops is a validating façade over the flash-controller
// collaborator (hal.FlashDriver): it enforces the address and alignment
// rules spec'd for erase, write, read, and CRC operations before ever
// calling the driver.
package flashops

import (
	"openenterprise/tockboot/flashmap"
	"openenterprise/tockboot/internal/hal"
)

// Outcome is the result of a validated flash operation.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeAlreadyEmpty
	OutcomeBadAddr
	OutcomeInternalError
)

// Ops wraps a hal.FlashDriver and hal.Hasher with the region and alignment
// checks the reference bootloader applies before ever touching hardware.
type Ops struct {
	Regions flashmap.Regions
	Driver  hal.FlashDriver
	Hash    hal.Hasher
}

// New returns an Ops bound to the given region table, flash driver, and
// checksum collaborator.
func New(regions flashmap.Regions, driver hal.FlashDriver, hash hal.Hasher) *Ops {
	return &Ops{Regions: regions, Driver: driver, Hash: hash}
}

// ErasePage validates addr and, if valid, erases the page. A page that
// already reads all-0xFF is reported as OutcomeAlreadyEmpty without
// issuing a real erase.
func (o *Ops) ErasePage(addr uint32) Outcome {
	if !o.Regions.InCode(addr) || !flashmap.PageAligned(addr) {
		return OutcomeBadAddr
	}
	empty, err := o.Driver.ErasePage(addr)
	if err != nil {
		return OutcomeInternalError
	}
	if empty {
		return OutcomeAlreadyEmpty
	}
	return OutcomeOK
}

// WritePage validates addr, then erases and writes a full 512-byte page.
func (o *Ops) WritePage(addr uint32, data [512]byte) Outcome {
	if !o.Regions.InCode(addr) || !flashmap.PageAligned(addr) {
		return OutcomeBadAddr
	}
	if err := o.Driver.WritePage(addr, data); err != nil {
		return OutcomeInternalError
	}
	return OutcomeOK
}

// WriteUserPage writes the two-word user page. It has no address to
// validate: the user page is a single fixed-address region.
func (o *Ops) WriteUserPage(word0, word1 uint32) Outcome {
	if err := o.Driver.WriteUserPage(word0, word1); err != nil {
		return OutcomeInternalError
	}
	return OutcomeOK
}

// ReadRange validates addr/length against CODE, then returns a mapped
// slice. It applies no length cap of its own; RRANGE enforces TxCap/2.
func (o *Ops) ReadRange(addr uint32, length uint32) ([]byte, Outcome) {
	if !o.Regions.CodeRangeValid(addr, length) {
		return nil, OutcomeBadAddr
	}
	o.Driver.InvalidateCache()
	data, err := o.Driver.ReadRange(addr, length)
	if err != nil {
		return nil, OutcomeInternalError
	}
	return data, OutcomeOK
}

// CRCMaxLen is the reference implementation's cap on a CRCIF span: 512 KiB.
const CRCMaxLen = 512 * 1024

// CRCRange validates addr/length against CODE and CRCMaxLen, then computes
// the checksum collaborator's CRC-32 over the span.
func (o *Ops) CRCRange(addr uint32, length uint32) (uint32, Outcome) {
	if length >= CRCMaxLen {
		return 0, OutcomeBadAddr
	}
	if !o.Regions.CodeRangeValid(addr, length) {
		return 0, OutcomeBadAddr
	}
	o.Driver.InvalidateCache()
	data, err := o.Driver.ReadRange(addr, length)
	if err != nil {
		return 0, OutcomeInternalError
	}
	return o.Hash.Checksum(data), OutcomeOK
}
