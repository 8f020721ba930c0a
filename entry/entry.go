// Package entry implements EntryPolicy: the GPIO majority-sample decision
// a bootloader makes at reset between staying resident and jumping to the
// application.
package entry

import (
	"log/slog"

	"openenterprise/tockboot/internal/hal"
)

// DefaultSampleCount matches the reference implementation's sample depth.
const DefaultSampleCount = 10000

// ShouldEnterBootloader samples pin sampleCount times and reports whether
// the pin read low for a strict majority of samples.
func ShouldEnterBootloader(pin hal.GPIOPin, sampleCount int) bool {
	lowCount := 0
	for i := 0; i < sampleCount; i++ {
		if !pin.Get() {
			lowCount++
		}
	}
	enter := lowCount*2 > sampleCount
	slog.Debug("entry:sample",
		slog.Int("low", lowCount),
		slog.Int("samples", sampleCount),
		slog.Bool("enter_bootloader", enter))
	return enter
}

// Decide samples the select pin and either returns control (bootloader
// mode) or invokes jumper.JumpToApplication, which does not return.
func Decide(pin hal.GPIOPin, jumper hal.ApplicationJumper, sampleCount int) {
	if ShouldEnterBootloader(pin, sampleCount) {
		slog.Info("entry:resident")
		return
	}
	slog.Info("entry:jump")
	jumper.JumpToApplication()
}
