package entry

import (
	"testing"

	"openenterprise/tockboot/internal/simulator"
)

func TestMajorityLowEntersBootloader(t *testing.T) {
	pin := &simulator.GPIO{Level: false}
	if !ShouldEnterBootloader(pin, 100) {
		t.Error("a pin held low should enter bootloader mode")
	}
}

func TestMajorityHighJumpsToApplication(t *testing.T) {
	pin := &simulator.GPIO{Level: true}
	if ShouldEnterBootloader(pin, 100) {
		t.Error("a pin held high should not enter bootloader mode")
	}
}

func TestDecideJumpsWhenPinHigh(t *testing.T) {
	pin := &simulator.GPIO{Level: true}
	jumper := &simulator.Jumper{}
	Decide(pin, jumper, 100)
	if !jumper.Jumped {
		t.Error("Decide should have invoked the application jumper")
	}
}

func TestDecideStaysResidentWhenPinLow(t *testing.T) {
	pin := &simulator.GPIO{Level: false}
	jumper := &simulator.Jumper{}
	Decide(pin, jumper, 100)
	if jumper.Jumped {
		t.Error("Decide should not have invoked the application jumper")
	}
}
