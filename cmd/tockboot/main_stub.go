//go:build !tinygo

// This file exists only so `go build`/`go vet` succeed on a host without a
// TinyGo toolchain. The real entrypoint is main_tinygo.go; for a runnable
// host-side exercise of the protocol core, see cmd/tockboot-sim.
package main

import "fmt"

func main() {
	fmt.Println("tockboot: build with tinygo for a target board; see cmd/tockboot-sim for a host simulation")
}
