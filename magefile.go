//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "spellbee"

// Default target to run when none is specified
var Default = Build

// Build compiles the spellbee binary
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/spellbee")
}

// Test runs all package tests with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet on all packages
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install installs spellbee into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/spellbee")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll(binary)
}
