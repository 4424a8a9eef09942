//go:build mage

// Package main contains Mage build targets for keeptotext developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "keeptotext"
	cmdPkg  = "./cmd/keeptotext"
)

// Default target when mage is run without arguments.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the version from
// the VERSION environment variable when set.
func Build() error {
	mg.Deps(Test)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + versionString()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests for every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build output.
func Clean() error {
	fmt.Println("Removing", binDir)
	return sh.Rm(binDir)
}

// Convert builds the binary and runs it on the archive named by ARCHIVE.
func Convert() error {
	mg.Deps(Build)
	archive := os.Getenv("ARCHIVE")
	if archive == "" {
		return fmt.Errorf("set ARCHIVE to the takeout zip to convert")
	}
	return sh.RunV(filepath.Join(binDir, binName), archive)
}

func versionString() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
