//go:build mage

// Package main contains Mage build targets for pngbytes developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"pngbytes/pkg/batch"
)

const (
	binDir  = "bin"
	binName = "pngbytes"
	cmdPkg  = "./cmd/pngbytes"
)

// Default target to run when none is specified.
var Default = Build

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Assets creates the default source and destination directories.
func Assets() error {
	for _, dir := range []string{batch.DefaultSource, batch.DefaultDestination} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	return nil
}

// Convert builds the CLI and converts the default asset directories.
func Convert() error {
	mg.Deps(Build, Assets)
	return sh.RunV(filepath.Join(binDir, binName), "convert")
}
