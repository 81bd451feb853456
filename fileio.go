// SPDX-License-Identifier: MIT

package ddelta

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// GenerateFile reads oldPath and newPath in full, computes a patch between
// them, and writes it to patchPath. The write is atomic: a crash or
// concurrent reader never observes a partial patch file.
func GenerateFile(oldPath, newPath, patchPath string, progress ProgressFunc) error {
	old, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("ddelta: reading old file: %w", err)
	}
	newData, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("ddelta: reading new file: %w", err)
	}

	var buf bytes.Buffer
	if err := Generate(old, newData, &buf, progress); err != nil {
		return err
	}

	return atomic.WriteFile(patchPath, &buf)
}

// ApplyFile applies the patch at patchPath to oldPath and atomically writes
// the result to newPath.
func ApplyFile(patchPath, oldPath, newPath string) error {
	patch, err := os.Open(patchPath)
	if err != nil {
		return fmt.Errorf("ddelta: opening patch file: %w", err)
	}
	defer patch.Close()

	old, err := os.Open(oldPath)
	if err != nil {
		return fmt.Errorf("ddelta: opening old file: %w", err)
	}
	defer old.Close()

	var buf bytes.Buffer
	if err := Apply(patch, old, &buf); err != nil {
		return err
	}

	return atomic.WriteFile(newPath, &buf)
}
