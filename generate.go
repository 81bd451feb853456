// SPDX-License-Identifier: MIT

package ddelta

import (
	"fmt"
	"io"
	"math"
)

// maxInputSize is the largest old or new buffer Generate accepts: 2^31-1
// bytes, the limit shared with the original bsdiff/ddelta tooling. Suffix
// array indices are int32 (see internal/sais.Sort); the wire format's size
// fields themselves are 64-bit.
const maxInputSize = math.MaxInt32

// Generate writes a ddelta patch that turns old into new to patch.
//
// old and new must each be no larger than 2^31-1 bytes; larger inputs must
// use GenerateChunked instead. progress may be nil.
func Generate(old, new []byte, patch io.Writer, progress ProgressFunc) error {
	if len(old) > maxInputSize || len(new) > maxInputSize {
		return ErrInputTooLarge
	}

	enc := newPatchEncoder(patch)
	if err := enc.writeHeader(int64(len(new))); err != nil {
		return fmt.Errorf("ddelta: writing header: %w", err)
	}

	m := newMatcherState(old, new, progress)
	for m.scan < int64(len(new)) {
		b, emitted, err := m.nextBlock()
		if err != nil {
			return err
		}
		if !emitted {
			continue
		}
		if err := enc.writeBlock(old, new, b); err != nil {
			return err
		}
	}

	if err := enc.writeTerminator(); err != nil {
		return fmt.Errorf("ddelta: writing terminator: %w", err)
	}

	return nil
}
