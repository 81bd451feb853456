// SPDX-License-Identifier: MIT

package ddelta

import (
	"encoding/binary"
	"fmt"
	"io"
)

// patchEncoder serializes the header, control entries, and payload bytes of
// one patch stream to w. It owns no state beyond the writer itself; entry
// payloads are always derived fresh from old/new by the caller.
type patchEncoder struct {
	w io.Writer
}

func newPatchEncoder(w io.Writer) *patchEncoder {
	return &patchEncoder{w: w}
}

// writeHeader writes the 8-byte magic followed by the big-endian new file size.
func (e *patchEncoder) writeHeader(newSize int64) error {
	var buf [headerSize]byte
	copy(buf[:8], magic)
	binary.BigEndian.PutUint64(buf[8:], uint64(newSize))
	_, err := e.w.Write(buf[:])
	return err
}

// writeEntry writes one 24-byte control entry.
func (e *patchEncoder) writeEntry(en entry) error {
	var buf [entrySize]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(en.diffLen))
	binary.BigEndian.PutUint64(buf[8:16], uint64(en.extraLen))
	binary.BigEndian.PutUint64(buf[16:24], uint64(en.seek))
	_, err := e.w.Write(buf[:])
	return err
}

// writeTerminator writes the all-zero entry that closes a patch stream.
func (e *patchEncoder) writeTerminator() error {
	return e.writeEntry(entry{})
}

// writeBlock writes one full control entry together with its diff and extra
// payload, computing the diff bytes as new[i] - old[i] with byte wraparound.
func (e *patchEncoder) writeBlock(old, new []byte, b block) error {
	if err := e.writeEntry(b.entry); err != nil {
		return fmt.Errorf("ddelta: writing entry: %w", err)
	}

	if b.entry.diffLen != 0 {
		diff := make([]byte, b.entry.diffLen)
		for i := range diff {
			diff[i] = new[b.diffStart+int64(i)] - old[b.posStart+int64(i)]
		}
		if _, err := e.w.Write(diff); err != nil {
			return fmt.Errorf("ddelta: writing diff bytes: %w", err)
		}
	}

	if b.entry.extraLen != 0 {
		extra := new[b.extraFrom : b.extraFrom+b.entry.extraLen]
		if _, err := e.w.Write(extra); err != nil {
			return fmt.Errorf("ddelta: writing extra bytes: %w", err)
		}
	}

	return nil
}
