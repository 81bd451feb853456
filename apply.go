// SPDX-License-Identifier: MIT

package ddelta

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// applyBlockSize bounds how much of a diff/extra payload is buffered at once,
// fixed at 32 KiB to bound memory regardless of entry size.
// Declared in format.go alongside the wire-format constants.

// Apply reads a ddelta patch from patch and reconstructs new from old,
// writing the result to new. old must support Seek because control entries
// move its read cursor relative to its current position.
func Apply(patch io.Reader, old io.ReadSeeker, new io.Writer) error {
	header, present, err := readHeader(patch)
	if err != nil {
		return err
	}
	if !present {
		return ErrPatchTruncated
	}
	return applyStream(header, patch, old, new)
}

// applyStream consumes one patch stream's entries and payload, assuming its
// header has already been read. Shared by Apply and ApplyChunked, which
// differ only in how they decide a stream begins.
func applyStream(header patchHeader, patch io.Reader, old io.ReadSeeker, new io.Writer) error {
	var bytesWritten int64
	for {
		en, terminal, err := readEntry(patch)
		if err != nil {
			return err
		}
		if terminal {
			if bytesWritten != header.newSize {
				return ErrPatchTruncated
			}
			return nil
		}

		if err := applyDiff(patch, old, new, en.diffLen); err != nil {
			return err
		}
		if err := copyExtra(patch, new, en.extraLen); err != nil {
			return err
		}
		cur, err := old.Seek(0, io.SeekCurrent)
		if err != nil {
			return fmt.Errorf("ddelta: seeking old file: %w", err)
		}
		if cur+en.seek < 0 {
			return ErrPatchCorrupt
		}
		if _, err := old.Seek(en.seek, io.SeekCurrent); err != nil {
			return fmt.Errorf("ddelta: seeking old file: %w", err)
		}

		bytesWritten += en.diffLen + en.extraLen
	}
}

type patchHeader struct {
	newSize int64
}

// readHeader reads one 16-byte patch header. present=false with err=nil means
// patch was exhausted before any header bytes arrived — the clean boundary
// ApplyChunked relies on to know no more streams follow. A header that starts
// but does not finish is a genuine ErrPatchTruncated.
func readHeader(r io.Reader) (hdr patchHeader, present bool, err error) {
	var buf [headerSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err == io.EOF && n == 0 {
		return patchHeader{}, false, nil
	}
	if err != nil {
		return patchHeader{}, false, wrapShortRead(err)
	}
	if string(buf[:8]) != magic {
		return patchHeader{}, false, ErrBadMagic
	}
	return patchHeader{newSize: int64(binary.BigEndian.Uint64(buf[8:]))}, true, nil
}

// readEntry reads one 24-byte control entry, reporting whether it is the
// all-zero terminator.
func readEntry(r io.Reader) (en entry, terminal bool, err error) {
	var buf [entrySize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return entry{}, false, wrapShortRead(err)
	}

	en = entry{
		diffLen:  int64(binary.BigEndian.Uint64(buf[0:8])),
		extraLen: int64(binary.BigEndian.Uint64(buf[8:16])),
		seek:     int64(binary.BigEndian.Uint64(buf[16:24])),
	}
	if en.diffLen < 0 || en.extraLen < 0 {
		return entry{}, false, ErrPatchCorrupt
	}
	return en, en.isTerminator(), nil
}

// applyDiff reads size bytes from patch and size bytes from old, block by
// block, writing their wrapping sum to new.
func applyDiff(patch io.Reader, old io.Reader, new io.Writer, size int64) error {
	oldBuf := make([]byte, applyBlockSize)
	patchBuf := make([]byte, applyBlockSize)

	for size > 0 {
		toRead := int64(applyBlockSize)
		if size < toRead {
			toRead = size
		}
		oldChunk := oldBuf[:toRead]
		patchChunk := patchBuf[:toRead]

		if _, err := io.ReadFull(patch, patchChunk); err != nil {
			return wrapShortRead(err)
		}
		if _, err := io.ReadFull(old, oldChunk); err != nil {
			return wrapShortRead(err)
		}

		for i := range oldChunk {
			oldChunk[i] += patchChunk[i]
		}
		if _, err := new.Write(oldChunk); err != nil {
			return fmt.Errorf("ddelta: writing output: %w", err)
		}

		size -= toRead
	}
	return nil
}

// copyExtra streams size bytes of literal payload from patch to new.
func copyExtra(patch io.Reader, new io.Writer, size int64) error {
	buf := make([]byte, applyBlockSize)
	for size > 0 {
		toRead := int64(applyBlockSize)
		if size < toRead {
			toRead = size
		}
		chunk := buf[:toRead]

		if _, err := io.ReadFull(patch, chunk); err != nil {
			return wrapShortRead(err)
		}
		if _, err := new.Write(chunk); err != nil {
			return fmt.Errorf("ddelta: writing output: %w", err)
		}

		size -= toRead
	}
	return nil
}

// wrapShortRead maps EOF conditions hit while a patch is still expected to
// have more data to ErrPatchTruncated, leaving other I/O errors as-is.
func wrapShortRead(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrPatchTruncated
	}
	return fmt.Errorf("ddelta: reading patch: %w", err)
}
