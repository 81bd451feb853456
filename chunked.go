// SPDX-License-Identifier: MIT

package ddelta

import (
	"fmt"
	"io"
)

// readUpTo fills buf as far as possible from r, returning early (with a
// short count) at EOF or when a Read returns no bytes and no error. Mirrors the reference chunked reader's retry-on-
// short-read behavior, since a single Read call is not guaranteed to fill
// its buffer even when more data remains.
func readUpTo(r io.Reader, buf []byte) (int, error) {
	var n int
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if m == 0 {
			break
		}
	}
	return n, nil
}

// GenerateChunked writes a sequence of independent ddelta patch streams
// covering all of newR, read in opts.ChunkSize pieces alongside matching
// pieces of oldR. Concatenating ApplyChunked's output reproduces newR in
// full. Unlike Generate, there is no 2^31-1 size limit on the total input;
// each chunk individually respects it.
//
// When newR fits in one chunk, the result is exactly what Generate writes.
// Otherwise it is a concatenation of independent patch streams, which only
// ApplyChunked reads in full; Apply stops after the first stream.
func GenerateChunked(oldR, newR io.Reader, patch io.Writer, opts *ChunkOptions, progress ProgressFunc) error {
	chunkSize := opts.resolve()

	oldBuf := make([]byte, chunkSize)
	newBuf := make([]byte, chunkSize)
	var bytesCompleted int64

	for {
		report(progress, ProgressState{Kind: ProgressReading})

		newN, err := readUpTo(newR, newBuf)
		if err != nil {
			return fmt.Errorf("ddelta: reading new chunk: %w", err)
		}
		if newN == 0 {
			if bytesCompleted == 0 {
				enc := newPatchEncoder(patch)
				if err := enc.writeHeader(0); err != nil {
					return err
				}
				if err := enc.writeTerminator(); err != nil {
					return err
				}
			}
			return nil
		}

		oldN, err := readUpTo(oldR, oldBuf)
		if err != nil {
			return fmt.Errorf("ddelta: reading old chunk: %w", err)
		}

		base := bytesCompleted
		chunkProgress := ProgressFunc(func(s ProgressState) {
			if progress == nil {
				return
			}
			if s.Kind == ProgressWorking {
				s.BytesDone += base
			}
			progress(s)
		})

		if err := Generate(oldBuf[:oldN], newBuf[:newN], patch, chunkProgress); err != nil {
			return err
		}
		bytesCompleted += int64(newN)
	}
}

// ApplyChunked reverses GenerateChunked: it reads one patch stream after
// another from patch, applying each against the corresponding region of old
// (read sequentially, chunk by chunk) and writing the reconstructed bytes to
// new. After each stream, old is repositioned with an absolute Seek to the
// total new_file_size of all streams applied so far, so chunk k of the patch
// is applied against old starting at offset k times the chunk size.
//
// A clean end of patch exactly between two streams (no header bytes read
// yet) ends the loop successfully; running out of data in the middle of a
// stream is always ErrPatchTruncated.
func ApplyChunked(patch io.Reader, old io.ReadSeeker, new io.Writer) error {
	var cumNewSize int64
	for {
		header, present, err := readHeader(patch)
		if err != nil {
			return err
		}
		if !present {
			return nil
		}
		if err := applyStream(header, patch, old, new); err != nil {
			return err
		}
		cumNewSize += header.newSize
		if _, err := old.Seek(cumNewSize, io.SeekStart); err != nil {
			return fmt.Errorf("ddelta: seeking old file: %w", err)
		}
	}
}
