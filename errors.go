// SPDX-License-Identifier: MIT

package ddelta

import (
	"errors"

	goerrors "github.com/go-errors/errors"
)

// Sentinel errors for generation and application of ddelta patches.
var (
	// ErrInputTooLarge is returned by Generate when old or new exceeds 2^31-1 bytes.
	// Use GenerateChunked for larger inputs.
	ErrInputTooLarge = errors.New("ddelta: old or new exceeds 2^31-1 bytes")
	// ErrBadMagic is returned when a patch header's magic does not equal "DDELTA40".
	ErrBadMagic = errors.New("ddelta: bad patch magic")
	// ErrPatchTruncated is returned when the terminator is reached before new_file_size
	// bytes have been produced, or a read hits EOF in the middle of an entry.
	ErrPatchTruncated = errors.New("ddelta: patch truncated")
	// ErrPatchCorrupt is returned when a seek would move the old cursor before the start
	// of old, or an entry's diff or extra length does not fit in an int64. A seek past
	// the end of old is not rejected by itself; the next diff read from old then fails
	// with ErrPatchTruncated.
	ErrPatchCorrupt = errors.New("ddelta: patch corrupt")
	// ErrChunkSize is not returned by GenerateChunked: a ChunkSize of 0 selects the
	// default and any other value is clamped (see ChunkOptions).
	ErrChunkSize = errors.New("ddelta: chunk size must be positive")

	// errMatcherInvariant signals the matcher's lenf/extra_len >= 0 invariant was
	// violated. This is a programmer error, never a symptom of malformed input.
	errMatcherInvariant = errors.New("ddelta: matcher invariant violated")
)

// invariantViolation wraps errMatcherInvariant with a stack trace, so that if
// it ever surfaces from Generate the caller can log exactly where the
// matcher's bookkeeping went wrong.
func invariantViolation() error {
	return goerrors.Wrap(errMatcherInvariant, 1)
}
