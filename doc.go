// SPDX-License-Identifier: MIT

/*
Package ddelta implements the ddelta binary delta format: a streaming
variant of bsdiff that produces a compact patch from an "old" and "new"
byte sequence, and applies that patch against old to reconstruct new.

The format uses a 16-byte header followed by a sequence of 24-byte
control entries, each directing the applier to add diff bytes to old,
copy literal "extra" bytes, and seek the old cursor. The stream ends
with an all-zero terminator entry.

# Generate

	err := ddelta.Generate(old, new, patchWriter, nil)

For inputs larger than 2^31-1 bytes, or to bound memory with a chunk
size, use the chunked form:

	err := ddelta.GenerateChunked(oldReader, newReader, patchWriter, nil, nil)

# Apply

	err := ddelta.Apply(patchReader, oldReaderSeeker, newWriter)

	err := ddelta.ApplyChunked(patchReader, oldReaderSeeker, newWriter)

Generate and GenerateChunked accept an optional progress callback
reporting ProgressState values; Apply and ApplyChunked take none.
*/
package ddelta
