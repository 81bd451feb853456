// SPDX-License-Identifier: MIT

package ddelta

// DDELTA40 wire format: fixed 16-byte header followed by a sequence of
// fixed 24-byte control entries, each optionally followed by diffLen diff
// bytes and extraLen literal bytes, terminated by an all-zero entry.
//
//	PatchHeader := magic[8]="DDELTA40" | newFileSize:u64
//	Entry       := diffLen:u64 | extraLen:u64 | seek:i64 | diffBytes[diffLen] | extraBytes[extraLen]
//	Terminator  := diffLen=0   | extraLen=0    | seek=0
//
// All multi-byte integers are big-endian, with no padding.
const (
	// magic is the literal 8-byte header prefix identifying a ddelta patch stream.
	magic = "DDELTA40"

	// headerSize is the size in bytes of PatchHeader (8-byte magic + 8-byte size).
	headerSize = 16

	// entrySize is the size in bytes of a control entry (three 8-byte fields).
	entrySize = 24

	// applyBlockSize bounds memory use during Apply's diff/extra phases.
	applyBlockSize = 32 * 1024
)

// entry is one control entry of the patch stream.
type entry struct {
	diffLen  int64
	extraLen int64
	seek     int64
}

// isTerminator reports whether e is the all-zero terminator entry.
func (e entry) isTerminator() bool {
	return e.diffLen == 0 && e.extraLen == 0 && e.seek == 0
}
