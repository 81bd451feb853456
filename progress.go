// SPDX-License-Identifier: MIT

package ddelta

// ProgressKind identifies which phase a ProgressState describes.
type ProgressKind int

const (
	// ProgressReading is reported by the chunked wrapper while it fills its
	// old/new buffers for the next sub-patch.
	ProgressReading ProgressKind = iota
	// ProgressSorting is reported once per Generate call, while the suffix
	// array is under construction.
	ProgressSorting
	// ProgressWorking is reported periodically during the matcher's scan,
	// carrying the cumulative count of new bytes processed so far.
	ProgressWorking
)

// ProgressState is passed to the progress callback accepted by Generate and
// GenerateChunked; Apply and ApplyChunked report no progress. BytesDone is
// only meaningful when Kind is ProgressWorking; for chunked generation it
// accumulates across all sub-patches emitted so far.
type ProgressState struct {
	Kind      ProgressKind
	BytesDone int64
}

// ProgressFunc is called with progress updates during Generate/GenerateChunked.
// A nil ProgressFunc disables reporting.
type ProgressFunc func(ProgressState)

// workingProgressGranularity is the scan-position stride at which the matcher
// reports ProgressWorking: whenever the inner loop's scan position is a
// multiple of 100,000. A multiple that the scan jumps over by a match length
// is not reported.
const workingProgressGranularity = 100_000

func report(cb ProgressFunc, state ProgressState) {
	if cb != nil {
		cb(state)
	}
}
