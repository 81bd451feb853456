// SPDX-License-Identifier: MIT

package ddelta

// fuzz is the stall-detection tolerance window. Load-bearing for patch size
// and generation time — do not change.
const fuzz = 8

// maxStallRounds is the num_less_than_eight threshold past which the inner
// loop gives up waiting for a better match.
const maxStallRounds = 100

// matcherState owns all transient state for one Generate call: scan/pos/len
// and the last* anchors (scsc and oldscore are locals of nextBlock). Nothing
// here is shared across calls or goroutines.
type matcherState struct {
	old, new  []byte
	searchOld []byte  // old with its final byte dropped; see newMatcherState
	sa        []int32 // suffix array of old, length len(old)+1 with trailing sentinel
	progress  ProgressFunc

	scan, length, pos          int64
	lastScan, lastPos, lastOff int64
}

// newMatcherState builds the suffix array for old and returns a matcher
// ready to scan new from the beginning.
func newMatcherState(old, new []byte, progress ProgressFunc) *matcherState {
	report(progress, ProgressState{Kind: ProgressSorting})

	sa := make([]int32, len(old)+1)
	copy(sa, suffixSort(old))
	// sa[len(old)] is a sentinel: value 0, never compared as a real suffix
	// but indexed as the search's upper bound.
	sa[len(old)] = 0

	// searchOld drops old's final byte before it is used as the comparison
	// buffer in longestPrefixSearch, matching the reference matcher's search
	// window exactly (preserved for bit-compatibility with reference patch
	// output). The full old slice is still used everywhere else (extension,
	// scoring).
	searchOld := old
	if len(old) > 0 {
		searchOld = old[:len(old)-1]
	}

	return &matcherState{old: old, new: new, searchOld: searchOld, sa: sa, progress: progress}
}

// search finds the best candidate match for new[scan:] in old, short-circuiting
// when old is empty (no suffixes to search).
func (m *matcherState) search(scan int64) (length, pos int64) {
	if len(m.old) == 0 {
		return 0, 0
	}

	l, p := longestPrefixSearch(m.sa, m.searchOld, m.new[scan:], 0, len(m.old))
	return int64(l), int64(p)
}

// block is one emitted control entry together with its payload bytes.
type block struct {
	entry     entry
	diffStart int64 // new[diffStart:diffStart+entry.diffLen] minus old[posStart:...]
	posStart  int64
	extraFrom int64 // new[extraFrom:extraFrom+entry.extraLen]
}

// nextBlock runs one outer-loop iteration of the scan, advancing m.scan and,
// if the inner loop's cut condition was met, emitting a block.
// Callers must keep invoking nextBlock while m.scan < len(new); a given call
// may legitimately advance the scan without emitting anything (emitted=false,
// err=nil) when the inner loop exits with a match no longer than what the
// previous block's offset already covers (length == oldscore).
func (m *matcherState) nextBlock() (b block, emitted bool, err error) {
	numLessThanEight := 0
	var oldscore int64
	m.scan += m.length
	scsc := m.scan

	for m.scan < int64(len(m.new)) {
		if m.scan%workingProgressGranularity == 0 {
			report(m.progress, ProgressState{Kind: ProgressWorking, BytesDone: m.scan})
		}

		prevLen, prevOldscore, prevPos := m.length, oldscore, m.pos

		m.length, m.pos = m.search(m.scan)

		for scsc < m.scan+m.length {
			if scsc+m.lastOff < int64(len(m.old)) && m.old[scsc+m.lastOff] == m.new[scsc] {
				oldscore++
			}
			scsc++
		}

		if (m.length == oldscore && m.length != 0) || m.length > oldscore+8 {
			break
		}

		if m.scan+m.lastOff < int64(len(m.old)) && m.old[m.scan+m.lastOff] == m.new[m.scan] {
			oldscore--
		}

		if prevLen-fuzz <= m.length && m.length <= prevLen &&
			prevOldscore-fuzz <= oldscore && oldscore <= prevOldscore &&
			prevPos <= m.pos && m.pos <= prevPos+fuzz &&
			oldscore <= m.length && m.length <= oldscore+fuzz {
			numLessThanEight++
		} else {
			numLessThanEight = 0
		}

		if numLessThanEight > maxStallRounds {
			break
		}

		m.scan++
	}

	if m.length == oldscore && m.scan != int64(len(m.new)) {
		// The match found is fully covered by continuing the previous block's
		// offset; nothing to emit for this outer iteration (mirrors the reference
		// generate loop's `if length != oldscore || scan == new.len()` guard).
		return block{}, false, nil
	}

	b, err = m.emit()
	return b, err == nil, err
}

// emit performs forward/backward extension with overlap resolution and
// serializes one control entry.
func (m *matcherState) emit() (block, error) {
	scan, pos := m.scan, m.pos
	lastScan, lastPos := m.lastScan, m.lastPos

	var s, sf, lenf int64
	i := int64(0)
	for lastScan+i < scan && lastPos+i < int64(len(m.old)) {
		if m.old[lastPos+i] == m.new[lastScan+i] {
			s++
		}
		i++
		if s*2-i > sf*2-lenf {
			sf = s
			lenf = i
		}
	}

	var lenb int64
	if scan < int64(len(m.new)) {
		var s, sb int64
		for i := int64(1); scan >= lastScan+i && pos >= i; i++ {
			if m.old[pos-i] == m.new[scan-i] {
				s++
			}
			if s*2-i > sb*2-lenb {
				sb = s
				lenb = i
			}
		}
	}

	if lastScan+lenf > scan-lenb {
		overlap := (lastScan + lenf) - (scan - lenb)
		var s, ss, lens int64
		for i := int64(0); i < overlap; i++ {
			if m.new[lastScan+lenf-overlap+i] == m.old[lastPos+lenf-overlap+i] {
				s++
			}
			if m.new[scan-lenb+i] == m.old[pos-lenb+i] {
				s--
			}
			if s > ss {
				ss = s
				lens = i + 1
			}
		}
		lenf += lens - overlap
		lenb -= lens
	}

	extraLen := (scan - lenb) - (lastScan + lenf)
	if lenf < 0 || extraLen < 0 {
		return block{}, invariantViolation()
	}

	b := block{
		entry: entry{
			diffLen:  lenf,
			extraLen: extraLen,
			seek:     (pos - lenb) - (lastPos + lenf),
		},
		diffStart: lastScan,
		posStart:  lastPos,
		extraFrom: lastScan + lenf,
	}

	m.lastScan = scan - lenb
	m.lastPos = pos - lenb
	m.lastOff = pos - scan

	return b, nil
}
