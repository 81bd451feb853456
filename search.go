// SPDX-License-Identifier: MIT

package ddelta

// matchLen returns the length of the common prefix of a and b: the largest
// k <= min(len(a), len(b)) such that a[:k] == b[:k].
func matchLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// prefixBoundedLess reports whether a is lexicographically less than b when
// only the first min(len(a), len(b)) bytes of each are compared (a
// prefix-truncated comparison over the common length, since suffixes being
// compared are rarely the same length).
func prefixBoundedLess(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// longestPrefixSearch finds the suffix array entry in sa[st..en] whose suffix
// of old shares the longest common prefix with q. It returns that length and
// the matching suffix's start offset. sa is expected to have length
// len(old)+1 with a trailing sentinel (value 0) at the final index, and the
// top-level call uses st=0, en=len(old). Callers must not call this when old
// is empty — there are no suffixes to search.
func longestPrefixSearch(sa []int32, old, q []byte, st, en int) (length int, pos int) {
	for en-st >= 2 {
		mid := st + (en-st)/2
		if prefixBoundedLess(q, old[sa[mid]:]) {
			en = mid
		} else {
			st = mid
		}
	}

	x := matchLen(old[sa[st]:], q)
	y := matchLen(old[sa[en]:], q)
	if x > y {
		return x, int(sa[st])
	}
	return y, int(sa[en])
}
