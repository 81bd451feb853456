// SPDX-License-Identifier: MIT

// Package sais builds the suffix array of a byte slice: a pluggable,
// swappable collaborator for approximate-match diffing ("any
// DivSufSort-equivalent" leaf). It implements the Larsson-Sadakane
// qsufsort algorithm (bucket-sort by first byte, then repeated
// ternary-split refinement doubling the compared prefix length h),
// the same algorithm family used by the reference bsdiff tooling.
package sais

// Sort returns the suffix array of data: a permutation of [0, len(data))
// such that data[Sort(data)[i]:] <= data[Sort(data)[i+1]:] in prefix-bounded
// lexicographic order. The caller is responsible for appending any sentinel
// entry it needs — this function returns exactly len(data) indices, no more.
func Sort(data []byte) []int32 {
	n := len(data)
	if n == 0 {
		return nil
	}

	// sa[i] initially holds data positions grouped by first byte; rank[pos]
	// holds the equivalence-class id (shared by every position still tied
	// with pos under the current comparison depth h).
	sa := make([]int, n+1)
	rank := make([]int, n+1)

	var buckets [256]int
	for _, c := range data {
		buckets[c]++
	}
	for c := 1; c < 256; c++ {
		buckets[c] += buckets[c-1]
	}
	copy(buckets[1:], buckets[:])
	buckets[0] = 0

	for i, c := range data {
		buckets[c]++
		sa[buckets[c]] = i
	}

	sa[0] = n
	for i, c := range data {
		rank[i] = buckets[c]
	}
	rank[n] = 0

	for c := 1; c < 256; c++ {
		if buckets[c] == buckets[c-1]+1 {
			sa[buckets[c]] = -1
		}
	}
	sa[0] = -1

	for h := 1; sa[0] != -(n + 1); h += h {
		var run int
		i := 0
		for i < n+1 {
			if sa[i] < 0 {
				run -= sa[i]
				i -= sa[i]
				continue
			}

			if run != 0 {
				sa[i-run] = -run
			}

			run = rank[sa[i]] + 1 - i
			split(sa, rank, i, run, h)
			i += run
			run = 0
		}

		if run != 0 {
			sa[i-run] = -run
		}
	}

	for i := 0; i < n+1; i++ {
		sa[rank[i]] = i
	}

	out := make([]int32, n)
	for i := 1; i <= n; i++ {
		out[i-1] = int32(sa[i]) //nolint:gosec // G115: positions bounded by n <= 2^31-1 per spec
	}
	return out
}

func swap(a []int, i, j int) { a[i], a[j] = a[j], a[i] }

// split performs the ternary-split quicksort refinement of sa[start:start+length]
// by comparing rank[sa[k]+h] (the rank of the suffix h bytes ahead), the classic
// Larsson-Sadakane doubling step.
func split(sa, rank []int, start, length, h int) {
	if length < 16 {
		splitSmall(sa, rank, start, length, h)
		return
	}

	pivot := rank[sa[start+length/2]+h]
	lt, eq := 0, 0
	for i := start; i < start+length; i++ {
		if rank[sa[i]+h] < pivot {
			lt++
		}
		if rank[sa[i]+h] == pivot {
			eq++
		}
	}
	lt += start
	eq += lt

	i, j, k := start, 0, 0
	for i < lt {
		switch {
		case rank[sa[i]+h] < pivot:
			i++
		case rank[sa[i]+h] == pivot:
			swap(sa, i, lt+j)
			j++
		default:
			swap(sa, i, eq+k)
			k++
		}
	}

	for lt+j < eq {
		if rank[sa[lt+j]+h] == pivot {
			j++
		} else {
			swap(sa, lt+j, eq+k)
			k++
		}
	}

	if lt > start {
		split(sa, rank, start, lt-start, h)
	}

	for i := 0; i < eq-lt; i++ {
		rank[sa[lt+i]] = eq - 1
	}
	if lt == eq-1 {
		sa[lt] = -1
	}

	if start+length > eq {
		split(sa, rank, eq, start+length-eq, h)
	}
}

// splitSmall is the insertion-sort base case used once a group shrinks below 16
// elements: cheaper than recursing further, same asymptotic correctness.
func splitSmall(sa, rank []int, start, length, h int) {
	for k := start; k < start+length; {
		step := 1
		pivot := rank[sa[k]+h]
		for i := 1; k+i < start+length; i++ {
			if rank[sa[k+i]+h] < pivot {
				pivot = rank[sa[k+i]+h]
				step = 0
			}
			if rank[sa[k+i]+h] == pivot {
				swap(sa, k+i, k+step)
				step++
			}
		}

		for i := 0; i < step; i++ {
			rank[sa[k+i]] = k + step - 1
		}
		if step == 1 {
			sa[k] = -1
		}

		k += step
	}
}
