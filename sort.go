// SPDX-License-Identifier: MIT

package ddelta

import "github.com/go-ddelta/ddelta/internal/sais"

// suffixSort wraps internal/sais.Sort for callers in this package. Kept as a
// separate indirection so the matcher doesn't import internal/sais directly.
func suffixSort(old []byte) []int32 {
	return sais.Sort(old)
}
