// ABOUTME: Normalized string similarity scoring
// ABOUTME: Ratcliff-Obershelp matching-blocks ratio in [0.0, 1.0]
package fuzzy

import "strings"

// Similarity returns a normalized similarity score between two strings:
// twice the number of matching characters divided by the total length.
// Matching characters are found by locating the longest common substring,
// then recursing on the pieces to its left and right. Comparison is
// case-insensitive and deterministic.
func Similarity(a, b string) float64 {
	ar := []rune(strings.ToLower(a))
	br := []rune(strings.ToLower(b))

	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}

	return 2.0 * float64(matchingChars(ar, br)) / float64(total)
}

func matchingChars(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestCommonSubstring returns the start offsets and length of the longest
// run of characters common to a and b. Ties resolve to the earliest offset in
// a, then in b, which keeps the recursion deterministic.
func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// Single-row DP over match run lengths.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > size {
					size = curr[j]
					ai = i - size
					bi = j - size
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}

	return ai, bi, size
}
