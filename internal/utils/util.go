package utils

import "unicode/utf8"

// RuneIndexToByteOffset converts a rune index to a byte offset in s.
// Returns -1 if runeIndex is past the end of s. An index equal to the rune
// count maps to len(s).
func RuneIndexToByteOffset(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == runeIndex {
			return i
		}
		n++
	}
	if n == runeIndex {
		return len(s)
	}
	return -1
}

// ByteOffsetToRuneIndex converts a byte offset in s to a rune index.
// Offsets inside a multi-byte rune count that rune as not yet reached.
func ByteOffsetToRuneIndex(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	return utf8.RuneCountInString(s[:byteOffset]) - partialTail(s, byteOffset)
}

// partialTail is 1 when byteOffset splits a multi-byte rune.
func partialTail(s string, byteOffset int) int {
	if byteOffset >= len(s) || utf8.RuneStart(s[byteOffset]) {
		return 0
	}
	return 1
}

// RuneLen is the number of runes in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// SliceRunes returns the substring of s between rune indexes start and end.
// Indexes are clamped to [0, RuneLen(s)].
func SliceRunes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	b0 := RuneIndexToByteOffset(s, start)
	if b0 < 0 {
		return ""
	}
	b1 := RuneIndexToByteOffset(s, end)
	if b1 < 0 {
		b1 = len(s)
	}
	return s[b0:b1]
}

// SplitRunes splits s at rune index at.
func SplitRunes(s string, at int) (string, string) {
	b := RuneIndexToByteOffset(s, at)
	if b < 0 {
		return s, ""
	}
	return s[:b], s[b:]
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
