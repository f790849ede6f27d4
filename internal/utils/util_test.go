package utils

import "testing"

func TestRuneByteConversions(t *testing.T) {
	s := "añb€c"
	if got := RuneIndexToByteOffset(s, 2); got != 3 {
		t.Fatalf("rune 2 -> byte %d, want 3", got)
	}
	if got := RuneIndexToByteOffset(s, 5); got != len(s) {
		t.Fatalf("rune 5 -> byte %d, want %d", got, len(s))
	}
	if got := RuneIndexToByteOffset(s, 6); got != -1 {
		t.Fatalf("rune 6 -> byte %d, want -1", got)
	}
	if got := ByteOffsetToRuneIndex(s, 3); got != 2 {
		t.Fatalf("byte 3 -> rune %d, want 2", got)
	}
	if got := ByteOffsetToRuneIndex(s, 5); got != 3 {
		// byte 5 is inside the euro sign
		t.Fatalf("byte 5 -> rune %d, want 3", got)
	}
}

func TestSliceRunes(t *testing.T) {
	s := "héllo"
	if got := SliceRunes(s, 1, 3); got != "él" {
		t.Fatalf("SliceRunes = %q", got)
	}
	if got := SliceRunes(s, 3, 100); got != "lo" {
		t.Fatalf("SliceRunes clamp = %q", got)
	}
	if got := SliceRunes(s, 4, 2); got != "" {
		t.Fatalf("inverted slice = %q", got)
	}
	l, r := SplitRunes(s, 2)
	if l != "hé" || r != "llo" {
		t.Fatalf("SplitRunes = %q %q", l, r)
	}
}
