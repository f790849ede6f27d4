package segment

import (
	"testing"

	"github.com/bethropolis/richdoc/internal/style"
)

func TestSplitProducesLineBreaks(t *testing.T) {
	segs := Split("ab\r\n\ncd", StyleInfo{})
	kinds := []Kind{KindText, KindLineBreak, KindLineBreak, KindText}
	if len(segs) != len(kinds) {
		t.Fatalf("got %d segments: %v", len(segs), segs)
	}
	for i, k := range kinds {
		if segs[i].Kind() != k {
			t.Fatalf("segment %d is %v, want %v", i, segs[i].Kind(), k)
		}
	}
	if segs[0].Text() != "ab" || segs[3].Text() != "cd" {
		t.Fatalf("unexpected texts %v", segs)
	}
}

func TestCollectorReplays(t *testing.T) {
	var c Collector
	in := FromText("one\ntwo", StyleInfo{Attrs: style.Of(style.Bold, true)})
	for {
		s, ok := in.Next()
		if !ok {
			break
		}
		if err := c.Append(s); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.PlainText(); got != "one\ntwo" {
		t.Fatalf("plain text %q", got)
	}
	replay := c.Input()
	n := 0
	for {
		if _, ok := replay.Next(); !ok {
			break
		}
		n++
	}
	if n != 3 {
		t.Fatalf("replayed %d segments, want 3", n)
	}
}

func TestStyleInfoState(t *testing.T) {
	if !(StyleInfo{}).IsZero() {
		t.Fatal("zero StyleInfo")
	}
	si := StyleInfo{Names: []string{"keyword"}}
	if si.IsZero() || si.IsResolved() {
		t.Fatal("named style is neither zero nor resolved")
	}
	if !(StyleInfo{Attrs: style.Empty}).IsResolved() {
		t.Fatal("attrs style is resolved")
	}
}
