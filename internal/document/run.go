package document

import (
	"github.com/bethropolis/richdoc/internal/segment"
	"github.com/bethropolis/richdoc/internal/style"
	"github.com/bethropolis/richdoc/internal/utils"
)

// ObjectReplacement stands in for an inline embedded object in plain text.
const ObjectReplacement = '\uFFFC'

// run is a span of text sharing one interned style. An inline node run holds
// a single ObjectReplacement character and the node's generator.
type run struct {
	text  string
	n     int
	attrs *style.Attrs
	node  segment.Generator
}

func (r run) isNode() bool { return r.node != nil }

// mergeable reports whether r and o may be joined into one run. Node runs
// never merge.
func (r run) mergeable(o run) bool {
	return !r.isNode() && !o.isNode() && r.attrs.Equal(o.attrs)
}

func (r run) join(o run) run {
	return run{text: r.text + o.text, n: r.n + o.n, attrs: r.attrs}
}

// slice returns the text run covering rune offsets [start, end) of r.
func (r run) slice(start, end int) run {
	if r.isNode() {
		return r
	}
	return run{text: utils.SliceRunes(r.text, start, end), n: end - start, attrs: r.attrs}
}

// mergeRuns drops empty text runs and joins adjacent mergeable runs. It
// compacts runs in place and returns the shortened slice.
func mergeRuns(runs []run) []run {
	out := runs[:0]
	for _, r := range runs {
		if r.n == 0 && !r.isNode() {
			continue
		}
		if len(out) > 0 && out[len(out)-1].mergeable(r) {
			out[len(out)-1] = out[len(out)-1].join(r)
			continue
		}
		out = append(out, r)
	}
	// release references held past the new length
	for i := len(out); i < len(runs); i++ {
		runs[i] = run{}
	}
	return out
}

// Run is a read-only view of one run.
type Run struct {
	Text  string
	Attrs *style.Attrs
	// Node is set for an inline embedded object.
	Node segment.Generator
}

// overlap classifies a run [rs, re) against a range [start, end).
type overlap int

const (
	runBefore       overlap = iota // run ends at or before the range
	runAfter                       // run starts at or after the range end
	rangeIsRun                     // range bounds the run exactly
	rangeAtRunStart                // range shares the run's start, ends inside it
	rangeAtRunEnd                  // range starts inside the run, shares its end
	rangeInsideRun                 // range strictly inside the run
	runInsideRange                 // run strictly inside the range
	runAtRangeEdge                 // run inside the range, sharing one boundary
	startCutsRun                   // range start falls inside the run, run ends inside range
	endCutsRun                     // run starts inside the range, range end falls inside run
)

func classify(rs, re, start, end int) overlap {
	switch {
	case re <= start:
		return runBefore
	case rs >= end:
		return runAfter
	case rs == start && re == end:
		return rangeIsRun
	case rs == start && end < re:
		return rangeAtRunStart
	case rs < start && re == end:
		return rangeAtRunEnd
	case rs < start && end < re:
		return rangeInsideRun
	case start < rs && re < end:
		return runInsideRange
	case (start == rs && re < end) || (start < rs && re == end):
		return runAtRangeEdge
	case rs < start:
		return startCutsRun
	default:
		return endCutsRun
	}
}
