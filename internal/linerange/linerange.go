// Package linerange parses line highlight annotations
// like "{1,3-5}" attached to code fences.
//
// An annotation selects 1-based line numbers.
// The resulting [Set] answers queries for 0-based line indexes,
// which is what a renderer walking over lines has at hand.
package linerange

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// _annotationRe matches the first bracketed range expression
// in an annotation string.
var _annotationRe = regexp.MustCompile(`{([\d,-]+)}`)

// Set is an immutable set of 1-based line numbers.
//
// The zero value selects nothing.
type Set struct {
	// Sorted, non-overlapping, non-adjacent inclusive intervals.
	spans []span
}

type span struct{ lo, hi int }

// Parse extracts the bracketed range expression from annotation
// and returns the lines it selects.
//
// Parse never fails.
// If annotation holds no range expression,
// or none of its parts are valid,
// the returned set is empty.
// Invalid parts of an otherwise valid expression are skipped.
func Parse(annotation string) Set {
	m := _annotationRe.FindStringSubmatch(annotation)
	if m == nil {
		return Set{}
	}

	var spans []span
	for _, part := range strings.Split(m[1], ",") {
		lo, hi, ok := parsePart(part)
		if !ok {
			continue
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		spans = append(spans, span{lo, hi})
	}
	return Set{spans: normalize(spans)}
}

// normalize sorts spans and merges those that overlap or touch.
func normalize(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	slices.SortFunc(spans, func(a, b span) int { return a.lo - b.lo })

	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.lo <= last.hi+1 {
			last.hi = max(last.hi, s.hi)
			continue
		}
		out = append(out, s)
	}
	return out
}

// parsePart parses "n" or "a-b".
func parsePart(part string) (lo, hi int, ok bool) {
	a, b, isRange := strings.Cut(part, "-")
	lo, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, false
	}
	if !isRange {
		return lo, lo, true
	}

	// strconv.Atoi accepts a leading sign,
	// but the expression can't carry one: "1--2" is malformed.
	if b == "" || b[0] == '-' {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(b)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// Contains reports whether the line at the given 0-based index
// is selected.
// It's defined for all integers: negative indexes are never selected.
func (s Set) Contains(lineIndex int) bool {
	if lineIndex < 0 {
		return false
	}
	n := lineIndex + 1
	_, found := slices.BinarySearchFunc(s.spans, n, func(s span, n int) int {
		switch {
		case s.hi < n:
			return -1
		case s.lo > n:
			return 1
		default:
			return 0
		}
	})
	return found
}

// Empty reports whether no lines are selected.
func (s Set) Empty() bool {
	return len(s.spans) == 0
}

// Lines returns the selected 1-based line numbers in ascending order.
func (s Set) Lines() []int {
	var lines []int
	for _, sp := range s.spans {
		for n := sp.lo; n <= sp.hi; n++ {
			lines = append(lines, n)
		}
	}
	return lines
}

// String returns the canonical annotation for this set,
// collapsing runs into ranges.
// An empty set is rendered as an empty string.
func (s Set) String() string {
	if len(s.spans) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteByte('{')
	for i, sp := range s.spans {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(sp.lo))
		if sp.hi > sp.lo {
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(sp.hi))
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
