// Package ranges parses cut-style position lists ("1,3-5,8-") into a
// canonical, sorted set of inclusive 1-based ranges.
//
// Tokens are separated by commas. Each token is one of:
//
//	N     a single position
//	N-M   positions N through M (N <= M)
//	N-    position N through the end of the line
//	-M    positions 1 through M
//
// Overlapping and touching ranges are merged, so the resulting Set is the
// minimal representation of the union of all tokens.
package ranges

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Unbounded marks a range that runs to the end of the line.
const Unbounded = math.MaxInt

var (
	// ErrEmpty is returned for an empty list.
	ErrEmpty = errors.New("empty list")
	// ErrInvalidToken is matched by every *ListError.
	ErrInvalidToken = errors.New("invalid list value")
)

// ListError describes a token that could not be parsed.
type ListError struct {
	Token      string
	Decreasing bool // N-M with N > M
}

func (e *ListError) Error() string {
	if e.Decreasing {
		return fmt.Sprintf("invalid decreasing range %q", e.Token)
	}
	return fmt.Sprintf("illegal list value: %q", e.Token)
}

// Is makes errors.Is(err, ErrInvalidToken) report true for any ListError.
func (e *ListError) Is(target error) bool {
	return target == ErrInvalidToken
}

// Range is an inclusive span of 1-based positions.
type Range struct {
	Start int
	End   int // Unbounded for "N-"
}

// Bounded reports whether the range has a finite end.
func (r Range) Bounded() bool {
	return r.End != Unbounded
}

func (r Range) String() string {
	switch {
	case r.End == Unbounded:
		return strconv.Itoa(r.Start) + "-"
	case r.Start == r.End:
		return strconv.Itoa(r.Start)
	default:
		return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
	}
}

// Set is a canonical range list: sorted by Start, no overlaps, no two
// ranges touching. The zero Set selects nothing.
type Set struct {
	items []Range
}

// Len returns the number of ranges in the set.
func (s Set) Len() int {
	return len(s.items)
}

// Ranges returns a copy of the ranges in ascending order.
func (s Set) Ranges() []Range {
	return slices.Clone(s.items)
}

// At returns the i-th range.
func (s Set) At(i int) Range {
	return s.items[i]
}

// Max returns the largest selected position, or Unbounded when the last
// range is open-ended. Max of an empty set is 0.
func (s Set) Max() int {
	if len(s.items) == 0 {
		return 0
	}
	return s.items[len(s.items)-1].End
}

// String renders the set in list syntax. Parse(s.String()) yields s.
func (s Set) String() string {
	parts := make([]string, len(s.items))
	for i, r := range s.items {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// Parse converts a list string into its canonical Set.
func Parse(list string) (Set, error) {
	if list == "" {
		return Set{}, ErrEmpty
	}
	tokens := strings.Split(list, ",")
	items := make([]Range, 0, len(tokens))
	for _, tok := range tokens {
		r, err := parseToken(tok)
		if err != nil {
			return Set{}, err
		}
		items = append(items, r)
	}
	return Set{items: merge(items)}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level values.
func MustParse(list string) Set {
	s, err := Parse(list)
	if err != nil {
		panic(err)
	}
	return s
}

func parseToken(tok string) (Range, error) {
	lo, hi, isRange := strings.Cut(tok, "-")
	if !isRange {
		n, ok := parseIndex(tok)
		if !ok {
			return Range{}, &ListError{Token: tok}
		}
		return Range{Start: n, End: n}, nil
	}

	switch {
	case lo == "" && hi == "":
		return Range{}, &ListError{Token: tok}
	case lo == "":
		m, ok := parseIndex(hi)
		if !ok {
			return Range{}, endError(tok, hi)
		}
		return Range{Start: 1, End: m}, nil
	case hi == "":
		n, ok := parseIndex(lo)
		if !ok {
			return Range{}, endError(tok, lo)
		}
		return Range{Start: n, End: Unbounded}, nil
	}

	n, ok := parseIndex(lo)
	if !ok {
		return Range{}, endError(tok, lo)
	}
	m, ok := parseIndex(hi)
	if !ok {
		return Range{}, endError(tok, hi)
	}
	if n > m {
		return Range{}, &ListError{Token: tok, Decreasing: true}
	}
	return Range{Start: n, End: m}, nil
}

// endError names the bad end of a range when it is a plain number ("0" in
// "0-1"); anything else is reported as the whole token.
func endError(tok, end string) *ListError {
	if isDigits(end) {
		return &ListError{Token: end}
	}
	return &ListError{Token: tok}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseIndex accepts only ASCII digits: "+1", " 1" and "0" are rejected.
func parseIndex(s string) (int, bool) {
	if !isDigits(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	n, err := safecast.Conv[int](v)
	if err != nil || n == 0 || n == Unbounded {
		return 0, false
	}
	return n, true
}

// merge sorts items by start and folds overlapping or adjacent ranges.
func merge(items []Range) []Range {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Start != items[j].Start {
			return items[i].Start < items[j].Start
		}
		return items[i].End < items[j].End
	})

	out := make([]Range, 0, len(items))
	for _, r := range items {
		if len(out) == 0 {
			out = append(out, r)
			continue
		}
		last := &out[len(out)-1]
		// last.End == Unbounded поглощает всё остальное; проверка до +1, чтобы не переполнить int
		if last.End == Unbounded || r.Start <= last.End+1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
