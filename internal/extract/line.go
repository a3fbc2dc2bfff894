package extract

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Line applies the selection to one input line (without its terminator).
// ok is false only when the line must be dropped: fields mode with
// OnlyDelimited and no delimiter in the line. Positions past the end of the
// line are ignored, so Line never fails. The result may alias line.
func (s *Selection) Line(line []byte) (out []byte, ok bool) {
	if s.Normalize && s.Mode != ModeBytes {
		line = norm.NFC.Bytes(line)
	}
	switch s.Mode {
	case ModeBytes:
		return s.cutBytes(line), true
	case ModeChars:
		return s.cutChars(line), true
	case ModeFields:
		return s.cutFields(line)
	}
	return nil, false
}

// cutBytes may split multi-byte characters; that is accepted.
func (s *Selection) cutBytes(line []byte) []byte {
	out := make([]byte, 0, len(line))
	for i := 0; i < s.Ranges.Len(); i++ {
		r := s.Ranges.At(i)
		lo := r.Start - 1
		if lo >= len(line) {
			break
		}
		out = append(out, line[lo:min(r.End, len(line))]...)
	}
	return out
}

// limit returns the largest selected position, or -1 when the last range
// is open-ended.
func (s *Selection) limit() int {
	n := s.Ranges.Len()
	if n == 0 || !s.Ranges.At(n-1).Bounded() {
		return -1
	}
	return s.Ranges.Max()
}

func (s *Selection) cutChars(line []byte) []byte {
	offs := charOffsets(line, s.limit())
	n := len(offs) - 1
	out := make([]byte, 0, len(line))
	for i := 0; i < s.Ranges.Len(); i++ {
		r := s.Ranges.At(i)
		lo := r.Start - 1
		if lo >= n {
			break
		}
		out = append(out, line[offs[lo]:offs[min(r.End, n)]]...)
	}
	return out
}

// charOffsets returns the byte offset of the first limit characters (all
// when limit < 0) plus the offset just past the last of them.
// An invalid byte counts as one character and is kept as is.
func charOffsets(line []byte, limit int) []int {
	offs := make([]int, 0, len(line)+1)
	i := 0
	for i < len(line) && (limit < 0 || len(offs) < limit) {
		offs = append(offs, i)
		if line[i] < utf8.RuneSelf {
			i++
			continue
		}
		_, size := utf8.DecodeRune(line[i:])
		i += size
	}
	return append(offs, i)
}

func (s *Selection) cutFields(line []byte) ([]byte, bool) {
	if !bytes.Contains(line, s.delim) {
		// строки без разделителя проходят как есть
		if s.OnlyDelimited {
			return nil, false
		}
		return line, true
	}

	// поля после последней выбранной позиции не разделяем
	n := s.limit()
	if n > 0 {
		n++
	}
	fields := bytes.SplitN(line, s.delim, n)
	out := make([]byte, 0, len(line))
	first := true
	for i := 0; i < s.Ranges.Len(); i++ {
		r := s.Ranges.At(i)
		lo := r.Start - 1
		if lo >= len(fields) {
			break
		}
		for _, f := range fields[lo:min(r.End, len(fields))] {
			if !first {
				out = append(out, s.delim...)
			}
			out = append(out, f...)
			first = false
		}
	}
	return out, true
}
