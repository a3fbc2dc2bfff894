package extract

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"cutr/internal/ranges"
)

// Mode selects the unit that ranges index.
type Mode uint8

const (
	// ModeBytes indexes raw bytes.
	ModeBytes Mode = iota + 1
	// ModeChars indexes Unicode characters.
	ModeChars
	// ModeFields indexes delimiter-separated fields.
	ModeFields
)

func (m Mode) String() string {
	switch m {
	case ModeBytes:
		return "bytes"
	case ModeChars:
		return "chars"
	case ModeFields:
		return "fields"
	}
	return "unknown"
}

// DefaultDelimiter is used in fields mode when no delimiter is given.
const DefaultDelimiter = '\t'

var (
	ErrNoMode        = errors.New("you must specify a list of bytes, characters, or fields")
	ErrMultipleModes = errors.New("only one type of list may be specified")
	ErrBadDelimiter  = errors.New("the delimiter must be a single character")
)

// Options is the raw user input for a Selection. A nil list means the
// corresponding mode was not requested.
type Options struct {
	Bytes  *string
	Chars  *string
	Fields *string

	// Delimiter is nil for the default tab.
	Delimiter *string

	// OnlyDelimited drops lines without a delimiter (fields mode only).
	OnlyDelimited bool

	// Normalize applies NFC before chars/fields extraction.
	Normalize bool
}

// Selection is the validated, immutable extraction plan for a run.
type Selection struct {
	Mode          Mode
	Ranges        ranges.Set
	Delim         rune
	OnlyDelimited bool
	Normalize     bool

	delim []byte
}

// New validates opts and builds a Selection. Exactly one of Bytes, Chars,
// Fields must be set. Delimiter is validated in every mode but only
// kept for fields.
func New(opts Options) (*Selection, error) {
	var (
		mode  Mode
		list  string
		count int
	)
	if opts.Bytes != nil {
		mode, list = ModeBytes, *opts.Bytes
		count++
	}
	if opts.Chars != nil {
		mode, list = ModeChars, *opts.Chars
		count++
	}
	if opts.Fields != nil {
		mode, list = ModeFields, *opts.Fields
		count++
	}
	switch {
	case count == 0:
		return nil, ErrNoMode
	case count > 1:
		return nil, ErrMultipleModes
	}

	// -d проверяется в любом режиме, но используется только для полей
	delim := rune(DefaultDelimiter)
	if opts.Delimiter != nil {
		d, err := ParseDelimiter(*opts.Delimiter)
		if err != nil {
			return nil, err
		}
		if mode == ModeFields {
			delim = d
		}
	}

	set, err := ranges.Parse(list)
	if err != nil {
		return nil, fmt.Errorf("invalid %s list: %w", mode, err)
	}

	return NewSelection(mode, set, delim, opts.OnlyDelimited, opts.Normalize), nil
}

// NewSelection builds a Selection from already validated parts.
func NewSelection(mode Mode, set ranges.Set, delim rune, onlyDelimited, normalize bool) *Selection {
	return &Selection{
		Mode:          mode,
		Ranges:        set,
		Delim:         delim,
		OnlyDelimited: onlyDelimited,
		Normalize:     normalize,
		delim:         utf8.AppendRune(nil, delim),
	}
}

// ParseDelimiter accepts exactly one character.
func ParseDelimiter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrBadDelimiter, s)
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return 0, fmt.Errorf("%w: %q is not valid UTF-8", ErrBadDelimiter, s)
	}
	return r, nil
}
