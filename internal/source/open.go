package source

import (
	"io"
	"os"
)

// Opener opens a named input for reading.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(name string) (io.ReadCloser, error)

// Open calls f(name).
func (f OpenerFunc) Open(name string) (io.ReadCloser, error) {
	return f(name)
}

// FS opens files from disk and maps Stdin to the given reader.
type FS struct {
	Stdin io.Reader
}

// Open opens name, or wraps Stdin when name is "-".
func (fsys FS) Open(name string) (io.ReadCloser, error) {
	if name == Stdin {
		in := fsys.Stdin
		if in == nil {
			in = os.Stdin
		}
		// stdin не закрываем: его может читать ещё один "-"
		return io.NopCloser(in), nil
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Names returns the inputs to process; no arguments means stdin.
func Names(args []string) []string {
	if len(args) == 0 {
		return []string{Stdin}
	}
	return args
}
