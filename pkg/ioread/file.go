package ioread

import (
	"io"
	"os"
)

// File adapts an io.Reader to the Resource contract.
// Despite the name it accepts any reader; Open is the convenience for the
// common on-disk case.
type File struct {
	name string
	r    io.Reader

	// pending holds an error returned alongside data, surfaced on the
	// next read.
	pending error
}

// Open opens the file at path as a Resource. The caller owns the returned
// *os.File's lifetime through Close once the stream terminates or is torn
// down; wiring that into the stream's disposal hook is the usual pattern:
//
//	f, _ := ioread.Open(path)
//	sig := ioread.ReadToEnd(f, scheduler)
//	sig.OnDisposed(func() { f.Close() })
func Open(path string) (*File, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReader(path, f), f, nil
}

// NewReader adapts r as a Resource labeled name.
func NewReader(name string, r io.Reader) *File {
	return &File{name: name, r: r}
}

// ReadChunk reads at most maxBytes from the underlying reader.
// io.EOF is folded into the empty-result convention.
func (f *File) ReadChunk(maxBytes int) ([]byte, error) {
	if f.pending != nil {
		err := f.pending
		f.pending = nil
		return nil, err
	}

	buf := make([]byte, maxBytes)
	n, err := f.r.Read(buf)
	if n > 0 {
		if err != nil && err != io.EOF {
			f.pending = err
		}
		return buf[:n], nil
	}
	if err == nil || err == io.EOF {
		return nil, nil
	}
	return nil, err
}

// String returns the resource label.
func (f *File) String() string { return f.name }
