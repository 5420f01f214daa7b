// Package ole opens an OLE Compound File (the container format used by MSI
// databases and other legacy Microsoft formats) from an in-memory byte
// buffer and exposes its streams by decoded name.
package ole

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sassoftware/relic/v8/lib/comdoc"
)

// Signature is the 8-byte OLE Compound File magic.
var Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// HasSignature reports whether data begins with the OLE Compound File magic.
func HasSignature(data []byte) bool {
	return len(data) >= len(Signature) && bytes.Equal(data[:len(Signature)], Signature)
}

// File wraps an open compound file and its directory listing.
type File struct {
	doc     *comdoc.ComDoc
	entries []*comdoc.DirEntry
}

// Open parses data as an OLE Compound File. The returned File borrows data
// for its lifetime; callers must call Close when done.
func Open(data []byte) (*File, error) {
	doc, err := comdoc.Open(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open compound file: %w", err)
	}
	entries, err := doc.ListDir(nil)
	if err != nil {
		doc.Close()
		return nil, fmt.Errorf("list compound file directory: %w", err)
	}
	return &File{doc: doc, entries: entries}, nil
}

// Close releases the underlying compound file.
func (f *File) Close() error {
	return f.doc.Close()
}

// StreamNames returns the decoded names of every stream entry at the root of
// the directory (mangled MSI table names included, undecoded).
func (f *File) StreamNames() []string {
	var names []string
	for _, e := range f.entries {
		if e.Type == comdoc.DirStream {
			names = append(names, e.Name())
		}
	}
	return names
}

// ReadStream returns the full contents of the stream with the given decoded
// name, or an error if no such stream exists.
func (f *File) ReadStream(name string) ([]byte, error) {
	for _, e := range f.entries {
		if e.Type == comdoc.DirStream && e.Name() == name {
			data, err := f.doc.ReadStream(e)
			if err != nil {
				return nil, fmt.Errorf("read stream %q: %w", name, err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("stream %q not found", name)
}

// FindStream returns the decoded name of the first stream whose name
// contains sub, and ok=true, or ("", false) if none match.
func (f *File) FindStream(sub string) (string, bool) {
	for _, e := range f.entries {
		if e.Type == comdoc.DirStream && strings.Contains(e.Name(), sub) {
			return e.Name(), true
		}
	}
	return "", false
}
