// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry of formats, looked up by file extension or by content.
type Registry struct {
	formats []Format
	byExt   map[string]Format

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]Format),
		mtx:   &sync.Mutex{},
	}
}

// Register adds f. Formats registered earlier win extension clashes and are
// tried first when sniffing content.
func (r *Registry) Register(f Format) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.formats = append(r.formats, f)
	for _, ext := range f.Extensions() {
		ext = normalizeExt(ext)
		if _, ok := r.byExt[ext]; !ok {
			r.byExt[ext] = f
		}
	}
}

// ForExtension returns the format registered for ext (with or without the
// leading dot, any case).
func (r *Registry) ForExtension(ext string) (Format, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	f, ok := r.byExt[normalizeExt(ext)]
	return f, ok
}

// Formats returns the registered formats in registration order.
func (r *Registry) Formats() []Format {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.formats)
}

// CapabilitiesOf returns the encoder capabilities for ext.
func (r *Registry) CapabilitiesOf(ext string) (Capabilities, error) {
	f, ok := r.ForExtension(ext)
	if !ok {
		return Capabilities{}, fmt.Errorf("%w: unable to detect audio format for file extension: %s",
			ErrUnsupportedFormat, ext)
	}
	return f.Capabilities(), nil
}

// ReadExtensions lists every extension with a registered decoder.
func (r *Registry) ReadExtensions() []string {
	var exts []string
	for _, f := range r.Formats() {
		exts = append(exts, f.Extensions()...)
	}
	return exts
}

// WriteExtensions lists every extension whose format can be encoded.
func (r *Registry) WriteExtensions() []string {
	var exts []string
	for _, f := range r.Formats() {
		if f.Capabilities().Writable() {
			exts = append(exts, f.Extensions()...)
		}
	}
	return exts
}

// FindReaderFor opens path and returns a Reader that owns the file handle.
//
// The format registered for the file's extension is tried first. When that
// fails every registered format is tried against the content. Formats that
// implement Ambiguous are not trusted on content alone: such a match is
// rejected unless the path carries one of the format's extensions.
func (r *Registry) FindReaderFor(path string) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}

	rd, err := r.findReader(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &fileReader{Reader: rd, f: f}, nil
}

func (r *Registry) findReader(rs io.ReadSeeker, path string) (Reader, error) {
	ext := filepath.Ext(path)

	if f, ok := r.ForExtension(ext); ok && ext != "" {
		if rd, err := tryReader(f, rs); err == nil {
			return rd, nil
		}
	}

	for _, f := range r.Formats() {
		rd, err := tryReader(f, rs)
		if err != nil {
			continue
		}

		if a, ok := f.(Ambiguous); ok && a.Ambiguous() && !hasExt(f, ext) {
			rd.Close()
			return nil, fmt.Errorf("%w: file %q does not seem to be of a known or supported format "+
				"(if trying to open an %s, ensure the filename ends with %q)",
				ErrUnsupportedFormat, path, f.Name(), f.Extensions()[0])
		}

		return rd, nil
	}

	return nil, fmt.Errorf("%w: file %q does not seem to be of a known or supported format",
		ErrUnsupportedFormat, path)
}

func tryReader(f Format, rs io.ReadSeeker) (Reader, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return f.NewReader(rs)
}

func hasExt(f Format, ext string) bool {
	ext = normalizeExt(ext)
	for _, e := range f.Extensions() {
		if normalizeExt(e) == ext {
			return true
		}
	}
	return false
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// fileReader closes the file it was opened from along with the decoder.
type fileReader struct {
	Reader
	f *os.File
}

func (r *fileReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.f.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
		err = errors.Join(err, cerr)
	}
	return err
}
