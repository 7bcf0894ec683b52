package packaging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/zip"
)

// source reopens the bytes an archive was read from.
type source func() (io.ReaderAt, int64, io.Closer, error)

// Archive is an open spreadsheet package. It is not safe for concurrent use.
type Archive struct {
	zr     *zip.Reader
	closer io.Closer
	files  map[string]*zip.File
	names  []string
	src    source
	closed bool
}

// Open opens the package stored at path.
func Open(path string) (*Archive, error) {
	src := func() (io.ReaderAt, int64, io.Closer, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, nil, err
		}
		st, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, nil, err
		}
		return f, st.Size(), f, nil
	}
	return openSource(src)
}

// NewArchive reads a package from r. The caller keeps ownership of r.
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	return openSource(func() (io.ReaderAt, int64, io.Closer, error) {
		return r, size, nil, nil
	})
}

// OpenBytes reads a package held in memory.
func OpenBytes(data []byte) (*Archive, error) {
	return NewArchive(bytes.NewReader(data), int64(len(data)))
}

func openSource(src source) (*Archive, error) {
	ra, size, closer, err := src()
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		cause := classifyContainer(ra, size)
		if closer != nil {
			closer.Close()
		}
		if cause != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptArchive, cause)
		}
		return nil, fmt.Errorf("%w: %w", ErrCorruptArchive, err)
	}
	a := &Archive{
		zr:     zr,
		closer: closer,
		files:  make(map[string]*zip.File, len(zr.File)),
		src:    src,
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		a.files[f.Name] = f
		a.names = append(a.names, f.Name)
	}
	sort.Strings(a.names)
	return a, nil
}

// Names lists the archive entries in lexical order.
func (a *Archive) Names() []string {
	return append([]string(nil), a.names...)
}

// Has reports whether an entry exists. Leading slashes are ignored.
func (a *Archive) Has(name string) bool {
	_, ok := a.files[ArchivePath(name)]
	return ok
}

// Open returns a reader for one entry, for streaming large parts.
func (a *Archive) Open(name string) (io.ReadCloser, error) {
	if a.closed {
		return nil, ErrArchiveClosed
	}
	f, ok := a.files[ArchivePath(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, ArchivePath(name))
	}
	return f.Open()
}

// Read returns the full content of one entry.
func (a *Archive) Read(name string) ([]byte, error) {
	rc, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ArchivePath(name), err)
	}
	return data, nil
}

// Ref returns a lazy handle to an entry.
func (a *Archive) Ref(name string) PartRef {
	return PartRef{Path: ArchivePath(name), archive: a}
}

// Closed reports whether Close has been called.
func (a *Archive) Closed() bool {
	return a.closed
}

// Close releases the underlying file. Calling it more than once is safe.
func (a *Archive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// reopen opens a fresh archive over the same source, for lazy reads after
// the original handle was released.
func (a *Archive) reopen() (*Archive, error) {
	if a.src == nil {
		return nil, ErrArchiveClosed
	}
	return openSource(a.src)
}

// PartRef is a lazy reference to a part's bytes. It stays usable after the
// archive that produced it is closed by reopening the source on demand.
type PartRef struct {
	Path    string
	archive *Archive
}

// Valid reports whether the reference points into an archive.
func (p PartRef) Valid() bool {
	return p.archive != nil && p.Path != ""
}

// Bytes reads the referenced part.
func (p PartRef) Bytes() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: empty reference", ErrPartNotFound)
	}
	if !p.archive.closed {
		return p.archive.Read(p.Path)
	}
	a, err := p.archive.reopen()
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.Read(p.Path)
}

// IsPartNotFound reports whether err is a missing entry error.
func IsPartNotFound(err error) bool {
	return errors.Is(err, ErrPartNotFound)
}
