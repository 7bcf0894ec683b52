package packaging

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/crypto/blake2b"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

// Writer assembles a package. Parts are streamed into the ZIP as they are
// added; relationship parts and the manifest are written by Close.
type Writer struct {
	zw       *zip.Writer
	manifest *Manifest
	rels     map[string]*Relationships
	media    map[[32]byte]string
	written  map[string]bool
	closed   bool
}

// NewWriter starts a package on w.
func NewWriter(w io.Writer) *Writer {
	m := &Manifest{}
	m.AddDefault("rels", ContentTypeRelationships)
	m.AddDefault("xml", ContentTypeXML)
	return &Writer{
		zw:       zip.NewWriter(w),
		manifest: m,
		rels:     map[string]*Relationships{},
		media:    map[[32]byte]string{},
		written:  map[string]bool{},
	}
}

// Manifest exposes the manifest being built.
func (w *Writer) Manifest() *Manifest {
	return w.manifest
}

// WritePart stores raw bytes under name. A non-empty content type that the
// extension Default does not already cover is recorded as an Override.
func (w *Writer) WritePart(name, contentType string, data []byte) error {
	name = ArchivePath(name)
	if w.closed {
		return ErrArchiveClosed
	}
	if w.written[name] {
		return fmt.Errorf("duplicate part %s", name)
	}
	f, err := w.zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.written[name] = true
	if contentType != "" && w.manifest.ContentTypeOf(name) != contentType {
		w.manifest.AddOverride(name, contentType)
	}
	return nil
}

// WriteRecord serialises e and stores it under name.
func (w *Writer) WriteRecord(name, contentType string, e schema.Encodable) error {
	data, err := schema.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return w.WritePart(name, contentType, data)
}

// AddMedia stores a media blob, reusing an identical blob already written.
// It returns the entry name the bytes live under.
func (w *Writer) AddMedia(name string, data []byte) (string, error) {
	sum := blake2b.Sum256(data)
	if existing, ok := w.media[sum]; ok {
		return existing, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ct, ok := MediaType(ext); ok {
		w.manifest.AddDefault(ext, ct)
	}
	if err := w.WritePart(name, "", data); err != nil {
		return "", err
	}
	w.media[sum] = ArchivePath(name)
	return ArchivePath(name), nil
}

// Relate records a relationship from source to target and returns its id.
// Internal targets are archive entry names and are stored relative to source.
func (w *Writer) Relate(source, relType, target string, external bool) string {
	source = ArchivePath(source)
	rs, ok := w.rels[source]
	if !ok {
		rs = &Relationships{}
		w.rels[source] = rs
	}
	if !external {
		target = RelativeTarget(source, target)
	}
	return rs.Add(relType, target, external)
}

// SetRelationships replaces the relationships owned by source verbatim.
func (w *Writer) SetRelationships(source string, rels Relationships) {
	rs := append(Relationships(nil), rels...)
	w.rels[ArchivePath(source)] = &rs
}

// Close writes the relationship parts and the manifest and finishes the
// archive. It is safe to call more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	sources := make([]string, 0, len(w.rels))
	for s := range w.rels {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	for _, s := range sources {
		if err := w.WriteRecord(RelsPath(s), "", *w.rels[s]); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	buf.WriteString(schema.Header)
	if err := schema.WriteNode(&buf, w.manifest.ToTree()); err != nil {
		return err
	}
	if err := w.WritePart(ManifestPath, "", buf.Bytes()); err != nil {
		return err
	}
	w.closed = true
	return w.zw.Close()
}
