package packaging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"
)

var compoundMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// IsCompound reports whether data starts with the compound file signature.
func IsCompound(data []byte) bool {
	return bytes.HasPrefix(data, compoundMagic)
}

// classifyContainer explains why a non-ZIP input was rejected when it is a
// compound file: encrypted packages and BIFF workbooks both use one.
func classifyContainer(ra io.ReaderAt, size int64) error {
	if size < int64(len(compoundMagic)) {
		return nil
	}
	head := make([]byte, len(compoundMagic))
	if _, err := ra.ReadAt(head, 0); err != nil || !IsCompound(head) {
		return nil
	}
	doc, err := mscfb.New(ra)
	if err != nil {
		return nil
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "EncryptedPackage", "EncryptionInfo":
			return ErrEncryptedPackage
		case "Workbook", "Book":
			return ErrLegacyWorkbook
		}
	}
	return nil
}

// CompoundInfo summarises an OLE compound file such as an embedded object,
// an ActiveX control binary or a VBA project.
type CompoundInfo struct {
	Streams    []string
	Properties map[string]string
}

// HasStream reports whether a stream with the given path exists.
func (c *CompoundInfo) HasStream(name string) bool {
	for _, s := range c.Streams {
		if s == name || strings.HasSuffix(s, "/"+name) {
			return true
		}
	}
	return false
}

// InspectCompound lists the streams of a compound file and decodes its
// property-set streams.
func InspectCompound(data []byte) (*CompoundInfo, error) {
	if !IsCompound(data) {
		return nil, errors.New("not a compound file")
	}
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compound file: %w", err)
	}
	info := &CompoundInfo{Properties: map[string]string{}}
	props := msoleps.New()
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		name := strings.Join(append(append([]string(nil), entry.Path...), entry.Name), "/")
		info.Streams = append(info.Streams, name)
		if !msoleps.IsMSOLEPS(entry.Initial) {
			continue
		}
		if err := props.Reset(entry); err != nil {
			continue
		}
		for _, p := range props.Property {
			info.Properties[p.Name] = p.String()
		}
	}
	return info, nil
}
