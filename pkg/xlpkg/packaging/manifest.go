package packaging

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

// Manifest record types for [Content_Types].xml.
var (
	DefaultType = schema.MustDefine("Default",
		schema.String("Extension"),
		schema.String("ContentType"),
	)
	OverrideType = schema.MustDefine("Override",
		schema.String("PartName"),
		schema.String("ContentType"),
	)
	TypesType = schema.MustDefine("Types",
		schema.Sequence("Default", DefaultType),
		schema.Sequence("Override", OverrideType),
	).InNamespace(schema.NSContentTypes)
)

// Default maps a file extension to a content type.
type Default struct {
	Extension   string
	ContentType string
}

// Override maps an absolute part name to a content type.
type Override struct {
	PartName    string
	ContentType string
}

// Path returns the archive entry name of the part.
func (o Override) Path() string {
	return ArchivePath(o.PartName)
}

// Manifest is the parsed content-type manifest.
type Manifest struct {
	Defaults  []Default
	Overrides []Override
}

// ParseManifest decodes [Content_Types].xml.
func ParseManifest(data []byte) (*Manifest, error) {
	r, err := schema.Unmarshal(data, TypesType)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	m := &Manifest{}
	for _, d := range r.Children("Default") {
		m.Defaults = append(m.Defaults, Default{Extension: d.Str("Extension"), ContentType: d.Str("ContentType")})
	}
	for _, o := range r.Children("Override") {
		m.Overrides = append(m.Overrides, Override{PartName: PartName(o.Str("PartName")), ContentType: o.Str("ContentType")})
	}
	return m, nil
}

// ToTree renders the manifest as a Types element.
func (m *Manifest) ToTree(opts ...schema.TreeOption) *schema.Node {
	return m.Record().ToTree(opts...)
}

// Record converts the manifest to its schema record.
func (m *Manifest) Record() *schema.Record {
	r := TypesType.MustNew(nil)
	for _, d := range m.Defaults {
		_ = r.Append("Default", DefaultType.MustNew(schema.Values{"Extension": d.Extension, "ContentType": d.ContentType}))
	}
	for _, o := range m.Overrides {
		_ = r.Append("Override", OverrideType.MustNew(schema.Values{"PartName": o.PartName, "ContentType": o.ContentType}))
	}
	return r
}

// AddDefault registers an extension unless it is already present.
func (m *Manifest) AddDefault(ext, contentType string) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, d := range m.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return
		}
	}
	m.Defaults = append(m.Defaults, Default{Extension: ext, ContentType: contentType})
}

// AddOverride registers or replaces the content type of a part.
func (m *Manifest) AddOverride(part, contentType string) {
	part = PartName(part)
	for i, o := range m.Overrides {
		if o.PartName == part {
			m.Overrides[i].ContentType = contentType
			return
		}
	}
	m.Overrides = append(m.Overrides, Override{PartName: part, ContentType: contentType})
}

// ContentTypeOf resolves a part's content type: an Override for the exact
// path wins over the Default for its extension.
func (m *Manifest) ContentTypeOf(part string) string {
	part = PartName(part)
	for _, o := range m.Overrides {
		if o.PartName == part {
			return o.ContentType
		}
	}
	ext := strings.TrimPrefix(path.Ext(part), ".")
	for _, d := range m.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType
		}
	}
	return ""
}

// Find returns the Overrides carrying any of the given content types, in
// manifest order.
func (m *Manifest) Find(contentTypes ...string) []Override {
	var out []Override
	for _, o := range m.Overrides {
		if slices.Contains(contentTypes, o.ContentType) {
			out = append(out, o)
		}
	}
	return out
}

// FindWorkbookPart locates the workbook part. Overrides are searched for each
// workbook content type in priority order. Some producers instead register
// a workbook content type as a Default, in which case the conventional
// workbook path is assumed.
func (m *Manifest) FindWorkbookPart() (Override, error) {
	for _, ct := range WorkbookContentTypes {
		if found := m.Find(ct); len(found) > 0 {
			return found[0], nil
		}
	}
	for _, ct := range WorkbookContentTypes {
		for _, d := range m.Defaults {
			if d.ContentType == ct {
				return Override{PartName: PartName(WorkbookPath), ContentType: ct}, nil
			}
		}
	}
	return Override{}, &MissingPartError{Part: PartName(WorkbookPath), Reason: "file contains no valid workbook part"}
}

// PartName converts an archive entry name to an absolute part name.
func PartName(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// ArchivePath converts a part name to the ZIP entry name.
func ArchivePath(p string) string {
	return strings.TrimPrefix(p, "/")
}
