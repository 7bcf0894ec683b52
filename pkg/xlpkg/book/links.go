package book

import (
	"fmt"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

var (
	ExternalSheetName = schema.MustDefine("sheetName",
		schema.String("val"),
	)
	ExternalSheetNames = schema.MustDefine("sheetNames",
		schema.Sequence("sheetName", ExternalSheetName),
	)
	ExternalBook = schema.MustDefine("externalBook",
		schema.String("id", schema.Namespace(nsR), schema.Optional()),
		schema.Typed("sheetNames", ExternalSheetNames, schema.Optional()),
	)
	// ExternalLink is the root of an external link part
	// (xl/externalLinks/externalLinkN.xml). Cached cell values are dropped.
	ExternalLink = schema.MustDefine("externalLink",
		schema.Typed("externalBook", ExternalBook, schema.Optional()),
		schema.Typed("extLst", schema.ExtensionList, schema.Optional()),
	).InNamespace(schema.NSSpreadsheetMain)
)

// Link is a loaded external link part.
type Link struct {
	Path   string
	Record *schema.Record
	// Target is the referenced workbook, usually a file path or URL.
	Target string
}

// SheetNames lists the sheets of the linked workbook.
func (l Link) SheetNames() []string {
	var out []string
	for _, s := range l.Record.Child("externalBook").Child("sheetNames").Children("sheetName") {
		out = append(out, s.Str("val"))
	}
	return out
}

// LoadLinks reads the external link parts the workbook refers to. Parts
// missing from the archive are skipped.
func LoadLinks(a *packaging.Archive, wb *schema.Record, rels packaging.Relationships, wbPath string) ([]Link, error) {
	var out []Link
	for _, ref := range wb.Child("externalReferences").Children("externalReference") {
		rel, ok := rels.ByID(ref.Str("id"))
		if !ok || rel.External() {
			continue
		}
		path := packaging.ResolveTarget(wbPath, rel.Target)
		data, err := a.Read(path)
		if packaging.IsPartNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rec, err := schema.Unmarshal(data, ExternalLink)
		if err != nil {
			return nil, fmt.Errorf("external link %s: %w", path, err)
		}
		link := Link{Path: path, Record: rec}
		if id := rec.Child("externalBook").Str("id"); id != "" {
			linkRels, err := packaging.ReadRelationships(a, path)
			if err != nil {
				return nil, err
			}
			if target, ok := linkRels.ByID(id); ok {
				link.Target = target.Target
			}
		}
		out = append(out, link)
	}
	return out, nil
}

