package packaging

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

// Relationship record types for _rels/*.rels parts.
var (
	RelationshipType = schema.MustDefine("Relationship",
		schema.String("Id"),
		schema.String("Type"),
		schema.String("Target"),
		schema.NoneSet("TargetMode", []string{"External", "Internal"}),
	)
	RelationshipsType = schema.MustDefine("Relationships",
		schema.Sequence("Relationship", RelationshipType),
	).InNamespace(schema.NSPackageRels)
)

// Relationship is a typed link from the owning part to a target.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// External reports whether the target lies outside the package.
func (r Relationship) External() bool {
	return r.TargetMode == "External"
}

// Kind returns the last segment of the type URI, e.g. "worksheet" or
// "vmlDrawing".
func (r Relationship) Kind() string {
	return path.Base(r.Type)
}

// Relationships is the ordered content of one .rels part.
type Relationships []Relationship

// ParseRelationships decodes a .rels part.
func ParseRelationships(data []byte) (Relationships, error) {
	rec, err := schema.Unmarshal(data, RelationshipsType)
	if err != nil {
		return nil, fmt.Errorf("relationships: %w", err)
	}
	return relationshipsOf(rec), nil
}

// ReadRelationships reads the relationships owned by part. A part without a
// .rels file has none.
func ReadRelationships(a *Archive, part string) (Relationships, error) {
	data, err := a.Read(RelsPath(part))
	if IsPartNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseRelationships(data)
}

func relationshipsOf(rec *schema.Record) Relationships {
	out := make(Relationships, 0, len(rec.Children("Relationship")))
	for _, r := range rec.Children("Relationship") {
		out = append(out, Relationship{
			ID:         r.Str("Id"),
			Type:       r.Str("Type"),
			Target:     r.Str("Target"),
			TargetMode: r.Str("TargetMode"),
		})
	}
	return out
}

// ByID finds a relationship by identifier.
func (rs Relationships) ByID(id string) (Relationship, bool) {
	for _, r := range rs {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}

// ByType returns the relationships with the given type URI.
func (rs Relationships) ByType(typ string) Relationships {
	var out Relationships
	for _, r := range rs {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

// ByKind returns the relationships whose type URI ends with kind. Strict and
// transitional URIs share their last segment.
func (rs Relationships) ByKind(kind string) Relationships {
	var out Relationships
	for _, r := range rs {
		if r.Kind() == kind {
			out = append(out, r)
		}
	}
	return out
}

// Add appends a relationship with the next free rIdN identifier.
func (rs *Relationships) Add(typ, target string, external bool) string {
	id := "rId" + strconv.Itoa(len(*rs)+1)
	for {
		if _, taken := rs.ByID(id); !taken {
			break
		}
		id += "_"
	}
	rel := Relationship{ID: id, Type: typ, Target: target}
	if external {
		rel.TargetMode = "External"
	}
	*rs = append(*rs, rel)
	return id
}

// ToTree renders the relationships as a Relationships element.
func (rs Relationships) ToTree(opts ...schema.TreeOption) *schema.Node {
	rec := RelationshipsType.MustNew(nil)
	for _, r := range rs {
		vals := schema.Values{"Id": r.ID, "Type": r.Type, "Target": r.Target}
		if r.TargetMode != "" {
			vals["TargetMode"] = r.TargetMode
		}
		_ = rec.Append("Relationship", RelationshipType.MustNew(vals))
	}
	return rec.ToTree(opts...)
}

// RelsPath returns the relationship part owned by part, e.g.
// "xl/worksheets/_rels/sheet1.xml.rels". The empty string names the package.
func RelsPath(part string) string {
	part = ArchivePath(part)
	if part == "" {
		return RootRelsPath
	}
	dir, base := path.Split(part)
	return dir + "_rels/" + base + ".rels"
}

// ResolveTarget resolves a relationship target against the directory of the
// owning part. Absolute targets are used verbatim. The result is an archive
// entry name.
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)[1:]
	}
	dir := path.Dir(ArchivePath(source))
	if dir == "." {
		dir = ""
	}
	return strings.TrimPrefix(path.Clean(path.Join("/", dir, target)), "/")
}

// RelativeTarget is the inverse of ResolveTarget: it expresses the archive
// entry target relative to the directory of source.
func RelativeTarget(source, target string) string {
	from := strings.Split(path.Dir(ArchivePath(source)), "/")
	if from[0] == "." {
		from = nil
	}
	to := strings.Split(ArchivePath(target), "/")
	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}
	parts := make([]string, 0, len(from)-i+len(to)-i)
	for range from[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[i:]...)
	return strings.Join(parts, "/")
}
