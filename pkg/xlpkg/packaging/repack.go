package packaging

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

// RepackStats summarises a Repack run.
type RepackStats struct {
	Parts         int
	Relationships int
	// MediaDropped counts media blobs that duplicated an earlier one.
	MediaDropped int
	// Retargeted counts relationship parts rewritten to point at kept media.
	Retargeted int
}

// Repack copies the package in a to out. The manifest is decoded and written
// again through the schema layer. Identical blobs under xl/media/ are stored
// once and relationships to the dropped copies are retargeted; only the
// relationship parts that change are re-encoded. Other parts are copied
// byte for byte.
func Repack(a *Archive, out io.Writer) (RepackStats, error) {
	var stats RepackStats
	data, err := a.Read(ManifestPath)
	if IsPartNotFound(err) {
		return stats, &MissingPartError{Part: ManifestPath, Reason: "package has no content type manifest"}
	}
	if err != nil {
		return stats, err
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return stats, err
	}

	w := NewWriter(out)
	for _, d := range manifest.Defaults {
		w.Manifest().AddDefault(d.Extension, d.ContentType)
	}

	renamed := map[string]string{}
	var relsParts []string
	for _, name := range a.Names() {
		if name == ManifestPath {
			continue
		}
		if _, ok := relsSource(name); ok {
			relsParts = append(relsParts, name)
			continue
		}
		data, err := a.Read(name)
		if err != nil {
			return stats, err
		}
		if strings.HasPrefix(name, "xl/media/") {
			kept, err := w.AddMedia(name, data)
			if err != nil {
				return stats, err
			}
			if kept != name {
				renamed[name] = kept
				stats.MediaDropped++
				continue
			}
		} else if err := w.WritePart(name, "", data); err != nil {
			return stats, err
		}
		stats.Parts++
	}

	for _, o := range manifest.Overrides {
		p := o.Path()
		if _, dropped := renamed[p]; dropped || !a.Has(p) {
			continue
		}
		w.Manifest().AddOverride(p, o.ContentType)
	}

	for _, name := range relsParts {
		source, _ := relsSource(name)
		data, err := a.Read(name)
		if err != nil {
			return stats, err
		}
		rec, err := schema.Unmarshal(data, RelationshipsType)
		if err != nil {
			return stats, fmt.Errorf("%s: %w", name, err)
		}
		stats.Relationships += len(rec.Children("Relationship"))

		rewritten := rec.Clone()
		for _, rel := range rewritten.Children("Relationship") {
			if rel.Str("TargetMode") == "External" {
				continue
			}
			kept, ok := renamed[ResolveTarget(source, rel.Str("Target"))]
			if !ok {
				continue
			}
			if err := rel.Set("Target", RelativeTarget(source, kept)); err != nil {
				return stats, fmt.Errorf("%s: %w", name, err)
			}
		}
		if rewritten.Equal(rec) {
			if err := w.WritePart(name, "", data); err != nil {
				return stats, err
			}
			continue
		}
		w.SetRelationships(source, relationshipsOf(rewritten))
		stats.Retargeted++
	}
	return stats, w.Close()
}

// relsSource is the inverse of RelsPath: it returns the part that owns the
// relationship part name, "" for the package root.
func relsSource(name string) (string, bool) {
	if name == RootRelsPath {
		return "", true
	}
	dir, base := path.Split(name)
	if !strings.HasSuffix(dir, "_rels/") || !strings.HasSuffix(base, ".rels") {
		return "", false
	}
	return strings.TrimSuffix(dir, "_rels/") + strings.TrimSuffix(base, ".rels"), true
}
