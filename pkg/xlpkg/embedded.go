package xlpkg

import (
	"slices"
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/drawing"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/worksheet"
)

// inspectBinary describes a binary part when it is a compound file. Other
// payloads yield nil; so do unreadable ones, with a warning.
func (w *Workbook) inspectBinary(ref packaging.PartRef) *packaging.CompoundInfo {
	log := w.opts.logger().WithField("part", ref.Path)
	data, err := ref.Bytes()
	if err != nil {
		log.WithError(err).Warn("binary part unreadable")
		return nil
	}
	if !packaging.IsCompound(data) {
		return nil
	}
	info, err := packaging.InspectCompound(data)
	if err != nil {
		log.WithError(err).Warn("compound file unreadable; streams not listed")
		return nil
	}
	return info
}

// describeBinary fills the payload fields of e from ref. Linked objects
// have no payload and keep only their ProgID and anchor.
func (w *Workbook) describeBinary(e *models.EmbeddedObject, ref packaging.PartRef) {
	if !ref.Valid() {
		return
	}
	e.Path = ref.Path
	info := w.inspectBinary(ref)
	if info == nil {
		return
	}
	e.Streams = info.Streams
	if len(info.Properties) > 0 {
		e.Properties = info.Properties
	}
}

func (w *Workbook) embeddedObjects(objs []worksheet.EmbeddedObject) []models.EmbeddedObject {
	var out []models.EmbeddedObject
	for _, o := range objs {
		e := models.EmbeddedObject{
			ProgID: o.ProgID(),
			Anchor: drawing.AnchorCell(o.Anchor()),
		}
		w.describeBinary(&e, o.Ref)
		out = append(out, e)
	}
	return out
}

func (w *Workbook) activeXBinaries(controls []worksheet.ControlShape) []models.EmbeddedObject {
	var out []models.EmbeddedObject
	for _, c := range controls {
		if c.ActiveX == nil {
			continue
		}
		e := models.EmbeddedObject{
			ProgID: c.ActiveX.Str("classid"),
			Anchor: drawing.AnchorCell(c.Control.Child("controlPr").Child("anchor")),
		}
		w.describeBinary(&e, c.Binary)
		out = append(out, e)
	}
	return out
}

// vbaModules lists the code modules of the retained VBA project, sorted.
func (w *Workbook) vbaModules() []string {
	if !w.HasVBA() {
		return nil
	}
	info := w.inspectBinary(w.VBA)
	if info == nil {
		return nil
	}
	return moduleStreams(info.Streams)
}

// moduleStreams picks the module streams out of a VBA project storage. The
// project's bookkeeping streams (_VBA_PROJECT, dir and the __SRP_ caches)
// are not modules.
func moduleStreams(streams []string) []string {
	var out []string
	for _, s := range streams {
		name, ok := strings.CutPrefix(s, "VBA/")
		if !ok || strings.Contains(name, "/") {
			continue
		}
		if name == "_VBA_PROJECT" || name == "dir" || strings.HasPrefix(name, "__SRP_") {
			continue
		}
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
