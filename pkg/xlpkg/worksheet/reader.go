package worksheet

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/drawing"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

// Buckets groups a worksheet's relationships by role. Relationships of
// other types are not kept.
type Buckets struct {
	Drawing     packaging.Relationships
	VMLDrawing  packaging.Relationships
	CtrlProp    packaging.Relationships
	Control     packaging.Relationships
	Comments    packaging.Relationships
	OLEObject   packaging.Relationships
	Hyperlink   packaging.Relationships
	Table       packaging.Relationships
	Unsupported int
}

// Classify sorts relationships into buckets by the last segment of their
// type URI.
func Classify(rels packaging.Relationships) Buckets {
	var b Buckets
	for _, r := range rels {
		switch r.Kind() {
		case "drawing":
			b.Drawing = append(b.Drawing, r)
		case "vmlDrawing":
			b.VMLDrawing = append(b.VMLDrawing, r)
		case "ctrlProp":
			b.CtrlProp = append(b.CtrlProp, r)
		case "control":
			b.Control = append(b.Control, r)
		case "comments":
			b.Comments = append(b.Comments, r)
		case "oleObject", "package":
			b.OLEObject = append(b.OLEObject, r)
		case "hyperlink":
			b.Hyperlink = append(b.Hyperlink, r)
		case "table":
			b.Table = append(b.Table, r)
		default:
			b.Unsupported++
		}
	}
	return b
}

// Config carries the settings a sheet load needs.
type Config struct {
	// ReadOnly leaves rows in the archive to be streamed with Sheet.StreamRows.
	ReadOnly bool
	Values   Values
	Drawing  drawing.Config
	Logger   logrus.FieldLogger
}

// Sheet is a loaded worksheet with its linked parts. Parts that are absent
// from the archive are nil or empty.
type Sheet struct {
	Path    string
	Record  *schema.Record
	Rels    packaging.Relationships
	Buckets Buckets

	// Rows is nil in read-only mode.
	Rows       []RowValues
	Comments   []Comment
	Controls   []ControlShape
	OLEObjects []EmbeddedObject
	Legacy     *LegacyDrawing
	Drawing    *drawing.Contents
	// Links maps cell references to hyperlink targets. Internal links are
	// kept as "#location".
	Links map[string]string

	archive *packaging.Archive
	values  Values
}

// Dimension returns the used range the sheet declares.
func (s *Sheet) Dimension() string {
	return s.Record.Child("dimension").Str("ref")
}

// StreamRows opens a row stream over the sheet part. The caller closes it.
func (s *Sheet) StreamRows() (*RowReader, error) {
	rc, err := s.archive.Open(s.Path)
	if err != nil {
		return nil, err
	}
	return NewRowReader(rc, s.values), nil
}

// Load reads the worksheet at path and its linked parts: relationships
// first, then comments, controls, the legacy drawing, the drawing and OLE
// objects. Linked parts missing from the archive are skipped.
func Load(a *packaging.Archive, path string, cfg Config) (*Sheet, error) {
	path = packaging.ArchivePath(path)
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("sheet", path)
	if cfg.Drawing.Logger == nil {
		cfg.Drawing.Logger = log
	}

	s := &Sheet{Path: path, archive: a, values: cfg.Values, Links: map[string]string{}}
	rec, err := s.readRecord(cfg.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("worksheet %s: %w", path, err)
	}
	s.Record = rec

	if s.Rels, err = packaging.ReadRelationships(a, path); err != nil {
		return nil, fmt.Errorf("worksheet %s: %w", path, err)
	}
	s.Buckets = Classify(s.Rels)
	log.WithFields(logrus.Fields{"stage": "relationships-found", "rels": len(s.Rels)}).Debug("worksheet relationships classified")

	if !cfg.ReadOnly {
		if s.Rows, err = Rows(rec, cfg.Values); err != nil {
			return nil, fmt.Errorf("worksheet %s: %w", path, err)
		}
	}
	steps := []struct {
		stage string
		fn    func() error
	}{
		{"comments", s.loadComments},
		{"controls", s.loadControls},
		{"legacy-drawing", s.loadLegacy},
		{"drawing", func() error { return s.loadDrawing(cfg.Drawing) }},
		{"ole-objects", s.loadOLEObjects},
		{"hyperlinks", s.loadLinks},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, fmt.Errorf("worksheet %s: %s: %w", path, step.stage, err)
		}
		log.WithField("stage", step.stage).Debug("worksheet stage done")
	}
	return s, nil
}

func (s *Sheet) readRecord(readOnly bool) (*schema.Record, error) {
	if !readOnly {
		data, err := s.archive.Read(s.Path)
		if err != nil {
			return nil, err
		}
		return ParseWorksheet(data)
	}
	rc, err := s.archive.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseSkeleton(rc)
}

// internalTarget resolves an internal relationship to an archive path that
// exists. It reports false for unknown ids, external targets and missing
// parts.
func (s *Sheet) internalTarget(source string, rels packaging.Relationships, id string) (string, bool) {
	if id == "" {
		return "", false
	}
	rel, ok := rels.ByID(id)
	if !ok || rel.External() {
		return "", false
	}
	target := packaging.ResolveTarget(source, rel.Target)
	return target, s.archive.Has(target)
}

func (s *Sheet) loadComments() error {
	for _, rel := range s.Buckets.Comments {
		target := packaging.ResolveTarget(s.Path, rel.Target)
		data, err := s.archive.Read(target)
		if packaging.IsPartNotFound(err) {
			continue
		}
		if err != nil {
			return err
		}
		comments, err := ParseComments(data)
		if err != nil {
			return err
		}
		s.Comments = append(s.Comments, comments...)
	}
	return nil
}

func (s *Sheet) loadControls() error {
	for _, ctrl := range s.Record.Child("controls").Children("control") {
		shape := ControlShape{Control: ctrl}
		if img, ok := s.internalTarget(s.Path, s.Rels, ctrl.Child("controlPr").Str("id")); ok {
			shape.Image = s.archive.Ref(img)
		}
		target, ok := s.internalTarget(s.Path, s.Rels, ctrl.Str("id"))
		if !ok {
			s.Controls = append(s.Controls, shape)
			continue
		}
		rel, _ := s.Rels.ByID(ctrl.Str("id"))
		data, err := s.archive.Read(target)
		if err != nil {
			return err
		}
		switch rel.Kind() {
		case "ctrlProp":
			if shape.Form, err = schema.Unmarshal(data, FormControl); err != nil {
				return fmt.Errorf("control %s: %w", target, err)
			}
		case "control":
			if shape.ActiveX, err = schema.Unmarshal(data, ActiveXControl); err != nil {
				return fmt.Errorf("control %s: %w", target, err)
			}
			axRels, err := packaging.ReadRelationships(s.archive, target)
			if err != nil {
				return err
			}
			if bin, ok := s.internalTarget(target, axRels, shape.ActiveX.Str("id")); ok {
				shape.Binary = s.archive.Ref(bin)
			}
		}
		s.Controls = append(s.Controls, shape)
	}
	return nil
}

func (s *Sheet) loadLegacy() error {
	id := s.Record.Child("legacyDrawing").Str("id")
	if id == "" && len(s.Buckets.VMLDrawing) > 0 {
		id = s.Buckets.VMLDrawing[0].ID
	}
	target, ok := s.internalTarget(s.Path, s.Rels, id)
	if !ok {
		return nil
	}
	rels, err := packaging.ReadRelationships(s.archive, target)
	if err != nil {
		return err
	}
	d := &LegacyDrawing{Path: target, Ref: s.archive.Ref(target), Rels: rels}
	for _, rel := range rels {
		if child, ok := s.internalTarget(target, rels, rel.ID); ok {
			d.Children = append(d.Children, LegacyChild{Rel: rel, Ref: s.archive.Ref(child)})
		}
	}
	s.Legacy = d
	return nil
}

func (s *Sheet) loadDrawing(cfg drawing.Config) error {
	target, ok := s.internalTarget(s.Path, s.Rels, s.Record.Child("drawing").Str("id"))
	if !ok {
		return nil
	}
	contents, err := drawing.FindImages(s.archive, target, cfg)
	if err != nil {
		return err
	}
	s.Drawing = contents
	return nil
}

func (s *Sheet) loadOLEObjects() error {
	for _, obj := range s.Record.Child("oleObjects").Children("oleObject") {
		eo := EmbeddedObject{Object: obj}
		if target, ok := s.internalTarget(s.Path, s.Rels, obj.Str("id")); ok {
			eo.Ref = s.archive.Ref(target)
		}
		if img, ok := s.internalTarget(s.Path, s.Rels, obj.Child("objectPr").Str("id")); ok {
			eo.Image = s.archive.Ref(img)
		}
		s.OLEObjects = append(s.OLEObjects, eo)
	}
	return nil
}

func (s *Sheet) loadLinks() error {
	for _, h := range s.Record.Child("hyperlinks").Children("hyperlink") {
		switch {
		case h.Has("id"):
			if rel, ok := s.Rels.ByID(h.Str("id")); ok {
				s.Links[h.Str("ref")] = rel.Target
			}
		case h.Has("location"):
			s.Links[h.Str("ref")] = "#" + h.Str("location")
		}
	}
	return nil
}

// ChartSheet is a loaded chartsheet.
type ChartSheet struct {
	Path    string
	Record  *schema.Record
	Rels    packaging.Relationships
	Drawing *drawing.Contents
}

// LoadChartsheet reads the chartsheet at path and the drawing holding its
// chart.
func LoadChartsheet(a *packaging.Archive, path string, cfg Config) (*ChartSheet, error) {
	path = packaging.ArchivePath(path)
	if cfg.Drawing.Logger == nil {
		cfg.Drawing.Logger = cfg.Logger
	}
	data, err := a.Read(path)
	if err != nil {
		return nil, fmt.Errorf("chartsheet %s: %w", path, err)
	}
	rec, err := ParseChartsheet(data)
	if err != nil {
		return nil, fmt.Errorf("chartsheet %s: %w", path, err)
	}
	cs := &ChartSheet{Path: path, Record: rec}
	if cs.Rels, err = packaging.ReadRelationships(a, path); err != nil {
		return nil, fmt.Errorf("chartsheet %s: %w", path, err)
	}
	rel, ok := cs.Rels.ByID(rec.Child("drawing").Str("id"))
	if !ok || rel.External() {
		return cs, nil
	}
	target := packaging.ResolveTarget(path, rel.Target)
	if !a.Has(target) {
		return cs, nil
	}
	if cs.Drawing, err = drawing.FindImages(a, target, cfg.Drawing); err != nil {
		return nil, fmt.Errorf("chartsheet %s: %w", path, err)
	}
	return cs, nil
}
