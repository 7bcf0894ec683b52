package xlpkg

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/book"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/drawing"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/richtext"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/styles"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/volatile"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/worksheet"
)

// Stage is a step of a workbook load. Stages run in declaration order.
type Stage int

const (
	StageUnopened Stage = iota
	StageManifest
	StageWorkbook
	StageStrings
	StageTheme
	StageStyles
	StageSheets
	StageVolatile
	StageComplete
)

var stageNames = [...]string{
	"unopened",
	"manifest-read",
	"workbook-located",
	"strings-read",
	"theme-read",
	"styles-read",
	"sheets-read",
	"volatile-deps-read",
	"complete",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Reader loads one workbook from an open archive. A Reader is used once.
type Reader struct {
	archive *packaging.Archive
	opts    Options
	log     logrus.FieldLogger
	stage   Stage
	wb      *Workbook
}

// NewReader prepares a load of the package in a. The reader does not close
// a; LoadWorkbook and friends do.
func NewReader(a *packaging.Archive, opts Options) *Reader {
	return &Reader{archive: a, opts: opts, log: opts.logger()}
}

// Stage reports the last stage completed.
func (r *Reader) Stage() Stage {
	return r.stage
}

// Read runs every remaining stage and returns the workbook.
func (r *Reader) Read() (*Workbook, error) {
	if r.stage != StageUnopened {
		return nil, fmt.Errorf("reader already used (at %s)", r.stage)
	}
	r.wb = &Workbook{archive: r.archive, readOnly: r.opts.ReadOnly, opts: r.opts}
	steps := []struct {
		stage Stage
		fn    func() error
	}{
		{StageManifest, r.readManifest},
		{StageWorkbook, r.locateWorkbook},
		{StageStrings, r.readStrings},
		{StageTheme, r.readTheme},
		{StageStyles, r.readStyles},
		{StageSheets, r.readSheets},
		{StageVolatile, r.readVolatile},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				return nil, err
			}
			return nil, newLoadError(step.stage, "", err)
		}
		r.stage = step.stage
		r.log.WithField("stage", step.stage.String()).Debug("load stage done")
	}
	r.stage = StageComplete
	return r.wb, nil
}

func (r *Reader) readManifest() error {
	data, err := r.archive.Read(packaging.ManifestPath)
	if packaging.IsPartNotFound(err) {
		return &packaging.MissingPartError{Part: packaging.ManifestPath, Reason: "package has no content type manifest"}
	}
	if err != nil {
		return err
	}
	r.wb.Manifest, err = packaging.ParseManifest(data)
	return err
}

func (r *Reader) locateWorkbook() error {
	ov, err := r.wb.Manifest.FindWorkbookPart()
	if err != nil {
		return err
	}
	wbPath := ov.Path()
	r.wb.ContentType = ov.ContentType
	r.wb.PartPath = wbPath

	data, err := r.archive.Read(wbPath)
	if packaging.IsPartNotFound(err) {
		return newLoadError(StageWorkbook, wbPath, &packaging.MissingPartError{Part: wbPath, Reason: "workbook part listed in manifest is absent"})
	}
	if err != nil {
		return newLoadError(StageWorkbook, wbPath, err)
	}
	if r.wb.Record, err = book.Parse(data); err != nil {
		return newLoadError(StageWorkbook, wbPath, err)
	}
	if r.wb.Rels, err = packaging.ReadRelationships(r.archive, wbPath); err != nil {
		return newLoadError(StageWorkbook, wbPath, err)
	}
	if r.wb.sheetInfo, err = book.ResolveSheets(r.wb.Record, r.wb.Rels, wbPath); err != nil {
		return newLoadError(StageWorkbook, wbPath, err)
	}
	r.wb.Names = book.Names(r.wb.Record)

	if r.opts.ShouldKeepLinks() {
		if r.wb.Links, err = book.LoadLinks(r.archive, r.wb.Record, r.wb.Rels, wbPath); err != nil {
			return newLoadError(StageWorkbook, wbPath, err)
		}
	}
	if r.opts.KeepVBA {
		r.keepVBA(wbPath)
	}
	return nil
}

// keepVBA records the VBA project of a macro-enabled workbook.
func (r *Reader) keepVBA(wbPath string) {
	path := packaging.VBAProjectPath
	if rels := r.wb.Rels.ByType(packaging.RelVBAProject); len(rels) > 0 {
		path = packaging.ResolveTarget(wbPath, rels[0].Target)
	}
	if r.archive.Has(path) {
		r.wb.VBA = r.archive.Ref(path)
	}
}

// optionalPart finds a workbook-level part first through the manifest, then
// through the workbook relationships, then at its conventional path. It
// reports false when the part is absent from the archive.
func (r *Reader) optionalPart(contentType, relType, fallback string) (string, bool) {
	var candidates []string
	for _, o := range r.wb.Manifest.Find(contentType) {
		candidates = append(candidates, o.Path())
	}
	for _, rel := range r.wb.Rels.ByType(relType) {
		candidates = append(candidates, packaging.ResolveTarget(r.wb.PartPath, rel.Target))
	}
	candidates = append(candidates, fallback)
	for _, c := range candidates {
		if r.archive.Has(c) {
			return c, true
		}
	}
	return "", false
}

func (r *Reader) readStrings() error {
	path, ok := r.optionalPart(packaging.ContentTypeSharedStrings, packaging.RelSharedStrings, richtext.PartPath)
	if !ok {
		r.log.Debug("no shared strings part")
		return nil
	}
	data, err := r.archive.Read(path)
	if err != nil {
		return newLoadError(StageStrings, path, err)
	}
	if r.wb.SharedStrings, err = richtext.ParseSharedStrings(data); err != nil {
		return newLoadError(StageStrings, path, err)
	}
	return nil
}

func (r *Reader) readTheme() error {
	path, ok := r.optionalPart(packaging.ContentTypeTheme, packaging.RelTheme, packaging.ThemePath)
	if !ok {
		return nil
	}
	data, err := r.archive.Read(path)
	if err != nil {
		return newLoadError(StageTheme, path, err)
	}
	r.wb.Theme = data
	return nil
}

func (r *Reader) readStyles() error {
	path, ok := r.optionalPart(packaging.ContentTypeStyles, packaging.RelStyles, packaging.StylesPath)
	if !ok {
		return nil
	}
	data, err := r.archive.Read(path)
	if err != nil {
		return newLoadError(StageStyles, path, err)
	}
	if r.wb.Styles, err = styles.Parse(data); err != nil {
		return newLoadError(StageStyles, path, err)
	}
	return nil
}

func (r *Reader) readSheets() error {
	cfg := worksheet.Config{
		ReadOnly: r.opts.ReadOnly,
		Values: worksheet.Values{
			SharedStrings: r.wb.SharedStrings,
			Styles:        r.wb.Styles,
			Date1904:      book.Date1904(r.wb.Record),
		},
		Drawing: drawing.Config{Media: r.opts.UnsupportedMedia, Logger: r.log},
		Logger:  r.log,
	}
	for _, info := range r.wb.sheetInfo {
		log := r.log.WithFields(logrus.Fields{"sheet": info.Name, "part": info.Path})
		if !r.archive.Has(info.Path) {
			log.Warn("sheet part missing from archive; sheet skipped")
			continue
		}
		s := &Sheet{SheetInfo: info}
		var err error
		switch info.Kind {
		case "worksheet":
			s.Worksheet, err = worksheet.Load(r.archive, info.Path, cfg)
		case "chartsheet":
			s.Chartsheet, err = worksheet.LoadChartsheet(r.archive, info.Path, cfg)
		default:
			log.WithField("kind", info.Kind).Warn("unsupported sheet type; sheet skipped")
			continue
		}
		if err != nil {
			return newLoadError(StageSheets, info.Path, err)
		}
		r.wb.Sheets = append(r.wb.Sheets, s)
	}
	r.wb.PrintAreas = book.PrintAreas(r.wb.Names, r.wb.allSheetNames(), r.log)
	return nil
}

func (r *Reader) readVolatile() error {
	path, ok := r.optionalPart(volatile.ContentType, packaging.RelVolatileDeps, volatile.PartPath)
	if !ok {
		return nil
	}
	data, err := r.archive.Read(path)
	if err != nil {
		return newLoadError(StageVolatile, path, err)
	}
	if r.wb.Volatile, err = volatile.Parse(data); err != nil {
		return newLoadError(StageVolatile, path, err)
	}
	return nil
}

// checkExtension rejects paths that are not a supported package format.
func checkExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(SupportedExtensions, ext) {
		return &InvalidFileTypeError{Path: path, Ext: ext}
	}
	return nil
}

// LoadWorkbook opens and loads the package stored at path.
func LoadWorkbook(path string, opts Options) (*Workbook, error) {
	if err := checkExtension(path); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	a, err := packaging.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	wb, err := load(a, opts)
	if err != nil {
		return nil, err
	}
	wb.Name = filepath.Base(path)
	return wb, nil
}

// LoadWorkbookFromReader loads a package read from r. The caller keeps
// ownership of r and must keep it readable while a read-only workbook is
// open.
func LoadWorkbookFromReader(r io.ReaderAt, size int64, opts Options) (*Workbook, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	a, err := packaging.NewArchive(r, size)
	if err != nil {
		return nil, err
	}
	return load(a, opts)
}

// LoadWorkbookFromBytes loads a package held in memory.
func LoadWorkbookFromBytes(data []byte, opts Options) (*Workbook, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	a, err := packaging.OpenBytes(data)
	if err != nil {
		return nil, err
	}
	return load(a, opts)
}

// load reads a and closes it unless the workbook is read-only. The archive
// is always closed on failure.
func load(a *packaging.Archive, opts Options) (wb *Workbook, err error) {
	defer func() {
		if err != nil || !opts.ReadOnly {
			_ = a.Close()
		}
	}()
	return NewReader(a, opts).Read()
}
