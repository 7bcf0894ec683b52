package drawing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

// MediaPolicy decides how pictures without a raster decoder are reported.
// They are dropped either way.
type MediaPolicy int

const (
	// MediaSkip drops unsupported media silently.
	MediaSkip MediaPolicy = iota
	// MediaWarn drops unsupported media and logs a warning.
	MediaWarn
)

// ParseMediaPolicy converts "skip" or "warn" to a MediaPolicy.
func ParseMediaPolicy(s string) (MediaPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return MediaSkip, nil
	case "warn":
		return MediaWarn, nil
	}
	return MediaSkip, fmt.Errorf("unknown media policy %q (want skip or warn)", s)
}

func (p MediaPolicy) String() string {
	if p == MediaWarn {
		return "warn"
	}
	return "skip"
}

// Config carries the reader settings FindImages needs.
type Config struct {
	Media  MediaPolicy
	Logger logrus.FieldLogger
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

// Chart is a chart part placed by a graphic frame. The chart itself is kept
// as a generic tree.
type Chart struct {
	Path   string
	Frame  *schema.Record
	Anchor *schema.Record
	Tree   *schema.Node
}

// Image is a picture whose bytes decode as a supported raster format.
type Image struct {
	ImageInfo
	Ref     packaging.PartRef
	Picture *schema.Record
	Anchor  *schema.Record
}

// Bytes reads the image part.
func (i *Image) Bytes() ([]byte, error) {
	return i.Ref.Bytes()
}

// Object is a shape or connector with its click target resolved.
type Object struct {
	Record    *schema.Record
	Anchor    *schema.Record
	Hyperlink string
}

// Contents is what a drawing part places on its sheet.
type Contents struct {
	Path    string
	Drawing *schema.Record
	Charts  []*Chart
	Images  []*Image
	Shapes  []*Object
}

// FindImages reads a drawing part and collects its charts, pictures and
// shapes. A drawing that does not decode as a spreadsheet drawing yields
// empty contents and a warning rather than an error.
func FindImages(a *packaging.Archive, path string, cfg Config) (*Contents, error) {
	path = packaging.ArchivePath(path)
	log := cfg.logger().WithField("part", path)
	data, err := a.Read(path)
	if err != nil {
		return nil, err
	}
	n, err := schema.ParseNode(data)
	if err != nil {
		return nil, fmt.Errorf("drawing %s: %w", path, err)
	}
	out := &Contents{Path: path}
	wsDr, err := SpreadsheetDrawing.FromTree(schema.ResolveAlternateContent(n))
	if err != nil {
		log.WithError(err).Warn("drawing support is limited to charts, pictures and shapes; drawing dropped")
		return out, nil
	}
	out.Drawing = wsDr

	rels, err := packaging.ReadRelationships(a, path)
	if err != nil {
		return nil, fmt.Errorf("drawing %s: %w", path, err)
	}

	f := &finder{archive: a, path: path, rels: rels, cfg: cfg, log: log, out: out}
	for _, anchor := range Anchors(wsDr) {
		if obj := Anchored(anchor); obj != nil {
			f.visit(anchor, obj)
		}
	}
	return out, nil
}

type finder struct {
	archive *packaging.Archive
	path    string
	rels    packaging.Relationships
	cfg     Config
	log     logrus.FieldLogger
	out     *Contents
}

func (f *finder) visit(anchor, obj *schema.Record) {
	switch obj.Type() {
	case Shape, Connector:
		f.out.Shapes = append(f.out.Shapes, &Object{Record: obj, Anchor: anchor, Hyperlink: f.hyperlink(obj)})
	case Picture:
		if img := f.image(anchor, obj); img != nil {
			f.out.Images = append(f.out.Images, img)
		}
	case GraphicFrame:
		if c := f.chart(anchor, obj); c != nil {
			f.out.Charts = append(f.out.Charts, c)
		}
	case GroupShape:
		for _, name := range []string{"sp", "cxnSp", "pic", "graphicFrame"} {
			for _, member := range obj.Children(name) {
				f.visit(anchor, member)
			}
		}
	}
}

func (f *finder) hyperlink(obj *schema.Record) string {
	id := DrawingProps(obj).Child("hlinkClick").Str("id")
	if id == "" {
		return ""
	}
	rel, ok := f.rels.ByID(id)
	if !ok {
		return ""
	}
	return rel.Target
}

func (f *finder) target(id string) (string, bool) {
	rel, ok := f.rels.ByID(id)
	if !ok || rel.External() {
		return "", false
	}
	return packaging.ResolveTarget(f.path, rel.Target), true
}

func (f *finder) image(anchor, pic *schema.Record) *Image {
	embed := pic.Child("blipFill").Child("blip").Str("embed")
	if embed == "" {
		return nil
	}
	target, ok := f.target(embed)
	if !ok {
		return nil
	}
	log := f.log.WithField("image", target)
	data, err := f.archive.Read(target)
	if err != nil {
		log.WithError(err).Warn("image part missing; picture dropped")
		return nil
	}
	info, err := InspectImage(data)
	if err != nil {
		if errors.Is(err, ErrUnsupportedImage) && f.cfg.Media == MediaWarn {
			log.WithError(err).Warn("image format is not supported; picture dropped")
		}
		return nil
	}
	return &Image{ImageInfo: info, Ref: f.archive.Ref(target), Picture: pic, Anchor: anchor}
}

func (f *finder) chart(anchor, frame *schema.Record) *Chart {
	id := frame.Child("graphic").Child("graphicData").Child("chart").Str("id")
	if id == "" {
		return nil
	}
	target, ok := f.target(id)
	if !ok {
		return nil
	}
	log := f.log.WithField("chart", target)
	data, err := f.archive.Read(target)
	if err != nil {
		log.WithError(err).Warn("chart part missing; chart dropped")
		return nil
	}
	tree, err := schema.ParseNode(data)
	if err != nil {
		log.WithError(err).Warn("chart cannot be read; chart dropped")
		return nil
	}
	return &Chart{Path: target, Frame: frame, Anchor: anchor, Tree: tree}
}

// DrawingProps returns the cNvPr record of any anchorable object.
func DrawingProps(obj *schema.Record) *schema.Record {
	for _, meta := range []string{"nvSpPr", "nvCxnSpPr", "nvPicPr", "nvGraphicFramePr", "nvGrpSpPr"} {
		if m := obj.Child(meta); m != nil {
			return m.Child("cNvPr")
		}
	}
	return nil
}
