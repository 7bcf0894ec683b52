package drawing

import (
	"math"
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

// PresetGeomMap maps OOXML preset geometry names to human-readable type labels.
var PresetGeomMap = map[string]string{
	"flowChartProcess":           "AutoShape-FlowchartProcess",
	"flowChartDecision":          "AutoShape-FlowchartDecision",
	"flowChartTerminator":        "AutoShape-FlowchartTerminator",
	"flowChartData":              "AutoShape-FlowchartData",
	"flowChartDocument":          "AutoShape-FlowchartDocument",
	"flowChartMultidocument":     "AutoShape-FlowchartMultidocument",
	"flowChartPredefinedProcess": "AutoShape-FlowchartPredefinedProcess",
	"flowChartInternalStorage":   "AutoShape-FlowchartInternalStorage",
	"flowChartPreparation":       "AutoShape-FlowchartPreparation",
	"flowChartManualInput":       "AutoShape-FlowchartManualInput",
	"flowChartManualOperation":   "AutoShape-FlowchartManualOperation",
	"flowChartConnector":         "AutoShape-FlowchartConnector",
	"flowChartOffpageConnector":  "AutoShape-FlowchartOffpageConnector",
	"rect":                       "AutoShape-Rectangle",
	"roundRect":                  "AutoShape-RoundedRectangle",
	"ellipse":                    "AutoShape-Oval",
	"diamond":                    "AutoShape-Diamond",
	"triangle":                   "AutoShape-IsoscelesTriangle",
	"rightArrow":                 "AutoShape-RightArrow",
	"leftArrow":                  "AutoShape-LeftArrow",
	"upArrow":                    "AutoShape-UpArrow",
	"downArrow":                  "AutoShape-DownArrow",
	"straightConnector1":         "Line",
	"bentConnector2":             "AutoShape-Connector",
	"bentConnector3":             "AutoShape-Connector",
	"bentConnector4":             "AutoShape-Connector",
	"bentConnector5":             "AutoShape-Connector",
	"curvedConnector2":           "AutoShape-Connector",
	"curvedConnector3":           "AutoShape-Connector",
	"curvedConnector4":           "AutoShape-Connector",
	"curvedConnector5":           "AutoShape-Connector",
	"line":                       "Line",
	"textBox":                    "TextBox",
}

// ArrowHeadMap maps OOXML arrow head types to Excel COM style numbers.
var ArrowHeadMap = map[string]int{
	"none":     1,
	"triangle": 2,
	"stealth":  3,
	"diamond":  4,
	"oval":     5,
	"arrow":    2,
}

type shapeSummary struct {
	shape       models.Shape
	excelID     int64
	isConnector bool
	startCxnID  int64
	endCxnID    int64
}

// Placement is a shape's box in pixels.
type Placement struct {
	Left, Top, Width, Height int
	Rotation                 *float64
	FlipH, FlipV             bool
}

// PlacementOf converts an xfrm record to pixels. Rotation is reported in
// degrees and only when it is not zero.
func PlacementOf(xfrm *schema.Record) Placement {
	var p Placement
	if xfrm == nil {
		return p
	}
	if xfrm.Has("rot") {
		deg := float64(xfrm.Int("rot")) / 60000.0
		if math.Abs(deg) >= 1e-6 {
			p.Rotation = &deg
		}
	}
	p.FlipH, p.FlipV = xfrm.Bool("flipH"), xfrm.Bool("flipV")
	off, ext := xfrm.Child("off"), xfrm.Child("ext")
	p.Left, p.Top = EMUToPixels(off.Int("x")), EMUToPixels(off.Int("y"))
	p.Width, p.Height = EMUToPixels(ext.Int("cx")), EMUToPixels(ext.Int("cy"))
	return p
}

// ShapeSummaries converts the shapes and connectors of a drawing into
// summary records. Shapes are numbered in order and connector ends are
// mapped onto those numbers.
func ShapeSummaries(c *Contents, mode models.Mode) []models.Shape {
	if c == nil || mode == models.ModeLight {
		return nil
	}
	var results []shapeSummary
	for _, obj := range c.Shapes {
		if s := summarizeShape(obj, mode); s != nil {
			results = append(results, *s)
		}
	}
	assignShapeIDs(results)
	shapes := make([]models.Shape, len(results))
	for i, r := range results {
		shapes[i] = r.shape
	}
	return shapes
}

func summarizeShape(obj *Object, mode models.Mode) *shapeSummary {
	rec := obj.Record
	props := DrawingProps(rec)
	spPr := rec.Child("spPr")
	prst := spPr.Child("prstGeom").Str("prst")
	text := PlainText(rec.Child("txBody"))

	// Determine type label
	typeLabel := "Unknown"
	if prst != "" {
		if label, ok := PresetGeomMap[prst]; ok {
			typeLabel = label
		} else {
			typeLabel = "AutoShape-" + prst
		}
	} else if name := props.Str("name"); name != "" {
		typeLabel = name
	}

	isConnector := rec.Type() == Connector || isConnectorShape(prst, typeLabel)
	if !shouldIncludeShape(text, typeLabel, isConnector, mode) {
		return nil
	}

	pl := PlacementOf(spPr.Child("xfrm"))
	shape := models.Shape{
		Name:      props.Str("name"),
		Text:      text,
		L:         pl.Left,
		T:         pl.Top,
		Type:      typeLabel,
		Anchor:    AnchorCell(obj.Anchor),
		Rotation:  pl.Rotation,
		Hyperlink: obj.Hyperlink,
	}
	if mode == models.ModeVerbose {
		w, h := pl.Width, pl.Height
		shape.W, shape.H = &w, &h
	}

	s := &shapeSummary{excelID: props.Int("id"), isConnector: isConnector}
	if isConnector {
		dx, dy := pl.Width, pl.Height
		if pl.FlipH {
			dx = -dx
		}
		if pl.FlipV {
			dy = -dy
		}
		shape.Direction = computeDirection(dx, dy)
		ln := spPr.Child("ln")
		shape.BeginArrowStyle = arrowStyle(ln.Child("headEnd"))
		shape.EndArrowStyle = arrowStyle(ln.Child("tailEnd"))
		ends := rec.Child("nvCxnSpPr").Child("cNvCxnSpPr")
		s.startCxnID = ends.Child("stCxn").Int("id")
		s.endCxnID = ends.Child("endCxn").Int("id")
	}
	s.shape = shape
	return s
}

// arrowStyle maps a headEnd or tailEnd record; an end without a type is "none".
func arrowStyle(end *schema.Record) *int {
	if end == nil {
		return nil
	}
	typ := end.Str("type")
	if typ == "" {
		typ = "none"
	}
	style, ok := ArrowHeadMap[typ]
	if !ok {
		return nil
	}
	return &style
}

// computeDirection computes the compass heading of a connector from its
// signed extent; y grows downwards.
func computeDirection(width, height int) string {
	if width == 0 && height == 0 {
		return ""
	}

	angle := math.Atan2(float64(-height), float64(width)) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	switch {
	case angle >= 337.5 || angle < 22.5:
		return "E"
	case angle < 67.5:
		return "NE"
	case angle < 112.5:
		return "N"
	case angle < 157.5:
		return "NW"
	case angle < 202.5:
		return "W"
	case angle < 247.5:
		return "SW"
	case angle < 292.5:
		return "S"
	default:
		return "SE"
	}
}

// isConnectorShape checks if a shape is a connector or line.
func isConnectorShape(prst, typeLabel string) bool {
	p := strings.ToLower(prst)
	if strings.Contains(p, "connector") || strings.Contains(p, "line") {
		return true
	}
	return strings.Contains(typeLabel, "Line") || strings.Contains(typeLabel, "Connector")
}

// shouldIncludeShape determines if a shape should be included based on mode.
func shouldIncludeShape(text, typeLabel string, isConnector bool, mode models.Mode) bool {
	switch mode {
	case models.ModeLight:
		return false
	case models.ModeVerbose:
		return true
	}
	// standard mode: include if text exists or is connector/arrow
	return text != "" || isConnector || strings.Contains(typeLabel, "Arrow")
}

// assignShapeIDs assigns sequential IDs to shapes and resolves connector endpoints.
func assignShapeIDs(results []shapeSummary) {
	excelIDToNodeID := make(map[int64]int)
	nodeIndex := 0

	for i := range results {
		if !results[i].isConnector && results[i].excelID != 0 {
			nodeIndex++
			id := nodeIndex
			results[i].shape.ID = &id
			excelIDToNodeID[results[i].excelID] = nodeIndex
		}
	}

	for i := range results {
		if !results[i].isConnector {
			continue
		}
		if nodeID, ok := excelIDToNodeID[results[i].startCxnID]; ok && results[i].startCxnID != 0 {
			results[i].shape.BeginID = &nodeID
		}
		if nodeID, ok := excelIDToNodeID[results[i].endCxnID]; ok && results[i].endCxnID != 0 {
			results[i].shape.EndID = &nodeID
		}
	}
}

// ImageSummaries lists the pictures of a drawing.
func ImageSummaries(c *Contents) []models.Image {
	if c == nil {
		return nil
	}
	out := make([]models.Image, 0, len(c.Images))
	for _, img := range c.Images {
		pl := PlacementOf(img.Picture.Child("spPr").Child("xfrm"))
		out = append(out, models.Image{
			Name:   DrawingProps(img.Picture).Str("name"),
			Path:   img.Ref.Path,
			Format: img.Format,
			Width:  img.Width,
			Height: img.Height,
			Anchor: AnchorCell(img.Anchor),
			L:      pl.Left,
			T:      pl.Top,
		})
	}
	return out
}
