package drawing

import (
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/refs"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

var (
	// AnchorMarker is a cell position plus an EMU offset into the cell. Its
	// children are always xdr elements, so the marker can sit inside
	// worksheet parts (object anchors) as well as drawing parts.
	AnchorMarker = schema.MustDefine("from",
		schema.NestedText("col", schema.As(schema.KindInteger), schema.Default(0), schema.Namespace(nsXdr)),
		schema.NestedText("colOff", schema.As(schema.KindInteger), schema.Default(0), schema.Namespace(nsXdr)),
		schema.NestedText("row", schema.As(schema.KindInteger), schema.Default(0), schema.Namespace(nsXdr)),
		schema.NestedText("rowOff", schema.As(schema.KindInteger), schema.Default(0), schema.Namespace(nsXdr)),
	)

	Hyperlink = schema.MustDefine("hlinkClick",
		schema.String("id", schema.Namespace(nsR), schema.Optional()),
		schema.String("tooltip", schema.Optional()),
		schema.String("tgtFrame", schema.Optional()),
	)
	NonVisualDrawingProps = schema.MustDefine("cNvPr",
		schema.Integer("id"),
		schema.String("name"),
		schema.String("descr", schema.Optional()),
		schema.Bool("hidden", schema.Optional()),
		schema.String("title", schema.Optional()),
		schema.Typed("hlinkClick", Hyperlink, schema.Optional(), schema.Namespace(nsA)),
	)

	NonVisualShapeProps = schema.MustDefine("cNvSpPr",
		schema.Bool("txBox", schema.Optional()),
	)
	ShapeMeta = schema.MustDefine("nvSpPr",
		schema.Typed("cNvPr", NonVisualDrawingProps),
		schema.Typed("cNvSpPr", NonVisualShapeProps),
	)
	Shape = schema.MustDefine("sp",
		schema.String("macro", schema.Optional()),
		schema.String("textlink", schema.Optional()),
		schema.Typed("nvSpPr", ShapeMeta),
		schema.Typed("spPr", ShapeProperties),
		schema.Typed("style", ShapeStyle, schema.Optional()),
		schema.Typed("txBody", TextBody, schema.Optional()),
	).InNamespace(nsXdr)

	// Connection attaches a connector end to a shape's connection site.
	Connection = schema.MustDefine("stCxn",
		schema.Integer("id"),
		schema.Integer("idx"),
	)
	NonVisualConnectorProps = schema.MustDefine("cNvCxnSpPr",
		schema.Typed("stCxn", Connection, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("endCxn", Connection, schema.Optional(), schema.Namespace(nsA)),
	)
	ConnectorMeta = schema.MustDefine("nvCxnSpPr",
		schema.Typed("cNvPr", NonVisualDrawingProps),
		schema.Typed("cNvCxnSpPr", NonVisualConnectorProps),
	)
	Connector = schema.MustDefine("cxnSp",
		schema.String("macro", schema.Optional()),
		schema.Typed("nvCxnSpPr", ConnectorMeta),
		schema.Typed("spPr", ShapeProperties),
		schema.Typed("style", ShapeStyle, schema.Optional()),
	).InNamespace(nsXdr)

	Blip = schema.MustDefine("blip",
		schema.String("embed", schema.Namespace(nsR), schema.Optional()),
		schema.String("link", schema.Namespace(nsR), schema.Optional()),
		schema.NoneSet("cstate", []string{"email", "screen", "print", "hqprint"}),
	)
	Stretch = schema.MustDefine("stretch",
		schema.Typed("fillRect", schema.MustDefine("fillRect"), schema.Optional()),
	)
	BlipFill = schema.MustDefine("blipFill",
		schema.Bool("rotWithShape", schema.Optional()),
		schema.Typed("blip", Blip, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("stretch", Stretch, schema.Optional(), schema.Namespace(nsA)),
	)
	NonVisualPictureProps = schema.MustDefine("cNvPicPr",
		schema.Bool("preferRelativeResize", schema.Optional()),
	)
	PictureMeta = schema.MustDefine("nvPicPr",
		schema.Typed("cNvPr", NonVisualDrawingProps),
		schema.Typed("cNvPicPr", NonVisualPictureProps),
	)
	Picture = schema.MustDefine("pic",
		schema.String("macro", schema.Optional()),
		schema.Typed("nvPicPr", PictureMeta),
		schema.Typed("blipFill", BlipFill),
		schema.Typed("spPr", ShapeProperties),
		schema.Typed("style", ShapeStyle, schema.Optional()),
	).InNamespace(nsXdr)

	ChartReference = schema.MustDefine("chart",
		schema.String("id", schema.Namespace(nsR)),
	)
	GraphicData = schema.MustDefine("graphicData",
		schema.String("uri"),
		schema.Typed("chart", ChartReference, schema.Optional(), schema.Namespace(nsC)),
	)
	GraphicObject = schema.MustDefine("graphic",
		schema.Typed("graphicData", GraphicData),
	)
	GraphicFrameMeta = schema.MustDefine("nvGraphicFramePr",
		schema.Typed("cNvPr", NonVisualDrawingProps),
		schema.Typed("cNvGraphicFramePr", schema.MustDefine("cNvGraphicFramePr")),
	)
	GraphicFrame = schema.MustDefine("graphicFrame",
		schema.String("macro", schema.Optional()),
		schema.Typed("nvGraphicFramePr", GraphicFrameMeta),
		schema.Typed("xfrm", Transform2D),
		schema.Typed("graphic", GraphicObject, schema.Namespace(nsA)),
	).InNamespace(nsXdr)

	GroupShapeMeta = schema.MustDefine("nvGrpSpPr",
		schema.Typed("cNvPr", NonVisualDrawingProps),
		schema.Typed("cNvGrpSpPr", schema.MustDefine("cNvGrpSpPr")),
	)
	GroupShapeProperties = schema.MustDefine("grpSpPr",
		schema.Typed("xfrm", Transform2D, schema.Optional(), schema.Namespace(nsA)),
	)
	// GroupShape holds the members of a shape group. Nested groups are not
	// modelled; their members are dropped on decode.
	GroupShape = schema.MustDefine("grpSp",
		schema.Typed("nvGrpSpPr", GroupShapeMeta),
		schema.Typed("grpSpPr", GroupShapeProperties),
		schema.Sequence("sp", Shape),
		schema.Sequence("cxnSp", Connector),
		schema.Sequence("pic", Picture),
		schema.Sequence("graphicFrame", GraphicFrame),
	).InNamespace(nsXdr)

	ClientData = schema.MustDefine("clientData",
		schema.Bool("fLocksWithSheet", schema.Optional()),
		schema.Bool("fPrintsWithSheet", schema.Optional()),
	)
)

// anchorContent are the object fields every anchor kind shares. An anchor
// holds exactly one of them.
func anchorContent() []schema.Field {
	return []schema.Field{
		schema.Typed("sp", Shape, schema.Optional()),
		schema.Typed("grpSp", GroupShape, schema.Optional()),
		schema.Typed("graphicFrame", GraphicFrame, schema.Optional()),
		schema.Typed("cxnSp", Connector, schema.Optional()),
		schema.Typed("pic", Picture, schema.Optional()),
		schema.Typed("clientData", ClientData, schema.Optional()),
	}
}

var (
	TwoCellAnchor = schema.MustDefine("twoCellAnchor", append([]schema.Field{
		schema.NoneSet("editAs", []string{"twoCell", "oneCell", "absolute"}),
		schema.Typed("from", AnchorMarker),
		schema.Typed("to", AnchorMarker),
	}, anchorContent()...)...).InNamespace(nsXdr)

	OneCellAnchor = schema.MustDefine("oneCellAnchor", append([]schema.Field{
		schema.Typed("from", AnchorMarker),
		schema.Typed("ext", PositiveSize2D),
	}, anchorContent()...)...).InNamespace(nsXdr)

	AbsoluteAnchor = schema.MustDefine("absoluteAnchor", append([]schema.Field{
		schema.Typed("pos", Point2D),
		schema.Typed("ext", PositiveSize2D),
	}, anchorContent()...)...).InNamespace(nsXdr)

	// SpreadsheetDrawing is the root of a drawing part.
	SpreadsheetDrawing = schema.MustDefine("wsDr",
		schema.Sequence("twoCellAnchor", TwoCellAnchor),
		schema.Sequence("oneCellAnchor", OneCellAnchor),
		schema.Sequence("absoluteAnchor", AbsoluteAnchor),
	).InNamespace(nsXdr)
)

// NewTwoCellAnchor anchors obj between two cell markers. obj must be one of
// the anchorable records (sp, grpSp, graphicFrame, cxnSp, pic).
func NewTwoCellAnchor(from, to, obj *schema.Record) (*schema.Record, error) {
	a, err := TwoCellAnchor.New(schema.Values{"from": from, "to": to, "clientData": ClientData.MustNew(nil)})
	if err != nil {
		return nil, err
	}
	if err := a.Set(obj.Type().Tag(), obj); err != nil {
		return nil, err
	}
	return a, nil
}

// NewMarker builds an anchor marker at a zero-based column and row.
func NewMarker(col, row int) *schema.Record {
	return AnchorMarker.MustNew(schema.Values{"col": col, "row": row})
}

// Anchored returns the object an anchor holds, or nil.
func Anchored(anchor *schema.Record) *schema.Record {
	for _, name := range []string{"sp", "grpSp", "graphicFrame", "cxnSp", "pic"} {
		if obj := anchor.Child(name); obj != nil {
			return obj
		}
	}
	return nil
}

// Anchors returns every anchor of a wsDr record: two-cell, then one-cell,
// then absolute.
func Anchors(wsDr *schema.Record) []*schema.Record {
	var out []*schema.Record
	for _, name := range []string{"twoCellAnchor", "oneCellAnchor", "absoluteAnchor"} {
		out = append(out, wsDr.Children(name)...)
	}
	return out
}

// AnchorCell names the cell holding the top-left corner of an anchor, such
// as "B2". Absolute anchors are not tied to a cell and yield "".
func AnchorCell(anchor *schema.Record) string {
	from := anchor.Child("from")
	if from == nil {
		return ""
	}
	name, err := refs.CellName(int(from.Int("row"))+1, int(from.Int("col"))+1)
	if err != nil {
		return ""
	}
	return name
}
