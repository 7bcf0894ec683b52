package drawing

import "github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"

var schemeColors = []string{
	"bg1", "tx1", "bg2", "tx2",
	"accent1", "accent2", "accent3", "accent4", "accent5", "accent6",
	"hlink", "folHlink", "phClr", "dk1", "lt1", "dk2", "lt2",
}

// colorTransforms are the value-carrying children shared by every colour
// element, e.g. <a:shade val="50000"/>.
func colorTransforms() []schema.Field {
	var out []schema.Field
	for _, name := range []string{"tint", "shade", "alpha", "alphaOff", "alphaMod", "hueMod", "sat", "satOff", "satMod", "lum", "lumOff", "lumMod"} {
		out = append(out, schema.NestedValue(name, schema.As(schema.KindInteger), schema.Optional()))
	}
	return out
}

var (
	SchemeColor = schema.MustDefine("schemeClr", append(
		[]schema.Field{schema.Set("val", schemeColors)},
		colorTransforms()...)...,
	)
	RGBColor = schema.MustDefine("srgbClr", append(
		[]schema.Field{schema.String("val")},
		colorTransforms()...)...,
	)
	SystemColor = schema.MustDefine("sysClr",
		schema.String("val"),
		schema.String("lastClr", schema.Optional()),
	)

	NoFill    = schema.MustDefine("noFill")
	SolidFill = schema.MustDefine("solidFill",
		schema.Typed("schemeClr", SchemeColor, schema.Optional()),
		schema.Typed("srgbClr", RGBColor, schema.Optional()),
		schema.Typed("sysClr", SystemColor, schema.Optional()),
	)
	GradientStop = schema.MustDefine("gs",
		schema.Integer("pos", schema.Range(0, 100000)),
		schema.Typed("schemeClr", SchemeColor, schema.Optional()),
		schema.Typed("srgbClr", RGBColor, schema.Optional()),
	)
	GradientStopList = schema.MustDefine("gsLst",
		schema.Sequence("gs", GradientStop),
	)
	LinearShade = schema.MustDefine("lin",
		schema.Integer("ang"),
		schema.Bool("scaled", schema.Optional()),
	)
	GradientFillProperties = schema.MustDefine("gradFill",
		schema.NoneSet("flip", []string{"x", "y", "xy"}),
		schema.Bool("rotWithShape", schema.Optional()),
		schema.Typed("gsLst", GradientStopList, schema.Optional()),
		schema.Typed("lin", LinearShade, schema.Optional()),
	).InNamespace(nsA)

	// LineEndProperties decorates one end of a line. type="none" reads as unset.
	LineEndProperties = schema.MustDefine("headEnd",
		schema.NoneSet("type", []string{"triangle", "stealth", "diamond", "oval", "arrow"}),
		schema.NoneSet("w", []string{"sm", "med", "lg"}),
		schema.NoneSet("len", []string{"sm", "med", "lg"}),
	)
	LineProperties = schema.MustDefine("ln",
		schema.Integer("w", schema.Optional(), schema.Range(0, 20116800)),
		schema.NoneSet("cap", []string{"rnd", "sq", "flat"}),
		schema.NoneSet("cmpd", []string{"sng", "dbl", "thickThin", "thinThick", "tri"}),
		schema.NoneSet("algn", []string{"ctr", "in"}),
		schema.Typed("noFill", NoFill, schema.Optional()),
		schema.Typed("solidFill", SolidFill, schema.Optional()),
		schema.Typed("gradFill", GradientFillProperties, schema.Optional(), schema.Namespace(nsA)),
		schema.NestedValue("prstDash", schema.Optional(), schema.Enum(
			"solid", "dot", "dash", "lgDash", "dashDot", "lgDashDot", "lgDashDotDot",
			"sysDash", "sysDot", "sysDashDot", "sysDashDotDot")),
		schema.Typed("headEnd", LineEndProperties, schema.Optional()),
		schema.Typed("tailEnd", LineEndProperties, schema.Optional()),
	)

	// StyleMatrixReference points into the theme's line, fill or effect
	// style matrix.
	StyleMatrixReference = schema.MustDefine("lnRef",
		schema.Integer("idx"),
		schema.Typed("schemeClr", SchemeColor, schema.Optional()),
		schema.Typed("srgbClr", RGBColor, schema.Optional()),
	)
	FontReference = schema.MustDefine("fontRef",
		schema.NoneSet("idx", []string{"major", "minor"}),
		schema.Typed("schemeClr", SchemeColor, schema.Optional()),
		schema.Typed("srgbClr", RGBColor, schema.Optional()),
	)
	ShapeStyle = schema.MustDefine("style",
		schema.Typed("lnRef", StyleMatrixReference, schema.Namespace(nsA)),
		schema.Typed("fillRef", StyleMatrixReference, schema.Namespace(nsA)),
		schema.Typed("effectRef", StyleMatrixReference, schema.Namespace(nsA)),
		schema.Typed("fontRef", FontReference, schema.Namespace(nsA)),
	)

	// ShapeProperties is spPr: placement, outline, fill and 3-D settings.
	ShapeProperties = schema.MustDefine("spPr",
		schema.NoneSet("bwMode", []string{
			"clr", "auto", "gray", "ltGray", "invGray", "grayWhite",
			"blackGray", "blackWhite", "black", "white", "hidden",
		}),
		schema.Typed("xfrm", Transform2D, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("prstGeom", PresetGeometry, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("noFill", NoFill, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("solidFill", SolidFill, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("gradFill", GradientFillProperties, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("ln", LineProperties, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("scene3d", Scene3D, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("sp3d", Shape3D, schema.Optional(), schema.Namespace(nsA)),
	)
)
