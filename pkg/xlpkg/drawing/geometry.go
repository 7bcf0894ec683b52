// Package drawing models DrawingML as it appears in spreadsheet packages:
// shape geometry and styling, the xdr anchor layer of drawing parts, and
// the lookup of charts, pictures and shapes a drawing part references.
package drawing

import (
	"math"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

const (
	nsA   = schema.NSDrawingMain
	nsXdr = schema.NSSpreadsheetDrawing
	nsR   = schema.NSRelationships
	nsC   = schema.NSChart
)

var (
	// Point2D is an offset in EMU.
	Point2D = schema.MustDefine("off",
		schema.Integer("x"),
		schema.Integer("y"),
	)
	// PositiveSize2D is an extent in EMU.
	PositiveSize2D = schema.MustDefine("ext",
		schema.Integer("cx", schema.Range(0, math.MaxInt64)),
		schema.Integer("cy", schema.Range(0, math.MaxInt64)),
	)
	// Transform2D places a shape. Group transforms also carry the child
	// coordinate space in chOff and chExt.
	Transform2D = schema.MustDefine("xfrm",
		schema.Integer("rot", schema.Optional()),
		schema.Bool("flipH", schema.Optional()),
		schema.Bool("flipV", schema.Optional()),
		schema.Typed("off", Point2D, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("ext", PositiveSize2D, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("chOff", Point2D, schema.Optional(), schema.Namespace(nsA)),
		schema.Typed("chExt", PositiveSize2D, schema.Optional(), schema.Namespace(nsA)),
	).InNamespace(nsA)

	SphereCoords = schema.MustDefine("sphereCoords",
		schema.Integer("lat"),
		schema.Integer("lon"),
		schema.Integer("rev"),
	)
	Camera = schema.MustDefine("camera",
		schema.Set("prst", cameraPresets),
		schema.Integer("fov", schema.Optional(), schema.Range(0, 10800000)),
		schema.Integer("zoom", schema.Optional()),
		schema.Typed("rot", SphereCoords, schema.Optional()),
	)
	LightRig = schema.MustDefine("lightRig",
		schema.Set("rig", lightRigTypes),
		schema.Set("dir", []string{"tl", "t", "tr", "l", "r", "bl", "b", "br"}),
		schema.Typed("rot", SphereCoords, schema.Optional()),
	)
	Vector3D = schema.MustDefine("vector",
		schema.Integer("dx"),
		schema.Integer("dy"),
		schema.Integer("dz"),
	)
	Point3D = schema.MustDefine("anchor",
		schema.Integer("x"),
		schema.Integer("y"),
		schema.Integer("z"),
	)
	Backdrop = schema.MustDefine("backdrop",
		schema.Typed("anchor", Point3D),
		schema.Typed("norm", Vector3D),
		schema.Typed("up", Vector3D),
	)
	Scene3D = schema.MustDefine("scene3d",
		schema.Typed("camera", Camera),
		schema.Typed("lightRig", LightRig),
		schema.Typed("backdrop", Backdrop, schema.Optional()),
	)
	Bevel = schema.MustDefine("bevel",
		schema.Integer("w", schema.Optional()),
		schema.Integer("h", schema.Optional()),
		schema.NoneSet("prst", []string{
			"relaxedInset", "circle", "slope", "cross", "angle", "softRound",
			"convex", "coolSlant", "divot", "riblet", "hardEdge", "artDeco",
		}),
	)
	Shape3D = schema.MustDefine("sp3d",
		schema.Integer("z", schema.Optional()),
		schema.Integer("extrusionH", schema.Optional()),
		schema.Integer("contourW", schema.Optional()),
		schema.NoneSet("prstMaterial", []string{
			"legacyMatte", "legacyPlastic", "legacyMetal", "legacyWireframe",
			"matte", "plastic", "metal", "warmMatte", "translucentPowder",
			"powder", "dkEdge", "softEdge", "clear", "flat", "softmetal",
		}),
		schema.Typed("bevelT", Bevel, schema.Optional()),
		schema.Typed("bevelB", Bevel, schema.Optional()),
	)

	GeomGuide = schema.MustDefine("gd",
		schema.String("name"),
		schema.String("fmla"),
	)
	GeomGuideList = schema.MustDefine("avLst",
		schema.Sequence("gd", GeomGuide),
	)
	// PresetGeometry names one of the built-in shape outlines, e.g. rect.
	PresetGeometry = schema.MustDefine("prstGeom",
		schema.String("prst"),
		schema.Typed("avLst", GeomGuideList, schema.Optional()),
	)
)

var cameraPresets = func() []string {
	var out []string
	for _, kind := range []string{"legacyOblique", "legacyPerspective"} {
		for _, pos := range []string{"TopLeft", "Top", "TopRight", "Left", "Front", "Right", "BottomLeft", "Bottom", "BottomRight"} {
			out = append(out, kind+pos)
		}
	}
	out = append(out,
		"orthographicFront",
		"isometricTopUp", "isometricTopDown", "isometricBottomUp", "isometricBottomDown",
		"isometricLeftUp", "isometricLeftDown", "isometricRightUp", "isometricRightDown",
		"isometricOffAxis1Left", "isometricOffAxis1Right", "isometricOffAxis1Top",
		"isometricOffAxis2Left", "isometricOffAxis2Right", "isometricOffAxis2Top",
		"isometricOffAxis3Left", "isometricOffAxis3Right", "isometricOffAxis3Bottom",
		"isometricOffAxis4Left", "isometricOffAxis4Right", "isometricOffAxis4Bottom",
		"obliqueTopLeft", "obliqueTop", "obliqueTopRight", "obliqueLeft", "obliqueRight",
		"obliqueBottomLeft", "obliqueBottom", "obliqueBottomRight",
		"perspectiveFront", "perspectiveLeft", "perspectiveRight", "perspectiveAbove",
		"perspectiveBelow", "perspectiveAboveLeftFacing", "perspectiveAboveRightFacing",
		"perspectiveContrastingLeftFacing", "perspectiveContrastingRightFacing",
		"perspectiveHeroicLeftFacing", "perspectiveHeroicRightFacing",
		"perspectiveHeroicExtremeLeftFacing", "perspectiveHeroicExtremeRightFacing",
		"perspectiveRelaxed", "perspectiveRelaxedModerately",
	)
	return out
}()

var lightRigTypes = []string{
	"legacyFlat1", "legacyFlat2", "legacyFlat3", "legacyFlat4",
	"legacyNormal1", "legacyNormal2", "legacyNormal3", "legacyNormal4",
	"legacyHarsh1", "legacyHarsh2", "legacyHarsh3", "legacyHarsh4",
	"threePt", "balanced", "soft", "harsh", "flood", "contrasting",
	"morning", "sunrise", "sunset", "chilly", "freezing", "flat", "twoPt",
	"glow", "brightRoom",
}
