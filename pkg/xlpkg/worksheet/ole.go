package worksheet

import (
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/drawing"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

var (
	// ObjectAnchor places an embedded object or control between two cell
	// markers. Both flags are always written, as spreadsheet applications do.
	ObjectAnchor = schema.MustDefine("anchor",
		schema.Bool("moveWithCells", schema.Default(false), schema.KeepDefault()),
		schema.Bool("sizeWithCells", schema.Default(false), schema.KeepDefault()),
		schema.Integer("z", schema.Optional()),
		schema.Typed("from", drawing.AnchorMarker),
		schema.Typed("to", drawing.AnchorMarker),
	)
	ObjectProperties = schema.MustDefine("objectPr",
		schema.Bool("locked", schema.Default(true)),
		schema.Bool("defaultSize", schema.Default(true)),
		schema.Bool("print", schema.Default(true)),
		schema.Bool("disabled", schema.Default(false)),
		schema.Bool("uiObject", schema.Default(false)),
		schema.Bool("autoFill", schema.Default(true)),
		schema.Bool("autoLine", schema.Default(true)),
		schema.Bool("autoPict", schema.Default(true)),
		schema.String("macro", schema.Optional()),
		schema.String("altText", schema.Optional()),
		schema.Bool("dde", schema.Default(false)),
		schema.String("id", schema.Namespace(nsR), schema.Optional()),
		schema.Typed("anchor", ObjectAnchor),
	)
	OleObject = schema.MustDefine("oleObject",
		schema.String("progId", schema.Optional()),
		schema.Set("dvAspect", []string{"DVASPECT_CONTENT", "DVASPECT_ICON"}, schema.Default("DVASPECT_CONTENT")),
		schema.String("link", schema.Optional()),
		schema.Set("oleUpdate", []string{"OLEUPDATE_ALWAYS", "OLEUPDATE_ONCALL"}, schema.Optional()),
		schema.Bool("autoLoad", schema.Default(false)),
		schema.Integer("shapeId"),
		schema.String("id", schema.Namespace(nsR), schema.Optional()),
		schema.Typed("objectPr", ObjectProperties, schema.Optional()),
	)
	OleObjects = schema.MustDefine("oleObjects",
		schema.Sequence("oleObject", OleObject),
	)
)

// EmbeddedObject is an OLE object together with the part holding its data.
type EmbeddedObject struct {
	Object *schema.Record
	// Ref points at the embedded payload; it is invalid for linked objects.
	Ref packaging.PartRef
	// Image is the preview picture from objectPr, when present.
	Image packaging.PartRef
}

// ProgID returns the object's application identifier, e.g. "Excel.Sheet.12".
func (o EmbeddedObject) ProgID() string {
	return o.Object.Str("progId")
}

// Anchor returns the objectPr anchor, or nil for objects without one.
func (o EmbeddedObject) Anchor() *schema.Record {
	return o.Object.Child("objectPr").Child("anchor")
}
