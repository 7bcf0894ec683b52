package worksheet

import (
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

const (
	nsR       = schema.NSRelationships
	nsX14     = "http://schemas.microsoft.com/office/spreadsheetml/2009/9/main"
	nsActiveX = schema.NSActiveX
)

var (
	ControlProperty = schema.MustDefine("controlPr",
		schema.Bool("locked", schema.Default(true)),
		schema.Bool("defaultSize", schema.Default(true)),
		schema.Bool("print", schema.Default(true)),
		schema.Bool("disabled", schema.Default(false)),
		schema.Bool("recalcAlways", schema.Default(false)),
		schema.Bool("uiObject", schema.Default(false)),
		schema.Bool("autoFill", schema.Default(true)),
		schema.Bool("autoLine", schema.Default(true)),
		schema.Bool("autoPict", schema.Default(true)),
		schema.String("macro", schema.Optional()),
		schema.String("altText", schema.Optional()),
		schema.String("linkedCell", schema.Optional()),
		schema.String("listFillRange", schema.Optional()),
		schema.String("cf", schema.Default("pict")),
		schema.String("id", schema.Namespace(nsR), schema.Optional()),
		schema.Typed("anchor", ObjectAnchor),
	)
	Control = schema.MustDefine("control",
		schema.Integer("shapeId"),
		schema.String("id", schema.Namespace(nsR)),
		schema.String("name", schema.Optional()),
		schema.Typed("controlPr", ControlProperty, schema.Optional()),
	)
	Controls = schema.MustDefine("controls",
		schema.Sequence("control", Control),
	)

	// FormControl is the root of a ctrlProp part (xl/ctrlProps/ctrlPropN.xml).
	FormControl = schema.MustDefine("formControlPr",
		schema.Set("objectType", []string{
			"Button", "CheckBox", "Drop", "GBox", "Label", "List", "Radio",
			"Scroll", "Spin", "EditBox", "Dialog",
		}),
		schema.Set("checked", []string{"Unchecked", "Checked", "Mixed"}, schema.Optional()),
		schema.String("fmlaLink", schema.Optional()),
		schema.String("fmlaRange", schema.Optional()),
		schema.String("fmlaTxbx", schema.Optional()),
		schema.Bool("lockText", schema.Optional()),
		schema.Bool("noThreeD", schema.Optional()),
		schema.Integer("dropLines", schema.Optional()),
		schema.Integer("sel", schema.Optional()),
		schema.Integer("val", schema.Optional()),
		schema.Integer("min", schema.Optional()),
		schema.Integer("max", schema.Optional()),
		schema.Integer("inc", schema.Optional()),
		schema.Integer("page", schema.Optional()),
		schema.Set("selType", []string{"single", "multi", "extended"}, schema.Optional()),
		schema.String("textHAlign", schema.Optional()),
		schema.String("textVAlign", schema.Optional()),
	).InNamespace(nsX14)

	ActiveXProperty = schema.MustDefine("ocxPr",
		schema.String("name", schema.Namespace(nsActiveX)),
		schema.String("value", schema.Namespace(nsActiveX), schema.Optional()),
	)
	// ActiveXControl is the root of an activeX part (xl/activeX/activeXN.xml);
	// the control's state lives in a binary part it links to.
	ActiveXControl = schema.MustDefine("ocx",
		schema.String("classid", schema.Namespace(nsActiveX)),
		schema.Set("persistence", []string{"persistPropertyBag", "persistStream", "persistStreamInit", "persistStorage"}, schema.Namespace(nsActiveX)),
		schema.String("id", schema.Namespace(nsR), schema.Optional()),
		schema.String("license", schema.Namespace(nsActiveX), schema.Optional()),
		schema.Sequence("ocxPr", ActiveXProperty),
	).InNamespace(nsActiveX)
)

// ControlShape is a worksheet control with the part that defines it. Exactly
// one of Form and ActiveX is set once the control's part has been read.
type ControlShape struct {
	Control *schema.Record
	Form    *schema.Record
	ActiveX *schema.Record
	// Binary is the ActiveX persistence stream.
	Binary packaging.PartRef
	// Image is the preview picture from controlPr, when present.
	Image packaging.PartRef
}

// Name returns the control's display name.
func (c ControlShape) Name() string {
	return c.Control.Str("name")
}

// Kind returns "form", "activeX" or "" when the part was not found.
func (c ControlShape) Kind() string {
	switch {
	case c.Form != nil:
		return "form"
	case c.ActiveX != nil:
		return "activeX"
	}
	return ""
}
