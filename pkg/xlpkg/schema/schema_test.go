package schema

import (
	"encoding/xml"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPoint = MustDefine("pt",
		Integer("x", Default(0)),
		Integer("y", Default(0)),
	)
	testShape = MustDefine("shape",
		String("name"),
		NoneSet("kind", []string{"rect", "ellipse"}),
		Bool("hidden", Default(false)),
		Float("scale", Optional(), Range(0, 10)),
		NestedText("label", Optional()),
		Typed("origin", testPoint, Optional()),
		Sequence("pt", testPoint),
	).InNamespace("urn:test").Order("pt", "label", "origin")
	testMarker = MustDefine("marker",
		NestedText("col", As(KindInteger), Default(0), Namespace(NSSpreadsheetDrawing)),
		NestedText("row", As(KindInteger), Default(0), Namespace(NSSpreadsheetDrawing)),
	)
	testAnchor = MustDefine("anchor",
		Typed("from", testMarker),
		Bool("locked", Optional()),
	)
)

func TestSetValidatesAtAssignment(t *testing.T) {
	r := testShape.MustNew(Values{"name": "box"})

	tests := []struct {
		name    string
		field   string
		value   any
		wantErr bool
	}{
		{"set member", "kind", "rect", false},
		{"set outside domain", "kind", "triangle", true},
		{"noneset accepts nil", "kind", nil, false},
		{"noneset none keyword", "kind", "none", false},
		{"numeric string", "scale", "2.5", false},
		{"non numeric string", "scale", "big", true},
		{"out of range", "scale", 11, true},
		{"nan scale", "scale", "NaN", true},
		{"nan float scale", "scale", math.NaN(), true},
		{"bool from string", "hidden", "1", false},
		{"bad bool", "hidden", "maybe", true},
		{"required nil", "name", nil, true},
		{"wrong record type", "origin", testShape.MustNew(Values{"name": "x"}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Set(tt.field, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidValue))
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "shape", ve.Type)
				assert.Equal(t, tt.field, ve.Field)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewRequiresFields(t *testing.T) {
	_, err := testShape.New(Values{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	_, err = testShape.New(Values{"name": "a", "colour": "red"})
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestDefaultsApplied(t *testing.T) {
	p := testPoint.MustNew(nil)
	assert.Equal(t, int64(0), p.Int("x"))
	assert.True(t, p.Has("y"))
}

func TestToTreeOrder(t *testing.T) {
	r := testShape.MustNew(Values{
		"name":   "box",
		"kind":   "rect",
		"label":  "hi",
		"origin": testPoint.MustNew(Values{"x": 3}),
		"pt": []*Record{
			testPoint.MustNew(Values{"x": 1, "y": 2}),
			testPoint.MustNew(nil),
		},
	})
	got := r.ToTree().String()
	want := `<shape xmlns="urn:test" name="box" kind="rect"><pt x="1" y="2"/><pt/><label>hi</label><origin x="3"/></shape>`
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"pt", "label", "origin"}, testShape.ElementOrder())
}

func TestKeepDefault(t *testing.T) {
	flags := MustDefine("flags",
		Bool("locked", Default(false), KeepDefault()),
		Bool("hidden", Default(false)),
	)
	r := flags.MustNew(nil)
	assert.Equal(t, `<flags locked="0"/>`, r.ToTree().String())

	back, err := flags.FromTree(r.ToTree())
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func TestIntegerBounds(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int64
		wantErr bool
	}{
		{"exponent form", "1e3", 1000, false},
		{"largest int64", "9223372036854775807", math.MaxInt64, false},
		{"smallest int64", "-9223372036854775808", math.MinInt64, false},
		{"two to the 63", math.Exp2(63), 0, true},
		{"negative beyond range", -1e19, 0, true},
		{"infinite float", math.Inf(1), 0, true},
		{"nan float", math.NaN(), 0, true},
		{"fraction", 1.5, 0, true},
		{"uint beyond range", ^uint(0), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPoint.MustNew(nil)
			err := p.Set("x", tt.value)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidValue))
				assert.Equal(t, int64(0), p.Int("x"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Int("x"))
		})
	}
}

func TestNoneSetDefaultReturnsAfterNil(t *testing.T) {
	cell := MustDefine("c",
		NoneSet("t", []string{"s", "n", "str"}, Default("n")),
	)
	r := cell.MustNew(Values{"t": "s"})
	require.NoError(t, r.Set("t", nil))
	assert.Equal(t, `<c/>`, r.ToTree().String())

	// An absent attribute reads back as its default, not as nil.
	back, err := cell.FromTree(r.ToTree())
	require.NoError(t, err)
	assert.Equal(t, "n", back.Str("t"))
	assert.False(t, r.Equal(back))
	assert.True(t, back.Equal(cell.MustNew(nil)))
}

func TestNoneSetNilIsAbsent(t *testing.T) {
	r := testShape.MustNew(Values{"name": "box", "kind": nil})
	n := r.ToTree()
	_, ok := n.Attr("kind")
	assert.False(t, ok)
}

func TestTreeOptions(t *testing.T) {
	r := testPoint.MustNew(Values{"x": 5})
	n := r.ToTree(WithTag("off"), WithNamespace(NSDrawingMain))
	assert.Equal(t, "off", n.Tag())
	assert.Equal(t, NSDrawingMain, n.Name.Space)
	assert.Equal(t, `<off xmlns="http://schemas.openxmlformats.org/drawingml/2006/main" x="5"/>`, n.String())
}

func TestRoundTrip(t *testing.T) {
	records := []*Record{
		testShape.MustNew(Values{"name": ""}),
		testShape.MustNew(Values{"name": "a", "hidden": true, "scale": 1.25, "label": ""}),
		testShape.MustNew(Values{
			"name":   "b",
			"kind":   "ellipse",
			"origin": testPoint.MustNew(nil),
			"pt":     []*Record{testPoint.MustNew(Values{"x": -4})},
		}),
		testPoint.MustNew(nil),
		testAnchor.MustNew(Values{"from": testMarker.MustNew(Values{"col": 2, "row": 7}), "locked": false}),
	}
	for _, r := range records {
		t.Run(r.Type().Tag(), func(t *testing.T) {
			data, err := Marshal(r)
			require.NoError(t, err)
			back, err := Unmarshal(data, r.Type())
			require.NoError(t, err)
			assert.True(t, r.Equal(back), "round trip mismatch:\n%s\n%s", r, back)
		})
	}
}

func TestNamespacedChildren(t *testing.T) {
	r := testAnchor.MustNew(Values{"from": testMarker.MustNew(Values{"row": 4})})
	want := `<anchor xmlns:xdr="http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"><from><xdr:col>0</xdr:col><xdr:row>4</xdr:row></from></anchor>`
	assert.Equal(t, want, r.ToTree().String())

	n, err := ParseNode([]byte(`<anchor><from><col>1</col><row>2</row></from></anchor>`))
	require.NoError(t, err)
	back, err := testAnchor.FromTree(n)
	require.NoError(t, err)
	assert.Equal(t, int64(1), back.Child("from").Int("col"))
	assert.Equal(t, int64(2), back.Child("from").Int("row"))
}

func TestFromTreeIgnoresUnknown(t *testing.T) {
	n, err := ParseNode([]byte(`<shape name="x" extra="1"><unknown a="b"/><pt x="9" z="1"/></shape>`))
	require.NoError(t, err)
	r, err := testShape.FromTree(n)
	require.NoError(t, err)
	assert.Equal(t, "x", r.Str("name"))
	require.Len(t, r.Children("pt"), 1)
	assert.Equal(t, int64(9), r.Children("pt")[0].Int("x"))
	assert.False(t, r.Bool("hidden"))
}

func TestFromTreeErrors(t *testing.T) {
	tests := []struct {
		name       string
		xml        string
		typ        *Type
		structural bool
	}{
		{"missing required attribute", `<shape kind="rect"/>`, testShape, true},
		{"missing required child", `<anchor/>`, testAnchor, true},
		{"bad enumeration", `<shape name="a" kind="hexagon"/>`, testShape, false},
		{"non numeric integer", `<pt x="one"/>`, testPoint, false},
		{"integer overflow in exponent form", `<pt x="1e30"/>`, testPoint, false},
		{"integer overflow in decimal form", `<pt x="99999999999999999999"/>`, testPoint, false},
		{"integer infinity", `<pt x="+Inf"/>`, testPoint, false},
		{"integer nan", `<pt x="NaN"/>`, testPoint, false},
		{"nested invalid", `<anchor><from><col>x</col></from></anchor>`, testAnchor, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseNode([]byte(tt.xml))
			require.NoError(t, err)
			_, err = tt.typ.FromTree(n)
			require.Error(t, err)
			if tt.structural {
				var se *StructuralError
				require.True(t, errors.As(err, &se))
				assert.True(t, errors.Is(err, ErrMissingField))
			} else {
				assert.True(t, errors.Is(err, ErrInvalidValue))
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := testShape.MustNew(Values{"name": "a", "pt": []*Record{testPoint.MustNew(Values{"x": 1})}})
	c := r.Clone()
	require.True(t, r.Equal(c))

	require.NoError(t, c.Children("pt")[0].Set("x", 2))
	require.NoError(t, c.Set("name", "b"))
	assert.Equal(t, int64(1), r.Children("pt")[0].Int("x"))
	assert.Equal(t, "a", r.Str("name"))
	assert.False(t, r.Equal(c))
}

func TestWriteNodeResetsDefaultNamespace(t *testing.T) {
	n := NewNode("urn:a", "root").Append(NewNode("", "child"))
	assert.Equal(t, `<root xmlns="urn:a"><child xmlns=""/></root>`, n.String())

	back, err := ParseNode([]byte(n.String()))
	require.NoError(t, err)
	assert.True(t, Equivalent(n, back))
}

func TestWriteNodeEscapes(t *testing.T) {
	n := NewNode("", "t")
	n.SetAttr("", "q", `a"b<`)
	n.Text = "x & y"
	assert.Equal(t, `<t q="a&#34;b&lt;">x &amp; y</t>`, n.String())
}

func TestParseFallsBackToWindows1252(t *testing.T) {
	n, err := ParseNode([]byte("<a>caf\xe9</a>"))
	require.NoError(t, err)
	assert.Equal(t, "café", n.Text)
}

func TestParseLenient(t *testing.T) {
	src := []byte(`<xml><v:shape><div>line<br>next</div></v:shape></xml>`)
	_, err := ParseNode(src)
	assert.Error(t, err)

	n, err := ParseLenient(src)
	require.NoError(t, err)
	assert.NotNil(t, n.FindPath("shape", "div"))
}

func TestEquivalentIgnoresAttributeOrder(t *testing.T) {
	a, err := ParseNode([]byte(`<a x="1" y="2"><b/></a>`))
	require.NoError(t, err)
	b, err := ParseNode([]byte(`<a y="2" x="1"><b/></a>`))
	require.NoError(t, err)
	c, err := ParseNode([]byte(`<a y="2" x="1"><c/></a>`))
	require.NoError(t, err)
	assert.True(t, Equivalent(a, b))
	assert.False(t, Equivalent(a, c))
}

func TestNilRecordAccessors(t *testing.T) {
	r := testAnchor.MustNew(Values{"from": testMarker.MustNew(nil)})
	missing := r.Child("nope").Child("deeper")
	assert.Nil(t, missing)
	assert.False(t, missing.Has("x"))
	assert.Equal(t, "", missing.Str("x"))
	assert.Equal(t, int64(0), missing.Int("x"))
	assert.False(t, missing.Bool("x"))
	assert.Empty(t, missing.Children("x"))
}

func TestResolveAlternateContent(t *testing.T) {
	src := `<worksheet xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">
<mc:AlternateContent><mc:Choice Requires="x14"><controls><control shapeId="1"/></controls></mc:Choice>
<mc:Fallback><legacy/></mc:Fallback></mc:AlternateContent>
<mc:AlternateContent><mc:Fallback><fallbackOnly/></mc:Fallback></mc:AlternateContent>
<tail/></worksheet>`
	n, err := ParseNode([]byte(src))
	require.NoError(t, err)
	ResolveAlternateContent(n)

	var tags []string
	for _, c := range n.Children {
		tags = append(tags, c.Tag())
	}
	assert.Equal(t, []string{"controls", "fallbackOnly", "tail"}, tags)
	assert.NotNil(t, n.FindPath("controls", "control"))
}

func TestParseNodeSkipping(t *testing.T) {
	src := []byte(`<worksheet><dimension ref="A1"/><sheetData><row r="1"><c r="A1"/></row></sheetData><drawing/></worksheet>`)
	n, err := ParseNodeSkipping(src, "sheetData")
	require.NoError(t, err)
	data := n.Find("sheetData")
	require.NotNil(t, data)
	assert.Empty(t, data.Children)
	assert.NotNil(t, n.Find("drawing"))
	assert.NotNil(t, n.Find("dimension"))
}

func TestReadElement(t *testing.T) {
	dec := NewDecoder(strings.NewReader(`<rows><row r="1"><c r="A1"><v>1</v></c></row><row r="2"/></rows>`))
	var got []*Node
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "row" {
			n, err := ReadElement(dec, se)
			require.NoError(t, err)
			got = append(got, n)
		}
	}
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].FindPath("c", "v").Text)
	assert.Equal(t, "2", got[1].AttrValue("r"))

	dec = NewDecoder(strings.NewReader(`<row><c>`))
	tok, err := dec.Token()
	require.NoError(t, err)
	_, err = ReadElement(dec, tok.(xml.StartElement))
	assert.Error(t, err)
}
