package packaging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

const sampleRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing" Target="../drawings/drawing1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/vmlDrawing" Target="../drawings/vmlDrawing1.vml"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/" TargetMode="External"/>
  <Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/comments" Target="/xl/comments1.xml"/>
</Relationships>`

func TestParseRelationships(t *testing.T) {
	rels, err := ParseRelationships([]byte(sampleRels))
	require.NoError(t, err)
	require.Len(t, rels, 4)

	r, ok := rels.ByID("rId3")
	require.True(t, ok)
	assert.True(t, r.External())
	assert.Equal(t, "hyperlink", r.Kind())

	assert.Len(t, rels.ByKind("vmlDrawing"), 1)
	assert.Len(t, rels.ByType(RelDrawing), 1)
	_, ok = rels.ByID("rId9")
	assert.False(t, ok)
}

func TestRelationshipsRoundTrip(t *testing.T) {
	rels, err := ParseRelationships([]byte(sampleRels))
	require.NoError(t, err)
	data, err := schema.Marshal(rels)
	require.NoError(t, err)
	back, err := ParseRelationships(data)
	require.NoError(t, err)
	assert.Equal(t, rels, back)
}

func TestParseRelationshipsMissingTarget(t *testing.T) {
	_, err := ParseRelationships([]byte(`<Relationships><Relationship Id="rId1" Type="x"/></Relationships>`))
	assert.ErrorIs(t, err, schema.ErrMissingField)
}

func TestReadRelationships(t *testing.T) {
	a, err := OpenBytes(buildPackage(t))
	require.NoError(t, err)
	defer a.Close()

	rels, err := ReadRelationships(a, "")
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, RelOfficeDocument, rels[0].Type)

	rels, err = ReadRelationships(a, WorkbookPath)
	require.NoError(t, err, "a part without a .rels file has no relationships")
	assert.Nil(t, rels)
}

func TestReadRelationshipsBrokenPart(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WritePart(WorkbookPath, ContentTypeXLSX, []byte(`<workbook/>`)))
	require.NoError(t, w.WritePart(RelsPath(WorkbookPath), "", []byte(`<Relationships><Relationship Id="rId1" Type="x"/></Relationships>`)))
	require.NoError(t, w.Close())

	a, err := OpenBytes(buf.Bytes())
	require.NoError(t, err)
	defer a.Close()
	_, err = ReadRelationships(a, WorkbookPath)
	assert.ErrorIs(t, err, schema.ErrMissingField)
}

func TestRelsPath(t *testing.T) {
	tests := []struct {
		part string
		want string
	}{
		{"", "_rels/.rels"},
		{"xl/workbook.xml", "xl/_rels/workbook.xml.rels"},
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/_rels/sheet1.xml.rels"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelsPath(tt.part), tt.part)
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		source string
		target string
		want   string
	}{
		{"", "xl/workbook.xml", "xl/workbook.xml"},
		{"xl/workbook.xml", "worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "../drawings/drawing1.xml", "xl/drawings/drawing1.xml"},
		{"xl/drawings/drawing1.xml", "../media/image1.png", "xl/media/image1.png"},
		{"xl/worksheets/sheet1.xml", "/xl/comments1.xml", "xl/comments1.xml"},
		{"/xl/workbook.xml", "/xl/./styles.xml", "xl/styles.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.source+"->"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTarget(tt.source, tt.target))
		})
	}
}

func TestRelativeTargetInvertsResolve(t *testing.T) {
	pairs := [][2]string{
		{"", "xl/workbook.xml"},
		{"xl/workbook.xml", "xl/worksheets/sheet1.xml"},
		{"xl/drawings/drawing1.xml", "xl/media/image1.png"},
		{"xl/worksheets/sheet1.xml", "xl/comments1.xml"},
	}
	for _, p := range pairs {
		rel := RelativeTarget(p[0], p[1])
		assert.Equal(t, p[1], ResolveTarget(p[0], rel), "%s -> %s via %s", p[0], p[1], rel)
	}
	assert.Equal(t, "../media/image1.png", RelativeTarget("xl/drawings/drawing1.xml", "xl/media/image1.png"))
}

func TestRelationshipsAdd(t *testing.T) {
	var rs Relationships
	assert.Equal(t, "rId1", rs.Add(RelWorksheet, "worksheets/sheet1.xml", false))
	assert.Equal(t, "rId2", rs.Add(RelHyperlink, "https://example.com", true))
	assert.True(t, rs[1].External())
}
