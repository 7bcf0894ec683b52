package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

const sampleStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <numFmts count="2">
    <numFmt numFmtId="164" formatCode="yyyy/mm/dd"/>
    <numFmt numFmtId="165" formatCode="#,##0.000"/>
  </numFmts>
  <fonts count="3"><font/><font/><font/></fonts>
  <fills count="2"><fill/><fill/></fills>
  <borders count="1"><border/></borders>
  <cellXfs count="6">
    <xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>
    <xf numFmtId="164" fontId="0" fillId="0" borderId="0" xfId="0" applyNumberFormat="1"/>
    <xf numFmtId="165" fontId="0" fillId="0" borderId="0" xfId="0" applyNumberFormat="1"/>
    <xf numFmtId="14" fontId="0" fillId="0" borderId="0" xfId="0" applyNumberFormat="1"/>
    <xf numFmtId="30" fontId="0" fillId="0" borderId="0" xfId="0"/>
    <xf numFmtId="10" fontId="1" fillId="0" borderId="0" xfId="0"><alignment horizontal="center" wrapText="1"/></xf>
  </cellXfs>
  <cellStyles count="1"><cellStyle name="Normal" xfId="0" builtinId="0"/></cellStyles>
</styleSheet>`

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"General", false},
		{"", false},
		{"@", false},
		{"0.00", false},
		{"#,##0 ;[Red](#,##0)", false},
		{"0%", false},
		{"yyyy/mm/dd", true},
		{"mm-dd-yy", true},
		{"h:mm AM/PM", true},
		{"[h]:mm:ss", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDateFormat(tt.code), tt.code)
	}
}

func TestStylesLookups(t *testing.T) {
	s, err := Parse([]byte(sampleStyles))
	require.NoError(t, err)

	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 3, s.Count("fonts"))
	assert.Equal(t, 2, s.Count("fills"))
	assert.Equal(t, 0, s.Count("dxfs"))

	assert.Equal(t, "yyyy/mm/dd", s.FormatCode(164))
	assert.Equal(t, "mm-dd-yy", s.FormatCode(14))
	assert.Equal(t, 165, s.NumberFormatID(2))
	assert.Equal(t, 0, s.NumberFormatID(99))

	dates := []bool{false, true, false, true, true, false}
	for i, want := range dates {
		assert.Equal(t, want, s.IsDate(i), "style %d", i)
	}

	xf := s.Record.Child("cellXfs").Children("xf")[5]
	assert.Equal(t, "center", xf.Child("alignment").Str("horizontal"))
	assert.True(t, xf.Child("alignment").Bool("wrapText"))
}

func TestNilStyles(t *testing.T) {
	var s *Styles
	assert.False(t, s.IsDate(3))
	assert.Equal(t, 0, s.Len())
}

func TestBuiltinFormat(t *testing.T) {
	code, ok := BuiltinFormat(22)
	assert.True(t, ok)
	assert.Equal(t, "m/d/yy h:mm", code)
	_, ok = BuiltinFormat(164)
	assert.False(t, ok)
}

func TestStylesheetRoundTrip(t *testing.T) {
	s, err := Parse([]byte(sampleStyles))
	require.NoError(t, err)
	data, err := schema.Marshal(s.Record)
	require.NoError(t, err)
	back, err := schema.Unmarshal(data, Stylesheet)
	require.NoError(t, err)
	assert.True(t, s.Record.Equal(back))
}

func TestAlignmentDomain(t *testing.T) {
	_, err := Alignment.New(schema.Values{"textRotation": 300})
	assert.ErrorIs(t, err, schema.ErrInvalidValue)
	_, err = Alignment.New(schema.Values{"horizontal": "middle"})
	assert.ErrorIs(t, err, schema.ErrInvalidValue)
}
