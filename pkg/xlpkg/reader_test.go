package xlpkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
)

const nsSheet = `xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

const bookXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook ` + nsSheet + `>
<workbookPr codeName="ThisWorkbook"/>
<sheets>
<sheet name="Data" sheetId="1" r:id="rId1"/>
<sheet name="Hidden" sheetId="2" state="hidden" r:id="rId2"/>
<sheet name="Chart" sheetId="3" state="veryHidden" r:id="rId3"/>
<sheet name="Missing" sheetId="4" r:id="rId4"/>
</sheets>
<externalReferences><externalReference r:id="rId5"/></externalReferences>
<definedNames>
<definedName name="_xlnm.Print_Area" localSheetId="0">Data!$A$1:$C$3</definedName>
<definedName name="Rate">Data!$B$1</definedName>
</definedNames>
</workbook>`

const dataSheetXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet ` + nsSheet + `>
<dimension ref="A1:C2"/>
<sheetData>` +
	`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1"><v>42</v></c><c r="C1" s="1"><v>45000</v></c></row>` +
	`<row r="2"><c r="A2" t="s"><v>1</v></c></row>` +
	`</sheetData>
<hyperlinks><hyperlink ref="A2" r:id="rId1"/></hyperlinks>
</worksheet>`

const hiddenSheetXML = `<worksheet ` + nsSheet + `><sheetData/></worksheet>`

const chartSheetXML = `<chartsheet ` + nsSheet + `><sheetPr/></chartsheet>`

const commentsXML = `<comments xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">` +
	`<authors><author>Alice</author></authors>` +
	`<commentList><comment ref="B1" authorId="0"><text><t>answer</t></text></comment></commentList></comments>`

const stringsXML = `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2">` +
	`<si><t>Name</t></si><si><t>Alice</t></si></sst>`

const stylesXML = `<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">` +
	`<cellXfs count="2"><xf numFmtId="0"/><xf numFmtId="14" applyNumberFormat="1"/></cellXfs></styleSheet>`

const linkXML = `<externalLink ` + nsSheet + `>` +
	`<externalBook r:id="rId1"><sheetNames><sheetName val="Prices"/></sheetNames></externalBook></externalLink>`

const volatileXML = `<volTypes xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">` +
	`<volType type="realTimeData"><main first="quotes.server">` +
	`<tp t="n"><v>12.5</v><stp>MSFT</stp><stp>Last</stp><tr r="B1" s="0"/></tp>` +
	`<tp><v>3</v><stp>IBM</stp><tr r="C1" s="0"/></tp>` +
	`</main></volType></volTypes>`

var vbaBinary = []byte("vba project storage")

func bookRels() packaging.Relationships {
	return packaging.Relationships{
		{ID: "rId1", Type: packaging.RelWorksheet, Target: "worksheets/sheet1.xml"},
		{ID: "rId2", Type: packaging.RelWorksheet, Target: "worksheets/sheet2.xml"},
		{ID: "rId3", Type: packaging.RelChartsheet, Target: "chartsheets/sheet1.xml"},
		{ID: "rId4", Type: packaging.RelWorksheet, Target: "worksheets/sheet9.xml"},
		{ID: "rId5", Type: packaging.RelExternalLink, Target: "externalLinks/externalLink1.xml"},
		{ID: "rId6", Type: packaging.RelSharedStrings, Target: "sharedStrings.xml"},
		{ID: "rId7", Type: packaging.RelStyles, Target: "styles.xml"},
		{ID: "rId8", Type: packaging.RelTheme, Target: "theme/theme1.xml"},
		{ID: "rId9", Type: packaging.RelVBAProject, Target: "vbaProject.bin"},
	}
}

type part struct {
	name, contentType string
	data              []byte
}

// buildPackage writes a macro-enabled workbook. Parts named in omit are
// left out.
func buildPackage(t *testing.T, omit ...string) []byte {
	t.Helper()
	parts := []part{
		{packaging.WorkbookPath, packaging.ContentTypeXLSM, []byte(bookXML)},
		{"xl/worksheets/sheet1.xml", packaging.ContentTypeWorksheet, []byte(dataSheetXML)},
		{"xl/worksheets/sheet2.xml", packaging.ContentTypeWorksheet, []byte(hiddenSheetXML)},
		{"xl/chartsheets/sheet1.xml", packaging.ContentTypeChartsheet, []byte(chartSheetXML)},
		{"xl/comments1.xml", packaging.ContentTypeComments, []byte(commentsXML)},
		{packaging.SharedStringPath, packaging.ContentTypeSharedStrings, []byte(stringsXML)},
		{packaging.StylesPath, packaging.ContentTypeStyles, []byte(stylesXML)},
		{packaging.ThemePath, packaging.ContentTypeTheme, []byte(`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office"/>`)},
		{"xl/externalLinks/externalLink1.xml", packaging.ContentTypeExternalLink, []byte(linkXML)},
		{"xl/volatileDependencies.xml", packaging.ContentTypeVolatileDeps, []byte(volatileXML)},
		{packaging.VBAProjectPath, packaging.ContentTypeVBA, vbaBinary},
	}
	skip := map[string]bool{}
	for _, name := range omit {
		skip[name] = true
	}
	var buf bytes.Buffer
	w := packaging.NewWriter(&buf)
	for _, p := range parts {
		if skip[p.name] {
			continue
		}
		require.NoError(t, w.WritePart(p.name, p.contentType, p.data))
	}
	w.Relate("", packaging.RelOfficeDocument, packaging.WorkbookPath, false)
	w.SetRelationships(packaging.WorkbookPath, bookRels())
	w.SetRelationships("xl/worksheets/sheet1.xml", packaging.Relationships{
		{ID: "rId1", Type: packaging.RelHyperlink, Target: "https://example.com/alice", TargetMode: "External"},
		{ID: "rId2", Type: packaging.RelComments, Target: "../comments1.xml"},
	})
	w.SetRelationships("xl/externalLinks/externalLink1.xml", packaging.Relationships{
		{ID: "rId1", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/externalLinkPath", Target: "file:///C:/data/prices.xlsx", TargetMode: "External"},
	})
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func quietOptions() (Options, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = logger
	return opts, hook
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "unopened", StageUnopened.String())
	assert.Equal(t, "workbook-located", StageWorkbook.String())
	assert.Equal(t, "volatile-deps-read", StageVolatile.String())
	assert.Equal(t, "complete", StageComplete.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}

func TestLoadWorkbookFromBytes(t *testing.T) {
	opts, hook := quietOptions()
	wb, err := LoadWorkbookFromBytes(buildPackage(t), opts)
	require.NoError(t, err)

	assert.Equal(t, packaging.ContentTypeXLSM, wb.ContentType)
	assert.Equal(t, []string{"Data", "Hidden", "Chart"}, wb.SheetNames())
	assert.True(t, wb.archive.Closed())
	assert.False(t, wb.ReadOnly())
	assert.False(t, wb.Date1904())
	assert.Equal(t, []string{"Name", "Alice"}, wb.SharedStrings)
	assert.Equal(t, 2, wb.Styles.Len())
	assert.Contains(t, string(wb.Theme), `name="Office"`)

	data, ok := wb.Sheet("Data")
	require.True(t, ok)
	require.NotNil(t, data.Worksheet)
	assert.True(t, data.Visible())
	rows := data.Worksheet.Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0].Cells[0].Value)
	assert.Equal(t, int64(42), rows[0].Cells[1].Value)
	date, ok := rows[0].Cells[2].Value.(time.Time)
	require.True(t, ok)
	assert.Equal(t, "2023-03-15", date.Format("2006-01-02"))
	assert.Equal(t, "https://example.com/alice", data.Worksheet.Links["A2"])
	require.Len(t, data.Worksheet.Comments, 1)
	assert.Equal(t, "Alice", data.Worksheet.Comments[0].Author)

	hidden, ok := wb.Sheet("Hidden")
	require.True(t, ok)
	assert.Equal(t, "hidden", hidden.State)

	chart, ok := wb.Sheet("Chart")
	require.True(t, ok)
	assert.Equal(t, "veryHidden", chart.State)
	assert.Nil(t, chart.Worksheet)
	require.NotNil(t, chart.Chartsheet)

	_, ok = wb.Sheet("Missing")
	assert.False(t, ok)
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["sheet"] == "Missing" {
			warned = true
		}
	}
	assert.True(t, warned, "missing sheet part should be logged")

	require.Len(t, wb.Links, 1)
	assert.Equal(t, "file:///C:/data/prices.xlsx", wb.Links[0].Target)
	assert.Equal(t, map[string][]models.PrintArea{"Data": {{R1: 1, C1: 1, R2: 3, C2: 3}}}, wb.PrintAreas)

	subs := wb.VolatileSubscriptions()
	require.Len(t, subs, 2)
	assert.Equal(t, "quotes.server", subs[0].Server)
	assert.Equal(t, []string{"MSFT", "Last"}, subs[0].Params)
	assert.Equal(t, []string{"C1"}, subs[1].Cells)

	assert.False(t, wb.HasVBA())
	assert.NoError(t, wb.Close())
}

func TestLoadWorkbookKeepVBA(t *testing.T) {
	opts, _ := quietOptions()
	opts.KeepVBA = true
	wb, err := LoadWorkbookFromBytes(buildPackage(t), opts)
	require.NoError(t, err)

	require.True(t, wb.HasVBA())
	assert.Equal(t, packaging.VBAProjectPath, wb.VBA.Path)
	// The archive is closed; the reference reopens the source.
	got, err := wb.VBA.Bytes()
	require.NoError(t, err)
	assert.Equal(t, vbaBinary, got)
}

func TestLoadWorkbookWithoutLinks(t *testing.T) {
	opts, _ := quietOptions()
	keep := false
	opts.KeepLinks = &keep
	wb, err := LoadWorkbookFromBytes(buildPackage(t), opts)
	require.NoError(t, err)
	assert.Empty(t, wb.Links)
}

func TestLoadWorkbookOptionalPartsAbsent(t *testing.T) {
	opts, _ := quietOptions()
	data := buildPackage(t, packaging.ThemePath, "xl/volatileDependencies.xml", "xl/externalLinks/externalLink1.xml", "xl/comments1.xml")
	wb, err := LoadWorkbookFromBytes(data, opts)
	require.NoError(t, err)

	assert.Nil(t, wb.Theme)
	assert.Nil(t, wb.Volatile)
	assert.Nil(t, wb.VolatileSubscriptions())
	assert.Empty(t, wb.Links)
	sheet, ok := wb.Sheet("Data")
	require.True(t, ok)
	assert.Empty(t, sheet.Worksheet.Comments)
}

func TestLoadWorkbookReadOnly(t *testing.T) {
	opts, _ := quietOptions()
	opts.ReadOnly = true
	wb, err := LoadWorkbookFromBytes(buildPackage(t), opts)
	require.NoError(t, err)
	assert.True(t, wb.ReadOnly())
	assert.False(t, wb.archive.Closed())

	sheet, ok := wb.Sheet("Data")
	require.True(t, ok)
	assert.Nil(t, sheet.Worksheet.Rows)

	summary, err := wb.Summary()
	require.NoError(t, err)
	require.Len(t, summary.Sheets["Data"].Rows, 2)
	assert.Equal(t, "Alice", summary.Sheets["Data"].Rows[1].C["1"])

	require.NoError(t, wb.Close())
	assert.True(t, wb.archive.Closed())
	require.NoError(t, wb.Close())
}

func TestReaderStages(t *testing.T) {
	a, err := packaging.OpenBytes(buildPackage(t))
	require.NoError(t, err)
	defer a.Close()

	opts, hook := quietOptions()
	r := NewReader(a, opts)
	assert.Equal(t, StageUnopened, r.Stage())
	_, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, StageComplete, r.Stage())
	// Reader does not own the archive.
	assert.False(t, a.Closed())

	var stages []string
	for _, e := range hook.AllEntries() {
		if e.Message == "load stage done" {
			stages = append(stages, e.Data["stage"].(string))
		}
	}
	assert.Equal(t, []string{"manifest-read", "workbook-located", "strings-read", "theme-read", "styles-read", "sheets-read", "volatile-deps-read"}, stages)

	_, err = r.Read()
	assert.Error(t, err)
}

func TestLoadWorkbookMissingWorkbookPart(t *testing.T) {
	var buf bytes.Buffer
	w := packaging.NewWriter(&buf)
	require.NoError(t, w.WritePart("xl/worksheets/sheet1.xml", packaging.ContentTypeWorksheet, []byte(hiddenSheetXML)))
	require.NoError(t, w.Close())

	opts, _ := quietOptions()
	_, err := LoadWorkbookFromBytes(buf.Bytes(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingPart)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, StageWorkbook, le.Stage)
}

func TestLoadWorkbookMissingManifest(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create(packaging.WorkbookPath)
	require.NoError(t, err)
	_, err = f.Write([]byte(bookXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	opts, _ := quietOptions()
	_, err = LoadWorkbookFromBytes(buf.Bytes(), opts)
	assert.ErrorIs(t, err, ErrMissingPart)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, StageManifest, le.Stage)
}

func TestLoadWorkbookWorkbookListedButAbsent(t *testing.T) {
	var buf bytes.Buffer
	w := packaging.NewWriter(&buf)
	w.Manifest().AddOverride(packaging.WorkbookPath, packaging.ContentTypeXLSX)
	require.NoError(t, w.WritePart(packaging.StylesPath, packaging.ContentTypeStyles, []byte(stylesXML)))
	require.NoError(t, w.Close())

	opts, _ := quietOptions()
	_, err := LoadWorkbookFromBytes(buf.Bytes(), opts)
	assert.ErrorIs(t, err, ErrMissingPart)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, StageWorkbook, le.Stage)
	assert.Equal(t, packaging.WorkbookPath, le.Part)
}

func TestLoadWorkbookNotAZip(t *testing.T) {
	opts, _ := quietOptions()
	_, err := LoadWorkbookFromBytes([]byte("definitely not a zip archive"), opts)
	assert.ErrorIs(t, err, ErrCorruptArchive)

	_, err = LoadWorkbookFromReader(bytes.NewReader(nil), 0, opts)
	assert.ErrorIs(t, err, ErrCorruptArchive)
}

func TestLoadWorkbookPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsm")
	require.NoError(t, os.WriteFile(path, buildPackage(t), 0o644))

	opts, _ := quietOptions()
	wb, err := LoadWorkbook(path, opts)
	require.NoError(t, err)
	assert.Equal(t, "report.xlsm", wb.Name)
	assert.True(t, wb.archive.Closed())

	_, err = LoadWorkbook(filepath.Join(dir, "absent.xlsx"), opts)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadWorkbookRejectsExtension(t *testing.T) {
	tests := []struct {
		path    string
		message string
	}{
		{"old.xls", "old .xls binary format"},
		{"book.xlsb", "binary .xlsb format"},
		{"README", "no extension"},
		{"notes.csv", ".csv file format is not supported"},
	}
	opts, _ := quietOptions()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := LoadWorkbook(tt.path, opts)
			require.ErrorIs(t, err, ErrInvalidFileType)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadWorkbookInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = "exhaustive"
	_, err := LoadWorkbookFromBytes(buildPackage(t), opts)
	assert.Error(t, err)
}

func TestLoadExcelizeWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", 42))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "widget"))
	_, err := f.NewSheet("Archive")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetVisible("Archive", false))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	opts, _ := quietOptions()
	wb, err := LoadWorkbookFromBytes(buf.Bytes(), opts)
	require.NoError(t, err)
	assert.Equal(t, packaging.ContentTypeXLSX, wb.ContentType)
	assert.Equal(t, []string{"Sheet1", "Archive"}, wb.SheetNames())

	archive, ok := wb.Sheet("Archive")
	require.True(t, ok)
	assert.Equal(t, "hidden", archive.State)

	summary, err := wb.Summary()
	require.NoError(t, err)
	rows := summary.Sheets["Sheet1"].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "name", rows[0].C["1"])
	assert.Equal(t, int64(42), rows[0].C["2"])
	assert.Equal(t, "widget", rows[1].C["1"])
}
