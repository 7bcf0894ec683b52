package drawing

import (
	"strconv"
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// ChartSummaries describes the charts of a drawing. Sizes are only reported
// in verbose mode.
func ChartSummaries(c *Contents, mode models.Mode) []models.Chart {
	if c == nil || mode == models.ModeLight {
		return nil
	}
	out := make([]models.Chart, 0, len(c.Charts))
	for _, ch := range c.Charts {
		pl := PlacementOf(ch.Frame.Child("xfrm"))
		chart := SummarizeChart(ch.Tree)
		chart.Name = DrawingProps(ch.Frame).Str("name")
		chart.Path = ch.Path
		chart.Anchor = AnchorCell(ch.Anchor)
		chart.L, chart.T = pl.Left, pl.Top
		if mode == models.ModeVerbose {
			w, h := pl.Width, pl.Height
			chart.W, chart.H = &w, &h
		}
		out = append(out, chart)
	}
	return out
}

// SummarizeChart reads the type, titles, series references and value axis
// bounds from a chartSpace tree.
func SummarizeChart(chartSpace *schema.Node) models.Chart {
	chart := models.Chart{ChartType: "unknown", Series: []models.ChartSeries{}}
	if chartSpace == nil {
		return chart
	}
	c := chartSpace.Find("chart")
	if c == nil {
		return chart
	}
	chart.Title = titleText(c.Find("title"))
	plot := c.Find("plotArea")
	if plot == nil {
		return chart
	}
	for _, child := range plot.Children {
		if ct, ok := ChartTypeMap[child.Name.Local]; ok {
			if chart.ChartType == "unknown" {
				chart.ChartType = ct
			}
			for _, ser := range child.FindAll("ser") {
				chart.Series = append(chart.Series, seriesOf(ser))
			}
		}
	}
	if valAx := plot.Find("valAx"); valAx != nil {
		chart.YAxisTitle = titleText(valAx.Find("title"))
		chart.YAxisRange = axisRange(valAx.Find("scaling"))
	}
	return chart
}

// titleText joins the a:t runs of a title's rich text.
func titleText(title *schema.Node) string {
	if title == nil {
		return ""
	}
	var b strings.Builder
	title.Walk(func(n *schema.Node) bool {
		if n.Name.Local == "t" {
			b.WriteString(n.Text)
		}
		return true
	})
	return strings.TrimSpace(b.String())
}

func seriesOf(ser *schema.Node) models.ChartSeries {
	var s models.ChartSeries
	if tx := ser.Find("tx"); tx != nil {
		if ref := tx.Find("strRef"); ref != nil {
			if f := ref.Find("f"); f != nil {
				s.NameRange = strings.TrimSpace(f.Text)
			}
			if v := ref.FindPath("strCache", "pt", "v"); v != nil {
				s.Name = strings.TrimSpace(v.Text)
			}
		}
		if v := tx.Find("v"); v != nil {
			s.Name = strings.TrimSpace(v.Text)
		}
	}
	// scatter and bubble series use xVal/yVal in place of cat/val
	s.XRange = formulaOf(ser, "cat", "xVal")
	s.YRange = formulaOf(ser, "val", "yVal")
	return s
}

func formulaOf(ser *schema.Node, names ...string) string {
	for _, name := range names {
		n := ser.Find(name)
		if n == nil {
			continue
		}
		var f string
		n.Walk(func(c *schema.Node) bool {
			if f == "" && c.Name.Local == "f" {
				f = strings.TrimSpace(c.Text)
			}
			return f == ""
		})
		if f != "" {
			return f
		}
	}
	return ""
}

func axisRange(scaling *schema.Node) []float64 {
	if scaling == nil {
		return nil
	}
	lo, okLo := floatVal(scaling.Find("min"))
	hi, okHi := floatVal(scaling.Find("max"))
	if okLo && okHi {
		return []float64{lo, hi}
	}
	return nil
}

func floatVal(n *schema.Node) (float64, bool) {
	if n == nil {
		return 0, false
	}
	v, ok := n.Attr("val")
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}
