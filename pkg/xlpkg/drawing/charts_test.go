package drawing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

func TestSummarizeChart(t *testing.T) {
	tree, err := schema.ParseNode([]byte(chartXML))
	require.NoError(t, err)

	got := SummarizeChart(tree)
	assert.Equal(t, "Bar", got.ChartType)
	assert.Equal(t, "Sales", got.Title)
	assert.Equal(t, "Yen", got.YAxisTitle)
	assert.Equal(t, []float64{0, 100}, got.YAxisRange)
	assert.Equal(t, []models.ChartSeries{{
		Name:      "Revenue",
		NameRange: "Sheet1!$B$1",
		XRange:    "Sheet1!$A$2:$A$5",
		YRange:    "Sheet1!$B$2:$B$5",
	}}, got.Series)
}

func TestSummarizeChartUnknown(t *testing.T) {
	tree, err := schema.ParseNode([]byte(`<chartSpace><chart><plotArea/></chart></chartSpace>`))
	require.NoError(t, err)
	got := SummarizeChart(tree)
	assert.Equal(t, "unknown", got.ChartType)
	assert.Empty(t, got.Series)
	assert.Nil(t, got.YAxisRange)

	assert.Equal(t, "unknown", SummarizeChart(nil).ChartType)
}

func TestChartSummaries(t *testing.T) {
	a := buildArchive(t, mediaDrawing(), map[string][]byte{
		"xl/charts/chart1.xml": []byte(chartXML),
	}, mediaRels())
	c, err := FindImages(a, drawingPath, Config{})
	require.NoError(t, err)

	charts := ChartSummaries(c, models.ModeVerbose)
	require.Len(t, charts, 1)
	assert.Equal(t, "Chart 5", charts[0].Name)
	assert.Equal(t, "xl/charts/chart1.xml", charts[0].Path)
	assert.Equal(t, "B2", charts[0].Anchor)
	require.NotNil(t, charts[0].W)
	assert.Equal(t, 0, *charts[0].W)

	assert.Nil(t, ChartSummaries(c, models.ModeStandard)[0].W)
	assert.Nil(t, ChartSummaries(c, models.ModeLight))
}

func TestImageSummaries(t *testing.T) {
	a := buildArchive(t, mediaDrawing(), map[string][]byte{
		"xl/media/image1.png": pngBytes(t),
	}, mediaRels())
	c, err := FindImages(a, drawingPath, Config{})
	require.NoError(t, err)

	images := ImageSummaries(c)
	require.Len(t, images, 1)
	assert.Equal(t, models.Image{
		Name: "Picture 1", Path: "xl/media/image1.png", Format: "png",
		Width: 2, Height: 3, Anchor: "B2", L: 10, T: 20,
	}, images[0])
}
