package drawing

import (
	"testing"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/models"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

func TestComputeDirection(t *testing.T) {
	tests := []struct {
		width    int
		height   int
		expected string
	}{
		{100, 0, "E"},      // East (right)
		{0, -100, "N"},     // North (up)
		{0, 100, "S"},      // South (down)
		{-100, 0, "W"},     // West (left)
		{100, -100, "NE"},  // Northeast
		{100, 100, "SE"},   // Southeast
		{-100, 100, "SW"},  // Southwest
		{-100, -100, "NW"}, // Northwest
		{0, 0, ""},         // No direction
	}

	for _, tt := range tests {
		result := computeDirection(tt.width, tt.height)
		if result != tt.expected {
			t.Errorf("computeDirection(%d, %d) = %q, expected %q",
				tt.width, tt.height, result, tt.expected)
		}
	}
}

func TestIsConnectorShape(t *testing.T) {
	tests := []struct {
		prst      string
		typeLabel string
		expected  bool
	}{
		{"straightConnector1", "Line", true},
		{"bentConnector3", "AutoShape-Connector", true},
		{"line", "Line", true},
		{"rect", "AutoShape-Rectangle", false},
		{"flowChartProcess", "AutoShape-FlowchartProcess", false},
		{"", "Line", true},
		{"", "AutoShape-Connector", true},
	}

	for _, tt := range tests {
		result := isConnectorShape(tt.prst, tt.typeLabel)
		if result != tt.expected {
			t.Errorf("isConnectorShape(%q, %q) = %v, expected %v",
				tt.prst, tt.typeLabel, result, tt.expected)
		}
	}
}

func TestShouldIncludeShape(t *testing.T) {
	tests := []struct {
		text        string
		typeLabel   string
		isConnector bool
		mode        models.Mode
		expected    bool
	}{
		{"text", "AutoShape", false, models.ModeLight, false},
		{"", "Line", true, models.ModeLight, false},
		{"", "AutoShape", false, models.ModeVerbose, true},
		{"text", "AutoShape", false, models.ModeVerbose, true},
		{"text", "AutoShape", false, models.ModeStandard, true},
		{"", "Line", true, models.ModeStandard, true},
		{"", "AutoShape", false, models.ModeStandard, false},
		{"", "AutoShape-RightArrow", false, models.ModeStandard, true},
	}

	for _, tt := range tests {
		result := shouldIncludeShape(tt.text, tt.typeLabel, tt.isConnector, tt.mode)
		if result != tt.expected {
			t.Errorf("shouldIncludeShape(%q, %q, %v, %q) = %v, expected %v",
				tt.text, tt.typeLabel, tt.isConnector, tt.mode, result, tt.expected)
		}
	}
}

func TestEMUToPixels(t *testing.T) {
	tests := []struct {
		emu      int64
		expected int
	}{
		{0, 0},
		{9525, 1},
		{914400, 96},
		{952500, 100},
		{9524, 0},
	}
	for _, tt := range tests {
		if got := EMUToPixels(tt.emu); got != tt.expected {
			t.Errorf("EMUToPixels(%d) = %d, expected %d", tt.emu, got, tt.expected)
		}
	}
	if got := PixelsToEMU(100); got != 952500 {
		t.Errorf("PixelsToEMU(100) = %d, expected 952500", got)
	}
}

func sampleContents(t *testing.T) *Contents {
	t.Helper()
	wsDr, err := schema.Unmarshal([]byte(sampleDrawing), SpreadsheetDrawing)
	if err != nil {
		t.Fatalf("decode drawing: %v", err)
	}
	c := &Contents{Drawing: wsDr}
	for _, anchor := range Anchors(wsDr) {
		obj := &Object{Record: Anchored(anchor), Anchor: anchor}
		if DrawingProps(obj.Record).Child("hlinkClick") != nil {
			obj.Hyperlink = "http://www.example.org"
		}
		c.Shapes = append(c.Shapes, obj)
	}
	return c
}

func TestShapeSummaries(t *testing.T) {
	shapes := ShapeSummaries(sampleContents(t), models.ModeStandard)
	if len(shapes) != 3 {
		t.Fatalf("got %d shapes, expected 3", len(shapes))
	}

	start := shapes[0]
	if start.ID == nil || *start.ID != 1 {
		t.Errorf("start.ID = %v, expected 1", start.ID)
	}
	if start.Type != "AutoShape-Rectangle" || start.Text != "Start" {
		t.Errorf("start = %q/%q", start.Type, start.Text)
	}
	if start.L != 100 || start.T != 40 {
		t.Errorf("start position = (%d, %d), expected (100, 40)", start.L, start.T)
	}
	if start.Anchor != "B2" {
		t.Errorf("start.Anchor = %q, expected B2", start.Anchor)
	}
	if start.W != nil || start.H != nil {
		t.Error("sizes are only reported in verbose mode")
	}
	if start.Hyperlink != "http://www.example.org" {
		t.Errorf("start.Hyperlink = %q", start.Hyperlink)
	}
	if shapes[1].Type != "AutoShape-FlowchartDecision" {
		t.Errorf("end.Type = %q", shapes[1].Type)
	}

	cxn := shapes[2]
	if cxn.ID != nil {
		t.Errorf("connectors are not numbered, got %d", *cxn.ID)
	}
	if cxn.BeginID == nil || *cxn.BeginID != 1 || cxn.EndID == nil || *cxn.EndID != 2 {
		t.Errorf("connector ends = %v -> %v, expected 1 -> 2", cxn.BeginID, cxn.EndID)
	}
	if cxn.Direction != "NE" {
		t.Errorf("cxn.Direction = %q, expected NE", cxn.Direction)
	}
	if cxn.BeginArrowStyle == nil || *cxn.BeginArrowStyle != 1 {
		t.Errorf("cxn.BeginArrowStyle = %v, expected 1", cxn.BeginArrowStyle)
	}
	if cxn.EndArrowStyle == nil || *cxn.EndArrowStyle != 2 {
		t.Errorf("cxn.EndArrowStyle = %v, expected 2", cxn.EndArrowStyle)
	}
}

func TestShapeSummariesByMode(t *testing.T) {
	if got := ShapeSummaries(sampleContents(t), models.ModeLight); got != nil {
		t.Errorf("light mode returned %d shapes", len(got))
	}
	verbose := ShapeSummaries(sampleContents(t), models.ModeVerbose)
	if len(verbose) != 3 {
		t.Fatalf("got %d shapes, expected 3", len(verbose))
	}
	if verbose[0].W == nil || *verbose[0].W != 200 || *verbose[0].H != 100 {
		t.Errorf("verbose size = %v x %v, expected 200 x 100", verbose[0].W, verbose[0].H)
	}
}

func TestPlacementRotation(t *testing.T) {
	n, err := schema.ParseNode([]byte(`<xfrm rot="5400000"><off x="9525" y="19050"/><ext cx="0" cy="0"/></xfrm>`))
	if err != nil {
		t.Fatal(err)
	}
	xfrm, err := Transform2D.FromTree(n)
	if err != nil {
		t.Fatal(err)
	}
	p := PlacementOf(xfrm)
	if p.Rotation == nil || *p.Rotation != 90 {
		t.Errorf("rotation = %v, expected 90", p.Rotation)
	}
	if p.Left != 1 || p.Top != 2 {
		t.Errorf("position = (%d, %d), expected (1, 2)", p.Left, p.Top)
	}
	if PlacementOf(nil).Rotation != nil {
		t.Error("nil xfrm has no rotation")
	}
}
