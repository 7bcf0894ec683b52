package drawing

import (
	"strings"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

var (
	CharacterProperties = schema.MustDefine("rPr",
		schema.String("lang", schema.Optional()),
		schema.Integer("sz", schema.Optional(), schema.Range(100, 400000)),
		schema.Bool("b", schema.Optional()),
		schema.Bool("i", schema.Optional()),
		schema.Typed("solidFill", SolidFill, schema.Optional()),
	)
	RegularTextRun = schema.MustDefine("r",
		schema.Typed("rPr", CharacterProperties, schema.Optional()),
		schema.NestedText("t"),
	)
	ParagraphProperties = schema.MustDefine("pPr",
		schema.NoneSet("algn", []string{"l", "ctr", "r", "just", "justLow", "dist", "thaiDist"}),
		schema.Integer("lvl", schema.Optional(), schema.Range(0, 8)),
	)
	Paragraph = schema.MustDefine("p",
		schema.Typed("pPr", ParagraphProperties, schema.Optional()),
		schema.Sequence("r", RegularTextRun),
		schema.Typed("endParaRPr", CharacterProperties, schema.Optional()),
	)
	BodyProperties = schema.MustDefine("bodyPr",
		schema.Integer("rot", schema.Optional()),
		schema.NoneSet("vert", []string{"horz", "vert", "vert270", "wordArtVert", "eaVert", "mongolianVert", "wordArtVertRtl"}),
		schema.NoneSet("wrap", []string{"square"}),
		schema.NoneSet("anchor", []string{"t", "ctr", "b", "just", "dist"}),
		schema.Bool("rtlCol", schema.Optional()),
	)
	// TextBody is txBody. Its parts always live in the DrawingML namespace,
	// whatever namespace the body element itself takes.
	TextBody = schema.MustDefine("txBody",
		schema.Typed("bodyPr", BodyProperties, schema.Namespace(nsA)),
		schema.Typed("lstStyle", schema.MustDefine("lstStyle"), schema.Optional(), schema.Namespace(nsA)),
		schema.Sequence("p", Paragraph, schema.Namespace(nsA)),
	)
)

// PlainText joins the runs of a txBody record, one line per paragraph.
func PlainText(body *schema.Record) string {
	if body == nil {
		return ""
	}
	var lines []string
	for _, p := range body.Children("p") {
		var b strings.Builder
		for _, r := range p.Children("r") {
			b.WriteString(r.Str("t"))
		}
		lines = append(lines, b.String())
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
