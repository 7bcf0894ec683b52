package worksheet

import (
	"fmt"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/richtext"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

var (
	Authors = schema.MustDefine("authors",
		schema.TextList("author"),
	)
	CommentRecord = schema.MustDefine("comment",
		schema.String("ref"),
		schema.Integer("authorId"),
		schema.String("guid", schema.Optional()),
		schema.Integer("shapeId", schema.Optional()),
		schema.Typed("text", richtext.Text),
	)
	CommentList = schema.MustDefine("commentList",
		schema.Sequence("comment", CommentRecord),
	)
	// CommentSheet is the root of a comments part.
	CommentSheet = schema.MustDefine("comments",
		schema.Typed("authors", Authors),
		schema.Typed("commentList", CommentList),
		schema.Typed("extLst", schema.ExtensionList, schema.Optional()),
	).InNamespace(schema.NSSpreadsheetMain)
)

// Comment is a cell note with its author resolved.
type Comment struct {
	Ref    string
	Author string
	Text   string
	Record *schema.Record
}

// ParseComments decodes a comments part.
func ParseComments(data []byte) ([]Comment, error) {
	sheet, err := schema.Unmarshal(data, CommentSheet)
	if err != nil {
		return nil, fmt.Errorf("comments: %w", err)
	}
	authors := sheet.Child("authors").Strings("author")
	items := sheet.Child("commentList").Children("comment")
	out := make([]Comment, 0, len(items))
	for _, c := range items {
		id := int(c.Int("authorId"))
		if id < 0 || id >= len(authors) {
			return nil, fmt.Errorf("comments: %s: author %d: %w", c.Str("ref"), id, schema.ErrInvalidValue)
		}
		out = append(out, Comment{
			Ref:    c.Str("ref"),
			Author: authors[id],
			Text:   richtext.Plain(c.Child("text")),
			Record: c,
		})
	}
	return out, nil
}

// NewCommentSheet builds a comments part, assigning author ids in order of
// first appearance.
func NewCommentSheet(comments []Comment) *schema.Record {
	var authors []string
	ids := map[string]int{}
	list := make([]*schema.Record, 0, len(comments))
	for _, c := range comments {
		id, ok := ids[c.Author]
		if !ok {
			id = len(authors)
			ids[c.Author] = id
			authors = append(authors, c.Author)
		}
		list = append(list, CommentRecord.MustNew(schema.Values{
			"ref":      c.Ref,
			"authorId": id,
			"text":     richtext.NewText(c.Text),
		}))
	}
	return CommentSheet.MustNew(schema.Values{
		"authors":     Authors.MustNew(schema.Values{"author": authors}),
		"commentList": CommentList.MustNew(schema.Values{"comment": list}),
	})
}
