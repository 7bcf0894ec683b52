package volatile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

const sampleDeps = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<volTypes xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <volType type="olapFunctions">
    <main first="ThisDataModel">
      <tp t="s">
        <v>aaa: 4447</v>
        <stp>1</stp>
        <stp>[Measures].[Sum]</stp>
        <tr r="A1" s="3"/>
        <tr r="B2" s="3"/>
      </tp>
      <tp>
        <v>12</v>
        <tr r="C3" s="3"/>
      </tp>
    </main>
  </volType>
</volTypes>`

func TestTopicRef(t *testing.T) {
	r, err := TopicRef.New(schema.Values{"r": "A1", "s": 3})
	require.NoError(t, err)
	assert.Equal(t, `<tr r="A1" s="3"/>`, r.ToTree().String())

	n, err := schema.ParseNode([]byte(`<tr r="A1" s="3"/>`))
	require.NoError(t, err)
	back, err := TopicRef.FromTree(n)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func TestTopicRefRequiresNumericSheet(t *testing.T) {
	_, err := TopicRef.New(schema.Values{"r": "A1", "s": "three"})
	assert.True(t, errors.Is(err, schema.ErrInvalidValue))
}

func TestMainRecord(t *testing.T) {
	m := Main.MustNew(schema.Values{"first": "ThisDataModel"})
	assert.Equal(t, `<main first="ThisDataModel"/>`, m.ToTree().String())
}

func TestTopic(t *testing.T) {
	tp := Topic.MustNew(schema.Values{"v": "aaa: 4447", "t": "s"})
	assert.Equal(t, `<tp t="s"><v>aaa: 4447</v></tp>`, tp.ToTree().String())

	numeric := Topic.MustNew(schema.Values{"v": "12"})
	assert.Equal(t, `<tp><v>12</v></tp>`, numeric.ToTree().String())

	n, err := schema.ParseNode([]byte(`<tp><v>12</v></tp>`))
	require.NoError(t, err)
	back, err := Topic.FromTree(n)
	require.NoError(t, err)
	assert.Equal(t, "n", back.Str("t"))
	assert.True(t, numeric.Equal(back))

	_, err = Topic.New(schema.Values{"v": "x", "t": "z"})
	assert.Error(t, err)
	unset, err := Topic.New(schema.Values{"v": "x", "t": nil})
	require.NoError(t, err)
	_, ok := unset.ToTree().Attr("t")
	assert.False(t, ok)

	_, err = Topic.FromTree(schema.NewNode("", "tp"))
	assert.True(t, errors.Is(err, schema.ErrMissingField))
}

func TestTopicElementOrder(t *testing.T) {
	tp := Topic.MustNew(schema.Values{
		"t":   "s",
		"v":   "aaa",
		"stp": []string{"1", "[Measures].[Sum]"},
		"tr":  []*schema.Record{TopicRef.MustNew(schema.Values{"r": "A1", "s": 3})},
	})
	want := `<tp t="s"><v>aaa</v><stp>1</stp><stp>[Measures].[Sum]</stp><tr r="A1" s="3"/></tp>`
	assert.Equal(t, want, tp.ToTree().String())

	// Decoding does not depend on the order the children arrive in.
	n, err := schema.ParseNode([]byte(`<tp t="s"><tr r="A1" s="3"/><v>aaa</v><stp>1</stp><stp>[Measures].[Sum]</stp></tp>`))
	require.NoError(t, err)
	back, err := Topic.FromTree(n)
	require.NoError(t, err)
	assert.True(t, tp.Equal(back))
	assert.Equal(t, want, back.ToTree().String())
}

func TestVolType(t *testing.T) {
	_, err := Type.New(schema.Values{"type": "somethingElse"})
	assert.Error(t, err)
	vt := Type.MustNew(schema.Values{"type": "realTimeData"})
	assert.Equal(t, `<volType type="realTimeData"/>`, vt.ToTree().String())
}

func TestTypesListNamespace(t *testing.T) {
	list := TypesList.MustNew(nil)
	assert.Equal(t, `<volTypes xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"/>`, list.ToTree().String())
}

func TestParse(t *testing.T) {
	list, err := Parse([]byte(sampleDeps))
	require.NoError(t, err)
	require.Len(t, list.Children("volType"), 1)

	subs := Subscriptions(list)
	require.Len(t, subs, 2)
	assert.Equal(t, Subscription{
		Kind:   "olapFunctions",
		Server: "ThisDataModel",
		Type:   "s",
		Value:  "aaa: 4447",
		Params: []string{"1", "[Measures].[Sum]"},
		Cells:  []string{"A1", "B2"},
	}, subs[0])
	assert.Equal(t, "n", subs[1].Type)

	data, err := schema.Marshal(list)
	require.NoError(t, err)
	back, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, list.Equal(back))
}
