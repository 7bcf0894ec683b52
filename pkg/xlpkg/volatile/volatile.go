// Package volatile models xl/volatileDependencies.xml, which caches the
// topics that RTD and cube functions subscribe to.
package volatile

import (
	"fmt"

	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/packaging"
	"github.com/ukaji3/xlpkg-go/pkg/xlpkg/schema"
)

const (
	PartPath    = "xl/volatileDependencies.xml"
	ContentType = packaging.ContentTypeVolatileDeps
)

var (
	// TopicRef points at a cell that depends on a topic.
	TopicRef = schema.MustDefine("tr",
		schema.String("r"),
		schema.Integer("s"),
	)
	// Topic is one subscribed value with its string parameters.
	Topic = schema.MustDefine("tp",
		schema.NoneSet("t", []string{"b", "n", "e", "s"}, schema.Default("n")),
		schema.NestedText("v"),
		schema.TextList("stp"),
		schema.Sequence("tr", TopicRef),
	)
	Main = schema.MustDefine("main",
		schema.String("first"),
		schema.Sequence("tp", Topic),
	)
	Type = schema.MustDefine("volType",
		schema.Set("type", []string{"realTimeData", "olapFunctions"}),
		schema.Sequence("main", Main),
	)
	TypesList = schema.MustDefine("volTypes",
		schema.Sequence("volType", Type),
		schema.Typed("extLst", schema.ExtensionList, schema.Optional()),
	).InNamespace(schema.NSSpreadsheetMain)
)

// Parse decodes a volatile dependencies part.
func Parse(data []byte) (*schema.Record, error) {
	r, err := schema.Unmarshal(data, TypesList)
	if err != nil {
		return nil, fmt.Errorf("volatile dependencies: %w", err)
	}
	return r, nil
}

// Subscription is a flattened topic for reporting.
type Subscription struct {
	Kind   string   `json:"kind"`
	Server string   `json:"server"`
	Type   string   `json:"type"`
	Value  string   `json:"value"`
	Params []string `json:"params,omitempty"`
	Cells  []string `json:"cells,omitempty"`
}

// Subscriptions flattens a volTypes record.
func Subscriptions(list *schema.Record) []Subscription {
	var out []Subscription
	for _, vt := range list.Children("volType") {
		for _, m := range vt.Children("main") {
			for _, tp := range m.Children("tp") {
				s := Subscription{
					Kind:   vt.Str("type"),
					Server: m.Str("first"),
					Type:   tp.Str("t"),
					Value:  tp.Str("v"),
					Params: tp.Strings("stp"),
				}
				for _, tr := range tp.Children("tr") {
					s.Cells = append(s.Cells, tr.Str("r"))
				}
				out = append(out, s)
			}
		}
	}
	return out
}
